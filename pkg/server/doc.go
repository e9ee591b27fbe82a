// Package server exposes a word store and its wall over HTTP.
//
// Routes:
//
//	GET    /api/words                  list words (?q keyword filter)
//	POST   /api/words                  add {word, translation}
//	GET    /api/words/{id}             one word (the tooltip lookup)
//	PUT    /api/words/{id}             edit {word, translation}
//	DELETE /api/words/{id}             remove
//	POST   /api/words/{id}/mastered    mark mastered
//	DELETE /api/words/{id}/mastered    mark unmastered
//	DELETE /api/words                  clear all words
//	POST   /api/reset                  mark every word unmastered
//	GET    /api/stats                  totals and percentage mastered
//	GET    /api/layout                 placements as JSON (?width&height&seed)
//	GET    /api/translate              translation suggestion (?word)
//	GET    /api/export                 download (?format=json|yaml)
//	POST   /api/import                 upload (?merge=true&format=json|yaml|txt)
//	GET    /api/version                build info
//	GET    /wall.svg                   the rendered wall (?width&height&seed&style)
//	GET    /qr.png                     QR code pointing phones at /wall.svg
//
// Every store change triggers a background relayout that warms the render
// cache. A newer change cancels a relayout still in flight.
package server
