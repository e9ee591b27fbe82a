// Package io imports and exports vocabulary lists.
//
// # JSON Format
//
// The canonical format is a JSON array of word objects:
//
//	[
//	  {"word": "Hello", "translation": "你好", "mastered": false},
//	  {"word": "World", "translation": "世界", "mastered": true}
//	]
//
// Import is lenient: entries that are not objects, or whose "word" or
// "translation" is missing, not a string, or blank, are skipped. "mastered"
// is optional and follows JavaScript truthiness, so 1, "yes" and true all
// count as mastered while 0, "" and null do not. An input with no usable
// entries is rejected.
//
// # Other Formats
//
//   - YAML: the same list structure, via gopkg.in/yaml.v3.
//   - Text: one "word = translation" pair per line; blank lines and lines
//     starting with '#' are ignored.
//
// Export writes JSON (two-space indent) or YAML with only the word,
// translation and mastered fields, so files can be shared without store
// IDs. [DefaultExportName] produces the dated default file name.
package io
