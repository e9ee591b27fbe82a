// Package styles defines the color themes used to draw word walls.
//
// A [Theme] maps each of the layout's color classes to a CSS color and sets
// the background, font family and how mastered words are dimmed. Two themes
// are built in ([Light] and [Dark]); others load from TOML:
//
//	name = "classroom"
//	background = "#fffdf5"
//	font_family = "Georgia, serif"
//	mastered_opacity = 0.3
//	palette = ["#1b4965", "#5fa8d3", "#62b6cb", "#cae9ff", "#bee9e8",
//	           "#e63946", "#f4a261", "#2a9d8f", "#264653"]
//
// Keys missing from a file keep the value from [Light].
package styles
