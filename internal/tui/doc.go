// Package tui implements the interactive lesson browser: a bubbletea
// program listing the lessons on the left and the output of the selected
// one on the right.
package tui
