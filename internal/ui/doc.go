// Package ui holds the color themes shared by the CLI output and the TUI
// lesson browser, and honors NO_COLOR.
package ui
