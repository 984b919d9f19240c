// Package ui renders command output for people and for scripts.
//
// Tables are drawn with lipgloss when stdout is a terminal and fall back to
// tab-separated rows otherwise, so the output can be piped into cut or awk.
package ui
