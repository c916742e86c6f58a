// Package presentation renders probed repository state as text.
//
// It produces the inline prompt token for a single repository and the
// dir-status and branches tables in either a bordered layout (lipgloss/table)
// or a plain whitespace-aligned layout (rodaine/table). Colors come from a
// Palette bound to a lipgloss renderer whose color profile follows the
// configured color mode.
package presentation
