package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	lipglosstable "github.com/charmbracelet/lipgloss/table"
	plaintable "github.com/rodaine/table"
)

const (
	plainTablePaddingConstant     = 2
	cellHorizontalPaddingConstant = 1
)

// Layout selects how tables are drawn.
type Layout int

const (
	// LayoutBordered draws a rounded box with a header separator and column separators.
	LayoutBordered Layout = iota
	// LayoutPlain aligns columns with whitespace only.
	LayoutPlain
)

// LayoutFor returns LayoutPlain when plain is set and LayoutBordered otherwise.
func LayoutFor(plain bool) Layout {
	if plain {
		return LayoutPlain
	}
	return LayoutBordered
}

// Cell is one table value together with its tone.
type Cell struct {
	Text string
	Tone Tone
}

// renderTable writes headers and rows in the requested layout. Column widths are the
// widest cell of each column, header included; nothing is truncated.
func renderTable(writer io.Writer, palette *Palette, headers []string, rows [][]Cell, layout Layout) error {
	if layout == LayoutPlain {
		return renderPlainTable(writer, palette, headers, rows)
	}
	return renderBorderedTable(writer, palette, headers, rows)
}

func renderBorderedTable(writer io.Writer, palette *Palette, headers []string, rows [][]Cell) error {
	borderedTable := lipglosstable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(palette.Style(TonePlain)).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		Headers(headers...)

	for _, row := range rows {
		rowTexts := make([]string, len(row))
		for columnIndex, cell := range row {
			rowTexts[columnIndex] = cell.Text
		}
		borderedTable.Row(rowTexts...)
	}

	borderedTable.StyleFunc(func(rowIndex int, columnIndex int) lipgloss.Style {
		if rowIndex == lipglosstable.HeaderRow {
			return palette.Style(TonePlain).Bold(true).Padding(0, cellHorizontalPaddingConstant)
		}
		if rowIndex < 0 || rowIndex >= len(rows) || columnIndex >= len(rows[rowIndex]) {
			return palette.Style(TonePlain).Padding(0, cellHorizontalPaddingConstant)
		}
		return palette.Style(rows[rowIndex][columnIndex].Tone).Padding(0, cellHorizontalPaddingConstant)
	})

	_, writeError := fmt.Fprintln(writer, borderedTable.Render())
	return writeError
}

func renderPlainTable(writer io.Writer, palette *Palette, headers []string, rows [][]Cell) error {
	headerValues := make([]interface{}, len(headers))
	for headerIndex, header := range headers {
		headerValues[headerIndex] = header
	}

	plainTable := plaintable.New(headerValues...).
		WithWriter(writer).
		WithPadding(plainTablePaddingConstant).
		WithWidthFunc(lipgloss.Width)

	for _, row := range rows {
		rowValues := make([]interface{}, len(row))
		for columnIndex, cell := range row {
			rowValues[columnIndex] = palette.Paint(cell.Tone, cell.Text)
		}
		plainTable.AddRow(rowValues...)
	}

	plainTable.Print()
	return nil
}
