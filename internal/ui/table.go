package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

//nolint:gochecknoglobals // Styles are immutable after initialisation.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// Printer writes tables and key-value reports to an output.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer for out. Styling is enabled when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	styled := false
	if file, ok := out.(*os.File); ok {
		styled = term.IsTerminal(int(file.Fd()))
	}

	return &Printer{out: out, styled: styled}
}

// NewPlainPrinter creates a printer that never styles its output.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Table writes rows under headers.
func (p *Printer) Table(headers []string, rows [][]string) error {
	if !p.styled {
		var builder strings.Builder

		builder.WriteString(strings.Join(headers, "\t"))
		builder.WriteString("\n")

		for _, row := range rows {
			builder.WriteString(strings.Join(row, "\t"))
			builder.WriteString("\n")
		}

		_, err := io.WriteString(p.out, builder.String())

		return err
	}

	rendered := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()

	_, err := io.WriteString(p.out, rendered+"\n")

	return err
}

// Field is one line of a key-value report.
type Field struct {
	Label string
	Value string
}

// Report writes aligned "label: value" lines.
func (p *Printer) Report(fields []Field) error {
	width := 0
	for _, field := range fields {
		width = max(width, len(field.Label))
	}

	var builder strings.Builder

	for _, field := range fields {
		label := field.Label + ":" + strings.Repeat(" ", width-len(field.Label)+1)
		if p.styled {
			label = labelStyle.Render(label)
		}

		builder.WriteString(label)
		builder.WriteString(field.Value)
		builder.WriteString("\n")
	}

	_, err := io.WriteString(p.out, builder.String())

	return err
}
