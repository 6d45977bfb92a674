package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// table writes an aligned table with a dim header. Cells may carry color
// escapes; widths are measured on plain.
func table(w io.Writer, headers []string, plain, styled [][]string) {
	if len(plain) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range plain {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += runewidth.FillRight(h, widths[i]) + "  "
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(w, strings.TrimRight(sepLine, " "))

	for r, row := range plain {
		line := "  "
		for i, cell := range row {
			pad := widths[i] - runewidth.StringWidth(cell)
			line += styled[r][i] + strings.Repeat(" ", pad) + "  "
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// swatch renders a block in the task's own color. Unparseable colors print
// a plain block.
func swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "■"
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint("■")
}
