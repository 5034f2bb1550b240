// Package render draws export tables, film detail blocks and ASCII
// poster art on the terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"lbx/internal/models"
	"lbx/internal/shared"
)

var keyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// Pair is one key/value line of a detail block.
type Pair struct {
	Key   string
	Value string
}

// Renderer writes tables and detail blocks to a terminal.
type Renderer struct {
	out           io.Writer
	posterColumns int
	logger        *log.Logger
}

// NewRenderer creates a Renderer. posterColumns is the width of ASCII
// poster art; 0 disables posters.
func NewRenderer(out io.Writer, posterColumns int, logger *log.Logger) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Renderer{
		out:           out,
		posterColumns: posterColumns,
		logger:        logger,
	}
}

// Table renders a titled table with the given headers and rows.
func (r *Renderer) Table(title string, headers []string, rows [][]string) {
	columns := len(headers)
	if columns == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				tr[i] = row[i]
			} else {
				tr[i] = ""
			}
		}
		tw.AppendRow(tr)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range headers {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	tw.Render()
}

// Details renders an aligned key/value block.
func (r *Renderer) Details(pairs []Pair) {
	width := 0
	for _, pair := range pairs {
		if len(pair.Key) > width {
			width = len(pair.Key)
		}
	}

	for _, pair := range pairs {
		key := keyStyle.Render(fmt.Sprintf("%-*s", width, pair.Key))
		fmt.Fprintf(r.out, "%s  %s\n", key, pair.Value)
	}
}

// FilmDetails renders a film's metadata block, dropping the original
// title when it matches the display title.
func (r *Renderer) FilmDetails(details models.FilmDetails) {
	pairs := []Pair{{Key: "Title", Value: details.Title}}
	if details.OriginalTitle != "" && details.OriginalTitle != details.Title {
		pairs = append(pairs, Pair{Key: "Original Title", Value: details.OriginalTitle})
	}
	if details.ReleaseDate != "" {
		pairs = append(pairs, Pair{Key: "Release Date", Value: details.ReleaseDate})
	}
	if details.Runtime > 0 {
		pairs = append(pairs, Pair{Key: "Runtime", Value: fmt.Sprintf("%d min", details.Runtime)})
	}
	if details.Overview != "" {
		pairs = append(pairs, Pair{Key: "Overview", Value: details.Overview})
	}

	r.Details(pairs)
}

// Println writes a plain line to the output.
func (r *Renderer) Println(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
