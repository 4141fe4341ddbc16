package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/wippyai/h3-runtime/dispatch"
	"github.com/wippyai/h3-runtime/shape"
	"github.com/wippyai/h3-runtime/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	falseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// printer writes results in one output format.
type printer struct {
	w      io.Writer
	format string
	styled bool
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) result(v value.Value) error {
	out, err := formatValue(v, p.format)
	if err != nil {
		return err
	}
	if p.format == "text" {
		s := resultStyle
		if v.Equal(value.False()) {
			s = falseStyle
		}
		out = p.style(s, out)
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

func formatValue(v value.Value, format string) (string, error) {
	switch format {
	case "text":
		return v.String(), nil
	case "geojson":
		b, err := shape.GeoJSON(v)
		return string(b), err
	case "wkt":
		return shape.WKT(v)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	}
}

// list prints every signature grouped by concern.
func (p *printer) list(tbl *dispatch.Table) {
	groups, byGroup := tbl.Groups()
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		fmt.Fprintln(p.w, p.style(titleStyle, string(g)))
		for _, d := range byGroup[g] {
			line := "  " + p.signature(d)
			if d.Experimental {
				line += p.style(helpStyle, " (experimental)")
			}
			fmt.Fprintln(p.w, line)
		}
	}
}

func (p *printer) signature(d *dispatch.Descriptor) string {
	if !p.styled {
		return dispatch.Signature(d)
	}
	params := make([]string, len(d.Params))
	for i, prm := range d.Params {
		params[i] = prm.Name + ": " + typeStyle.Render(dispatch.TypeString(prm.Type))
	}
	result := dispatch.TypeString(d.Result)
	if d.Fallible {
		result = "result<" + result + ">"
	}
	return funcStyle.Render(d.Name) + "(" + strings.Join(params, ", ") + ") -> " + typeStyle.Render(result)
}

func (p *printer) schema(d *dispatch.Descriptor) error {
	b, err := json.MarshalIndent(dispatch.Schema(d), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

// parseArgs reads a JSON array of operation arguments.
func parseArgs(raw string) ([]value.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := value.Parse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	args, ok := v.AsSeq()
	if !ok {
		return nil, fmt.Errorf("args must be a JSON array, got %s", v.Kind())
	}
	return args, nil
}
