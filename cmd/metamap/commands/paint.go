package commands

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"metamap/internal/diagnostic"
)

// painter colours status words when the output is a terminal.
type painter struct {
	ok   *color.Color
	warn *color.Color
	fail *color.Color
	dim  *color.Color
}

func newPainter(w io.Writer) painter {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd())
	}

	p := painter{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p painter) severity(s diagnostic.Severity) string {
	switch s {
	case diagnostic.SeverityError:
		return p.fail.Sprint(s.String())
	case diagnostic.SeverityWarning:
		return p.warn.Sprint(s.String())
	default:
		return p.dim.Sprint(s.String())
	}
}
