// Package present renders effectiveness reports for people and programs.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
)

// Presenter renders one report, or the error a lookup ended in.
type Presenter interface {
	Present(w io.Writer, r *effectiveness.Report) error
	PresentError(w io.Writer, err error) error
}

const (
	noAdvantages    = "No type advantages"
	noDisadvantages = "No type disadvantages"
)

// Formats lists the names accepted by ByName.
var Formats = []string{"table", "plain", "json", "yaml"}

func ByName(format string) (Presenter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return Table{}, nil
	case "plain", "text":
		return Plain{}, nil
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

func reasonLines(reasons []effectiveness.Reason) string {
	lines := make([]string, len(reasons))
	for i, r := range reasons {
		lines[i] = "• " + string(r)
	}
	return strings.Join(lines, "\n")
}
