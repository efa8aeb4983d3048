package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
)

// Plain is a deterministic, unstyled rendering.
type Plain struct{}

func (Plain) Present(w io.Writer, r *effectiveness.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(r.Species))
	fmt.Fprintf(&b, "Types: %s\n", strings.Join(r.Types, ", "))

	writeSection(&b, "STRONG AGAINST", r.StrongAgainst, noAdvantages)
	writeSection(&b, "WEAK AGAINST", r.WeakAgainst, noDisadvantages)

	_, err := io.WriteString(w, b.String())
	return err
}

func (Plain) PresentError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Error: %s\n", err)
	return werr
}

func writeSection(b *strings.Builder, title string, rels []effectiveness.Relation, empty string) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(rels) == 0 {
		fmt.Fprintf(b, "  None: %s\n", empty)
		return
	}
	for _, rel := range rels {
		reasons := make([]string, len(rel.Reasons))
		for i, r := range rel.Reasons {
			reasons[i] = string(r)
		}
		fmt.Fprintf(b, "  %s: %s\n", rel.Type, strings.Join(reasons, ", "))
	}
}
