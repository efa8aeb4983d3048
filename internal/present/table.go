package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	yellow = lipgloss.Color("11")
	green  = lipgloss.Color("10")
	red    = lipgloss.Color("9")
	grey   = lipgloss.Color("8")
)

// Table renders a species panel followed by the strong and weak tables side
// by side. Colors are dropped when w is not a terminal.
type Table struct{}

func (Table) Present(w io.Writer, r *effectiveness.Report) error {
	re := lipgloss.NewRenderer(w)

	info := re.NewStyle().Bold(true).Foreground(yellow).Render(strings.ToUpper(r.Species)) +
		"\nTypes: " + strings.Join(r.Types, ", ")
	panel := lipgloss.JoinVertical(lipgloss.Left,
		re.NewStyle().Faint(true).Render("Pokemon Info"),
		re.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Render(info),
	)

	strong := relationTable(re, "STRONG AGAINST", "Advantages", green, r.StrongAgainst, noAdvantages)
	weak := relationTable(re, "WEAK AGAINST", "Disadvantages", red, r.WeakAgainst, noDisadvantages)

	_, err := fmt.Fprintf(w, "\n%s\n\n%s\n", panel, lipgloss.JoinHorizontal(lipgloss.Top, strong, "  ", weak))
	return err
}

func (Table) PresentError(w io.Writer, err error) error {
	re := lipgloss.NewRenderer(w)
	_, werr := fmt.Fprintln(w, re.NewStyle().Foreground(red).Render("Error: "+err.Error()))
	return werr
}

func relationTable(re *lipgloss.Renderer, title, column string, color lipgloss.Color, rels []effectiveness.Relation, empty string) string {
	rows := make([][]string, 0, max(len(rels), 1))
	for _, rel := range rels {
		rows = append(rows, []string{rel.Type, reasonLines(rel.Reasons)})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"None", empty})
	}

	header := re.NewStyle().Bold(true).Foreground(color).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(re.NewStyle().Foreground(color)).
		Headers("Type", column).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case len(rels) == 0:
				return cell.Foreground(grey)
			case col == 0:
				return cell.Bold(true)
			}
			return cell
		})

	heading := re.NewStyle().Bold(true).Foreground(color).Render(title)
	return lipgloss.JoinVertical(lipgloss.Center, heading, t.String())
}
