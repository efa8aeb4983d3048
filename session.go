package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/JadedPigeon/typechecker/internal/present"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	exitKeyword = "exit"
	promptText  = "Enter a Pokemon name (or 'exit' to quit):"
	goodbye     = "Thanks for using Pokemon Type Checker!"
)

// interactive prompts for names until the exit keyword or end of input.
func (a *app) interactive(ctx context.Context, in io.Reader, out io.Writer) error {
	tty := isTerminal(in)
	prompt := linePrompt(in, out)
	if tty {
		prompt = formPrompt(in, out)
	}

	re := lipgloss.NewRenderer(out)
	fmt.Fprintln(out, re.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("11")).
		Border(lipgloss.DoubleBorder()).
		Padding(0, 4).
		Render("Pokemon Type Checker"))

	p := present.Table{}
	for ctx.Err() == nil {
		fmt.Fprintln(out)
		name, err := prompt()
		if errors.Is(err, io.EOF) || errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, exitKeyword) {
			fmt.Fprintln(out, re.NewStyle().Foreground(lipgloss.Color("11")).Render(goodbye))
			return nil
		}

		a.show(ctx, out, p, name, tty)
	}
	return nil
}

// show looks name up and renders the report or the error. Errors end here;
// the session carries on.
func (a *app) show(ctx context.Context, out io.Writer, p present.Presenter, name string, spin bool) {
	var (
		report *effectiveness.Report
		err    error
	)
	fetch := func() { report, err = a.lookup(ctx, name) }

	if spin {
		serr := spinner.New().
			Title(fmt.Sprintf("Fetching data for %s...", name)).
			Context(ctx).
			Action(fetch).
			Run()
		if serr != nil && report == nil && err == nil {
			err = serr
		}
	} else {
		fetch()
	}

	if err != nil {
		p.PresentError(out, err)
		if names := a.suggestions(ctx, name, err); len(names) > 0 {
			fmt.Fprintln(out, didYouMean(names))
		}
		return
	}
	if perr := p.Present(out, report); perr != nil {
		a.logger.Sugar().Warnf("error rendering report for %q: %v", name, perr)
	}
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formPrompt(in io.Reader, out io.Writer) func() (string, error) {
	return func() (string, error) {
		var name string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(promptText).
					Value(&name),
			),
		).WithInput(in).WithOutput(out).Run()
		return name, err
	}
}

func linePrompt(in io.Reader, out io.Writer) func() (string, error) {
	scanner := bufio.NewScanner(in)
	return func() (string, error) {
		fmt.Fprint(out, promptText+" ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
}
