package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// ConfigureColor disables styled output when f is not a terminal.
func ConfigureColor(f *os.File) {
	if f == nil || !isTerminal(int(f.Fd())) {
		pterm.DisableColor()
	}
}

// Green returns s in green.
func Green(s string) string { return pterm.Green(s) }

// Red returns s in red.
func Red(s string) string { return pterm.Red(s) }

// Cyan returns s in cyan.
func Cyan(s string) string { return pterm.Cyan(s) }

// Printer writes human-oriented CLI output.
type Printer struct {
	Out   io.Writer
	Quiet bool
}

func (p *Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Section prints a bold heading.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), pterm.Bold.Sprint(title))
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), Cyan("•")+" "+msg)
}

// Success prints a success line.
func (p *Printer) Success(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), Green("✓")+" "+msg)
}

// Printf prints regardless of quiet mode; it is used for command results.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

// Tree prints items as a tree, one level per item.
func (p *Printer) Tree(items pterm.LeveledList) error {
	if len(items) == 0 {
		return nil
	}
	s, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(items)).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.out(), s)
	return err
}
