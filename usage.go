package cmdpro

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const noVersionText = "No version text has been set."

var usageHeader = []string{"arg", "IsCanEmpty", "DefaultValue", "Description"}

// Usage is the help text: a usage line naming the executable and a
// table with one row per parameter, in registration order.
//
//	USAGE
//		/usr/local/bin/prog [OPTIONS]
//
//	OPTIONS
//		arg                  IsCanEmpty  DefaultValue  Description
//		-p,/path,--path      false                     file path
func (r *Registry) Usage() string {
	rows := make([][]string, 0, len(r.params)+1)
	rows = append(rows, usageHeader)
	for _, p := range r.Describe() {
		rows = append(rows, []string{
			strings.Join(p.Aliases, ","),
			strconv.FormatBool(p.AllowEmpty),
			p.Default.HelpString(),
			p.Description,
		})
	}
	widths := columnWidths(rows)

	var b strings.Builder
	b.WriteString("USAGE\n\t")
	b.WriteString(r.programName())
	b.WriteString(" [OPTIONS]\n\nOPTIONS\n")
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(&b, "\t%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// VersionText is what --version prints.
func (r *Registry) VersionText() string {
	if r.versionText == nil {
		return noVersionText
	}
	return *r.versionText
}

func (r *Registry) programName() string {
	if r.program != "" {
		return r.program
	}
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "program"
}

func (r *Registry) printHelp() {
	fmt.Fprint(r.out, r.Usage())
}

func (r *Registry) printVersion() {
	fmt.Fprintln(r.out, r.VersionText())
}

// diagnostic prints a one-line problem report.
func (r *Registry) diagnostic(msg string) {
	c := color.New(color.FgRed)
	if r.useColor() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = c.Fprintln(r.out, msg)
}

func (r *Registry) useColor() bool {
	if r.color != nil {
		return *r.color
	}
	f, ok := r.out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
