package cmdpro

import (
	"os"
)

// exit is replaced by tests.
var exit = os.Exit

// ParseCommandLine parses os.Args[1:] and terminates the process if
// parsing does not succeed: problems are printed followed by the help
// text, and the process exits with ExitMissingRequired when the only
// problems are missing required parameters, or ExitAbort otherwise
// (which includes --help and --version).
//
// Use Parse instead to handle errors without exiting.
func (r *Registry) ParseCommandLine() {
	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	err := r.Parse(args)
	if err == nil {
		return
	}
	exit(r.report(err))
}

// report prints err the way ParseCommandLine does and returns the
// exit status to use.
func (r *Registry) report(err error) int {
	pe, ok := AsParseErrors(err)
	if !ok {
		r.diagnostic(err.Error())
		return ExitAbort
	}
	for _, e := range pe.Errors {
		switch e.Kind {
		case HelpRequested, VersionRequested:
			// the text itself was already printed by Parse
		default:
			r.diagnostic(e.Error())
		}
	}
	if !pe.Has(HelpRequested) {
		r.printHelp()
	}
	return pe.ExitCode()
}
