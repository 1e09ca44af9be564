package cmdpro

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by the typed accessors.  These never come out of
// Parse and never terminate the process.
var (
	ErrWrongValueType = errors.New("wrong value type")
	ErrValueNotSet    = errors.New("value not set")
)

// ErrAlreadyParsed is returned (wrapped as a programmer error) when
// Parse is called a second time on the same Registry.
var ErrAlreadyParsed = errors.New("parse has already been called on this registry")

// Process exit statuses used by ParseCommandLine.
const (
	ExitAbort           = 1 // unknown token, bad value, help or version shown
	ExitMissingRequired = 2 // a required parameter was never given
)

// Kind classifies a parse-time failure.
type Kind int

const (
	UnknownToken Kind = iota + 1
	MissingValue
	ConversionFailure
	ValidationFailure
	MissingRequiredParameter
	HelpRequested
	VersionRequested
)

func (k Kind) String() string {
	switch k {
	case UnknownToken:
		return "UnknownToken"
	case MissingValue:
		return "MissingValue"
	case ConversionFailure:
		return "ConversionFailure"
	case ValidationFailure:
		return "ValidationFailure"
	case MissingRequiredParameter:
		return "MissingRequiredParameter"
	case HelpRequested:
		return "HelpRequested"
	case VersionRequested:
		return "VersionRequested"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExitCode is the process status ParseCommandLine uses for this kind.
func (k Kind) ExitCode() int {
	if k == MissingRequiredParameter {
		return ExitMissingRequired
	}
	return ExitAbort
}

// ParseError is one problem found while parsing.  Parameter is empty
// for UnknownToken, HelpRequested, and VersionRequested.  Token is the
// offending command-line token (or environment variable / config key
// for values that came from a fallback source).
type ParseError struct {
	Kind      Kind
	Parameter string
	Token     string
	Err       error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownToken:
		return "Unknown parameter: " + e.Token
	case MissingValue:
		return "No value passed for parameter " + e.Parameter
	case ConversionFailure:
		return fmt.Sprintf("Unable to convert parameter %s value %q: %s", e.Parameter, e.Token, e.cause())
	case ValidationFailure:
		return fmt.Sprintf("Parameter %s failed validation: %s", e.Parameter, e.cause())
	case MissingRequiredParameter:
		return "cmd arg " + e.Parameter + " is not set"
	case HelpRequested:
		return "help requested"
	case VersionRequested:
		return "version requested"
	default:
		return e.Kind.String()
	}
}

func (e *ParseError) cause() string {
	if e.Err == nil {
		return "invalid value"
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseErrors is the error returned by Parse.  In the default
// fail-fast mode it holds exactly one entry; with WithCollectAll it
// holds every problem found, in the order found.
type ParseErrors struct {
	Errors []*ParseError
}

func (p *ParseErrors) Error() string {
	msgs := make([]string, len(p.Errors))
	for i, e := range p.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes every ParseError to errors.Is and errors.As.
func (p *ParseErrors) Unwrap() []error {
	errs := make([]error, len(p.Errors))
	for i, e := range p.Errors {
		errs[i] = e
	}
	return errs
}

// Has reports whether any entry is of kind k.
func (p *ParseErrors) Has(k Kind) bool {
	for _, e := range p.Errors {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Kinds lists the kind of each entry.
func (p *ParseErrors) Kinds() []Kind {
	kinds := make([]Kind, len(p.Errors))
	for i, e := range p.Errors {
		kinds[i] = e.Kind
	}
	return kinds
}

// ExitCode is ExitMissingRequired when every entry is a missing
// required parameter and ExitAbort otherwise.
func (p *ParseErrors) ExitCode() int {
	for _, e := range p.Errors {
		if e.Kind.ExitCode() != ExitMissingRequired {
			return ExitAbort
		}
	}
	return ExitMissingRequired
}

func (p *ParseErrors) add(e *ParseError) {
	p.Errors = append(p.Errors, e)
}

func (p *ParseErrors) empty() bool {
	return p == nil || len(p.Errors) == 0
}

// AsParseErrors digs the *ParseErrors out of an error returned by
// Parse.
func AsParseErrors(err error) (*ParseErrors, bool) {
	var p *ParseErrors
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}
