package cmdpro

import (
	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

var (
	helpAliases    = []string{"--help", "--h"}
	versionAliases = []string{"--version", "--v"}
)

// Parse consumes args (the command line without the program path) in a
// single left-to-right pass.
//
// "--help" and "--h" print the usage text and stop; "--version" and
// "--v" print the version text and stop.  These are checked before
// parameter aliases, so they cannot be taken over by a parameter.
//
// Every other token must be an alias.  A Flag parameter consumes
// nothing more.  Every other type consumes the following token as its
// value, even if that token looks like an alias.  A missing or empty
// value token is an error unless the parameter allows empty, in which
// case the parameter is left alone.  A later alias for the same
// parameter overwrites the earlier value.
//
// After a clean pass, parameters that were not given are filled from
// the environment and then from configuration files, Rule checks run,
// and any required parameter that is still unset is reported.
//
// Parse returns nil or an error wrapping *ParseErrors (see
// AsParseErrors).  It may be called only once per Registry.
func (r *Registry) Parse(args []string) error {
	if r.parsed {
		return commonerrors.ProgrammerError(errors.WithStack(ErrAlreadyParsed))
	}
	r.parsed = true
	if r.delayedErr != nil {
		r.aborted = true
		return r.delayedErr
	}
	if err := r.checkAliases(); err != nil {
		r.aborted = true
		return err
	}
	debugf("cmdpro: parsing %d tokens against %d parameters", len(args), len(r.params))

	errs := &ParseErrors{}
	stopped := r.scan(args, errs)
	if !stopped && (errs.empty() || r.collectAll) {
		stopped = r.fillFromEnv(errs) ||
			r.fillFromConfig(errs) ||
			r.checkRules(errs)
		if !stopped && (errs.empty() || r.collectAll) {
			r.checkRequired(errs)
		}
		if errs.empty() {
			r.importFlags(errs)
			r.fillRequests(errs)
		}
	}
	if !errs.empty() {
		r.aborted = true
		return commonerrors.UsageError(errs)
	}
	if r.onParsed != nil {
		if err := r.onParsed(r); err != nil {
			r.aborted = true
			return commonerrors.UsageError(errors.Wrap(err, "on parsed"))
		}
	}
	return nil
}

// scan is the token loop.  It returns true when parsing must stop now.
func (r *Registry) scan(args []string, errs *ParseErrors) bool {
	for i := 0; i < len(args); i++ {
		token := args[i]
		switch {
		case contains(helpAliases, token):
			debugf("cmdpro: at %d, help requested", i)
			r.printHelp()
			errs.add(&ParseError{Kind: HelpRequested, Token: token})
			return true
		case contains(versionAliases, token):
			debugf("cmdpro: at %d, version requested", i)
			r.printVersion()
			errs.add(&ParseError{Kind: VersionRequested, Token: token})
			return true
		}

		p := r.match(token)
		if p == nil {
			debugf("cmdpro: at %d, unknown token %s", i, token)
			errs.add(&ParseError{Kind: UnknownToken, Token: token})
			if r.collectAll {
				continue
			}
			return true
		}

		if !p.typ.takesValue() {
			p.set(FlagValue(), token)
			p.given = true
			continue
		}

		if i+1 >= len(args) || args[i+1] == "" {
			i++ // an empty value token is still consumed
			if p.allowEmpty {
				debugf("cmdpro: at %d, %s has no value and may be empty", i, p.name)
				continue
			}
			errs.add(&ParseError{Kind: MissingValue, Parameter: p.name, Token: token})
			if r.collectAll {
				continue
			}
			return true
		}

		i++
		v, err := coerce(p.typ, args[i])
		if err != nil {
			errs.add(&ParseError{
				Kind:      ConversionFailure,
				Parameter: p.name,
				Token:     args[i],
				Err:       err,
			})
			if r.collectAll {
				continue
			}
			return true
		}
		p.set(v, token)
		p.given = true
	}
	return false
}

// checkRequired reports required parameters that are still unset.
// Parameters that already have an error are skipped so that a bad
// value is not also reported as missing.
func (r *Registry) checkRequired(errs *ParseErrors) {
	reported := make(map[string]struct{}, len(errs.Errors))
	for _, e := range errs.Errors {
		if e.Parameter != "" {
			reported[e.Parameter] = struct{}{}
		}
	}
	for _, p := range r.params {
		if p.allowEmpty || !p.value.IsNone() {
			continue
		}
		if _, ok := reported[p.name]; ok {
			continue
		}
		errs.add(&ParseError{Kind: MissingRequiredParameter, Parameter: p.name})
	}
}

// applyText stores text from a fallback source into p.  It returns
// true when parsing must stop.
func (r *Registry) applyText(p *Parameter, text string, origin string, errs *ParseErrors) bool {
	v, err := coerce(p.typ, text)
	if err != nil {
		errs.add(&ParseError{
			Kind:      ConversionFailure,
			Parameter: p.name,
			Token:     text,
			Err:       errors.Wrap(err, origin),
		})
		return !r.collectAll
	}
	if !v.IsNone() {
		p.set(v, origin)
	}
	return false
}
