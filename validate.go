package cmdpro

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

func newValidator() Validate {
	return validator.New()
}

// checkRules runs each parameter's Rule against its current value.
func (r *Registry) checkRules(errs *ParseErrors) bool {
	for _, p := range r.params {
		if p.rule == "" || p.value.IsNone() {
			continue
		}
		err := r.getValidator().Var(p.value.interfaceValue(), p.rule)
		if err != nil {
			errs.add(&ParseError{
				Kind:      ValidationFailure,
				Parameter: p.name,
				Token:     p.value.HelpString(),
				Err:       errors.Wrap(err, p.rule),
			})
			if !r.collectAll {
				return true
			}
		}
	}
	return false
}
