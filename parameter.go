package cmdpro

import (
	"github.com/pkg/errors"
)

// Parameter is a registered parameter.  The *Parameter returned at
// registration is the registry's own entry: reading from it after
// Parse sees the parsed value.  Parse is the only writer.
type Parameter struct {
	name         string
	typ          ParameterType
	allowEmpty   bool
	aliases      []string
	description  string
	defaultValue Value
	value        Value

	rule      string   // validator tag
	envVar    string   // explicit environment variable
	configKey []string // path within config files
	origin    string   // where value came from, for debugging
	given     bool     // a value was taken from the command line
}

func (p *Parameter) Name() string        { return p.name }
func (p *Parameter) Type() ParameterType { return p.typ }
func (p *Parameter) AllowEmpty() bool    { return p.allowEmpty }
func (p *Parameter) Description() string { return p.description }
func (p *Parameter) Default() Value      { return p.defaultValue }
func (p *Parameter) Value() Value        { return p.value }
func (p *Parameter) IsSet() bool         { return !p.value.IsNone() }
func (p *Parameter) Present() bool       { return p.value.is(Flag) }
func (p *Parameter) Rule() string        { return p.rule }

// Aliases returns a copy of the tokens that select this parameter.
func (p *Parameter) Aliases() []string {
	a := make([]string, len(p.aliases))
	copy(a, p.aliases)
	return a
}

// unset handles the common prefix of the typed accessors: an unset
// value is the zero value when empty is allowed and an error otherwise.
func (p *Parameter) unset() (bool, error) {
	if !p.value.IsNone() {
		return false, nil
	}
	if p.allowEmpty {
		return true, nil
	}
	return true, errors.Wrapf(ErrValueNotSet, "%s", p.name)
}

func (p *Parameter) IntValue() (int64, error) {
	if unset, err := p.unset(); unset {
		return 0, err
	}
	i, err := p.value.Int()
	return i, errors.WithMessage(err, p.name)
}

func (p *Parameter) FloatValue() (float64, error) {
	if unset, err := p.unset(); unset {
		return 0, err
	}
	f, err := p.value.Float()
	return f, errors.WithMessage(err, p.name)
}

func (p *Parameter) PathValue() (string, error) {
	if unset, err := p.unset(); unset {
		return "", err
	}
	s, err := p.value.Path()
	return s, errors.WithMessage(err, p.name)
}

func (p *Parameter) StringValue() (string, error) {
	if unset, err := p.unset(); unset {
		return "", err
	}
	s, err := p.value.Str()
	return s, errors.WithMessage(err, p.name)
}

func (p *Parameter) BoolValue() (bool, error) {
	if unset, err := p.unset(); unset {
		return false, err
	}
	b, err := p.value.Bool()
	return b, errors.WithMessage(err, p.name)
}

func (p *Parameter) check() error {
	if p.name == "" {
		return errors.New("parameter name must not be empty")
	}
	if !p.typ.valid() {
		return errors.Errorf("parameter %s: %s is not a parameter type", p.name, p.typ)
	}
	if t, ok := p.defaultValue.Type(); ok && t != p.typ {
		return errors.Errorf("parameter %s is a %s but its default is a %s", p.name, p.typ, t)
	}
	for _, alias := range p.aliases {
		if alias == "" {
			return errors.Errorf("parameter %s has an empty alias", p.name)
		}
	}
	return nil
}

func (p *Parameter) set(v Value, origin string) {
	debugf("cmdpro: %s = %s from %s", p.name, v, origin)
	p.value = v
	p.origin = origin
}

// canonicalAliases de-duplicates the caller's aliases and appends
// "/name" and "--name" unless they are already present.
func canonicalAliases(name string, aliases []string) []string {
	n := make([]string, 0, len(aliases)+2)
	add := func(alias string) {
		if !contains(n, alias) {
			n = append(n, alias)
		}
	}
	for _, alias := range aliases {
		add(alias)
	}
	add("/" + name)
	add("--" + name)
	return n
}
