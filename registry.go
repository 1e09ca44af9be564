package cmdpro

import (
	"io"
	"io/fs"
	"os"

	"github.com/AlekSi/pointer"
	"github.com/mohae/deepcopy"
	"github.com/muir/commonerrors"
	"github.com/muir/nflex"
	"github.com/muir/nject"
	"github.com/pkg/errors"
)

// Validate is the subset of the Validate provided by
// https://github.com/go-playground/validator that is used here,
// allowing other implementations to be provided if desired.
type Validate interface {
	// Var checks a single parsed value against a Rule tag.
	Var(field interface{}, tag string) error
	// Struct is called for each model registered with Request.
	Struct(s interface{}) error
}

// Registry holds parameter definitions and their values.  Build one
// with NewRegistry, register parameters, call Parse (or
// ParseCommandLine) once, then read the values back.
//
// A Registry is not safe for concurrent use: registration and parsing
// are expected to happen on one goroutine during program start-up.
type Registry struct {
	params        []*Parameter
	byName        map[string]int
	versionText   *string
	aborted       bool
	parsed        bool
	strictAliases bool
	collectAll    bool
	out           io.Writer
	color         *bool
	program       string
	envPrefix     string
	lookupEnv     func(string) (string, bool)
	sources       []configSource
	configFS      fs.FS
	unmarshalOpts []nflex.UnmarshalFileArg
	validator     Validate
	requests      []*request
	imported      []importedFlag
	onParsed      func(*Registry) error
	delayedErr    error
}

type RegistryFuncArg func(*Registry)

func NewRegistry(options ...RegistryFuncArg) *Registry {
	r := &Registry{
		byName:    make(map[string]int),
		out:       os.Stdout,
		lookupEnv: os.LookupEnv,
	}
	for _, f := range options {
		f(r)
	}
	return r
}

// WithOutput redirects help, version, and diagnostic text.  The
// default is os.Stdout.
func WithOutput(w io.Writer) RegistryFuncArg {
	return func(r *Registry) {
		r.out = w
	}
}

// WithColor forces colored diagnostics on or off.  By default they are
// colored only when the output is a terminal.
func WithColor(on bool) RegistryFuncArg {
	return func(r *Registry) {
		r.color = pointer.ToBool(on)
	}
}

// WithProgramName replaces the executable path shown in the usage line.
func WithProgramName(name string) RegistryFuncArg {
	return func(r *Registry) {
		r.program = name
	}
}

// WithVersionText is the same as calling SetVersionText.
func WithVersionText(text string) RegistryFuncArg {
	return func(r *Registry) {
		r.SetVersionText(text)
	}
}

// WithStrictAliases makes Parse fail with a programmer error when two
// parameters share an alias.  Without it, the parameter registered
// first wins the alias.
func WithStrictAliases() RegistryFuncArg {
	return func(r *Registry) {
		r.strictAliases = true
	}
}

// WithCollectAll makes Parse keep going after unknown tokens and bad
// values so that every problem is reported at once.  Help and version
// still stop parsing immediately.
func WithCollectAll() RegistryFuncArg {
	return func(r *Registry) {
		r.collectAll = true
	}
}

// WithValidate replaces the default go-playground validator used for
// Rule and for models given to Request.
func WithValidate(v Validate) RegistryFuncArg {
	return func(r *Registry) {
		r.validator = v
	}
}

// OnParsed is called after a successful Parse, with the Registry
// available for injection.
//
//	cmdpro.OnParsed(func(r *cmdpro.Registry) {
//		...
//	})
func OnParsed(chain ...interface{}) RegistryFuncArg {
	return func(r *Registry) {
		err := nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-parsed", chain...).Bind(&r.onParsed, nil)
		if err != nil {
			r.setDelayedErr(commonerrors.ProgrammerError(errors.Wrap(err, "OnParsed")))
		}
	}
}

func (r *Registry) setDelayedErr(err error) {
	if r.delayedErr == nil {
		r.delayedErr = err
	}
}

// Register adds a parameter.  Beyond the aliases given, "/name" and
// "--name" are always added.  The returned handle reflects the default
// until Parse runs and the parsed value after.
//
// Registering the same name twice replaces the earlier parameter: its
// handle is no longer updated by Parse.
func (r *Registry) Register(
	name string,
	typ ParameterType,
	allowEmpty bool,
	def Value,
	description string,
	aliases ...string,
) *Parameter {
	opts := []ParameterOpt{
		Default(def),
		Description(description),
		Aliases(aliases...),
	}
	if allowEmpty {
		opts = append(opts, Optional(def))
	}
	return r.Declare(name, typ, opts...)
}

// RegisterSimple adds a required parameter with no default and only the
// automatic aliases.
func (r *Registry) RegisterSimple(name string, typ ParameterType, description string) *Parameter {
	return r.Register(name, typ, false, None(), description)
}

// RegisterCanEmpty adds an optional parameter with only the automatic
// aliases.
func (r *Registry) RegisterCanEmpty(name string, typ ParameterType, def Value, description string) *Parameter {
	return r.Register(name, typ, true, def, description)
}

// Declare is Register with functional options.  Problems with the
// declaration (empty name, default of the wrong type) are reported by
// Parse as programmer errors.
func (r *Registry) Declare(name string, typ ParameterType, opts ...ParameterOpt) *Parameter {
	p := &Parameter{
		name: name,
		typ:  typ,
	}
	for _, f := range opts {
		f(p)
	}
	p.aliases = canonicalAliases(name, p.aliases)
	p.value = p.defaultValue
	p.origin = "default"
	if err := p.check(); err != nil {
		r.setDelayedErr(commonerrors.ProgrammerError(err))
	}
	if r.parsed {
		r.setDelayedErr(commonerrors.ProgrammerError(errors.Errorf("parameter %s registered after Parse", name)))
	}
	if i, ok := r.byName[name]; ok {
		debugf("cmdpro: parameter %s registered again, replacing", name)
		r.params[i] = p
	} else {
		r.byName[name] = len(r.params)
		r.params = append(r.params, p)
	}
	return p
}

// Get returns the current value of a parameter.  The boolean is false
// if no parameter of that name was registered.
func (r *Registry) Get(name string) (Value, bool) {
	p := r.Lookup(name)
	if p == nil {
		return None(), false
	}
	return p.value, true
}

// Lookup returns the parameter registered as name, or nil.
func (r *Registry) Lookup(name string) *Parameter {
	i, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.params[i]
}

// Parameters lists parameters in registration order.
func (r *Registry) Parameters() []*Parameter {
	p := make([]*Parameter, len(r.params))
	copy(p, r.params)
	return p
}

// SetVersionText sets what --version prints.
func (r *Registry) SetVersionText(text string) {
	r.versionText = pointer.ToString(text)
}

// Aborted is true once Parse has stopped because of help, version, or
// any parse error.
func (r *Registry) Aborted() bool { return r.aborted }

// Parsed is true once Parse has been called.
func (r *Registry) Parsed() bool { return r.parsed }

// Snapshot is every parameter's value keyed by name.  Changing the
// map does not change the registry.
func (r *Registry) Snapshot() map[string]Value {
	m := make(map[string]Value, len(r.params))
	for _, p := range r.params {
		m[p.name] = p.value
	}
	return m
}

// ParameterInfo describes one registered parameter.
type ParameterInfo struct {
	Name        string
	Type        ParameterType
	AllowEmpty  bool
	Aliases     []string
	Description string
	Default     Value
	Value       Value
	Rule        string
	EnvVar      string
	ConfigKey   []string
	Origin      string // "default", the alias, or the fallback source
}

// Describe lists every parameter in registration order.  The result
// shares nothing with the registry.
func (r *Registry) Describe() []ParameterInfo {
	info := make([]ParameterInfo, len(r.params))
	for i, p := range r.params {
		info[i] = ParameterInfo{
			Name:        p.name,
			Type:        p.typ,
			AllowEmpty:  p.allowEmpty,
			Aliases:     p.aliases,
			Description: p.description,
			Default:     p.defaultValue,
			Value:       p.value,
			Rule:        p.rule,
			EnvVar:      r.envName(p),
			ConfigKey:   p.configKey,
			Origin:      p.origin,
		}
	}
	return deepcopy.Copy(info).([]ParameterInfo)
}

// match finds the parameter for an alias.  Parameters are searched in
// registration order so the first registered wins a shared alias.
func (r *Registry) match(token string) *Parameter {
	for _, p := range r.params {
		if contains(p.aliases, token) {
			return p
		}
	}
	return nil
}

func (r *Registry) checkAliases() error {
	owner := make(map[string]string)
	for _, p := range r.params {
		for _, alias := range p.aliases {
			if first, ok := owner[alias]; ok && first != p.name {
				if r.strictAliases {
					return commonerrors.ProgrammerError(errors.Errorf(
						"alias %s is used by both %s and %s", alias, first, p.name))
				}
				debugf("cmdpro: alias %s shared by %s and %s, %s wins", alias, first, p.name, first)
				continue
			}
			owner[alias] = p.name
		}
	}
	return nil
}

func (r *Registry) getValidator() Validate {
	if r.validator == nil {
		r.validator = newValidator()
	}
	return r.validator
}
