package cmdpro

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muir/cmdpro/internal/tomlsource"
	"github.com/muir/commonerrors"
	"github.com/muir/nflex"
	"github.com/pkg/errors"
)

// configSource is the part of nflex.Source that fallbacks use.  TOML
// files are read by tomlsource, which answers the same calls.
type configSource interface {
	Exists(keys ...string) bool
	Type(keys ...string) nflex.NodeType
	GetBool(keys ...string) (bool, error)
	GetInt(keys ...string) (int64, error)
	GetFloat(keys ...string) (float64, error)
	GetString(keys ...string) (string, error)
}

// WithUnmarshalOpts passes through to
// https://pkg.go.dev/github.com/muir/nflex#UnmarshalFile
// when ConfigFile loads a YAML or JSON file.
func WithUnmarshalOpts(opts ...nflex.UnmarshalFileArg) RegistryFuncArg {
	return func(r *Registry) {
		r.unmarshalOpts = opts
	}
}

// WithConfigFS makes ConfigFile read from fsys instead of the local
// filesystem.
func WithConfigFS(fsys fs.FS) RegistryFuncArg {
	return func(r *Registry) {
		r.configFS = fsys
	}
}

// ConfigFile adds a YAML, JSON, or TOML file (chosen by extension) that
// supplies values for parameters given neither on the command line nor
// in the environment.  The value is looked up by parameter name, or by
// ConfigKey, below prefix.  When several files have a value, the file
// added first wins.
func (r *Registry) ConfigFile(path string, prefix ...string) error {
	source, err := r.loadConfig(path, prefix)
	if err != nil {
		return commonerrors.ConfigurationError(errors.Wrap(err, path))
	}
	if source == nil {
		debugf("cmdpro: config file %s has nothing under %v", path, prefix)
		return nil
	}
	r.sources = append(r.sources, source)
	return nil
}

func (r *Registry) loadConfig(path string, prefix []string) (configSource, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		fsys := r.configFS
		if fsys == nil {
			fsys = localFS{}
		}
		t, err := tomlsource.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		if len(prefix) != 0 {
			t = t.Recurse(prefix...)
			if t == nil {
				return nil, nil
			}
		}
		return t, nil
	}
	opts := r.unmarshalOpts
	if r.configFS != nil {
		opts = append([]nflex.UnmarshalFileArg{nflex.WithFS(r.configFS)}, opts...)
	}
	s, err := nflex.UnmarshalFile(path, opts...)
	if err != nil {
		return nil, err
	}
	if len(prefix) != 0 {
		s = s.Recurse(prefix...)
		if s == nil {
			return nil, nil
		}
	}
	return s, nil
}

// localFS reads paths as given, relative or absolute.
type localFS struct{}

func (localFS) Open(name string) (fs.File, error) { return os.Open(name) }

// lookupConfig finds the first source that has keys.
func (r *Registry) lookupConfig(keys []string) configSource {
	for _, s := range r.sources {
		if s.Exists(keys...) {
			return s
		}
	}
	return nil
}

// configText reads a scalar as text that coerce understands.
func configText(s configSource, keys []string) (string, bool, error) {
	switch s.Type(keys...) {
	case nflex.Undefined, nflex.Nil:
		return "", false, nil
	case nflex.Slice, nflex.Map:
		return "", false, errors.Wrapf(nflex.ErrWrongType, "config key %s is not a single value", joinKeys(keys))
	case nflex.Bool:
		b, err := s.GetBool(keys...)
		return strconv.FormatBool(b), true, err
	case nflex.Int:
		i, err := s.GetInt(keys...)
		return strconv.FormatInt(i, 10), true, err
	case nflex.Float:
		f, err := s.GetFloat(keys...)
		return strconv.FormatFloat(f, 'g', -1, 64), true, err
	default:
		text, err := s.GetString(keys...)
		return text, text != "", err
	}
}

// fillFromConfig returns true when parsing must stop.
func (r *Registry) fillFromConfig(errs *ParseErrors) bool {
	if len(r.sources) == 0 {
		return false
	}
	for _, p := range r.params {
		if p.given {
			continue
		}
		keys := p.configKey
		if len(keys) == 0 {
			keys = []string{p.name}
		}
		source := r.lookupConfig(keys)
		if source == nil {
			continue
		}
		text, ok, err := configText(source, keys)
		if err != nil {
			errs.add(&ParseError{
				Kind:      ConversionFailure,
				Parameter: p.name,
				Token:     joinKeys(keys),
				Err:       commonerrors.ConfigurationError(err),
			})
			if r.collectAll {
				continue
			}
			return true
		}
		if !ok {
			continue
		}
		debugf("cmdpro: %s from config key %s", p.name, joinKeys(keys))
		if r.applyText(p, text, "config key "+joinKeys(keys), errs) {
			return true
		}
		p.given = true
	}
	return false
}
