// Package tomlsource reads TOML configuration files and answers the same
// lookups as github.com/muir/nflex sources, so that TOML files can sit
// beside YAML and JSON files as parameter fallbacks.
package tomlsource

import (
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/muir/nflex"
	"github.com/pkg/errors"
)

// Source is a decoded TOML document, or a table within one.
type Source struct {
	value      interface{}
	pathToHere []string
}

// ReadFile decodes name from fsys.
func ReadFile(fsys fs.FS, name string) (*Source, error) {
	byts, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	s, err := Unmarshal(byts)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return s, nil
}

func Unmarshal(data []byte) (*Source, error) {
	var m map[string]interface{}
	_, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(err, "toml")
	}
	return &Source{
		value: m,
	}, nil
}

var indexRE = regexp.MustCompile(`^\d+$`)

func (s *Source) lookup(keys []string) (interface{}, bool) {
	v := s.value
	for _, key := range keys {
		switch n := v.(type) {
		case map[string]interface{}:
			var ok bool
			v, ok = n[key]
			if !ok {
				return nil, false
			}
		case []map[string]interface{}:
			i, ok := index(key, len(n))
			if !ok {
				return nil, false
			}
			v = n[i]
		case []interface{}:
			i, ok := index(key, len(n))
			if !ok {
				return nil, false
			}
			v = n[i]
		default:
			return nil, false
		}
	}
	return v, true
}

func index(key string, length int) (int, bool) {
	if !indexRE.MatchString(key) {
		return 0, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i >= length {
		return 0, false
	}
	return i, true
}

func (s *Source) path(keys []string) []string {
	p := make([]string, 0, len(s.pathToHere)+len(keys))
	return append(append(p, s.pathToHere...), keys...)
}

func (s *Source) Exists(keys ...string) bool {
	_, ok := s.lookup(keys)
	return ok
}

// Recurse returns the table or array at keys, or nil if there is none.
func (s *Source) Recurse(keys ...string) *Source {
	v, ok := s.lookup(keys)
	if !ok {
		return nil
	}
	switch v.(type) {
	case map[string]interface{}, []map[string]interface{}, []interface{}:
	default:
		return nil
	}
	return &Source{
		value:      v,
		pathToHere: s.path(keys),
	}
}

func (s *Source) Type(keys ...string) nflex.NodeType {
	v, ok := s.lookup(keys)
	if !ok {
		return nflex.Undefined
	}
	switch v.(type) {
	case nil:
		return nflex.Nil
	case map[string]interface{}:
		return nflex.Map
	case []interface{}, []map[string]interface{}:
		return nflex.Slice
	case int64:
		return nflex.Int
	case float64:
		return nflex.Float
	case bool:
		return nflex.Bool
	default:
		return nflex.String
	}
}

func (s *Source) get(keys []string) (interface{}, error) {
	v, ok := s.lookup(keys)
	if !ok {
		return nil, errors.Wrapf(nflex.ErrDoesNotExist, "key %v does not exist", s.path(keys))
	}
	return v, nil
}

func (s *Source) wrongType(keys []string, v interface{}, want string) error {
	return errors.Wrapf(nflex.ErrWrongType, "key %v is a %T (not %s)", s.path(keys), v, want)
}

func (s *Source) GetBool(keys ...string) (bool, error) {
	v, err := s.get(keys)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, s.wrongType(keys, v, "a bool")
	}
	return b, nil
}

func (s *Source) GetInt(keys ...string) (int64, error) {
	v, err := s.get(keys)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, s.wrongType(keys, v, "an integer")
	}
	return i, nil
}

func (s *Source) GetFloat(keys ...string) (float64, error) {
	v, err := s.get(keys)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, s.wrongType(keys, v, "a number")
	}
}

// GetString returns strings as they are and dates and times in their
// TOML text form.
func (s *Source) GetString(keys ...string) (string, error) {
	v, err := s.get(keys)
	if err != nil {
		return "", err
	}
	switch n := v.(type) {
	case string:
		return n, nil
	case time.Time:
		return n.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalTime, toml.LocalDateTime
		return n.String(), nil
	default:
		return "", s.wrongType(keys, v, "a string")
	}
}
