package cmdpro

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

type setter func(reflect.Value, string) error

var conversionTypes = map[ParameterType]reflect.Type{
	Integer: reflect.TypeOf(int64(0)),
	Float:   reflect.TypeOf(float64(0)),
	Bool:    reflect.TypeOf(false),
}

var setters = func() map[ParameterType]setter {
	m := make(map[ParameterType]setter, len(conversionTypes))
	for pt, t := range conversionTypes {
		s, err := reflectutils.MakeStringSetter(t)
		if err != nil {
			panic(commonerrors.LibraryError(errors.Wrapf(err, "setter for %s", pt)))
		}
		m[pt] = s
	}
	return m
}()

var (
	boolSyntax    = regexp.MustCompile(`^(?:true|false)$`)
	integerSyntax = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatSyntax   = regexp.MustCompile(`^[+-]?(?:(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|(?i:inf|infinity|nan))$`)
)

// checkSyntax rejects forms the string setters would accept but that
// are not plain decimal text: "1" or "T" for a bool, underscores,
// base prefixes, and hexadecimal floats.
func checkSyntax(t ParameterType, token string) error {
	var re *regexp.Regexp
	switch t {
	case Bool:
		re = boolSyntax
	case Integer:
		re = integerSyntax
	case Float:
		re = floatSyntax
	default:
		return nil
	}
	if !re.MatchString(token) {
		return errors.Errorf("not a valid %s", t)
	}
	return nil
}

// trimZeros drops leading zeros so that "010" is ten and not read
// with a base prefix.
func trimZeros(token string) string {
	sign := ""
	if token[0] == '+' || token[0] == '-' {
		sign, token = token[:1], token[1:]
	}
	token = strings.TrimLeft(token, "0")
	if token == "" {
		token = "0"
	}
	return sign + token
}

// coerce converts a non-empty token to a value of type t.  Path and
// String are taken verbatim.  A Flag token is read as a boolean: true
// sets the flag and false leaves it unset.
func coerce(t ParameterType, token string) (Value, error) {
	switch t {
	case Path:
		return PathValue(token), nil
	case String:
		return StringValue(token), nil
	case Flag:
		b, err := coerce(Bool, token)
		if err != nil {
			return None(), err
		}
		if b.b {
			return FlagValue(), nil
		}
		return None(), nil
	}
	if err := checkSyntax(t, token); err != nil {
		return None(), err
	}
	if t == Integer {
		token = trimZeros(token)
	}
	s, ok := setters[t]
	if !ok {
		return None(), commonerrors.LibraryError(errors.Errorf("no conversion for %s", t))
	}
	target := reflect.New(conversionTypes[t]).Elem()
	if err := s(target, token); err != nil {
		return None(), errors.Wrapf(err, "not a valid %s", t)
	}
	switch t {
	case Integer:
		return IntValue(target.Int()), nil
	case Float:
		return FloatValue(target.Float()), nil
	default:
		return BoolValue(target.Bool()), nil
	}
}
