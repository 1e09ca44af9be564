package cmdpro

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ParameterType controls how the token following an alias is consumed
// and converted.
type ParameterType int

const (
	Flag    ParameterType = iota // presence only, no value token
	Integer                      // int64
	Float                        // float64
	Path                         // filesystem path, kept verbatim
	String                       // kept verbatim
	Bool                         // exactly "true" or "false"
)

func (t ParameterType) String() string {
	switch t {
	case Flag:
		return "flag"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Path:
		return "path"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
}

func (t ParameterType) valid() bool {
	return t >= Flag && t <= Bool
}

// takesValue is true for every type that consumes the following token.
func (t ParameterType) takesValue() bool {
	return t != Flag
}

// Value is the current or default value of a parameter.  The zero
// Value is unset and is the same as None().  A set Value always
// carries exactly one ParameterType.
type Value struct {
	set bool
	typ ParameterType
	i   int64
	f   float64
	s   string // Path and String payloads
	b   bool
}

func None() Value                { return Value{} }
func FlagValue() Value           { return Value{set: true, typ: Flag} }
func IntValue(i int64) Value     { return Value{set: true, typ: Integer, i: i} }
func FloatValue(f float64) Value { return Value{set: true, typ: Float, f: f} }
func PathValue(p string) Value   { return Value{set: true, typ: Path, s: p} }
func StringValue(s string) Value { return Value{set: true, typ: String, s: s} }
func BoolValue(b bool) Value     { return Value{set: true, typ: Bool, b: b} }

// IsNone is true for an unset value.
func (v Value) IsNone() bool { return !v.set }

// Type returns the type tag.  The boolean is false for an unset value.
func (v Value) Type() (ParameterType, bool) {
	if !v.set {
		return 0, false
	}
	return v.typ, true
}

func (v Value) is(t ParameterType) bool {
	return v.set && v.typ == t
}

func (v Value) wrongType(want ParameterType) error {
	return errors.Wrapf(ErrWrongValueType, "%s requested from %s", want, v.describe())
}

func (v Value) Int() (int64, error) {
	if !v.is(Integer) {
		return 0, v.wrongType(Integer)
	}
	return v.i, nil
}

func (v Value) Float() (float64, error) {
	if !v.is(Float) {
		return 0, v.wrongType(Float)
	}
	return v.f, nil
}

func (v Value) Path() (string, error) {
	if !v.is(Path) {
		return "", v.wrongType(Path)
	}
	return v.s, nil
}

// Str returns the payload of a String value.  It is not named String
// so that Value can still satisfy fmt.Stringer.
func (v Value) Str() (string, error) {
	if !v.is(String) {
		return "", v.wrongType(String)
	}
	return v.s, nil
}

func (v Value) Bool() (bool, error) {
	if !v.is(Bool) {
		return false, v.wrongType(Bool)
	}
	return v.b, nil
}

// HelpString renders the value for the DefaultValue column of the
// usage table.  Unset renders as the empty string and a set flag as
// "true".
func (v Value) HelpString() string {
	if !v.set {
		return ""
	}
	switch v.typ {
	case Flag:
		return strconv.FormatBool(true)
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Path, String:
		return v.s
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v Value) describe() string {
	if !v.set {
		return "unset value"
	}
	return v.typ.String() + " value"
}

func (v Value) String() string {
	if !v.set {
		return "None"
	}
	if v.typ == Flag {
		return "Flag"
	}
	return fmt.Sprintf("%s(%s)", v.typ, v.HelpString())
}

// DeepCopy satisfies github.com/mohae/deepcopy.Interface; the
// payload fields are unexported so deepcopy cannot reach them.
func (v Value) DeepCopy() interface{} {
	return v
}

// interfaceValue is the payload as a plain Go value; nil when unset.
func (v Value) interfaceValue() interface{} {
	if !v.set {
		return nil
	}
	switch v.typ {
	case Flag:
		return true
	case Integer:
		return v.i
	case Float:
		return v.f
	case Path, String:
		return v.s
	case Bool:
		return v.b
	default:
		return nil
	}
}
