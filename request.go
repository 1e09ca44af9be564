package cmdpro

import (
	"reflect"
	"strings"

	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Struct tags read by Request.
const (
	cmdTagName     = "cmd"
	helpTagName    = "help"
	defaultTagName = "default"
)

// cmdTag is the parsed "cmd" tag.  Fill skips a bare option that is
// the same word as the name, so setOptions reads them by position.
type cmdTag struct {
	Name    string   `pt:"0"`
	Aliases []string `pt:"alias,split=space"`
	Empty   bool     `pt:"empty"` // may be left unset
	Path    bool     `pt:"path"`  // string field holds a Path
	Flag    bool     `pt:"flag"`  // bool field is a Flag
	Env     string   `pt:"env"`
}

// setOptions reads the bare options that follow the name.
func (ct *cmdTag) setOptions(value string) {
	parts := strings.Split(value, ",")
	for _, opt := range parts[1:] {
		switch opt {
		case "empty":
			ct.Empty = true
		case "path":
			ct.Path = true
		case "flag":
			ct.Flag = true
		}
	}
}

type request struct {
	model    interface{}
	bindings []binding
}

type binding struct {
	param  *Parameter
	index  []int
	setter func(reflect.Value, string) error
}

// Request declares a parameter for each field of model with a "cmd"
// tag.  model must be a non-nil pointer to a struct.  After a
// successful Parse, fields whose parameter has a value are filled in
// and the struct is checked with the registry's Validate (by default
// go-playground/validator, which reads "validate" tags).
//
//	type Options struct {
//		Path    string `cmd:"path,alias=-p,path" help:"file to read"`
//		Retries int    `cmd:"retries,empty" default:"3"`
//		Verbose bool   `cmd:"verbose,alias=-v,flag,empty"`
//		Port    int    `cmd:"port,alias=-P" validate:"gte=1,lte=65535"`
//	}
//
// The tag's first value is the parameter name.  Options:
//
//	alias=...  extra aliases, space separated
//	empty      the parameter may be left unset
//	path       a string field is a Path parameter
//	flag       a bool field is a Flag parameter (presence only)
//	env=NAME   environment variable fallback
//
// Integer and unsigned fields become Integer parameters, floats
// become Float, bools become Bool, strings become String.
func (r *Registry) Request(model interface{}) error {
	v := reflect.ValueOf(model)
	if !v.IsValid() || v.Type().Kind() != reflect.Ptr || v.IsNil() || v.Type().Elem().Kind() != reflect.Struct {
		return commonerrors.ProgrammerError(errors.Errorf(
			"First argument to Request must be a non-nil pointer to a struct, not %T", model))
	}
	req := &request{
		model: model,
	}
	var walkErr error
	reflectutils.WalkStructElements(v.Type().Elem(), func(f reflect.StructField) bool {
		if walkErr != nil {
			return false
		}
		tagSet := reflectutils.SplitTag(f.Tag).Set()
		tag := tagSet.Get(cmdTagName)
		if tag.Tag == "" {
			return true
		}
		var ct cmdTag
		if err := tag.Fill(&ct); err != nil {
			walkErr = commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
			return false
		}
		ct.setOptions(tag.Value)
		if ct.Name == "" || ct.Name == "-" {
			return false
		}
		b, err := r.bindField(f, ct, tagSet)
		if err != nil {
			walkErr = err
			return false
		}
		req.bindings = append(req.bindings, b)
		return false
	})
	if walkErr != nil {
		return walkErr
	}
	r.requests = append(r.requests, req)
	return nil
}

func (r *Registry) bindField(f reflect.StructField, ct cmdTag, tagSet reflectutils.TagSet) (binding, error) {
	nonPointer := reflectutils.NonPointer(f.Type)
	var typ ParameterType
	switch nonPointer.Kind() {
	case reflect.Bool:
		typ = Bool
		if ct.Flag {
			typ = Flag
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		typ = Integer
	case reflect.Float32, reflect.Float64:
		typ = Float
	case reflect.String:
		typ = String
		if ct.Path {
			typ = Path
		}
	default:
		return binding{}, commonerrors.ProgrammerError(errors.Errorf(
			"field %s: %s cannot hold a command-line parameter", f.Name, f.Type))
	}
	if (ct.Flag && typ != Flag) || (ct.Path && typ != Path) {
		return binding{}, commonerrors.ProgrammerError(errors.Errorf(
			"field %s: flag applies to bool fields and path to string fields", f.Name))
	}

	opts := []ParameterOpt{
		Aliases(ct.Aliases...),
		Description(tagSet.Get(helpTagName).Value),
	}
	if ct.Env != "" {
		opts = append(opts, EnvVar(ct.Env))
	}
	def := None()
	if d := tagSet.Get(defaultTagName); d.Tag != "" {
		var err error
		def, err = coerce(typ, d.Value)
		if err != nil {
			return binding{}, commonerrors.ProgrammerError(errors.Wrapf(err, "field %s default", f.Name))
		}
		opts = append(opts, Default(def))
	}
	if ct.Empty {
		opts = append(opts, Optional(def))
	}

	setter, err := reflectutils.MakeStringSetter(f.Type)
	if err != nil {
		return binding{}, commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
	}
	return binding{
		param:  r.Declare(ct.Name, typ, opts...),
		index:  f.Index,
		setter: setter,
	}, nil
}

// fillRequests copies parsed values into Request models and validates
// them.
func (r *Registry) fillRequests(errs *ParseErrors) {
	for _, req := range r.requests {
		v := reflect.ValueOf(req.model).Elem()
		for _, b := range req.bindings {
			if b.param.value.IsNone() {
				continue
			}
			err := b.setter(v.FieldByIndex(b.index), b.param.value.HelpString())
			if err != nil {
				errs.add(&ParseError{
					Kind:      ConversionFailure,
					Parameter: b.param.name,
					Token:     b.param.value.HelpString(),
					Err:       errors.Wrapf(err, "field %s", v.Type().FieldByIndex(b.index).Name),
				})
			}
		}
		if err := r.getValidator().Struct(req.model); err != nil {
			errs.add(&ParseError{
				Kind:      ValidationFailure,
				Parameter: v.Type().String(),
				Err:       err,
			})
		}
	}
}
