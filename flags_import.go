package cmdpro

import (
	"flag"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

type hasIsBool interface {
	IsBoolFlag() bool
}

type importedFlag struct {
	param *Parameter
	flag  *flag.Flag
}

// ImportFlagSet declares a parameter for each flag defined with the
// standard "flag" package.  This is useful when libraries being used
// define flags.  Boolean flags become Flag parameters and everything
// else becomes a String parameter whose text is handed to the flag's
// Set method after a successful Parse.  All imported parameters are
// optional and get a "-name" alias.
//
// flag.CommandLine is the default FlagSet.
func ImportFlagSet(fs *flag.FlagSet) RegistryFuncArg {
	return func(r *Registry) {
		if fs.Parsed() {
			r.setDelayedErr(commonerrors.ProgrammerError(errors.New("Cannot import FlagSets that have been parsed")))
			return
		}
		fs.VisitAll(func(f *flag.Flag) {
			typ := String
			if hib, ok := f.Value.(hasIsBool); ok && hib.IsBoolFlag() {
				typ = Flag
			}
			p := r.Declare(f.Name, typ,
				Optional(None()),
				Description(f.Usage),
				Aliases("-"+f.Name))
			r.imported = append(r.imported, importedFlag{
				param: p,
				flag:  f,
			})
		})
	}
}

// importFlags sets the values of imported standard flags.
func (r *Registry) importFlags(errs *ParseErrors) {
	for _, imp := range r.imported {
		if imp.param.value.IsNone() {
			continue
		}
		err := imp.flag.Value.Set(imp.param.value.HelpString())
		if err != nil {
			errs.add(&ParseError{
				Kind:      ConversionFailure,
				Parameter: imp.param.name,
				Token:     imp.param.value.HelpString(),
				Err:       errors.Wrapf(err, "Cannot set value for flag '%s'", imp.flag.Name),
			})
		}
	}
}
