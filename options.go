package cmdpro

// ParameterOpt is a functional argument for Declare.
type ParameterOpt func(*Parameter)

// Aliases adds tokens that select the parameter in addition to the
// automatic "/name" and "--name".
func Aliases(aliases ...string) ParameterOpt {
	return func(p *Parameter) {
		p.aliases = append(p.aliases, aliases...)
	}
}

// Optional allows the parameter to be left unset and gives it a
// default value (which may be None()).
func Optional(def Value) ParameterOpt {
	return func(p *Parameter) {
		p.allowEmpty = true
		p.defaultValue = def
	}
}

// Default sets the default value without making the parameter
// optional.  A required parameter with a default is always satisfied.
func Default(def Value) ParameterOpt {
	return func(p *Parameter) {
		p.defaultValue = def
	}
}

func Description(description string) ParameterOpt {
	return func(p *Parameter) {
		p.description = description
	}
}

// Rule attaches a go-playground/validator tag, for example
// "gte=1,lte=65535" or "oneof=red green blue".  It is checked against
// the parsed value; unset values are not checked.
func Rule(tag string) ParameterOpt {
	return func(p *Parameter) {
		p.rule = tag
	}
}

// EnvVar names an environment variable that supplies the value when
// the parameter is not given on the command line.  It takes precedence
// over the name derived from WithEnvPrefix.
func EnvVar(name string) ParameterOpt {
	return func(p *Parameter) {
		p.envVar = name
	}
}

// ConfigKey overrides the path used to look the parameter up in
// configuration files.  The default is the parameter name.
func ConfigKey(keys ...string) ParameterOpt {
	return func(p *Parameter) {
		p.configKey = keys
	}
}
