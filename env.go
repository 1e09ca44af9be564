package cmdpro

import (
	"strings"
)

// WithEnvPrefix lets parameters that are not given on the command line
// be filled from environment variables named prefix + the upper-cased
// parameter name, with "-" and "." turned into "_".  For example,
// with prefix "APP_", parameter "log-level" reads APP_LOG_LEVEL.
func WithEnvPrefix(prefix string) RegistryFuncArg {
	return func(r *Registry) {
		r.envPrefix = prefix
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) RegistryFuncArg {
	return func(r *Registry) {
		r.lookupEnv = lookup
	}
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

func (r *Registry) envName(p *Parameter) string {
	if p.envVar != "" {
		return p.envVar
	}
	if r.envPrefix == "" {
		return ""
	}
	return r.envPrefix + strings.ToUpper(envReplacer.Replace(p.name))
}

// fillFromEnv returns true when parsing must stop.
func (r *Registry) fillFromEnv(errs *ParseErrors) bool {
	for _, p := range r.params {
		if p.given {
			continue
		}
		name := r.envName(p)
		if name == "" {
			continue
		}
		text, ok := r.lookupEnv(name)
		if !ok || text == "" {
			continue
		}
		debugf("cmdpro: %s from environment variable %s", p.name, name)
		if r.applyText(p, text, "environment variable "+name, errs) {
			return true
		}
		p.given = true
	}
	return false
}
