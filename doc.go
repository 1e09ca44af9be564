/*
Package cmdpro parses command lines against a registry of named,
typed parameters.

Start with NewRegistry().  Use functional args to control output,
alias handling, error collection, and fallback sources.  Register
parameters with Register(), RegisterSimple(), RegisterCanEmpty(), or
Declare().  Each registration returns a *Parameter handle that can be
read at any time: before parsing it holds the default, after parsing
the parsed value.

Once that's done, call ParseCommandLine() to parse os.Args and exit on
any problem, or Parse() to get the problems back as an error.

	r := cmdpro.NewRegistry()
	path := r.Register("path", cmdpro.Path, false, cmdpro.None(), "file path", "-p")
	value := r.Register("value", cmdpro.Integer, false, cmdpro.None(), "value", "-v")
	r.ParseCommandLine()
	p, _ := path.PathValue()
	v, _ := value.IntValue()

That accepts any of:

	prog --path ./hello.txt --value 3
	prog -p ./hello.txt -v 3
	prog /path ./hello.txt /value 3

Every parameter named X gets the aliases "/X" and "--X" in addition
to any given at registration.  Parameter types are Flag (presence
only), Integer, Float, Path, String, and Bool.  Every type but Flag
consumes exactly one following token as its value.

The tokens "--help", "--h", "--version", and "--v" are reserved: they
print the help or version text and stop parsing.

There is no short-option clustering, no "--name=value" form, no
repeated or multi-valued parameters, and no subcommands.  A later
occurrence of an alias overwrites the earlier value.

Parameters that are not given on the command line can be filled from
environment variables (WithEnvPrefix, EnvVar) and from YAML, JSON, or
TOML configuration files (ConfigFile).  The command line wins over the
environment, which wins over configuration files, which win over the
declared default.

Struct fields can be declared as parameters with Request:

	type Options struct {
		Path    string `cmd:"path,alias=-p,path" help:"file to read"`
		Verbose bool   `cmd:"verbose,flag,empty"`
	}

Debug logging of the parse is compiled in with the debugCmdpro build tag.
*/
package cmdpro
