package cmdpro

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args ...string) *int {
	oldArgs, oldExit := os.Args, exit
	t.Cleanup(func() {
		os.Args, exit = oldArgs, oldExit
	})
	os.Args = append([]string{"prog"}, args...)
	code := -1
	exit = func(c int) { code = c }
	return &code
}

func TestParseCommandLine(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		code     int
		contains []string
		help     int
	}{
		{
			name: "success",
			args: []string{"-n", "1"},
			code: -1,
		},
		{
			name:     "unknown",
			args:     []string{"-n", "1", "--what"},
			code:     ExitAbort,
			contains: []string{"Unknown parameter: --what"},
			help:     1,
		},
		{
			name:     "missing required",
			args:     nil,
			code:     ExitMissingRequired,
			contains: []string{"cmd arg n is not set"},
			help:     1,
		},
		{
			name: "help",
			args: []string{"--help"},
			code: ExitAbort,
			help: 1,
		},
		{
			name:     "version",
			args:     []string{"--version"},
			code:     ExitAbort,
			contains: []string{"v9"},
			help:     1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := withArgs(t, tc.args...)
			r, buf := quietRegistry(WithVersionText("v9"))
			r.Register("n", Integer, false, None(), "", "-n")
			r.ParseCommandLine()
			assert.Equal(t, tc.code, *code)
			for _, s := range tc.contains {
				assert.Contains(t, buf.String(), s)
			}
			assert.Equal(t, tc.help, strings.Count(buf.String(), "USAGE"))
		})
	}
}

func TestReportNonParseError(t *testing.T) {
	r, buf := quietRegistry()
	r.Declare("", String)
	err := r.Parse(nil)
	assert.Equal(t, ExitAbort, r.report(err))
	assert.Contains(t, buf.String(), "parameter name must not be empty")
}
