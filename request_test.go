package cmdpro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestOptions struct {
	Path    string   `cmd:"path,alias=-p,path" help:"file to read"`
	Retries int      `cmd:"retries,empty" default:"3"`
	Verbose bool     `cmd:"verbose,alias=-v,flag,empty"`
	Port    int      `cmd:"port,alias=-P" validate:"gte=1,lte=65535"`
	Ratio   *float64 `cmd:"ratio,empty,env=TEST_RATIO"`
	Color   string   `cmd:"color,empty" validate:"omitempty,oneof=red green"`
	Skipped string   `cmd:"-"`
	Plain   string
}

func TestRequest(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		env   map[string]string
		want  requestOptions
		kinds []Kind
	}{
		{
			name: "everything",
			args: []string{"-p", "/tmp/x", "--retries", "5", "-v", "-P", "80", "--color", "red"},
			env:  map[string]string{"TEST_RATIO": "0.25"},
			want: requestOptions{
				Path:    "/tmp/x",
				Retries: 5,
				Verbose: true,
				Port:    80,
				Ratio:   func() *float64 { f := 0.25; return &f }(),
				Color:   "red",
			},
		},
		{
			name: "defaults",
			args: []string{"-p", "a", "-P", "1"},
			want: requestOptions{
				Path:    "a",
				Retries: 3,
				Port:    1,
			},
		},
		{
			name:  "struct validation",
			args:  []string{"-p", "a", "-P", "70000"},
			kinds: []Kind{ValidationFailure},
		},
		{
			name:  "oneof validation",
			args:  []string{"-p", "a", "-P", "1", "--color", "blue"},
			kinds: []Kind{ValidationFailure},
		},
		{
			name:  "required field",
			args:  []string{"-P", "1"},
			kinds: []Kind{MissingRequiredParameter},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := quietRegistry(fakeEnv(tc.env))
			var got requestOptions
			require.NoError(t, r.Request(&got))
			err := r.Parse(tc.args)
			if tc.kinds != nil {
				assert.Equal(t, tc.kinds, parseKinds(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequestDeclaresParameters(t *testing.T) {
	r, _ := quietRegistry()
	var opts requestOptions
	require.NoError(t, r.Request(&opts))

	names := make([]string, 0, 6)
	for _, p := range r.Parameters() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"path", "retries", "verbose", "port", "ratio", "color"}, names)

	path := r.Lookup("path")
	assert.Equal(t, Path, path.Type())
	assert.Equal(t, "file to read", path.Description())
	assert.Equal(t, []string{"-p", "/path", "--path"}, path.Aliases())
	assert.False(t, path.AllowEmpty())

	retries := r.Lookup("retries")
	assert.Equal(t, Integer, retries.Type())
	assert.True(t, retries.AllowEmpty())
	assert.Equal(t, IntValue(3), retries.Default())

	assert.Equal(t, Flag, r.Lookup("verbose").Type())
	assert.Equal(t, Float, r.Lookup("ratio").Type())
}

func TestRequestBadModels(t *testing.T) {
	cases := []struct {
		name  string
		model interface{}
	}{
		{name: "nil", model: nil},
		{name: "not a pointer", model: requestOptions{}},
		{name: "pointer to int", model: new(int)},
		{name: "unsupported field", model: &struct {
			M map[string]int `cmd:"m"`
		}{}},
		{name: "path on int", model: &struct {
			N int `cmd:"n,path"`
		}{}},
		{name: "bad default", model: &struct {
			N int `cmd:"n" default:"many"`
		}{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := quietRegistry()
			assert.Error(t, r.Request(tc.model))
		})
	}
}

func TestRequestNameSameAsOption(t *testing.T) {
	var model struct {
		File  string `cmd:"file,path"`
		Path  string `cmd:"path,path"`
		Flag  bool   `cmd:"flag,flag"`
		Empty string `cmd:"empty,empty"`
		Plain bool   `cmd:"flag2,empty"`
	}
	r, _ := quietRegistry()
	require.NoError(t, r.Request(&model))

	cases := []struct {
		name       string
		typ        ParameterType
		allowEmpty bool
	}{
		{name: "file", typ: Path},
		{name: "path", typ: Path},
		{name: "flag", typ: Flag},
		{name: "empty", typ: String, allowEmpty: true},
		{name: "flag2", typ: Bool, allowEmpty: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := r.Lookup(tc.name)
			require.NotNil(t, p)
			assert.Equal(t, tc.typ, p.Type())
			assert.Equal(t, tc.allowEmpty, p.AllowEmpty())
		})
	}

	require.NoError(t, r.Parse([]string{"--file", "a", "--path", "b", "--flag"}))
	assert.Equal(t, "b", model.Path)
	assert.True(t, model.Flag)
	assert.Empty(t, model.Empty)
}
