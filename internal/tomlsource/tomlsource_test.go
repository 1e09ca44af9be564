package tomlsource

import (
	"embed"
	"testing"

	"github.com/muir/nflex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata
var content embed.FS

func load(t *testing.T) *Source {
	s, err := ReadFile(content, "testdata/app.toml")
	require.NoError(t, err, "read app.toml")
	return s
}

func TestTypes(t *testing.T) {
	s := load(t)
	cases := []struct {
		path []string
		want nflex.NodeType
	}{
		{path: []string{"app", "path"}, want: nflex.String},
		{path: []string{"app", "retries"}, want: nflex.Int},
		{path: []string{"app", "ratio"}, want: nflex.Float},
		{path: []string{"app", "verbose"}, want: nflex.Bool},
		{path: []string{"app", "tags"}, want: nflex.Slice},
		{path: []string{"app", "tags", "1"}, want: nflex.String},
		{path: []string{"app"}, want: nflex.Map},
		{path: []string{"servers"}, want: nflex.Slice},
		{path: []string{"servers", "1", "name"}, want: nflex.String},
		{path: []string{"app", "missing"}, want: nflex.Undefined},
		{path: []string{"app", "tags", "2"}, want: nflex.Undefined},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, s.Type(tc.path...), "type of %v", tc.path)
		assert.Equalf(t, tc.want != nflex.Undefined, s.Exists(tc.path...), "exists %v", tc.path)
	}
}

func TestGetters(t *testing.T) {
	s := load(t)

	str, err := s.GetString("app", "path")
	require.NoError(t, err)
	assert.Equal(t, "/opt/app", str)
	i, err := s.GetInt("app", "retries")
	require.NoError(t, err)
	assert.Equal(t, int64(11), i)
	f, err := s.GetFloat("app", "ratio")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
	f, err = s.GetFloat("app", "retries")
	require.NoError(t, err)
	assert.Equal(t, 11.0, f)
	b, err := s.GetBool("app", "verbose")
	require.NoError(t, err)
	assert.True(t, b)
	str, err = s.GetString("app", "started")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:00:00Z", str)
	str, err = s.GetString("app", "day")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", str)
	str, err = s.GetString("servers", "0", "name")
	require.NoError(t, err)
	assert.Equal(t, "alpha", str)

	_, err = s.GetString("app", "retries")
	assert.ErrorIs(t, err, nflex.ErrWrongType)
	_, err = s.GetInt("app", "path")
	assert.ErrorIs(t, err, nflex.ErrWrongType)
	_, err = s.GetBool("nope")
	assert.ErrorIs(t, err, nflex.ErrDoesNotExist)
}

func TestRecurse(t *testing.T) {
	s := load(t)
	app := s.Recurse("app")
	require.NotNil(t, app)
	i, err := app.GetInt("retries")
	require.NoError(t, err)
	assert.Equal(t, int64(11), i)
	_, err = app.GetInt("nope")
	assert.Contains(t, err.Error(), "[app nope]")

	assert.Nil(t, s.Recurse("app", "path"), "scalar")
	assert.Nil(t, s.Recurse("missing"))
	root := s.Recurse()
	require.NotNil(t, root)
	assert.True(t, root.Exists("only_toml"))
}

func TestUnmarshalError(t *testing.T) {
	_, err := Unmarshal([]byte("a = = b"))
	assert.Error(t, err)
	_, err = ReadFile(content, "testdata/missing.toml")
	assert.Error(t, err)
}
