package cmdpro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		typ   ParameterType
		token string
		want  Value
	}{
		{typ: Integer, token: "+5", want: IntValue(5)},
		{typ: Integer, token: "010", want: IntValue(10)},
		{typ: Integer, token: "-007", want: IntValue(-7)},
		{typ: Integer, token: "000", want: IntValue(0)},
		{typ: Float, token: ".5", want: FloatValue(0.5)},
		{typ: Float, token: "5.", want: FloatValue(5)},
		{typ: Float, token: "-1e3", want: FloatValue(-1000)},
		{typ: Float, token: "2.5E-1", want: FloatValue(0.25)},
		{typ: Float, token: "7", want: FloatValue(7)},
		{typ: Bool, token: "true", want: BoolValue(true)},
		{typ: Bool, token: "false", want: BoolValue(false)},
		{typ: Flag, token: "true", want: FlagValue()},
		{typ: Flag, token: "false", want: None()},
		{typ: String, token: "0x10", want: StringValue("0x10")},
		{typ: Path, token: "./a b", want: PathValue("./a b")},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String()+" "+tc.token, func(t *testing.T) {
			got, err := coerce(tc.typ, tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoerceSpecialFloats(t *testing.T) {
	for _, token := range []string{"inf", "+Infinity", "-INF"} {
		v, err := coerce(Float, token)
		require.NoError(t, err, token)
		f, _ := v.Float()
		assert.True(t, math.IsInf(f, 0), token)
	}
	v, err := coerce(Float, "NaN")
	require.NoError(t, err)
	f, _ := v.Float()
	assert.True(t, math.IsNaN(f))
}

func TestCoerceRejects(t *testing.T) {
	cases := []struct {
		typ   ParameterType
		token string
	}{
		{typ: Bool, token: "1"},
		{typ: Bool, token: "0"},
		{typ: Bool, token: "t"},
		{typ: Bool, token: "F"},
		{typ: Bool, token: "True"},
		{typ: Bool, token: "FALSE"},
		{typ: Flag, token: "1"},
		{typ: Float, token: "0x1p-2"},
		{typ: Float, token: "0X1P-2"},
		{typ: Float, token: "1_0.5"},
		{typ: Float, token: "."},
		{typ: Float, token: "1e"},
		{typ: Float, token: " 1"},
		{typ: Integer, token: "1_000"},
		{typ: Integer, token: "0x10"},
		{typ: Integer, token: "0b1"},
		{typ: Integer, token: "0o7"},
		{typ: Integer, token: "1.0"},
		{typ: Integer, token: "-"},
		{typ: Integer, token: "99999999999999999999"},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String()+" "+tc.token, func(t *testing.T) {
			_, err := coerce(tc.typ, tc.token)
			assert.Error(t, err)
		})
	}
}
