package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calumari/pslc/internal/value"
)

var direct = Options{AllowDirect: true}

func TestParse(t *testing.T) {
	t.Run("constructor literal over mixed arguments", func(t *testing.T) {
		v, err := Parse("new vector4f32(pos, 1)", direct)
		require.NoError(t, err)
		lit, ok := v.(*value.Literal)
		require.True(t, ok)
		require.Equal(t, value.Vector4, lit.Type())
		require.Len(t, lit.Components(), 2)
		require.Equal(t, "vec4(pos, 1)", v.Render())
	})

	t.Run("constructor arguments may nest calls and groups", func(t *testing.T) {
		v, err := Parse("new vector3(max(a, b), (c + d), 0.5)", direct)
		require.NoError(t, err)
		require.Equal(t, "vec3(max(a, b), (c + d), 0.5)", v.Render())
	})

	t.Run("scalar constructors", func(t *testing.T) {
		v, err := Parse("new float(x)", direct)
		require.NoError(t, err)
		require.Equal(t, value.Float, v.Type())
		require.Equal(t, "float(x)", v.Render())

		v, err = Parse("new uint(3)", direct)
		require.NoError(t, err)
		require.Equal(t, "uint(3)", v.Render())
	})

	t.Run("constructor with too many or no arguments is fatal", func(t *testing.T) {
		_, err := Parse("new vector2(1, 2, 3)", direct)
		require.ErrorIs(t, err, ErrConstructorArity)
		_, err = Parse("new vector3()", direct)
		require.ErrorIs(t, err, ErrConstructorArity)
		_, err = Parse("new int(1, 2)", direct)
		require.ErrorIs(t, err, ErrConstructorArity)
	})

	t.Run("constructor of an unknown type is fatal", func(t *testing.T) {
		_, err := Parse("new quaternion(1, 2, 3, 4)", direct)
		require.ErrorIs(t, err, ErrUnknownType)
		_, err = Parse("new void(1)", direct)
		require.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("numeric literals try int then uint then float", func(t *testing.T) {
		cases := []struct {
			in   string
			typ  value.Type
			want string
		}{
			{"1", value.Int, "1"},
			{"-7", value.Int, "-7"},
			{"3u", value.Uint, "3u"},
			{"3000000000", value.Uint, "3000000000u"},
			{"0.5", value.Float, "0.5"},
			{"2.0", value.Float, "2.0"},
			{"1.5f", value.Float, "1.5"},
			{"1e-3", value.Float, "0.001"},
			{"true", value.Bool, "true"},
		}
		for _, c := range cases {
			v, err := Parse(c.in, Options{})
			require.NoError(t, err, c.in)
			require.Equal(t, c.typ, v.Type(), c.in)
			require.Equal(t, c.want, v.Render(), c.in)
		}
	})

	t.Run("scalar literals hold the parsed Go value", func(t *testing.T) {
		for in, want := range map[string]any{
			"-7":   int32(-7),
			"3u":   uint32(3),
			"0.5":  float32(0.5),
			"true": true,
		} {
			v, err := Parse(in, Options{})
			require.NoError(t, err, in)
			require.Equal(t, want, v.(*value.Literal).Scalar(), in)
		}
	})

	t.Run("call syntax passes through verbatim", func(t *testing.T) {
		v, err := Parse("texture(albedo, uv)", Options{})
		require.NoError(t, err)
		_, ok := v.(*value.Direct)
		require.True(t, ok)
		require.Equal(t, "texture(albedo, uv)", v.Render())
	})

	t.Run("two calls joined by an operator form a chain", func(t *testing.T) {
		v, err := Parse("f(a) + g(b)", Options{})
		require.NoError(t, err)
		op, ok := v.(*value.Operator)
		require.True(t, ok)
		require.Equal(t, byte('+'), op.Op())
		require.Len(t, op.Operands(), 2)
	})

	t.Run("homogeneous chain keeps every operand", func(t *testing.T) {
		v, err := Parse("a * b * 2.0", direct)
		require.NoError(t, err)
		op := v.(*value.Operator)
		require.Len(t, op.Operands(), 3)
		require.Equal(t, value.Float, v.Type())
		require.Equal(t, "a * b * 2.0", v.Render())
	})

	t.Run("mixed operators without grouping are fatal", func(t *testing.T) {
		_, err := Parse("a + b * c", direct)
		require.ErrorIs(t, err, ErrMixedOperators)
		require.Contains(t, err.Error(), "parentheses")
	})

	t.Run("grouping disambiguates mixed operators", func(t *testing.T) {
		v, err := Parse("(a + b) * c", direct)
		require.NoError(t, err)
		require.Equal(t, "(a + b) * c", v.Render())
		op := v.(*value.Operator)
		_, ok := op.Operands()[0].(*value.Parenthesized)
		require.True(t, ok)
	})

	t.Run("chain takes the widest operand type", func(t *testing.T) {
		cases := []struct {
			in   string
			want value.Type
		}{
			{"1 / 2.0", value.Float},
			{"2 * new vector3(1.0)", value.Vector3},
			{"3u + 1", value.Uint},
			{"m * new vector4(p, 1.0)", value.Vector4},
			{"new matrix4(1.0) * 2.0", value.Matrix4},
			{"(1 + 2) * new vector2(0.5)", value.Vector2},
			{"new matrix3(1.0) + new matrix3(x)", value.Matrix3},
		}
		for _, c := range cases {
			v, err := Parse(c.in, direct)
			require.NoError(t, err, c.in)
			require.Equal(t, c.want, v.Type(), c.in)
		}
	})

	t.Run("group keeps the type of its contents", func(t *testing.T) {
		v, err := Parse("(1 + 2.5)", direct)
		require.NoError(t, err)
		p := v.(*value.Parenthesized)
		require.Equal(t, value.Float, p.Type())
		require.Equal(t, "1 + 2.5", p.Inner().Render())
	})

	t.Run("fully parenthesized expression", func(t *testing.T) {
		v, err := Parse("(a - b)", direct)
		require.NoError(t, err)
		_, ok := v.(*value.Parenthesized)
		require.True(t, ok)
		require.Equal(t, "(a - b)", v.Render())
	})

	t.Run("mixed operators inside a group are still fatal", func(t *testing.T) {
		_, err := Parse("(a - b / c) * d", direct)
		require.ErrorIs(t, err, ErrMixedOperators)
	})

	t.Run("unary signs and exponents are not split points", func(t *testing.T) {
		v, err := Parse("-a * b", direct)
		require.NoError(t, err)
		require.Len(t, v.(*value.Operator).Operands(), 2)

		v, err = Parse("x * 1e-5", direct)
		require.NoError(t, err)
		require.Equal(t, "x * 1e-05", v.Render())

		v, err = Parse("a * -1", direct)
		require.NoError(t, err)
		require.Equal(t, "a * -1", v.Render())
	})

	t.Run("bare identifiers need AllowDirect", func(t *testing.T) {
		v, err := Parse("normal.xyz", direct)
		require.NoError(t, err)
		require.Equal(t, value.Null, v.Type())
		require.Equal(t, "normal.xyz", v.Render())

		_, err = Parse("normal.xyz", Options{})
		require.ErrorIs(t, err, ErrUnrecognized)
	})

	t.Run("words that ParseFloat accepts stay identifiers", func(t *testing.T) {
		v, err := Parse("inf", direct)
		require.NoError(t, err)
		_, ok := v.(*value.Direct)
		require.True(t, ok)
	})

	t.Run("dangling operator is malformed", func(t *testing.T) {
		_, err := Parse("a *", direct)
		require.ErrorIs(t, err, ErrMalformed)
		_, err = Parse("   ", direct)
		require.ErrorIs(t, err, ErrMalformed)
	})
}
