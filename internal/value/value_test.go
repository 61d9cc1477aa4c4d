package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupType(t *testing.T) {
	t.Run("aliases resolve case-insensitively", func(t *testing.T) {
		for alias, want := range map[string]Type{
			"vector3":    Vector3,
			"Vector3F32": Vector3,
			"vec3":       Vector3,
			"FLOAT":      Float,
			"i32":        Int,
			"uint32":     Uint,
			"matrix4f32": Matrix4,
			"void":       Null,
		} {
			got, ok := LookupType(alias)
			require.True(t, ok, alias)
			require.Equal(t, want, got, alias)
		}
	})

	t.Run("every listed alias resolves back to its type", func(t *testing.T) {
		for typ := Null; typ <= Matrix4; typ++ {
			require.NotEmpty(t, typ.Aliases(), typ.Name())
			for _, a := range typ.Aliases() {
				got, ok := LookupType(a)
				require.True(t, ok, a)
				require.Equal(t, typ, got, a)
			}
		}
	})

	t.Run("unknown alias is rejected", func(t *testing.T) {
		_, ok := LookupType("texture2d")
		require.False(t, ok)
	})

	t.Run("every type spells and counts its components", func(t *testing.T) {
		require.Equal(t, "vec4", Vector4.Spelling())
		require.Equal(t, "mat3", Matrix3.Spelling())
		require.Equal(t, 9, Matrix3.Components())
		require.Equal(t, 0, Null.Components())
		require.Equal(t, "void", Null.Spelling())
		require.Equal(t, "vector2f32", Vector2.Name())
		require.True(t, Float.IsScalar())
	})
}

func TestRender(t *testing.T) {
	t.Run("scalar literals keep their kind", func(t *testing.T) {
		require.Equal(t, "1", NewScalar(Int, int32(1)).Render())
		require.Equal(t, "3u", NewScalar(Uint, uint32(3)).Render())
		require.Equal(t, "1.0", NewScalar(Float, float32(1)).Render())
		require.Equal(t, "0.25", NewScalar(Float, float32(0.25)).Render())
		require.Equal(t, "true", NewScalar(Bool, true).Render())
		require.Equal(t, float32(0.25), NewScalar(Float, float32(0.25)).Scalar())
	})

	t.Run("constructor renders as a call over components", func(t *testing.T) {
		l := NewConstructor(Vector4, []Value{NewDirect("pos"), NewScalar(Int, int32(1))})
		require.Equal(t, "vec4(pos, 1)", l.Render())
		require.Equal(t, Vector4, l.Type())
	})

	t.Run("operator interleaves operands", func(t *testing.T) {
		op, err := NewOperator('*', []Value{
			NewParenthesized(mustOperator(t, '+', NewDirect("a"), NewDirect("b"))),
			NewDirect("c"),
		})
		require.NoError(t, err)
		require.Equal(t, "(a + b) * c", op.Render())
	})

	t.Run("operator skips operands of unknown type", func(t *testing.T) {
		op := mustOperator(t, '+', NewDirect("a"), NewScalar(Float, float32(2)))
		require.Equal(t, Float, op.Type())
		require.Equal(t, Null, mustOperator(t, '-', NewDirect("a"), NewDirect("b")).Type())
	})

	t.Run("operator widens to the widest operand", func(t *testing.T) {
		one := NewScalar(Int, int32(1))
		half := NewScalar(Float, float32(0.5))
		vec := NewConstructor(Vector3, []Value{half})
		mat := NewConstructor(Matrix3, []Value{half})

		require.Equal(t, Float, mustOperator(t, '/', one, half).Type())
		require.Equal(t, Float, mustOperator(t, '/', half, one).Type())
		require.Equal(t, Uint, mustOperator(t, '+', one, NewScalar(Uint, uint32(2))).Type())
		require.Equal(t, Vector3, mustOperator(t, '*', one, vec).Type())
		require.Equal(t, Matrix3, mustOperator(t, '*', half, mat).Type())
		require.Equal(t, Vector3, mustOperator(t, '*', mat, vec).Type())
		require.Equal(t, Vector3, mustOperator(t, '*', vec, mat).Type())
	})

	t.Run("operator needs two operands", func(t *testing.T) {
		_, err := NewOperator('+', []Value{NewDirect("a")})
		require.Error(t, err)
		_, err = NewOperator('^', []Value{NewDirect("a"), NewDirect("b")})
		require.Error(t, err)
	})
}

func mustOperator(t *testing.T, op byte, operands ...Value) *Operator {
	t.Helper()
	o, err := NewOperator(op, operands)
	require.NoError(t, err)
	return o
}
