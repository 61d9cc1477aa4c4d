package preprocess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	t.Run("blank and comment lines are dropped and numbers kept", func(t *testing.T) {
		src := "#output glsl \"330 core\"\n\n// note\n  vertex entrypoint  \r\nend\n"
		lines := Lines(src)
		require.Len(t, lines, 3)
		require.Equal(t, Line{Text: "#output glsl \"330 core\"", Original: "#output glsl \"330 core\"", Number: 1}, lines[0])
		require.Equal(t, "vertex entrypoint", lines[1].Text)
		require.Equal(t, "  vertex entrypoint  ", lines[1].Original)
		require.Equal(t, 4, lines[1].Number)
		require.Equal(t, 5, lines[2].Number)
	})

	t.Run("block comments are removed without shifting line numbers", func(t *testing.T) {
		src := "a = 1 /* one\ntwo\nthree */ b = 2\nc = 3"
		lines := Lines(src)
		require.Len(t, lines, 3)
		require.Equal(t, "a = 1", lines[0].Text)
		require.Equal(t, "b = 2", lines[1].Text)
		require.Equal(t, 3, lines[1].Number)
		require.Equal(t, "c = 3", lines[2].Text)
		require.Equal(t, 4, lines[2].Number)
	})

	t.Run("block comments do not nest", func(t *testing.T) {
		lines := Lines("/* a /* b */ x = 1 */\ny = 2")
		require.Len(t, lines, 2)
		require.Equal(t, "x = 1 */", lines[0].Text)
	})

	t.Run("unterminated block comment swallows the rest", func(t *testing.T) {
		lines := Lines("x = 1\n/* open\ny = 2\nz = 3")
		require.Len(t, lines, 1)
		require.Equal(t, "x = 1", lines[0].Text)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		require.Empty(t, Lines(""))
	})
}
