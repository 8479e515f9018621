package adminui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productoptions/adminui"
)

func TestEditor(t *testing.T) {
	t.Run("Should start closed", func(t *testing.T) {
		e := adminui.NewEditor()
		assert.Equal(t, adminui.ModeClosed, e.Mode().Kind)
		assert.False(t, e.Mode().IsOpen())
	})

	t.Run("Should allow only one open mode at a time", func(t *testing.T) {
		e := adminui.NewEditor()
		require.NoError(t, e.StartAdding())

		assert.ErrorIs(t, e.StartEditing("o1"), adminui.ErrInvalidTransition)
		assert.ErrorIs(t, e.StartSelectingProducts("o1"), adminui.ErrInvalidTransition)
		assert.ErrorIs(t, e.StartAdding(), adminui.ErrInvalidTransition)
		assert.Equal(t, adminui.ModeAdding, e.Mode().Kind)
	})

	t.Run("Should return to closed and report the mode it left", func(t *testing.T) {
		e := adminui.NewEditor()
		require.NoError(t, e.StartEditing("o1"))
		assert.Equal(t, "editing(o1)", e.Mode().String())

		prev := e.Close()
		assert.Equal(t, "o1", prev.OptionID)
		assert.Equal(t, adminui.ModeClosed, e.Mode().Kind)

		require.NoError(t, e.StartSelectingProducts("o1", "o2"))
		assert.Equal(t, []string{"o1", "o2"}, e.Mode().OptionIDs)
	})

	t.Run("Should reject editing without an option and selecting without options", func(t *testing.T) {
		e := adminui.NewEditor()
		assert.ErrorIs(t, e.StartEditing(""), adminui.ErrInvalidTransition)
		assert.ErrorIs(t, e.StartSelectingProducts(), adminui.ErrInvalidTransition)
		assert.False(t, e.Mode().IsOpen())
	})
}
