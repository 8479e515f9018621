package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	t.Run("Should map kinds to HTTP status", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(ValidationErr("op", "bad")))
		assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundOrForbiddenErr("op", []string{"a"})))
		assert.Equal(t, http.StatusConflict, HTTPStatus(ConflictErr("op", "dup", nil)))
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(StorageErr("op", errors.New("disk"))))
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	})

	t.Run("Should find the kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NotFoundOrForbiddenErr("deleteOptions", []string{"B"}))
		ae, ok := As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"B"}, ae.IDs)
		assert.Contains(t, err.Error(), "B")
		assert.True(t, Is(err, NotFoundOrForbidden))
	})

	t.Run("Should treat conflict and storage as persistence errors", func(t *testing.T) {
		assert.True(t, IsPersistence(ConflictErr("createOption", "dup", nil)))
		assert.True(t, IsPersistence(StorageErr("createOption", errors.New("x"))))
		assert.False(t, IsPersistence(ValidationErr("createOption", "x")))
	})

	t.Run("Should hide storage details from the public message", func(t *testing.T) {
		msg := PublicMessage(StorageErr("listOptions", errors.New("no such table: options")))
		assert.NotContains(t, msg, "no such table")
		assert.Equal(t, "name is required", PublicMessage(ValidationErr("createOption", "name is required")))
	})

	t.Run("Should return nil when wrapping a nil storage error", func(t *testing.T) {
		assert.Nil(t, StorageErr("op", nil))
	})
}
