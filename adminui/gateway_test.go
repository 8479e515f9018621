package adminui_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productoptions/adminui"
	"productoptions/configs"
	"productoptions/pkg/uioption"
	"productoptions/routes"
	"productoptions/utils"
)

const (
	testSecret = "test-secret"
	testShop   = "demo.myshopify.com"
)

type recorder struct {
	mu  sync.Mutex
	got []adminui.Notification
}

func (r *recorder) Notify(n adminui.Notification) {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
}

func (r *recorder) last() adminui.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return adminui.Notification{}
	}
	return r.got[len(r.got)-1]
}

type harness struct {
	store   *adminui.Store
	gateway *adminui.Gateway
	notes   *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := configs.OpenMemoryDB()
	require.NoError(t, err)
	cfg := &configs.Config{JWTSecret: testSecret}
	srv := httptest.NewServer(routes.NewRouter(db, cfg, quietLogger()))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return newHarnessAt(t, srv.URL)
}

func newHarnessAt(t *testing.T, url string) *harness {
	t.Helper()
	tok, err := utils.GenerateToken(testShop, testSecret, time.Hour)
	require.NoError(t, err)
	h := &harness{store: adminui.NewStore(quietLogger()), notes: &recorder{}}
	h.gateway = adminui.NewGateway(url, tok, h.store,
		adminui.WithNotifier(h.notes),
		adminui.WithLogger(quietLogger()),
		adminui.WithTimeout(5*time.Second),
	)
	return h
}

func TestGatewayAddOption(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace the temporary option with the saved one", func(t *testing.T) {
		h := newHarness(t)

		saved, err := h.gateway.AddOption(ctx, "Size", []string{"S", "M", "L"}, "")
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.NotContains(t, saved.ID, "temp-")
		assert.Equal(t, "text", saved.Type)

		opts := h.store.Options()
		require.Len(t, opts, 1)
		assert.Equal(t, saved.ID, opts[0].ID)
		assert.Equal(t, 3, checkedCount(opts[0]))
		assert.Equal(t, adminui.LevelInfo, h.notes.last().Level)
		assert.Empty(t, h.gateway.Pending())
	})

	t.Run("Should roll back and notify when the server rejects the option", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.gateway.AddOption(ctx, "Size", []string{"S"}, "")
		require.NoError(t, err)

		_, err = h.gateway.AddOption(ctx, "Size", []string{"M"}, "")
		var se *adminui.SubmissionError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusConflict, se.Status)

		assert.Equal(t, 1, h.store.Len())
		assert.Equal(t, adminui.LevelError, h.notes.last().Level)
	})

	t.Run("Should reject a second add while the first is in flight", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"option":{"id":"o1","name":"Size","type":"text","values":[]}}`))
		}))
		t.Cleanup(srv.Close)
		h := newHarnessAt(t, srv.URL)

		done := make(chan error, 1)
		go func() {
			_, err := h.gateway.AddOption(ctx, "Size", nil, "")
			done <- err
		}()
		require.Eventually(t, func() bool { return h.gateway.IsPending("add") }, time.Second, 5*time.Millisecond)

		_, err := h.gateway.AddOption(ctx, "Color", nil, "")
		assert.ErrorIs(t, err, adminui.ErrSubmissionInFlight)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, []string{"o1"}, ids(h.store.Options()))
	})
}

func TestGatewayEditOption(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep checked states of surviving values", func(t *testing.T) {
		h := newHarness(t)
		saved, err := h.gateway.AddOption(ctx, "Size", []string{"S", "M"}, "")
		require.NoError(t, err)
		h.store.ToggleValueChecked(saved.ID, "S")

		edited, err := h.gateway.EditOption(ctx, saved.ID, "Sizes", []string{"S", "XL"}, "")
		require.NoError(t, err)
		assert.Equal(t, "Sizes", edited.Name)
		require.Len(t, edited.Values, 2)
		assert.Equal(t, "S", edited.Values[0].Name)
		assert.False(t, edited.Values[0].Checked)
		assert.True(t, edited.Values[1].Checked)

		got, _ := h.store.Get(saved.ID)
		assert.Equal(t, edited, got)
	})

	t.Run("Should persist toggled values on save", func(t *testing.T) {
		h := newHarness(t)
		saved, err := h.gateway.AddOption(ctx, "Size", []string{"S", "M"}, "")
		require.NoError(t, err)
		h.store.ToggleAllValues(saved.ID)

		_, err = h.gateway.SaveOption(ctx, saved.ID)
		require.NoError(t, err)

		changed, err := h.gateway.Refresh(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
		got, _ := h.store.Get(saved.ID)
		assert.Equal(t, 0, checkedCount(got))
	})

	t.Run("Should restore the confirmed values when a save fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":"Something went wrong while saving options. Please try again."}`))
		}))
		t.Cleanup(srv.Close)
		h := newHarnessAt(t, srv.URL)
		h.store.Reconcile([]uioption.Option{option("o1", "Size", true, true, true)})
		h.store.ToggleValueChecked("o1", "A")
		h.store.ToggleValueChecked("o1", "B")

		_, err := h.gateway.SaveOption(ctx, "o1")
		var se *adminui.SubmissionError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.Status)

		got, _ := h.store.Get("o1")
		assert.Equal(t, 3, checkedCount(got))
		assert.Equal(t, adminui.LevelError, h.notes.last().Level)
	})

	t.Run("Should revert the option when the server refuses a type change", func(t *testing.T) {
		h := newHarness(t)
		saved, err := h.gateway.AddOption(ctx, "Size", []string{"S"}, "")
		require.NoError(t, err)

		_, err = h.gateway.EditOption(ctx, saved.ID, "Size", []string{"S"}, "color")
		var se *adminui.SubmissionError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Status)

		got, _ := h.store.Get(saved.ID)
		assert.Equal(t, saved, got)
	})

	t.Run("Should refuse unknown and unsaved options", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.gateway.EditOption(ctx, "missing", "x", nil, "")
		assert.ErrorIs(t, err, adminui.ErrUnknownOption)

		h.store.AddOption(option("temp-1", "Draft"))
		_, err = h.gateway.SaveOption(ctx, "temp-1")
		assert.ErrorIs(t, err, adminui.ErrSubmissionInFlight)
	})
}

func TestGatewayDeleteOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete saved options and drop temporary ones locally", func(t *testing.T) {
		h := newHarness(t)
		a, err := h.gateway.AddOption(ctx, "Size", []string{"S"}, "")
		require.NoError(t, err)
		b, err := h.gateway.AddOption(ctx, "Color", []string{"Red"}, "")
		require.NoError(t, err)
		h.store.AddOption(option("temp-9", "Draft"))

		n, err := h.gateway.DeleteOptions(ctx, a.ID, "temp-9")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{b.ID}, ids(h.store.Options()))
	})

	t.Run("Should restore the options when the server rejects the delete", func(t *testing.T) {
		h := newHarness(t)
		a, err := h.gateway.AddOption(ctx, "Size", []string{"S"}, "")
		require.NoError(t, err)
		h.store.AddOption(option("foreign-id", "Ghost"))
		before := ids(h.store.Options())

		_, err = h.gateway.DeleteOptions(ctx, a.ID, "foreign-id")
		var se *adminui.SubmissionError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.Status)
		assert.Equal(t, []string{"foreign-id"}, se.IDs)

		assert.Equal(t, before, ids(h.store.Options()))
		assert.Equal(t, adminui.LevelError, h.notes.last().Level)
	})

	t.Run("Should reject an empty selection", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.gateway.DeleteOptions(ctx)
		var se *adminui.SubmissionError
		assert.ErrorAs(t, err, &se)
	})
}

func TestGatewayRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Should seed the store and report no change on an identical reload", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.gateway.AddOption(ctx, "Size", []string{"S", "M"}, "")
		require.NoError(t, err)

		changed, err := h.gateway.Refresh(ctx)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = h.gateway.Refresh(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("Should fail when the server is unreachable", func(t *testing.T) {
		h := newHarness(t)
		bad := adminui.NewGateway("http://127.0.0.1:1", "nope", h.store, adminui.WithLogger(quietLogger()), adminui.WithTimeout(time.Second))
		_, err := bad.Refresh(ctx)
		assert.Error(t, err)
	})
}
