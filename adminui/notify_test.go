package adminui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"productoptions/adminui"
)

func TestChanNotifier(t *testing.T) {
	t.Run("Should drop notifications when the channel is full", func(t *testing.T) {
		n := adminui.NewChanNotifier(1, quietLogger())
		n.Notify(adminui.Notification{Level: adminui.LevelInfo, Message: "first"})
		n.Notify(adminui.Notification{Level: adminui.LevelError, Message: "second"})

		assert.Len(t, n.C, 1)
		assert.Equal(t, "first", (<-n.C).Message)
	})

	t.Run("Should call the wrapped function", func(t *testing.T) {
		var got []adminui.Notification
		f := adminui.NotifierFunc(func(x adminui.Notification) { got = append(got, x) })
		f.Notify(adminui.Notification{Message: "hi"})
		assert.Len(t, got, 1)
	})
}
