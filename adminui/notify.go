package adminui

import "log/slog"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient message for the merchant.
type Notification struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// ChanNotifier delivers notifications on C. When C is full the notification
// is dropped and logged so that submissions never block on the UI.
type ChanNotifier struct {
	C   chan Notification
	log *slog.Logger
}

func NewChanNotifier(size int, logger *slog.Logger) *ChanNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChanNotifier{C: make(chan Notification, size), log: logger}
}

func (n *ChanNotifier) Notify(x Notification) {
	select {
	case n.C <- x:
	default:
		n.log.Warn("notification dropped", "level", string(x.Level), "message", x.Message)
	}
}

type logNotifier struct{ log *slog.Logger }

func (n logNotifier) Notify(x Notification) {
	n.log.Info("notification", "level", string(x.Level), "message", x.Message)
}
