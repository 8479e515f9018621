package adminui

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrInvalidTransition = errors.New("adminui: invalid editor transition")

type ModeKind string

const (
	ModeClosed            ModeKind = "closed"
	ModeAdding            ModeKind = "adding"
	ModeEditing           ModeKind = "editing"
	ModeSelectingProducts ModeKind = "selectingProducts"
)

// Mode is the single open dialog of the page. OptionID is set while editing;
// OptionIDs holds the options being applied while selecting products.
type Mode struct {
	Kind      ModeKind
	OptionID  string
	OptionIDs []string
}

func (m Mode) IsOpen() bool { return m.Kind != ModeClosed && m.Kind != "" }

func (m Mode) String() string {
	if m.Kind == ModeEditing {
		return fmt.Sprintf("editing(%s)", m.OptionID)
	}
	if m.Kind == "" {
		return string(ModeClosed)
	}
	return string(m.Kind)
}

// Editor allows at most one open mode: every open mode is entered from
// closed and left through Close.
type Editor struct {
	mu   sync.Mutex
	mode Mode
}

func NewEditor() *Editor {
	return &Editor{mode: Mode{Kind: ModeClosed}}
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.mode
	m.OptionIDs = slices.Clone(e.mode.OptionIDs)
	return m
}

func (e *Editor) StartAdding() error {
	return e.open(Mode{Kind: ModeAdding})
}

func (e *Editor) StartEditing(optionID string) error {
	if optionID == "" {
		return fmt.Errorf("%w: editing needs an option id", ErrInvalidTransition)
	}
	return e.open(Mode{Kind: ModeEditing, OptionID: optionID})
}

func (e *Editor) StartSelectingProducts(optionIDs ...string) error {
	if len(optionIDs) == 0 {
		return fmt.Errorf("%w: select at least one option to apply", ErrInvalidTransition)
	}
	return e.open(Mode{Kind: ModeSelectingProducts, OptionIDs: slices.Clone(optionIDs)})
}

// Close returns to closed from any mode.
func (e *Editor) Close() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.mode
	e.mode = Mode{Kind: ModeClosed}
	return prev
}

func (e *Editor) open(next Mode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode.IsOpen() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.mode, next)
	}
	e.mode = next
	return nil
}
