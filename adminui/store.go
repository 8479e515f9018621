package adminui

import (
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"productoptions/pkg/uioption"
)

// Store holds the ordered options of the editing session. Every mutation runs
// to completion under the lock, so a UI event loop and gateway callbacks can
// share one Store. Malformed calls are logged and ignored, never returned as
// errors.
type Store struct {
	mu      sync.Mutex
	options []uioption.Option
	seeded  []uioption.Option
	hasSeed bool
	// last server-confirmed copy per option id
	confirmed map[string]uioption.Option
	log       *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		confirmed: map[string]uioption.Option{},
		log:       logger.With("component", "option_store"),
	}
}

// Reconcile replaces the store contents with loaded when it differs from the
// previous loader result. An identical result leaves local edits alone.
func (s *Store) Reconcile(loaded []uioption.Option) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasSeed && reflect.DeepEqual(s.seeded, loaded) {
		return false
	}
	s.seeded = cloneAll(loaded)
	s.options = cloneAll(loaded)
	s.hasSeed = true
	clear(s.confirmed)
	for _, o := range loaded {
		s.confirmed[o.ID] = uioption.Clone(o)
	}
	return true
}

// Confirmed returns the option as the server last reported it, without local
// edits made since.
func (s *Store) Confirmed(id string) (uioption.Option, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.confirmed[id]
	if !ok {
		return uioption.Option{}, false
	}
	return uioption.Clone(o), true
}

func (s *Store) Options() []uioption.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.options)
}

func (s *Store) Get(id string) (uioption.Option, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return uioption.Clone(s.options[i]), true
	}
	return uioption.Option{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.options)
}

// ToggleValueChecked flips one value of one option.
func (s *Store) ToggleValueChecked(optionID, valueName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(optionID)
	if i < 0 {
		s.log.Warn("toggleValueChecked: option not found", "option_id", optionID)
		return
	}
	values := s.options[i].Values
	for j := range values {
		if values[j].Name == valueName {
			values[j].Checked = !values[j].Checked
			return
		}
	}
}

// ToggleAllValues checks every value unless all are already checked, in
// which case it unchecks them all.
func (s *Store) ToggleAllValues(optionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(optionID)
	if i < 0 {
		s.log.Warn("toggleAllValues: option not found", "option_id", optionID)
		return
	}
	values := s.options[i].Values
	allChecked := true
	for _, v := range values {
		if !v.Checked {
			allChecked = false
			break
		}
	}
	for j := range values {
		values[j].Checked = !allChecked
	}
}

// AddOption inserts opt, or replaces the entry with the same id.
func (s *Store) AddOption(opt uioption.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opt.ID == "" {
		s.log.Warn("addOption: option without id ignored", "name", opt.Name)
		return
	}
	if i := s.indexOf(opt.ID); i >= 0 {
		s.log.Warn("addOption: option already present, replacing", "option_id", opt.ID)
		s.options[i] = uioption.Clone(opt)
		return
	}
	s.options = append(s.options, uioption.Clone(opt))
}

// UpdateOption replaces the entry with opt's id, appending when there is none.
func (s *Store) UpdateOption(opt uioption.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opt.ID == "" {
		s.log.Warn("updateOption: option without id ignored", "name", opt.Name)
		return
	}
	if i := s.indexOf(opt.ID); i >= 0 {
		s.options[i] = uioption.Clone(opt)
		return
	}
	s.log.Warn("updateOption: option not found, appending", "option_id", opt.ID)
	s.options = append(s.options, uioption.Clone(opt))
}

func (s *Store) RemoveOptions(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		s.log.Warn("removeOptions: no ids given")
		return
	}
	s.options = slices.DeleteFunc(s.options, func(o uioption.Option) bool {
		return slices.Contains(ids, o.ID)
	})
}

// Replace swaps the entry oldID for opt in place, e.g. a temporary option
// for the one the server confirmed. If opt.ID is already present that entry
// is updated and oldID dropped. opt becomes the confirmed copy of its id.
func (s *Store) Replace(oldID string, opt uioption.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opt.ID == "" {
		s.log.Warn("replace: option without id ignored", "old_id", oldID)
		return
	}
	s.confirmed[opt.ID] = uioption.Clone(opt)
	old := s.indexOf(oldID)
	cur := s.indexOf(opt.ID)
	switch {
	case old >= 0 && cur >= 0 && old != cur:
		s.options[cur] = uioption.Clone(opt)
		s.options = slices.Delete(s.options, old, old+1)
	case old >= 0:
		s.options[old] = uioption.Clone(opt)
	case cur >= 0:
		s.options[cur] = uioption.Clone(opt)
	default:
		s.options = append(s.options, uioption.Clone(opt))
	}
}

// Restore puts back the snapshot entries that are missing, at their
// snapshot index.
func (s *Store) Restore(snapshot []uioption.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, opt := range snapshot {
		if s.indexOf(opt.ID) >= 0 {
			continue
		}
		at := min(i, len(s.options))
		s.options = slices.Insert(s.options, at, uioption.Clone(opt))
	}
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.options, func(o uioption.Option) bool { return o.ID == id })
}

func cloneAll(opts []uioption.Option) []uioption.Option {
	out := make([]uioption.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, uioption.Clone(o))
	}
	return out
}
