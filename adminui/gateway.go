package adminui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"productoptions/entity"
	"productoptions/pkg/resp"
	"productoptions/pkg/uioption"
)

const (
	actionAdd    = "Add Option"
	actionEdit   = "Edit Option"
	actionDelete = "Delete Options"

	actionPath = "/app/options"
)

var (
	ErrSubmissionInFlight = errors.New("adminui: submission already in flight")
	ErrUnknownOption      = errors.New("adminui: option not in store")
)

// SubmissionError is a rejection reported by the action endpoint.
type SubmissionError struct {
	Action  string
	Status  int
	Message string
	IDs     []string
	Fields  map[string]string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s rejected (%d): %s", e.Action, e.Status, e.Message)
}

type GatewayOption func(*Gateway)

func WithNotifier(n Notifier) GatewayOption {
	return func(g *Gateway) {
		if n != nil {
			g.notifier = n
		}
	}
}

func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.log = logger
		}
	}
}

func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.client.SetTimeout(d) }
}

// Gateway submits option edits to the action endpoint. Each edit is applied
// to the Store first; the server reply then confirms it or the edit is
// rolled back and a notification is sent. Only one submission per key
// ("add", "edit:<id>", "delete") may be in flight.
type Gateway struct {
	client   *resty.Client
	store    *Store
	notifier Notifier
	log      *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewGateway(baseURL, token string, store *Store, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetAuthToken(token).
			SetTimeout(10 * time.Second),
		store:   store,
		log:     slog.Default(),
		pending: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With("component", "option_gateway")
	if g.notifier == nil {
		g.notifier = logNotifier{log: g.log}
	}
	return g
}

// Pending lists the keys of submissions still waiting for the server.
func (g *Gateway) Pending() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]string, 0, len(g.pending))
	for k := range g.pending {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (g *Gateway) IsPending(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[key]
	return ok
}

// Refresh runs the loader and reconciles the store with its result.
func (g *Gateway) Refresh(ctx context.Context) (bool, error) {
	var out struct {
		Options []entity.Option `json:"options"`
	}
	r, err := g.client.R().SetContext(ctx).SetResult(&out).Get(actionPath)
	if err != nil {
		return false, fmt.Errorf("load options: %w", err)
	}
	if r.IsError() {
		return false, fmt.Errorf("load options: unexpected status %d", r.StatusCode())
	}
	return g.store.Reconcile(uioption.ToUIShape(out.Options)), nil
}

// AddOption shows a temporary option at once and swaps it for the stored
// option when the server confirms.
func (g *Gateway) AddOption(ctx context.Context, name string, valueNames []string, optionType string) (uioption.Option, error) {
	const key = "add"
	if err := g.begin(key); err != nil {
		return uioption.Option{}, err
	}
	defer g.end(key)

	temp := uioption.BuildNewUIOption(name, valueNames, optionType)
	g.store.AddOption(temp)

	out, err := g.send(ctx, actionAdd, map[string]string{
		"actionType": actionAdd,
		"optionSet":  encodeOptionSet(temp),
	})
	if err != nil {
		g.store.RemoveOptions(temp.ID)
		g.fail(actionAdd, err)
		return uioption.Option{}, err
	}
	if out.Option == nil {
		g.store.RemoveOptions(temp.ID)
		err := &SubmissionError{Action: actionAdd, Status: http.StatusOK, Message: "response carried no option"}
		g.fail(actionAdd, err)
		return uioption.Option{}, err
	}

	saved := uioption.FromEntity(*out.Option)
	g.store.Replace(temp.ID, saved)
	g.notifier.Notify(Notification{Level: LevelInfo, Message: fmt.Sprintf("Option %q created", saved.Name)})
	return saved, nil
}

// EditOption renames an option and replaces its values. Values that keep
// their name keep their checked state.
func (g *Gateway) EditOption(ctx context.Context, id, name string, valueNames []string, optionType string) (uioption.Option, error) {
	original, ok := g.store.Get(id)
	if !ok {
		g.log.Warn("edit of unknown option", "option_id", id)
		return uioption.Option{}, fmt.Errorf("%w: %s", ErrUnknownOption, id)
	}
	return g.submitEdit(ctx, original, uioption.FromUIEdit(original, name, valueNames, optionType))
}

// SaveOption persists the current store state of one option, e.g. after
// value toggles. On failure the option returns to its last confirmed state.
func (g *Gateway) SaveOption(ctx context.Context, id string) (uioption.Option, error) {
	current, ok := g.store.Get(id)
	if !ok {
		g.log.Warn("save of unknown option", "option_id", id)
		return uioption.Option{}, fmt.Errorf("%w: %s", ErrUnknownOption, id)
	}
	original, ok := g.store.Confirmed(id)
	if !ok {
		original = current
	}
	return g.submitEdit(ctx, original, current)
}

func (g *Gateway) submitEdit(ctx context.Context, original, edited uioption.Option) (uioption.Option, error) {
	if uioption.IsTempID(edited.ID) {
		return uioption.Option{}, fmt.Errorf("%w: %s is not saved yet", ErrSubmissionInFlight, edited.ID)
	}
	key := "edit:" + edited.ID
	if err := g.begin(key); err != nil {
		return uioption.Option{}, err
	}
	defer g.end(key)

	g.store.UpdateOption(edited)

	out, err := g.send(ctx, actionEdit, map[string]string{
		"actionType": actionEdit,
		"optionId":   edited.ID,
		"optionSet":  encodeOptionSet(edited),
	})
	if err == nil && out.Option == nil {
		err = &SubmissionError{Action: actionEdit, Status: http.StatusOK, Message: "response carried no option"}
	}
	if err != nil {
		g.store.UpdateOption(original)
		g.fail(actionEdit, err)
		return uioption.Option{}, err
	}

	saved := uioption.FromEntity(*out.Option)
	g.store.Replace(edited.ID, saved)
	g.notifier.Notify(Notification{Level: LevelInfo, Message: fmt.Sprintf("Option %q saved", saved.Name)})
	return saved, nil
}

// DeleteOptions removes ids from the store and deletes the saved ones on the
// server. Temporary options never reached the server and are only dropped
// locally. It returns the number of options the server deleted.
func (g *Gateway) DeleteOptions(ctx context.Context, ids ...string) (int, error) {
	const key = "delete"
	if len(ids) == 0 {
		return 0, &SubmissionError{Action: actionDelete, Message: "no options selected"}
	}
	if err := g.begin(key); err != nil {
		return 0, err
	}
	defer g.end(key)

	saved := make([]string, 0, len(ids))
	for _, id := range ids {
		if !uioption.IsTempID(id) {
			saved = append(saved, id)
		}
	}

	snapshot := g.store.Options()
	g.store.RemoveOptions(ids...)
	if len(saved) == 0 {
		return 0, nil
	}

	body, _ := json.Marshal(saved)
	out, err := g.send(ctx, actionDelete, map[string]string{
		"actionType": actionDelete,
		"optionIds":  string(body),
	})
	if err != nil {
		g.store.Restore(snapshot)
		g.fail(actionDelete, err)
		return 0, err
	}

	count := len(saved)
	if out.Count != nil {
		count = *out.Count
	}
	g.notifier.Notify(Notification{Level: LevelInfo, Message: fmt.Sprintf("%d option(s) deleted", count)})
	return count, nil
}

func (g *Gateway) send(ctx context.Context, action string, form map[string]string) (*resp.ActionResponse, error) {
	var out resp.ActionResponse
	r, err := g.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(actionPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	if r.IsError() || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(r.StatusCode())
		}
		return nil, &SubmissionError{
			Action:  action,
			Status:  r.StatusCode(),
			Message: msg,
			IDs:     out.IDs,
			Fields:  out.Fields,
		}
	}
	return &out, nil
}

func (g *Gateway) begin(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; busy {
		return fmt.Errorf("%w: %s", ErrSubmissionInFlight, key)
	}
	g.pending[key] = struct{}{}
	return nil
}

func (g *Gateway) end(key string) {
	g.mu.Lock()
	delete(g.pending, key)
	g.mu.Unlock()
}

func (g *Gateway) fail(action string, err error) {
	g.log.Error("submission failed", "action", action, "err", err)
	msg := err.Error()
	var se *SubmissionError
	if errors.As(err, &se) {
		msg = se.Message
	}
	g.notifier.Notify(Notification{Level: LevelError, Message: fmt.Sprintf("%s failed: %s", action, msg)})
}

type valuePayload struct {
	Value    string `json:"value"`
	Position int    `json:"position"`
	IsActive bool   `json:"isActive"`
}

type optionSetPayload struct {
	OptionName string         `json:"optionName"`
	OptionType string         `json:"optionType,omitempty"`
	Values     []valuePayload `json:"values"`
}

func encodeOptionSet(o uioption.Option) string {
	p := optionSetPayload{OptionName: o.Name, OptionType: o.Type, Values: make([]valuePayload, 0, len(o.Values))}
	for i, v := range o.Values {
		p.Values = append(p.Values, valuePayload{Value: v.Name, Position: i, IsActive: v.Checked})
	}
	b, _ := json.Marshal(p)
	return string(b)
}
