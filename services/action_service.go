package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"productoptions/entity"
	"productoptions/pkg/apperr"
)

type ActionType string

const (
	ActionAddOption     ActionType = "Add Option"
	ActionEditOption    ActionType = "Edit Option"
	ActionDeleteOptions ActionType = "Delete Options"
)

// ActionRequest is the form-encoded submission of the admin UI. OptionSet and
// OptionIDs carry JSON strings.
type ActionRequest struct {
	ActionType string `form:"actionType"`
	OptionSet  string `form:"optionSet"`
	OptionID   string `form:"optionId"`
	OptionIDs  string `form:"optionIds"`
}

type ActionResult struct {
	Option         *entity.Option
	Count          int
	DeletedOptions []entity.Option
}

type ActionService struct {
	Options *OptionService
	Log     *slog.Logger
}

func NewActionService(options *OptionService, logger *slog.Logger) *ActionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionService{Options: options, Log: logger.With("component", "action_service")}
}

func (s *ActionService) Handle(ctx context.Context, shop string, req ActionRequest) (*ActionResult, error) {
	const op = "action"
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}

	action := ActionType(strings.TrimSpace(req.ActionType))
	s.Log.InfoContext(ctx, "option action", "shop", shop, "action", string(action))

	switch action {
	case ActionAddOption:
		set, err := decodeOptionSet(req.OptionSet)
		if err != nil {
			return nil, err
		}
		opt, err := s.Options.Create(ctx, shop, set)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Option: opt}, nil

	case ActionEditOption:
		set, err := decodeOptionSet(req.OptionSet)
		if err != nil {
			return nil, err
		}
		opt, err := s.Options.Update(ctx, shop, req.OptionID, set)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Option: opt}, nil

	case ActionDeleteOptions:
		ids, err := decodeOptionIDs(req.OptionIDs)
		if err != nil {
			return nil, err
		}
		res, err := s.Options.Delete(ctx, shop, ids)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Count: res.Count, DeletedOptions: res.DeletedOptions}, nil

	case "":
		return nil, apperr.ValidationErr(op, "actionType is required")
	default:
		return nil, apperr.ValidationErr(op, "unknown actionType "+string(action))
	}
}

func decodeOptionSet(raw string) (OptionSet, error) {
	var set OptionSet
	if strings.TrimSpace(raw) == "" {
		return set, apperr.ValidationErr("action", "optionSet is required")
	}
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return set, apperr.ValidationErr("action", "optionSet is not valid JSON: "+err.Error())
	}
	return set, nil
}

// decodeOptionIDs accepts a JSON array, a JSON string or a bare id.
func decodeOptionIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperr.ValidationErr("action", "optionIds is required")
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err == nil {
		return ids, nil
	}
	var one string
	if err := json.Unmarshal([]byte(raw), &one); err == nil {
		return []string{one}, nil
	}
	if strings.ContainsAny(raw, "[]{}\"") {
		return nil, apperr.ValidationErr("action", "optionIds is not valid JSON")
	}
	return []string{raw}, nil
}
