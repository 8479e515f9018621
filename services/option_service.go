package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"productoptions/entity"
	"productoptions/pkg/apperr"
	"productoptions/repository"
)

// OptionSet is what the admin submits for Add/Edit. Values may be plain strings
// or {value, position, isActive} objects.
type OptionSet struct {
	OptionName string                  `json:"optionName" validate:"required,max=255"`
	OptionType entity.OptionType       `json:"optionType" validate:"omitempty,oneof=text number image color"`
	Position   *int                    `json:"position,omitempty" validate:"omitempty,min=0"`
	IsRequired *bool                   `json:"isRequired,omitempty"`
	Values     []repository.ValueInput `json:"values" validate:"dive"`
}

type OptionService struct {
	Repo     *repository.OptionRepository
	Log      *slog.Logger
	validate *validator.Validate
}

func NewOptionService(repo *repository.OptionRepository, logger *slog.Logger) *OptionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OptionService{
		Repo:     repo,
		Log:      logger.With("component", "option_service"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *OptionService) List(ctx context.Context, shop string) ([]entity.Option, error) {
	return s.Repo.ListOptions(ctx, shop)
}

// ListOrEmpty is the loader used by UI-facing endpoints: a failed query is
// logged and shown as "no options" rather than failing the whole page.
func (s *OptionService) ListOrEmpty(ctx context.Context, shop string) []entity.Option {
	opts, err := s.Repo.ListOptions(ctx, shop)
	if err != nil {
		s.Log.WarnContext(ctx, "options unavailable, showing empty list", "shop", shop, "err", err)
		return []entity.Option{}
	}
	return opts
}

func (s *OptionService) Get(ctx context.Context, shop, id string) (*entity.Option, error) {
	return s.Repo.FindOption(ctx, shop, id)
}

func (s *OptionService) Create(ctx context.Context, shop string, set OptionSet) (*entity.Option, error) {
	const op = "createOption"
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}
	if err := s.check(op, &set); err != nil {
		return nil, err
	}

	in := repository.CreateOptionInput{
		Name:   set.OptionName,
		Type:   set.OptionType,
		Values: set.Values,
	}
	if set.IsRequired != nil {
		in.IsRequired = *set.IsRequired
	}
	if set.Position != nil {
		in.Position = *set.Position
	} else {
		pos, err := s.Repo.NextPosition(ctx, shop)
		if err != nil {
			return nil, err
		}
		in.Position = pos
	}
	return s.Repo.CreateOption(ctx, shop, in)
}

func (s *OptionService) Update(ctx context.Context, shop, id string, set OptionSet) (*entity.Option, error) {
	const op = "updateOption"
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ValidationErr(op, "option id is required")
	}
	if err := s.check(op, &set); err != nil {
		return nil, err
	}
	return s.Repo.UpdateOption(ctx, shop, strings.TrimSpace(id), repository.UpdateOptionInput{
		Name:       set.OptionName,
		Type:       set.OptionType,
		Position:   set.Position,
		IsRequired: set.IsRequired,
		Values:     set.Values,
	})
}

func (s *OptionService) Delete(ctx context.Context, shop string, ids []string) (*repository.DeleteResult, error) {
	return s.Repo.DeleteOptions(ctx, ids, shop)
}

// check validates set and normalizes value names. Duplicate values are
// rejected here; a concurrent duplicate that slips past is caught by the
// (option_id, value) unique index and reported as a conflict.
func (s *OptionService) check(op string, set *OptionSet) error {
	set.OptionName = strings.TrimSpace(set.OptionName)
	for i := range set.Values {
		set.Values[i].Value = strings.TrimSpace(set.Values[i].Value)
	}

	if err := s.validate.Struct(set); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return apperr.FieldsErr(op, fieldErrors(ve))
		}
		return apperr.ValidationErr(op, err.Error())
	}

	seen := make(map[string]struct{}, len(set.Values))
	for i, v := range set.Values {
		if v.Value == "" {
			return apperr.ValidationErr(op, fmt.Sprintf("value %d is empty", i+1))
		}
		if _, dup := seen[v.Value]; dup {
			return apperr.ValidationErr(op, fmt.Sprintf("duplicate value %q", v.Value))
		}
		seen[v.Value] = struct{}{}
	}
	return nil
}

func fieldErrors(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[jsonFieldName(fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
	}
	return out
}

func jsonFieldName(structField string) string {
	switch structField {
	case "OptionName":
		return "optionName"
	case "OptionType":
		return "optionType"
	case "Position":
		return "position"
	case "Values":
		return "values"
	default:
		return strings.ToLower(structField)
	}
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "max":
		return "Must be at most " + param + " characters."
	case "min":
		return "Must be at least " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	default:
		return "Invalid value."
	}
}
