package repository

import (
	"encoding/json"
	"strings"

	"productoptions/entity"
)

type CreateOptionInput struct {
	Name       string            `json:"name"`
	Type       entity.OptionType `json:"type"`
	Position   int               `json:"position"`
	IsRequired bool              `json:"isRequired"`
	Values     []ValueInput      `json:"values"`
}

// UpdateOptionInput replaces the option's whole value set. An empty Type means
// "keep the stored type"; nil pointers leave the column untouched.
type UpdateOptionInput struct {
	Name       string            `json:"name"`
	Type       entity.OptionType `json:"type"`
	Position   *int              `json:"position,omitempty"`
	IsRequired *bool             `json:"isRequired,omitempty"`
	Values     []ValueInput      `json:"values"`
}

// ValueInput decodes from either a bare string ("Red") or an object
// ({"value":"Red","position":0,"isActive":true}).
type ValueInput struct {
	Value    string `json:"value"`
	Position *int   `json:"position,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (v *ValueInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = ValueInput{Value: s}
		return nil
	}
	type plain ValueInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = ValueInput(p)
	return nil
}

func Values(names ...string) []ValueInput {
	out := make([]ValueInput, 0, len(names))
	for _, n := range names {
		out = append(out, ValueInput{Value: n})
	}
	return out
}

// buildValues applies the defaults: position = array index, isActive = true.
func buildValues(optionID string, in []ValueInput) []entity.OptionValue {
	out := make([]entity.OptionValue, 0, len(in))
	for i, v := range in {
		pos := i
		if v.Position != nil {
			pos = *v.Position
		}
		active := true
		if v.IsActive != nil {
			active = *v.IsActive
		}
		out = append(out, entity.OptionValue{
			OptionID: optionID,
			Value:    strings.TrimSpace(v.Value),
			Position: pos,
			IsActive: active,
		})
	}
	return out
}
