// Package uioption maps persisted options to the shape the admin UI edits
// (value -> name, isActive -> checked) and builds UI options locally.
// Every function here is pure.
package uioption

import (
	"strings"

	"github.com/google/uuid"

	"productoptions/entity"
)

const TempIDPrefix = "temp-"

type Value struct {
	Name     string `json:"name"`
	Checked  bool   `json:"checked"`
	Position int    `json:"position"`
}

type Option struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Position   int     `json:"position"`
	IsRequired bool    `json:"isRequired"`
	Values     []Value `json:"values"`
}

func ToUIShape(opts []entity.Option) []Option {
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, FromEntity(o))
	}
	return out
}

func FromEntity(o entity.Option) Option {
	typ := string(o.Type)
	if typ == "" {
		typ = string(entity.OptionTypeText)
	}
	values := make([]Value, 0, len(o.Values))
	for _, v := range o.Values {
		values = append(values, Value{Name: v.Value, Checked: v.IsActive, Position: v.Position})
	}
	return Option{
		ID:         o.ID,
		Name:       o.Name,
		Type:       typ,
		Position:   o.Position,
		IsRequired: o.IsRequired,
		Values:     values,
	}
}

// FromUIEdit rebuilds original with a new name and value list. A value that
// already existed under the same name keeps its checked state; new values
// start checked. An empty newType keeps the original type.
func FromUIEdit(original Option, newName string, newValueNames []string, newType string) Option {
	checked := make(map[string]bool, len(original.Values))
	for _, v := range original.Values {
		checked[v.Name] = v.Checked
	}

	values := make([]Value, 0, len(newValueNames))
	for i, name := range newValueNames {
		c, ok := checked[name]
		if !ok {
			c = true
		}
		values = append(values, Value{Name: name, Checked: c, Position: i})
	}

	typ := newType
	if typ == "" {
		typ = original.Type
	}
	return Option{
		ID:         original.ID,
		Name:       newName,
		Type:       typ,
		Position:   original.Position,
		IsRequired: original.IsRequired,
		Values:     values,
	}
}

// BuildNewUIOption returns an option with a temporary local id, for display
// before the server has confirmed it.
func BuildNewUIOption(name string, valueNames []string, optionType string) Option {
	if optionType == "" {
		optionType = string(entity.OptionTypeText)
	}
	values := make([]Value, 0, len(valueNames))
	for i, n := range valueNames {
		values = append(values, Value{Name: n, Checked: true, Position: i})
	}
	return Option{
		ID:     TempIDPrefix + uuid.NewString(),
		Name:   name,
		Type:   optionType,
		Values: values,
	}
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

func ValueNames(o Option) []string {
	out := make([]string, 0, len(o.Values))
	for _, v := range o.Values {
		out = append(out, v.Name)
	}
	return out
}

// Clone returns a copy that shares no slices with o.
func Clone(o Option) Option {
	c := o
	if o.Values != nil {
		c.Values = append([]Value(nil), o.Values...)
	}
	return c
}
