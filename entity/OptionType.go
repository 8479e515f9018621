package entity

type OptionType string

const (
	OptionTypeText   OptionType = "text"
	OptionTypeNumber OptionType = "number"
	OptionTypeImage  OptionType = "image"
	OptionTypeColor  OptionType = "color"
)

var OptionTypes = []OptionType{OptionTypeText, OptionTypeNumber, OptionTypeImage, OptionTypeColor}

func (t OptionType) Valid() bool {
	for _, ot := range OptionTypes {
		if t == ot {
			return true
		}
	}
	return false
}
