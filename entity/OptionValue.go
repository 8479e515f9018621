package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OptionValue is owned by exactly one Option and is only written as part of an
// option create, update or delete.
type OptionValue struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OptionID  string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_option_values_option_value,priority:1" json:"optionId"`
	Value     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_option_values_option_value,priority:2" json:"value"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (v *OptionValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
