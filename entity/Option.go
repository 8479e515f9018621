package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Option struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Shop       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_options_shop_name,priority:1;index" json:"shop"`
	Name       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_options_shop_name,priority:2" json:"name"`
	Type       OptionType `gorm:"type:varchar(16);not null;default:text" json:"type"`
	Position   int        `gorm:"not null;default:0" json:"position"`
	IsRequired bool       `gorm:"not null;default:false" json:"isRequired"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// preload ตอน list เสมอ เรียงตาม position
	Values []OptionValue `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"values"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
