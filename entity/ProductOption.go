package entity

import "time"

// ProductOption links an option to a catalog product. ProductID is the id the
// external catalog resolved, not a local row.
type ProductOption struct {
	ProductID string    `gorm:"type:varchar(255);primaryKey" json:"productId"`
	OptionID  string    `gorm:"type:varchar(36);primaryKey;index" json:"optionId"`
	Shop      string    `gorm:"type:varchar(255);not null;index" json:"shop"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
