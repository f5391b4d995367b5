package models

import (
	"time"
)

// DealClick is an append-only audit row written on every affiliate redirect.
type DealClick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DealID    uint      `gorm:"not null;index" json:"dealId"`
	Deal      *Deal     `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"-"`
	IPAddress *string   `gorm:"column:ip_address" json:"ipAddress"`
	UserAgent *string   `json:"userAgent"`
	Referrer  *string   `json:"referrer"`
	SubID     *string   `gorm:"column:sub_id" json:"subId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
