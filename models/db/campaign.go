package dbmodels

import (
	"time"
)

type Campaign struct {
	CampaignID   int64     `gorm:"primaryKey;autoIncrement" json:"campaign_id"`
	CampaignName string    `gorm:"type:varchar(255)" json:"campaign_name"`
	Category     string    `gorm:"type:varchar(100);index" json:"category"`
	CampaignDate time.Time `json:"campaign_date"`
}
