package db

import (
	"time"

	log "github.com/sirupsen/logrus"

	dbmodels "eia-backend/models/db"
)

func InitPreload() {
	fillCampaigns()
}

// fillCampaigns seeds the campaign dictionary the energy report rolls up on.
func fillCampaigns() {
	var rowCount int64
	if err := DB.Model(dbmodels.Campaign{}).Count(&rowCount).Error; err != nil {
		log.WithError(err).Error("failed to preload campaigns")
		return
	}
	if rowCount > 0 {
		return
	}
	campaigns := []dbmodels.Campaign{
		{CampaignName: "HVAC Modernization", Category: "HVAC", CampaignDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{CampaignName: "LED Lighting Retrofit", Category: "Lighting", CampaignDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{CampaignName: "Building Insulation", Category: "Insulation", CampaignDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{CampaignName: "Solar Readiness", Category: "Solar", CampaignDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := DB.Create(&campaigns).Error; err != nil {
		log.WithError(err).Error("failed to preload campaigns")
		return
	}
	log.Info("campaigns preloaded")
}
