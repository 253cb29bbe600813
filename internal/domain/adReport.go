package domain

import "time"

// AdReport representa uma linha do relatório de investimento em anúncios
// (uma campanha em um dia).
type AdReport struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	CampaignName string    `json:"campaign_name"`
	Spend        float64   `json:"spend"`
	Impressions  int       `json:"impressions"`
	Clicks       int       `json:"clicks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
