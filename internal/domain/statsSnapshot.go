package domain

import "time"

// StatsSnapshot representa o resumo financeiro de um dia persistido pelo
// agendador de snapshots.
type StatsSnapshot struct {
	ID        int64         `json:"id"`
	Date      time.Time     `json:"date"`
	Summary   *StatsSummary `json:"summary"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
