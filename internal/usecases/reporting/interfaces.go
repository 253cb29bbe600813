package reporting

import (
	"time"

	"github.com/pvilarim/ecomdash-api/internal/domain"
)

// Reporter define a interface para obter o resumo financeiro de um período
type Reporter interface {
	// GetSummary calcula o resumo de métricas e a série de receita para o período
	GetSummary(filters *domain.ReportFilters) (*domain.ReportResponse, error)

	// GetDailySummary calcula o resumo de um único dia (usado pelo agendador de snapshots)
	GetDailySummary(date time.Time) (*domain.StatsSummary, error)
}
