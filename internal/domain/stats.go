package domain

import "time"

// Fontes possíveis para a receita do período. A preferência é binária: se
// existirem registros de vendas no período, eles são a fonte exclusiva;
// caso contrário os pedidos são usados. As duas fontes nunca são somadas,
// para evitar contagem dupla.
const (
	RevenueSourceSalesRecords = "sales_records"
	RevenueSourceOrders       = "orders"
)

// ReportFilters define o período do relatório. As datas são inclusivas nas
// duas pontas e comparadas na granularidade de dia.
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// StatsSummary é o resumo financeiro derivado para um período. Não é
// armazenado diretamente, exceto como snapshot diário.
type StatsSummary struct {
	TotalSales    float64 `json:"total_sales"`
	OrdersCount   int     `json:"orders_count"`
	AdSpend       float64 `json:"ad_spend"`
	COGS          float64 `json:"cogs"`
	TotalShipping float64 `json:"total_shipping"`
	EstimatedFees float64 `json:"estimated_fees"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	ROAS          float64 `json:"roas"`
	NetMargin     float64 `json:"net_margin"`
}

// RevenuePoint é um ponto da série de receita, agrupado por dia.
type RevenuePoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ReportResponse é a resposta completa do relatório de um período.
type ReportResponse struct {
	Summary       *StatsSummary  `json:"summary"`
	RevenueSeries []RevenuePoint `json:"revenue_series"`
	RevenueSource string         `json:"revenue_source"`
	Filters       *ReportFilters `json:"filters"`
}
