package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvilarim/ecomdash-api/internal/domain"
)

func day(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestBuildReportRevenueFromOrders(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-01"), Total: 100},
		{ExternalID: "1002", Date: day("2024-01-05"), Total: 200},
	}

	response := BuildReport(orders, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	require.NotNil(t, response.Summary)
	assert.Equal(t, 300.0, response.Summary.TotalSales)
	assert.Equal(t, 2, response.Summary.OrdersCount)
	assert.Equal(t, domain.RevenueSourceOrders, response.RevenueSource)
}

func TestBuildReportPeriodIsInclusiveOnBothEnds(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-01"), Total: 100},
		{ExternalID: "1002", Date: day("2024-01-05"), Total: 200},
	}

	tests := []struct {
		name          string
		startDate     time.Time
		endDate       time.Time
		expectedTotal float64
		expectedCount int
	}{
		{
			name:          "período cobre as duas pontas",
			startDate:     day("2024-01-01"),
			endDate:       day("2024-01-05"),
			expectedTotal: 300,
			expectedCount: 2,
		},
		{
			name:          "período interno exclui as pontas",
			startDate:     day("2024-01-02"),
			endDate:       day("2024-01-04"),
			expectedTotal: 0,
			expectedCount: 0,
		},
		{
			name:          "pedido exatamente na data inicial",
			startDate:     day("2024-01-01"),
			endDate:       day("2024-01-01"),
			expectedTotal: 100,
			expectedCount: 1,
		},
		{
			name:          "pedido exatamente na data final",
			startDate:     day("2024-01-05"),
			endDate:       day("2024-01-05"),
			expectedTotal: 200,
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := BuildReport(orders, nil, nil, nil, nil, tt.startDate, tt.endDate, DefaultFeeRate)

			assert.Equal(t, tt.expectedTotal, response.Summary.TotalSales)
			assert.Equal(t, tt.expectedCount, response.Summary.OrdersCount)
		})
	}
}

func TestBuildReportIgnoresTimeOfDay(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-01").Add(23*time.Hour + 59*time.Minute), Total: 150},
	}

	response := BuildReport(orders, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-01"), DefaultFeeRate)

	assert.Equal(t, 150.0, response.Summary.TotalSales)
	assert.Equal(t, 1, response.Summary.OrdersCount)
}

func TestBuildReportIgnoresTimezoneOffset(t *testing.T) {
	// Exports da loja trazem timestamps com fuso. O dia do calendário do
	// pedido decide o período, não o instante convertido para UTC.
	saoPaulo := time.FixedZone("-03", -3*60*60)
	orders := []*domain.Order{
		{ExternalID: "1001", Date: time.Date(2024, 1, 5, 10, 0, 0, 0, saoPaulo), Total: 200},
		{ExternalID: "1002", Date: time.Date(2024, 1, 1, 23, 30, 0, 0, saoPaulo), Total: 100},
	}

	response := BuildReport(orders, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	assert.Equal(t, 300.0, response.Summary.TotalSales)
	assert.Equal(t, 2, response.Summary.OrdersCount)
}

func TestBuildReportPrefersSalesRecords(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-02"), Total: 100, Shipping: 10},
	}
	salesRecords := []*domain.SalesRecord{
		{Date: day("2024-01-02"), TotalSales: 500, Shipping: 25},
		{Date: day("2024-01-03"), TotalSales: 300, Shipping: 15},
	}

	response := BuildReport(orders, salesRecords, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	// Fonte exclusiva: o total dos pedidos não entra na soma.
	assert.Equal(t, 800.0, response.Summary.TotalSales)
	assert.Equal(t, 40.0, response.Summary.TotalShipping)
	assert.Equal(t, domain.RevenueSourceSalesRecords, response.RevenueSource)
	// A contagem de pedidos continua vindo dos pedidos filtrados.
	assert.Equal(t, 1, response.Summary.OrdersCount)
}

func TestBuildReportFallsBackToOrdersWhenRecordsOutsidePeriod(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-02"), Total: 100},
	}
	salesRecords := []*domain.SalesRecord{
		{Date: day("2024-02-10"), TotalSales: 500},
	}

	response := BuildReport(orders, salesRecords, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	assert.Equal(t, 100.0, response.Summary.TotalSales)
	assert.Equal(t, domain.RevenueSourceOrders, response.RevenueSource)
}

func TestBuildReportCOGSFromOrderItems(t *testing.T) {
	orders := []*domain.Order{
		{
			ExternalID: "1001",
			Date:       day("2024-01-02"),
			Total:      90,
			Items: []domain.OrderItem{
				{SKU: "SKU-A", Quantity: 3, UnitPrice: 30},
			},
		},
	}
	costTable := map[string]float64{"SKU-A": 10}

	response := BuildReport(orders, nil, nil, nil, costTable, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	assert.Equal(t, 30.0, response.Summary.COGS)
}

func TestBuildReportUnmappedSKUContributesZero(t *testing.T) {
	orders := []*domain.Order{
		{
			ExternalID: "1001",
			Date:       day("2024-01-02"),
			Total:      90,
			Items: []domain.OrderItem{
				{SKU: "SKU-A", Quantity: 3},
				{SKU: "SKU-B", Quantity: 5},
			},
		},
	}
	costTable := map[string]float64{"SKU-A": 10}

	response := BuildReport(orders, nil, nil, nil, costTable, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	assert.Equal(t, 30.0, response.Summary.COGS)
}

func TestBuildReportCOGSIndependentOfRevenueSource(t *testing.T) {
	orders := []*domain.Order{
		{
			ExternalID: "1001",
			Date:       day("2024-01-02"),
			Total:      90,
			Items: []domain.OrderItem{
				{SKU: "SKU-A", Quantity: 3},
			},
		},
	}
	salesRecords := []*domain.SalesRecord{
		{Date: day("2024-01-02"), TotalSales: 500},
	}
	costTable := map[string]float64{"SKU-A": 10}

	withRecords := BuildReport(orders, salesRecords, nil, nil, costTable, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)
	withoutRecords := BuildReport(orders, nil, nil, nil, costTable, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	// O custo de mercadoria vem sempre dos itens dos pedidos.
	assert.Equal(t, withoutRecords.Summary.COGS, withRecords.Summary.COGS)
	assert.Equal(t, 30.0, withRecords.Summary.COGS)
}

func TestBuildReportExpensesNotFilteredByPeriod(t *testing.T) {
	expenses := []*domain.Expense{
		{ID: "a1b2c3", Category: "Contabilidade", Amount: 50, CreatedAt: day("2023-06-01")},
		{ID: "d4e5f6", Category: "Software", Amount: 30, CreatedAt: day("2025-12-01")},
	}

	response := BuildReport(nil, nil, nil, expenses, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	// A coleção inteira de despesas entra no total, independente do período.
	assert.Equal(t, 80.0, response.Summary.TotalExpenses)
}

func TestBuildReportDerivedMetrics(t *testing.T) {
	orders := []*domain.Order{
		{
			ExternalID: "1001",
			Date:       day("2024-01-02"),
			Total:      1000,
			Shipping:   20,
			Items: []domain.OrderItem{
				{SKU: "SKU-A", Quantity: 10},
			},
		},
	}
	adReports := []*domain.AdReport{
		{Date: day("2024-01-02"), CampaignName: "Campanha A", Spend: 120},
		{Date: day("2024-01-03"), CampaignName: "Campanha B", Spend: 80},
	}
	expenses := []*domain.Expense{
		{ID: "a1b2c3", Amount: 50},
	}
	costTable := map[string]float64{"SKU-A": 10}

	response := BuildReport(orders, nil, adReports, expenses, costTable, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	summary := response.Summary
	assert.Equal(t, 1000.0, summary.TotalSales)
	assert.Equal(t, 200.0, summary.AdSpend)
	assert.Equal(t, 100.0, summary.COGS)
	assert.Equal(t, 20.0, summary.TotalShipping)
	assert.Equal(t, 50.0, summary.TotalExpenses)
	assert.Equal(t, 30.0, summary.EstimatedFees)
	// 1000 - 200 - 100 - 20 - 50 - 30
	assert.Equal(t, 600.0, summary.NetProfit)
	assert.Equal(t, 5.0, summary.ROAS)
	assert.Equal(t, 60.0, summary.NetMargin)
}

func TestBuildReportROASZeroWithoutSpend(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-02"), Total: 1000},
	}

	response := BuildReport(orders, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	assert.Equal(t, 0.0, response.Summary.ROAS)
}

func TestBuildReportMarginZeroWithoutSales(t *testing.T) {
	adReports := []*domain.AdReport{
		{Date: day("2024-01-02"), CampaignName: "Campanha A", Spend: 120},
	}
	expenses := []*domain.Expense{
		{ID: "a1b2c3", Amount: 50},
	}

	response := BuildReport(nil, nil, adReports, expenses, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	// Prejuízo sem vendas: a margem fica zerada mesmo com lucro negativo.
	assert.Equal(t, -170.0, response.Summary.NetProfit)
	assert.Equal(t, 0.0, response.Summary.NetMargin)
	assert.Equal(t, 0.0, response.Summary.ROAS)
}

func TestBuildReportRevenueSeriesSortedAscending(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1003", Date: day("2024-01-05"), Total: 200},
		{ExternalID: "1001", Date: day("2024-01-01"), Total: 100},
		{ExternalID: "1002", Date: day("2024-01-01"), Total: 40},
	}

	response := BuildReport(orders, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	require.Len(t, response.RevenueSeries, 2)
	assert.Equal(t, domain.RevenuePoint{Date: "2024-01-01", Amount: 140}, response.RevenueSeries[0])
	assert.Equal(t, domain.RevenuePoint{Date: "2024-01-05", Amount: 200}, response.RevenueSeries[1])
}

func TestBuildReportRevenueSeriesFromSalesRecords(t *testing.T) {
	orders := []*domain.Order{
		{ExternalID: "1001", Date: day("2024-01-01"), Total: 100},
	}
	salesRecords := []*domain.SalesRecord{
		{Date: day("2024-01-03"), TotalSales: 300},
		{Date: day("2024-01-02"), TotalSales: 500},
	}

	response := BuildReport(orders, salesRecords, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	require.Len(t, response.RevenueSeries, 2)
	assert.Equal(t, "2024-01-02", response.RevenueSeries[0].Date)
	assert.Equal(t, "2024-01-03", response.RevenueSeries[1].Date)
}

func TestBuildReportEmptyCollections(t *testing.T) {
	response := BuildReport(nil, nil, nil, nil, nil, day("2024-01-01"), day("2024-01-05"), DefaultFeeRate)

	summary := response.Summary
	assert.Equal(t, 0.0, summary.TotalSales)
	assert.Equal(t, 0, summary.OrdersCount)
	assert.Equal(t, 0.0, summary.NetProfit)
	assert.Equal(t, 0.0, summary.ROAS)
	assert.Equal(t, 0.0, summary.NetMargin)
	assert.Empty(t, response.RevenueSeries)
	assert.Equal(t, domain.RevenueSourceOrders, response.RevenueSource)
}

func TestCostTable(t *testing.T) {
	costs := []*domain.ProductCost{
		{SKU: "SKU-A", UnitCost: 10},
		{SKU: "SKU-B", UnitCost: 7.5},
		nil,
	}

	table := CostTable(costs)

	assert.Equal(t, map[string]float64{"SKU-A": 10, "SKU-B": 7.5}, table)
}

func TestGetSummaryInvalidFilters(t *testing.T) {
	service := &Service{}

	startDate := day("2024-01-10")
	endDate := day("2024-01-01")

	tests := []struct {
		name    string
		filters *domain.ReportFilters
		wantErr error
	}{
		{
			name:    "filtros nulos",
			filters: nil,
			wantErr: ErrMissingPeriod,
		},
		{
			name:    "sem data de início",
			filters: &domain.ReportFilters{EndDate: &endDate},
			wantErr: ErrMissingPeriod,
		},
		{
			name:    "sem data de fim",
			filters: &domain.ReportFilters{StartDate: &startDate},
			wantErr: ErrMissingPeriod,
		},
		{
			name:    "início posterior ao fim",
			filters: &domain.ReportFilters{StartDate: &startDate, EndDate: &endDate},
			wantErr: ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := service.GetSummary(tt.filters)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, response)
		})
	}
}
