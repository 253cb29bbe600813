package narrating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	openaiMocks "github.com/pvilarim/ecomdash-api/infrastructure/integrator/openai/mocks"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	reportingMocks "github.com/pvilarim/ecomdash-api/internal/usecases/reporting/mocks"
)

func testFilters() *domain.ReportFilters {
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	return &domain.ReportFilters{StartDate: &startDate, EndDate: &endDate}
}

func testReport(filters *domain.ReportFilters) *domain.ReportResponse {
	return &domain.ReportResponse{
		Summary: &domain.StatsSummary{
			TotalSales:  1000,
			OrdersCount: 12,
			AdSpend:     200,
			NetProfit:   600,
			ROAS:        5,
			NetMargin:   60,
		},
		RevenueSource: domain.RevenueSourceOrders,
		Filters:       filters,
	}
}

func TestGenerateNarrative(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := reportingMocks.NewMockReporter(ctrl)
	integrator := openaiMocks.NewMockOpenAIIntegrator(ctrl)

	filters := testFilters()
	report := testReport(filters)

	reporter.EXPECT().GetSummary(filters).Return(report, nil)
	integrator.EXPECT().GenerateInsights(gomock.Any()).Return("## Análise\nLucro saudável no período.", nil)

	service := NewService(reporter, integrator)

	response, err := service.GenerateNarrative(filters)

	require.NoError(t, err)
	assert.True(t, response.Generated)
	assert.Equal(t, "## Análise\nLucro saudável no período.", response.Narrative)
	assert.Equal(t, report.Summary, response.Summary)
}

func TestGenerateNarrativeFallsBackOnProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := reportingMocks.NewMockReporter(ctrl)
	integrator := openaiMocks.NewMockOpenAIIntegrator(ctrl)

	filters := testFilters()

	reporter.EXPECT().GetSummary(filters).Return(testReport(filters), nil)
	integrator.EXPECT().GenerateInsights(gomock.Any()).Return("", errors.New("timeout"))

	service := NewService(reporter, integrator)

	response, err := service.GenerateNarrative(filters)

	// Falha do provedor não vira erro para o cliente.
	require.NoError(t, err)
	assert.False(t, response.Generated)
	assert.Equal(t, FallbackNarrative, response.Narrative)
}

func TestGenerateNarrativeFallsBackOnEmptyResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := reportingMocks.NewMockReporter(ctrl)
	integrator := openaiMocks.NewMockOpenAIIntegrator(ctrl)

	filters := testFilters()

	reporter.EXPECT().GetSummary(filters).Return(testReport(filters), nil)
	integrator.EXPECT().GenerateInsights(gomock.Any()).Return("   ", nil)

	service := NewService(reporter, integrator)

	response, err := service.GenerateNarrative(filters)

	require.NoError(t, err)
	assert.False(t, response.Generated)
	assert.Equal(t, FallbackNarrative, response.Narrative)
}

func TestGenerateNarrativePropagatesReportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := reportingMocks.NewMockReporter(ctrl)
	integrator := openaiMocks.NewMockOpenAIIntegrator(ctrl)

	filters := testFilters()

	reporter.EXPECT().GetSummary(filters).Return(nil, errors.New("banco indisponível"))

	service := NewService(reporter, integrator)

	response, err := service.GenerateNarrative(filters)

	assert.Error(t, err)
	assert.Nil(t, response)
}

func TestSummaryTextIncludesMetrics(t *testing.T) {
	report := testReport(testFilters())

	text := SummaryText(report)

	assert.Contains(t, text, "Vendas totais: R$ 1000.00")
	assert.Contains(t, text, "Pedidos: 12")
	assert.Contains(t, text, "ROAS: 5.00")
	assert.Contains(t, text, "orders")
}
