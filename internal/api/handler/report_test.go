package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
	reportingmocks "github.com/pvilarim/ecomdash-api/internal/usecases/reporting/mocks"
)

func TestGetReportSummarySuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)

	response := &domain.ReportResponse{
		Summary:       &domain.StatsSummary{TotalSales: 300, OrdersCount: 2},
		RevenueSource: domain.RevenueSourceOrders,
	}
	reporter.EXPECT().GetSummary(gomock.Any()).Return(response, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/summary?start_date=2024-01-01&end_date=2024-01-05", nil)
	rec := httptest.NewRecorder()

	GetReportSummary(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "total_sales")
}

func TestGetReportSummaryValidationErrorReturnsBadRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetSummary(gomock.Any()).Return(nil, reporting.ErrInvalidPeriod)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/summary?start_date=2024-01-10&end_date=2024-01-01", nil)
	rec := httptest.NewRecorder()

	GetReportSummary(reporter).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReportSummaryInfrastructureErrorReturnsServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetSummary(gomock.Any()).Return(nil, errors.New("conexão com o banco recusada"))

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/summary?start_date=2024-01-01&end_date=2024-01-05", nil)
	rec := httptest.NewRecorder()

	GetReportSummary(reporter).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
