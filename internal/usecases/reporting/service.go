package reporting

import (
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/internal/config"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

// DefaultFeeRate é a taxa estimada da plataforma aplicada sobre o total de
// vendas quando nenhuma taxa é configurada. Heurística fixa de 3%, não vem
// de relatório de repasse.
const DefaultFeeRate = 0.03

// Erros de validação dos filtros do relatório. São distintos das falhas de
// infraestrutura para que a camada HTTP responda 400 em vez de 500.
var (
	ErrMissingPeriod = errors.New("é necessário informar as datas de início e fim")
	ErrInvalidPeriod = errors.New("a data de início não pode ser posterior à data de fim")
)

// Service implementa a interface Reporter
type Service struct {
	cfg                   *config.Config
	orderRepository       repository.OrderRepository
	salesRecordRepository repository.SalesRecordRepository
	adReportRepository    repository.AdReportRepository
	expenseRepository     repository.ExpenseRepository
	productCostRepository repository.ProductCostRepository
}

// NewService cria uma nova instância do serviço de relatórios
func NewService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	salesRecordRepo repository.SalesRecordRepository,
	adReportRepo repository.AdReportRepository,
	expenseRepo repository.ExpenseRepository,
	productCostRepo repository.ProductCostRepository,
) Reporter {
	return &Service{
		cfg:                   cfg,
		orderRepository:       orderRepo,
		salesRecordRepository: salesRecordRepo,
		adReportRepository:    adReportRepo,
		expenseRepository:     expenseRepo,
		productCostRepository: productCostRepo,
	}
}

// GetSummary calcula o resumo financeiro e a série de receita do período
func (s *Service) GetSummary(filters *domain.ReportFilters) (*domain.ReportResponse, error) {
	// Verificar se os filtros têm datas válidas
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil ||
		filters.StartDate.IsZero() || filters.EndDate.IsZero() {
		return nil, ErrMissingPeriod
	}

	// Validar se as datas estão em ordem
	if filters.StartDate.After(*filters.EndDate) {
		return nil, ErrInvalidPeriod
	}

	orders, err := s.orderRepository.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar pedidos do período")
		return nil, err
	}

	salesRecords, err := s.salesRecordRepository.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar registros de vendas do período")
		return nil, err
	}

	adReports, err := s.adReportRepository.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar relatórios de anúncios do período")
		return nil, err
	}

	// Despesas manuais entram por inteiro no cálculo, sem filtro de período.
	// São tratadas como totais independentes de data.
	expenses, err := s.expenseRepository.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar despesas manuais")
		return nil, err
	}

	costs, err := s.productCostRepository.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar tabela de custos por SKU")
		return nil, err
	}

	response := BuildReport(
		orders,
		salesRecords,
		adReports,
		expenses,
		CostTable(costs),
		*filters.StartDate,
		*filters.EndDate,
		s.feeRate(),
	)
	response.Filters = filters

	return response, nil
}

// GetDailySummary calcula o resumo de um único dia
func (s *Service) GetDailySummary(date time.Time) (*domain.StatsSummary, error) {
	filters := &domain.ReportFilters{
		StartDate: &date,
		EndDate:   &date,
	}

	response, err := s.GetSummary(filters)
	if err != nil {
		return nil, err
	}

	return response.Summary, nil
}

func (s *Service) feeRate() float64 {
	if s.cfg == nil || s.cfg.Reporting.FeeRate <= 0 {
		return DefaultFeeRate
	}
	return s.cfg.Reporting.FeeRate
}

// CostTable converte a lista de custos em um mapa SKU -> custo unitário.
// Uma entrada por SKU; a última escrita vence na origem (banco).
func CostTable(costs []*domain.ProductCost) map[string]float64 {
	table := make(map[string]float64, len(costs))
	for _, cost := range costs {
		if cost == nil {
			continue
		}
		table[cost.SKU] = cost.UnitCost
	}
	return table
}

// BuildReport agrega as coleções em um resumo de métricas e uma série de
// receita. A função é pura: filtra as coleções pelo período (inclusivo nas
// duas pontas, granularidade de dia) e deriva as métricas a partir delas.
func BuildReport(
	orders []*domain.Order,
	salesRecords []*domain.SalesRecord,
	adReports []*domain.AdReport,
	expenses []*domain.Expense,
	costTable map[string]float64,
	startDate time.Time,
	endDate time.Time,
	feeRate float64,
) *domain.ReportResponse {
	filteredOrders := filterOrders(orders, startDate, endDate)
	filteredSales := filterSalesRecords(salesRecords, startDate, endDate)
	filteredAds := filterAdReports(adReports, startDate, endDate)

	// Seleção binária da fonte de receita: se houver registros de vendas no
	// período, eles são a fonte exclusiva de total e frete. As fontes nunca
	// são somadas, para não contar receita em dobro.
	var totalSales, totalShipping float64
	revenueSource := domain.RevenueSourceOrders

	if len(filteredSales) > 0 {
		revenueSource = domain.RevenueSourceSalesRecords
		for _, record := range filteredSales {
			totalSales += record.TotalSales
			totalShipping += record.Shipping
		}
	} else {
		for _, order := range filteredOrders {
			totalSales += order.Total
			totalShipping += order.Shipping
		}
	}

	// O custo de mercadoria vem sempre dos itens dos pedidos, independente da
	// fonte de receita: os registros de vendas não têm detalhe por SKU.
	// SKU sem custo mapeado contribui com zero.
	var cogs float64
	for _, order := range filteredOrders {
		for _, item := range order.Items {
			cogs += costTable[item.SKU] * float64(item.Quantity)
		}
	}

	var adSpend float64
	for _, report := range filteredAds {
		adSpend += report.Spend
	}

	// Despesas manuais: a coleção inteira, sem filtro de período.
	var totalExpenses float64
	for _, expense := range expenses {
		totalExpenses += expense.Amount
	}

	estimatedFees := totalSales * feeRate

	netProfit := totalSales - adSpend - cogs - totalShipping - totalExpenses - estimatedFees

	// Métricas derivadas: sem gasto não há ROAS, sem venda não há margem.
	roas := utils.SafeDivide(totalSales, adSpend)
	netMargin := utils.SafeDivide(netProfit, totalSales) * 100

	summary := &domain.StatsSummary{
		TotalSales:    utils.RoundWithTwoDecimalPlace(totalSales),
		OrdersCount:   len(filteredOrders),
		AdSpend:       utils.RoundWithTwoDecimalPlace(adSpend),
		COGS:          utils.RoundWithTwoDecimalPlace(cogs),
		TotalShipping: utils.RoundWithTwoDecimalPlace(totalShipping),
		EstimatedFees: utils.RoundWithTwoDecimalPlace(estimatedFees),
		TotalExpenses: utils.RoundWithTwoDecimalPlace(totalExpenses),
		NetProfit:     utils.RoundWithTwoDecimalPlace(netProfit),
		ROAS:          utils.RoundWithTwoDecimalPlace(roas),
		NetMargin:     utils.RoundWithTwoDecimalPlace(netMargin),
	}

	return &domain.ReportResponse{
		Summary:       summary,
		RevenueSeries: buildRevenueSeries(filteredOrders, filteredSales),
		RevenueSource: revenueSource,
	}
}

// withinPeriod verifica se a data cai dentro do período, inclusivo nas duas
// pontas, descartando a hora do dia.
func withinPeriod(date, startDate, endDate time.Time) bool {
	day := utils.TruncateToDay(date)
	start := utils.TruncateToDay(startDate)
	end := utils.TruncateToDay(endDate)

	return !day.Before(start) && !day.After(end)
}

func filterOrders(orders []*domain.Order, startDate, endDate time.Time) []*domain.Order {
	filtered := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		if withinPeriod(order.Date, startDate, endDate) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func filterSalesRecords(records []*domain.SalesRecord, startDate, endDate time.Time) []*domain.SalesRecord {
	filtered := make([]*domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if withinPeriod(record.Date, startDate, endDate) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func filterAdReports(reports []*domain.AdReport, startDate, endDate time.Time) []*domain.AdReport {
	filtered := make([]*domain.AdReport, 0, len(reports))
	for _, report := range reports {
		if report == nil {
			continue
		}
		if withinPeriod(report.Date, startDate, endDate) {
			filtered = append(filtered, report)
		}
	}
	return filtered
}

// buildRevenueSeries agrupa a receita filtrada por dia e ordena os pontos
// por data crescente. A fonte segue a mesma preferência binária do resumo.
func buildRevenueSeries(orders []*domain.Order, salesRecords []*domain.SalesRecord) []domain.RevenuePoint {
	buckets := make(map[string]float64)

	if len(salesRecords) > 0 {
		for _, record := range salesRecords {
			buckets[record.Date.Format(time.DateOnly)] += record.TotalSales
		}
	} else {
		for _, order := range orders {
			buckets[order.Date.Format(time.DateOnly)] += order.Total
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]domain.RevenuePoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, domain.RevenuePoint{
			Date:   date,
			Amount: utils.RoundWithTwoDecimalPlace(buckets[date]),
		})
	}

	return series
}
