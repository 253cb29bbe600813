package narrating

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/integrator/openai"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
)

// FallbackNarrative é a resposta usada quando a geração automática falha.
// O endpoint de narrativa nunca propaga falha do provedor para o cliente.
const FallbackNarrative = "Não foi possível gerar a análise automática no momento. " +
	"Revise as métricas do período manualmente e tente novamente mais tarde."

// NarrativeResponse é a resposta do endpoint de análise narrativa.
type NarrativeResponse struct {
	Narrative string                `json:"narrative"`
	Generated bool                  `json:"generated"`
	Summary   *domain.StatsSummary  `json:"summary"`
	Filters   *domain.ReportFilters `json:"filters"`
}

// Narrator define a interface para gerar a análise narrativa de um período
type Narrator interface {
	GenerateNarrative(filters *domain.ReportFilters) (*NarrativeResponse, error)
}

// Service implementa a interface Narrator
type Service struct {
	reporter   reporting.Reporter
	integrator openai.OpenAIIntegrator
}

// NewService cria uma nova instância do serviço de narrativa
func NewService(reporter reporting.Reporter, integrator openai.OpenAIIntegrator) Narrator {
	return &Service{
		reporter:   reporter,
		integrator: integrator,
	}
}

// GenerateNarrative calcula o resumo do período e pede ao provedor de IA uma
// análise em texto. Falha na geração degrada para uma mensagem fixa; só erros
// de filtro ou de leitura dos dados são propagados.
func (s *Service) GenerateNarrative(filters *domain.ReportFilters) (*NarrativeResponse, error) {
	report, err := s.reporter.GetSummary(filters)
	if err != nil {
		return nil, err
	}

	response := &NarrativeResponse{
		Summary: report.Summary,
		Filters: report.Filters,
	}

	narrative, err := s.integrator.GenerateInsights(SummaryText(report))
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar a análise narrativa, usando mensagem padrão")
		response.Narrative = FallbackNarrative
		return response, nil
	}

	if strings.TrimSpace(narrative) == "" {
		response.Narrative = FallbackNarrative
		return response, nil
	}

	response.Narrative = narrative
	response.Generated = true

	return response, nil
}

// SummaryText monta o texto simples enviado ao provedor de IA com as
// métricas do período.
func SummaryText(report *domain.ReportResponse) string {
	summary := report.Summary

	var sb strings.Builder
	sb.WriteString("Resumo financeiro do período:\n")
	fmt.Fprintf(&sb, "- Vendas totais: R$ %.2f (fonte: %s)\n", summary.TotalSales, report.RevenueSource)
	fmt.Fprintf(&sb, "- Pedidos: %d\n", summary.OrdersCount)
	fmt.Fprintf(&sb, "- Investimento em anúncios: R$ %.2f\n", summary.AdSpend)
	fmt.Fprintf(&sb, "- Custo de mercadoria (CMV): R$ %.2f\n", summary.COGS)
	fmt.Fprintf(&sb, "- Frete: R$ %.2f\n", summary.TotalShipping)
	fmt.Fprintf(&sb, "- Taxas estimadas: R$ %.2f\n", summary.EstimatedFees)
	fmt.Fprintf(&sb, "- Despesas manuais: R$ %.2f\n", summary.TotalExpenses)
	fmt.Fprintf(&sb, "- Lucro líquido: R$ %.2f\n", summary.NetProfit)
	fmt.Fprintf(&sb, "- ROAS: %.2f\n", summary.ROAS)
	fmt.Fprintf(&sb, "- Margem líquida: %.2f%%\n", summary.NetMargin)

	return sb.String()
}
