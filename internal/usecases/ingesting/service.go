package ingesting

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/pkg/utils"
)

// Tipos de upload aceitos pela importação de CSV.
const (
	UploadTypeOrders       = "orders"
	UploadTypeSalesRecords = "sales"
	UploadTypeAdReports    = "ads"
)

// IngestResult resume o resultado de uma importação de arquivo.
type IngestResult struct {
	Type     string `json:"type"`
	Imported int    `json:"imported"`
	Failed   int    `json:"failed"`
}

// Ingestor define a interface para importar relatórios CSV
type Ingestor interface {
	Ingest(uploadType string, file io.Reader) (*IngestResult, error)
}

// Service implementa a interface Ingestor
type Service struct {
	orderRepository       repository.OrderRepository
	salesRecordRepository repository.SalesRecordRepository
	adReportRepository    repository.AdReportRepository
}

// NewService cria uma nova instância do serviço de importação
func NewService(
	orderRepo repository.OrderRepository,
	salesRecordRepo repository.SalesRecordRepository,
	adReportRepo repository.AdReportRepository,
) Ingestor {
	return &Service{
		orderRepository:       orderRepo,
		salesRecordRepository: salesRecordRepo,
		adReportRepository:    adReportRepo,
	}
}

// Ingest interpreta o CSV conforme o tipo informado e persiste os registros.
// Reimportar o mesmo arquivo atualiza os registros existentes em vez de
// duplicá-los (upsert por chave natural).
func (s *Service) Ingest(uploadType string, file io.Reader) (*IngestResult, error) {
	switch uploadType {
	case UploadTypeOrders:
		return s.ingestOrders(file)
	case UploadTypeSalesRecords:
		return s.ingestSalesRecords(file)
	case UploadTypeAdReports:
		return s.ingestAdReports(file)
	default:
		return nil, fmt.Errorf("tipo de upload desconhecido: %s", uploadType)
	}
}

func (s *Service) ingestOrders(file io.Reader) (*IngestResult, error) {
	result := &IngestResult{Type: UploadTypeOrders}

	for _, order := range ParseOrders(file) {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar o ID do pedido: %w", err)
		}
		order.ID = id

		if err := s.orderRepository.SaveOrUpdate(order); err != nil {
			logrus.WithError(err).WithField("external_id", order.ExternalID).Error("Erro ao salvar pedido importado")
			result.Failed++
			continue
		}
		result.Imported++
	}

	if total, err := s.orderRepository.CountAll(); err == nil {
		logrus.WithFields(logrus.Fields{
			"imported": result.Imported,
			"failed":   result.Failed,
			"total":    total,
		}).Info("Importação de pedidos concluída")
	}

	return result, nil
}

func (s *Service) ingestSalesRecords(file io.Reader) (*IngestResult, error) {
	result := &IngestResult{Type: UploadTypeSalesRecords}

	for _, record := range ParseSalesRecords(file) {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar o ID do registro de vendas: %w", err)
		}
		record.ID = id

		if err := s.salesRecordRepository.SaveOrUpdate(record); err != nil {
			logrus.WithError(err).WithField("date", record.Date).Error("Erro ao salvar registro de vendas importado")
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *Service) ingestAdReports(file io.Reader) (*IngestResult, error) {
	result := &IngestResult{Type: UploadTypeAdReports}

	for _, report := range ParseAdReports(file) {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar o ID do relatório de anúncios: %w", err)
		}
		report.ID = id

		if err := s.adReportRepository.SaveOrUpdate(report); err != nil {
			logrus.WithError(err).WithField("campaign", report.CampaignName).Error("Erro ao salvar relatório de anúncios importado")
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}
