package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/internal/config"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
)

// SnapshotSyncConfig representa a configuração do agendador de snapshots diários
type SnapshotSyncConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// SnapshotSyncService gerencia o agendamento e execução da consolidação diária
// de métricas. A cada execução, o resumo do dia anterior é calculado e gravado
// como snapshot, e snapshots além da retenção são removidos.
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	appConfig           *config.Config
	reporter            reporting.Reporter
	snapshotRepo        repository.StatsSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService cria uma nova instância do serviço de snapshots diários
func NewSnapshotSyncService(
	reporter reporting.Reporter,
	snapshotRepo repository.StatsSnapshotRepository,
	appConfig *config.Config,
) *SnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := SnapshotSyncConfig{
		CronSchedule:  appConfig.SnapshotSync.CronSchedule,
		RetentionDays: appConfig.SnapshotSync.RetentionDays,
		SyncEnabled:   appConfig.SnapshotSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots diários carregada")

	return &SnapshotSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		reporter:     reporter,
		snapshotRepo: snapshotRepo,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Consolidação de snapshots diários desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots diários")

	// Agendar a consolidação diária
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDailySnapshot()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar consolidação de snapshots diários: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots diários")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDailySnapshot consolida o resumo do dia anterior em um snapshot
func (s *SnapshotSyncService) syncDailySnapshot() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Consolidação de snapshot já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	// Consolidar o dia anterior: o dia corrente ainda está em aberto.
	date := time.Now().AddDate(0, 0, -1)

	logrus.WithField("date", date.Format(time.DateOnly)).Info("Iniciando consolidação do snapshot diário")

	if err := s.processSnapshotForDate(date); err != nil {
		logrus.WithFields(logrus.Fields{
			"date":  date.Format(time.DateOnly),
			"error": err.Error(),
		}).Error("Erro ao consolidar snapshot diário")
		return
	}

	s.applyRetention()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"date":     date.Format(time.DateOnly),
	}).Info("Consolidação de snapshot diário concluída")

	s.lastSyncCompletedAt = time.Now()
}

// processSnapshotForDate calcula o resumo de um dia e grava o snapshot
func (s *SnapshotSyncService) processSnapshotForDate(date time.Time) error {
	summary, err := s.reporter.GetDailySummary(date)
	if err != nil {
		return fmt.Errorf("erro ao calcular o resumo do dia: %w", err)
	}

	snapshot := &domain.StatsSnapshot{
		Date:    date,
		Summary: summary,
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		return fmt.Errorf("erro ao salvar o snapshot no banco de dados: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"date":        date.Format(time.DateOnly),
		"total_sales": summary.TotalSales,
		"net_profit":  summary.NetProfit,
	}).Info("Snapshot diário salvo com sucesso")

	return nil
}

// applyRetention remove snapshots mais antigos que o período de retenção
func (s *SnapshotSyncService) applyRetention() {
	if s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao aplicar retenção de snapshots")
		return
	}

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed":        removed,
			"retention_days": s.config.RetentionDays,
		}).Info("Snapshots antigos removidos")
	}
}

// TriggerManualSync inicia manualmente uma consolidação de snapshot
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Consolidação de snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando consolidação manual de snapshot")
	go s.syncDailySnapshot()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
