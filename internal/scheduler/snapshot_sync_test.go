package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pvilarim/ecomdash-api/infrastructure/repository/mocks"
	"github.com/pvilarim/ecomdash-api/internal/domain"
	reportingMocks "github.com/pvilarim/ecomdash-api/internal/usecases/reporting/mocks"
)

func TestSnapshotSyncService_processSnapshotForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingMocks.NewMockReporter(ctrl)
	mockSnapshotRepo := mocks.NewMockStatsSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		reporter:     mockReporter,
		snapshotRepo: mockSnapshotRepo,
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	summary := &domain.StatsSummary{
		TotalSales: 1000,
		NetProfit:  600,
	}

	mockReporter.EXPECT().GetDailySummary(date).Return(summary, nil)
	mockSnapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(snapshot *domain.StatsSnapshot) error {
		assert.Equal(t, date, snapshot.Date)
		assert.Equal(t, summary, snapshot.Summary)
		return nil
	})

	err := service.processSnapshotForDate(date)

	require.NoError(t, err)
}

func TestSnapshotSyncService_processSnapshotForDateReportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingMocks.NewMockReporter(ctrl)
	mockSnapshotRepo := mocks.NewMockStatsSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		reporter:     mockReporter,
		snapshotRepo: mockSnapshotRepo,
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	mockReporter.EXPECT().GetDailySummary(date).Return(nil, errors.New("banco indisponível"))

	err := service.processSnapshotForDate(date)

	assert.Error(t, err)
}

func TestSnapshotSyncService_applyRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockStatsSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		config:       SnapshotSyncConfig{RetentionDays: 400},
		snapshotRepo: mockSnapshotRepo,
	}

	mockSnapshotRepo.EXPECT().DeleteOlderThan(400).Return(int64(3), nil)

	service.applyRetention()
}

func TestSnapshotSyncService_applyRetentionDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockStatsSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		config:       SnapshotSyncConfig{RetentionDays: 0},
		snapshotRepo: mockSnapshotRepo,
	}

	// Sem retenção configurada, nada é removido.
	service.applyRetention()
}

func TestSnapshotSyncService_GetStatus(t *testing.T) {
	service := &SnapshotSyncService{
		config: SnapshotSyncConfig{
			CronSchedule:  "0 3 * * *",
			RetentionDays: 400,
			SyncEnabled:   true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 400, status["retention_days"])
}
