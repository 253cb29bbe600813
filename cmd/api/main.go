package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/pvilarim/ecomdash-api/infrastructure/database/postgres"
	"github.com/pvilarim/ecomdash-api/infrastructure/integrator/openai"
	"github.com/pvilarim/ecomdash-api/infrastructure/integrator/openai/openaiclient"
	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/internal/api"
	"github.com/pvilarim/ecomdash-api/internal/config"
	"github.com/pvilarim/ecomdash-api/internal/scheduler"
	"github.com/pvilarim/ecomdash-api/internal/usecases/authenticating"
	"github.com/pvilarim/ecomdash-api/internal/usecases/ingesting"
	"github.com/pvilarim/ecomdash-api/internal/usecases/narrating"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	salesRecordRepo := repository.NewSalesRecordRepository(pgConn)
	adReportRepo := repository.NewAdReportRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	productCostRepo := repository.NewProductCostRepository(pgConn)
	statsSnapshotRepo := repository.NewStatsSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	openaiClient := openaiclient.NewClient(cfg)
	openaiIntegrator := openai.New(cfg, openaiClient)

	reporter := reporting.NewService(
		cfg,
		orderRepo,
		salesRecordRepo,
		adReportRepo,
		expenseRepo,
		productCostRepo,
	)

	ingestor := ingesting.NewService(orderRepo, salesRecordRepo, adReportRepo)

	narrator := narrating.NewService(reporter, openaiIntegrator)

	// Inicializa o agendador de snapshots diários
	snapshotSyncService := scheduler.NewSnapshotSyncService(
		reporter,
		statsSnapshotRepo,
		cfg,
	)

	// Inicia o agendador em background
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots diários")
	} else {
		logrus.Info("Agendador de snapshots diários iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reporter,
		ingestor,
		narrator,
		authenticator,
		expenseRepo,
		productCostRepo,
		statsSnapshotRepo,
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
