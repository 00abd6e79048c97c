package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/feishu"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/oceanengine"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/api"
	"github.com/vfg2006/ad-monitor-api/internal/api/handler"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/scheduler"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/alerting"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/ingesting"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/moderating"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/notifying"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/runlog"
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

	advertiserRepo := repository.NewAdvertiserRepository(pgConn)
	balanceRepo := repository.NewBalanceSnapshotRepository(pgConn)
	financeRepo := repository.NewFinanceDailyRepository(pgConn)
	alertEventRepo := repository.NewAlertEventRepository(pgConn)
	commentRepo := repository.NewCommentRepository(pgConn)
	commentActionRepo := repository.NewCommentActionRepository(pgConn)
	jobRunRepo := repository.NewJobRunRepository(pgConn)

	oeIntegrator := oceanengine.New(cfg)
	feishuNotifier := feishu.New(cfg)

	recorder := runlog.NewRecorder(jobRunRepo)

	ingester := ingesting.NewService(cfg, pgConn)
	alerter := alerting.NewService(cfg, balanceRepo, financeRepo, alertEventRepo, advertiserRepo, feishuNotifier)
	moderator := moderating.NewService(cfg, oeIntegrator, advertiserRepo, commentRepo, commentActionRepo)
	commentNotifier := notifying.NewService(cfg, commentActionRepo, feishuNotifier)

	rules, err := cfg.Rules()
	if err != nil {
		logrus.Fatal(err)
	}

	// Inicializa os agendadores
	ingestionSyncService := scheduler.NewIngestionSyncService(cfg, ingester, recorder)
	alertRulesService := scheduler.NewAlertRulesService(cfg, rules, alerter, recorder)
	commentModerationSyncService := scheduler.NewCommentModerationSyncService(cfg, moderator, recorder)
	commentNotifyService := scheduler.NewCommentNotifyService(cfg, commentNotifier, recorder)

	// Inicia os agendadores em background
	if err := ingestionSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de ingestão de snapshot")
	} else {
		logrus.Info("Agendador de ingestão de snapshot iniciado com sucesso")
	}

	if err := alertRulesService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de regras de saldo")
	} else {
		logrus.Info("Agendador de regras de saldo iniciado com sucesso")
	}

	if err := commentModerationSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de moderação de comentários")
	} else {
		logrus.Info("Agendador de moderação de comentários iniciado com sucesso")
	}

	if err := commentNotifyService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rollup de comentários")
	} else {
		logrus.Info("Agendador de rollup de comentários iniciado com sucesso")
	}

	healthDeps := handler.HealthDependencies{
		Config:            cfg,
		BalanceRepo:       balanceRepo,
		CommentRepo:       commentRepo,
		CommentActionRepo: commentActionRepo,
		JobRunRepo:        jobRunRepo,
	}

	server, err := api.New(
		cfg,
		alertEventRepo,
		healthDeps,
		ingestionSyncService,
		alertRulesService,
		commentModerationSyncService,
		commentNotifyService,
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
