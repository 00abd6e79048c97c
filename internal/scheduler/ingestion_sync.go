package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/ingesting"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/runlog"
)

const ingestionJobName = "ingest_snapshot"

// IngestionSyncService agenda a ingestão periódica do documento de
// snapshot produzido pelo coletor externo.
type IngestionSyncService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config
	ingester  ingesting.Ingester
	recorder  runlog.Recorder

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewIngestionSyncService(
	appConfig *config.Config,
	ingester ingesting.Ingester,
	recorder runlog.Recorder,
) *IngestionSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.IngestionSync.CronSchedule,
		"snapshot_path": appConfig.IngestionSync.SnapshotPath,
		"sync_enabled":  appConfig.IngestionSync.Enabled,
	}).Info("Configuração do agendador de ingestão carregada")

	return &IngestionSyncService{
		scheduler: gocron.NewScheduler(appConfig.Location),
		appConfig: appConfig,
		ingester:  ingester,
		recorder:  recorder,
	}
}

// Start inicia o agendador
func (s *IngestionSyncService) Start(ctx context.Context) error {
	if !s.appConfig.IngestionSync.Enabled {
		logrus.Info("Ingestão de snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.IngestionSync.CronSchedule).Info("Iniciando agendador de ingestão de snapshot")

	_, err := s.scheduler.Cron(s.appConfig.IngestionSync.CronSchedule).Do(func() {
		s.runIngestion(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ingestão de snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de ingestão de snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *IngestionSyncService) runIngestion(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ingestão de snapshot já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	s.lastSyncStartedAt = time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	err := s.recorder.Run(ingestionJobName, func() error {
		summary, err := s.ingester.IngestFile(ctx, s.appConfig.IngestionSync.SnapshotPath)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"snapshot_time": summary.SnapshotTime,
			"advertisers":   summary.Advertisers,
			"duplicates":    summary.Duplicates,
			"finance_rows":  summary.FinanceRows,
			"failures":      summary.Failures,
		}).Info("Ingestão de snapshot concluída")
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("Ingestão de snapshot falhou")
		return
	}

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma ingestão de snapshot. A execução
// é desacoplada da requisição que a disparou.
func (s *IngestionSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ingestão de snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ingestão manual de snapshot")
	go s.runIngestion(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *IngestionSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.appConfig.IngestionSync.Enabled,
		"sync_cron":              s.appConfig.IngestionSync.CronSchedule,
		"snapshot_path":          s.appConfig.IngestionSync.SnapshotPath,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
