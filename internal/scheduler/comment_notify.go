package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/notifying"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/runlog"
)

const commentNotifyJobName = "comment_notify"

// CommentNotifyService agenda o rollup diário de comentários ocultados.
type CommentNotifyService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config
	notifier  notifying.Notifier
	recorder  runlog.Recorder

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewCommentNotifyService(
	appConfig *config.Config,
	notifier notifying.Notifier,
	recorder runlog.Recorder,
) *CommentNotifyService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.CommentNotify.CronSchedule,
		"window_hours":  appConfig.CommentNotify.WindowHours,
		"sync_enabled":  appConfig.CommentNotify.Enabled,
	}).Info("Configuração do agendador de rollup de comentários carregada")

	return &CommentNotifyService{
		scheduler: gocron.NewScheduler(appConfig.Location),
		appConfig: appConfig,
		notifier:  notifier,
		recorder:  recorder,
	}
}

// Start inicia o agendador
func (s *CommentNotifyService) Start(ctx context.Context) error {
	if !s.appConfig.CommentNotify.Enabled {
		logrus.Info("Rollup de comentários desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.CommentNotify.CronSchedule).Info("Iniciando agendador de rollup de comentários")

	_, err := s.scheduler.Cron(s.appConfig.CommentNotify.CronSchedule).Do(func() {
		s.runNotify()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rollup de comentários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de rollup de comentários")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CommentNotifyService) runNotify() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Rollup de comentários já em andamento, ignorando")
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

	err := s.recorder.Run(commentNotifyJobName, func() error {
		return s.notifier.NotifyHiddenComments()
	})
	if err != nil {
		logrus.WithError(err).Error("Rollup de comentários falhou")
		return
	}

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente o rollup de comentários
func (s *CommentNotifyService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Rollup de comentários já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando rollup manual de comentários")
	go s.runNotify()
}

// GetStatus retorna o status atual do agendador
func (s *CommentNotifyService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.appConfig.CommentNotify.Enabled,
		"sync_cron":              s.appConfig.CommentNotify.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
