package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/moderating"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/runlog"
)

const commentSyncJobName = "comment_sync"

// CommentModerationSyncService agenda a varredura e ocultação de
// comentários negativos via OceanEngine.
type CommentModerationSyncService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config
	moderator moderating.Moderator
	recorder  runlog.Recorder

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewCommentModerationSyncService(
	appConfig *config.Config,
	moderator moderating.Moderator,
	recorder runlog.Recorder,
) *CommentModerationSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":  appConfig.CommentSync.CronSchedule,
		"page_size":      appConfig.CommentSync.PageSize,
		"max_delay_secs": appConfig.CommentSync.MaxStartupDelaySeconds,
		"sync_enabled":   appConfig.CommentSync.Enabled,
	}).Info("Configuração do agendador de moderação de comentários carregada")

	return &CommentModerationSyncService{
		scheduler: gocron.NewScheduler(appConfig.Location),
		appConfig: appConfig,
		moderator: moderator,
		recorder:  recorder,
	}
}

// Start inicia o agendador
func (s *CommentModerationSyncService) Start(ctx context.Context) error {
	if !s.appConfig.CommentSync.Enabled {
		logrus.Info("Moderação de comentários desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.CommentSync.CronSchedule).Info("Iniciando agendador de moderação de comentários")

	_, err := s.scheduler.Cron(s.appConfig.CommentSync.CronSchedule).Do(func() {
		s.runModeration()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar moderação de comentários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de moderação de comentários")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CommentModerationSyncService) runModeration() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Moderação de comentários já em andamento, ignorando")
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

	// Atraso aleatório para espalhar a pressão sobre a API quando vários
	// processos compartilham o mesmo horário de cron.
	if maxDelay := s.appConfig.CommentSync.MaxStartupDelaySeconds; maxDelay > 0 {
		delay := time.Duration(rand.Intn(maxDelay+1)) * time.Second
		logrus.WithField("delay", delay).Info("Aguardando antes de iniciar a moderação de comentários")
		time.Sleep(delay)
	}

	err := s.recorder.Run(commentSyncJobName, func() error {
		summary, err := s.moderator.SyncAndHide()
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"advertisers":       summary.Advertisers,
			"skipped_no_access": summary.SkippedNoAccess,
			"upserted":          summary.Upserted,
			"already_actioned":  summary.AlreadyActioned,
			"hide_success":      summary.HideSuccess,
			"hide_failed":       summary.HideFailed,
		}).Info("Moderação de comentários concluída")
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("Moderação de comentários falhou")
		return
	}

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma varredura de comentários
func (s *CommentModerationSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Moderação de comentários já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando moderação manual de comentários")
	go s.runModeration()
}

// GetStatus retorna o status atual do agendador
func (s *CommentModerationSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.appConfig.CommentSync.Enabled,
		"sync_cron":              s.appConfig.CommentSync.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
