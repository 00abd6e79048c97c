package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/alerting"
	"github.com/vfg2006/ad-monitor-api/internal/usecases/runlog"
)

// AlertRulesService agenda a avaliação das regras de saldo, uma entrada
// de cron por regra habilitada.
type AlertRulesService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config
	rules     []domain.AlertRule
	alerter   alerting.Alerter
	recorder  runlog.Recorder

	syncMutex          sync.Mutex
	rulesRunning       map[string]bool
	lastRunStartedAt   map[string]time.Time
	lastRunCompletedAt map[string]time.Time
}

func NewAlertRulesService(
	appConfig *config.Config,
	rules []domain.AlertRule,
	alerter alerting.Alerter,
	recorder runlog.Recorder,
) *AlertRulesService {
	for _, rule := range rules {
		logrus.WithFields(logrus.Fields{
			"rule_id":       rule.ID,
			"cron_schedule": rule.CronSchedule,
			"rule_enabled":  rule.Enabled,
		}).Info("Configuração de regra de saldo carregada")
	}

	return &AlertRulesService{
		scheduler:          gocron.NewScheduler(appConfig.Location),
		appConfig:          appConfig,
		rules:              rules,
		alerter:            alerter,
		recorder:           recorder,
		rulesRunning:       make(map[string]bool),
		lastRunStartedAt:   make(map[string]time.Time),
		lastRunCompletedAt: make(map[string]time.Time),
	}
}

// Start inicia o agendador
func (s *AlertRulesService) Start(ctx context.Context) error {
	scheduled := 0

	for _, rule := range s.rules {
		if !rule.Enabled {
			logrus.WithField("rule_id", rule.ID).Info("Regra de saldo desabilitada por configuração")
			continue
		}

		rule := rule
		_, err := s.scheduler.Cron(rule.CronSchedule).Do(func() {
			s.runRule(rule)
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar regra %s: %w", rule.ID, err)
		}
		scheduled++
	}

	if scheduled == 0 {
		logrus.Info("Nenhuma regra de saldo habilitada, agendador não iniciado")
		return nil
	}

	logrus.WithField("rules", scheduled).Info("Iniciando agendador de regras de saldo")
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de regras de saldo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AlertRulesService) runRule(rule domain.AlertRule) {
	s.syncMutex.Lock()
	if s.rulesRunning[rule.ID] {
		s.syncMutex.Unlock()
		logrus.WithField("rule_id", rule.ID).Info("Avaliação da regra já em andamento, ignorando")
		return
	}
	s.rulesRunning[rule.ID] = true
	s.lastRunStartedAt[rule.ID] = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.rulesRunning[rule.ID] = false
		s.syncMutex.Unlock()
	}()

	jobName := "alert_" + rule.ID

	err := s.recorder.Run(jobName, func() error {
		return s.alerter.RunRule(rule)
	})
	if err != nil {
		logrus.WithError(err).WithField("rule_id", rule.ID).Error("Avaliação da regra de saldo falhou")
		return
	}

	s.syncMutex.Lock()
	s.lastRunCompletedAt[rule.ID] = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync avalia manualmente uma regra pelo seu identificador
func (s *AlertRulesService) TriggerManualSync(ruleID string) error {
	for _, rule := range s.rules {
		if rule.ID != ruleID {
			continue
		}

		logrus.WithField("rule_id", ruleID).Info("Iniciando avaliação manual da regra de saldo")
		go s.runRule(rule)
		return nil
	}

	return fmt.Errorf("regra desconhecida: %s", ruleID)
}

// GetStatus retorna o status atual do agendador
func (s *AlertRulesService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	ruleStatus := make(map[string]any, len(s.rules))
	for _, rule := range s.rules {
		ruleStatus[rule.ID] = map[string]any{
			"rule_enabled":          rule.Enabled,
			"rule_cron":             rule.CronSchedule,
			"last_run_started_at":   s.lastRunStartedAt[rule.ID],
			"last_run_completed_at": s.lastRunCompletedAt[rule.ID],
		}
	}

	return map[string]any{"rules": ruleStatus}
}
