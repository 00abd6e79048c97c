package alerting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/feishu"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"github.com/vfg2006/ad-monitor-api/pkg/utils"
)

// notifyWindow limita o rollup aos alertas recentes: o que passar disso
// sem notificação envelhece para fora do lote em vez de acumular.
const notifyWindow = 24 * time.Hour

// Evaluation é o resultado de uma avaliação de regra.
type Evaluation struct {
	Rule        domain.AlertRule
	EvaluatedAt time.Time
	Readings    int
	Suppressed  int
	Hits        int
	NewEvents   []*domain.AlertEvent
}

// Alerter avalia regras de depleção de saldo sobre o último snapshot e o
// consumo de baseline, persiste os eventos com dedup por period_bucket e
// notifica via rollup marcado-após-confirmação.
type Alerter interface {
	RunRule(rule domain.AlertRule) error
	Evaluate(rule domain.AlertRule, now time.Time) (*Evaluation, error)
}

type alertService struct {
	cfg            *config.Config
	balanceRepo    repository.BalanceSnapshotRepository
	financeRepo    repository.FinanceDailyRepository
	alertRepo      repository.AlertEventRepository
	advertiserRepo repository.AdvertiserRepository
	notifier       feishu.Notifier

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	balanceRepo repository.BalanceSnapshotRepository,
	financeRepo repository.FinanceDailyRepository,
	alertRepo repository.AlertEventRepository,
	advertiserRepo repository.AdvertiserRepository,
	notifier feishu.Notifier,
) Alerter {
	return &alertService{
		cfg:            cfg,
		balanceRepo:    balanceRepo,
		financeRepo:    financeRepo,
		alertRepo:      alertRepo,
		advertiserRepo: advertiserRepo,
		notifier:       notifier,
		now:            time.Now,
	}
}

// RunRule é o ciclo completo de uma regra: avaliar, notificar o rollup de
// alertas pendentes e, para regras com AlwaysNotify, enviar o resumo
// diário mesmo sem disparo.
func (s *alertService) RunRule(rule domain.AlertRule) error {
	now := s.now().In(s.cfg.Location)

	eval, err := s.Evaluate(rule, now)
	if err != nil {
		return err
	}

	logrus.Infof("Regra avaliada rule=%s leituras=%d suprimidos=%d hits=%d novos=%d",
		rule.ID, eval.Readings, eval.Suppressed, eval.Hits, len(eval.NewEvents))

	if s.notifier == nil {
		return nil
	}

	if err := s.notifyPending(rule, now); err != nil {
		return err
	}

	if rule.AlwaysNotify {
		if err := s.sendDailyReport(rule, now); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate aplica a regra sobre a última leitura de saldo de cada
// anunciante. Baseline não-positivo suprime a conta: sem consumo não há
// urgência de recarga e a divisão seria degenerada.
func (s *alertService) Evaluate(rule domain.AlertRule, now time.Time) (*Evaluation, error) {
	readings, err := s.balanceRepo.LatestPerAdvertiser()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar os saldos: %w", err)
	}

	baseline, err := s.baselineSpend(rule, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o baseline de consumo: %w", err)
	}

	eval := &Evaluation{
		Rule:        rule,
		EvaluatedAt: now,
		Readings:    len(readings),
		NewEvents:   make([]*domain.AlertEvent, 0),
	}

	periodBucket := rule.PeriodBucket(now)
	yesterday := utils.Yesterday(now)

	for _, reading := range readings {
		if reading.Valid == nil {
			eval.Suppressed++
			continue
		}

		spend, ok := baseline[reading.AdvertiserID]
		if !ok || spend <= 0 {
			eval.Suppressed++
			continue
		}

		ratio := *reading.Valid / spend
		threshold, hit := rule.Match(ratio)
		if !hit {
			continue
		}
		eval.Hits++

		detail, _ := json.Marshal(map[string]interface{}{
			"yesterday":      yesterday.Format(time.DateOnly),
			"baseline_spend": spend,
			"balance_valid":  *reading.Valid,
			"threshold":      threshold.Multiplier * spend,
		})

		event := &domain.AlertEvent{
			AlertTime:           now,
			AdvertiserID:        reading.AdvertiserID,
			RuleID:              rule.ID,
			Severity:            threshold.Severity,
			BalanceValid:        *reading.Valid,
			BaselineSpend:       spend,
			ThresholdMultiplier: threshold.Multiplier,
			Ratio:               ratio,
			SnapshotTime:        reading.SnapshotTime,
			PeriodBucket:        periodBucket,
			DedupKey:            domain.AlertDedupKey(reading.AdvertiserID, rule.ID, periodBucket),
			Status:              domain.AlertStatusOpen,
			Detail:              detail,
		}

		created, err := s.alertRepo.Insert(event)
		if err != nil {
			return nil, fmt.Errorf("erro ao gravar o alerta do anunciante %d: %w", reading.AdvertiserID, err)
		}
		if created {
			eval.NewEvents = append(eval.NewEvents, event)
		}
	}

	return eval, nil
}

// baselineSpend carrega o consumo de referência por anunciante: o dia
// anterior para lookback 1, ou a média diária da janela para lookbacks
// maiores.
func (s *alertService) baselineSpend(rule domain.AlertRule, now time.Time) (map[int64]float64, error) {
	yesterday := utils.Yesterday(now)

	lookback := rule.BaselineLookbackDays
	if lookback <= 1 {
		return s.financeRepo.CostByDay(yesterday)
	}

	start := yesterday.AddDate(0, 0, -(lookback - 1))
	totals, err := s.financeRepo.CostBetween(start, yesterday)
	if err != nil {
		return nil, err
	}

	baseline := make(map[int64]float64, len(totals))
	for advertiserID, total := range totals {
		baseline[advertiserID] = total / float64(lookback)
	}

	return baseline, nil
}

// notifyPending envia o rollup de alertas ainda não notificados e carimba
// notified_at somente após entrega confirmada. Anunciantes que já
// atingiram o teto diário ficam fora do lote e envelhecem para fora da
// janela sem spam.
func (s *alertService) notifyPending(rule domain.AlertRule, now time.Time) error {
	pending, err := s.alertRepo.ListUnnotified(rule.ID, notifyWindow)
	if err != nil {
		return fmt.Errorf("erro ao listar alertas pendentes: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	batch := pending
	if rule.MaxNotifyPerDay > 0 {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
		counts, err := s.alertRepo.CountNotifiedSince(midnight)
		if err != nil {
			return fmt.Errorf("erro ao carregar o teto diário de notificações: %w", err)
		}

		batch = make([]*domain.AlertEvent, 0, len(pending))
		quota := make(map[int64]int, len(counts))
		for advertiserID, used := range counts {
			quota[advertiserID] = used
		}
		for _, event := range pending {
			if quota[event.AdvertiserID] >= rule.MaxNotifyPerDay {
				continue
			}
			quota[event.AdvertiserID]++
			batch = append(batch, event)
		}
	}

	if len(batch) == 0 {
		logrus.Infof("Rollup de alertas suprimido pelo teto diário rule=%s pendentes=%d", rule.ID, len(pending))
		return nil
	}

	text := s.buildAlertText(rule, now, batch)
	if err := s.notifier.SendText(text); err != nil {
		// Sem confirmação, nada é marcado: o lote volta inteiro no
		// próximo ciclo.
		return fmt.Errorf("erro ao enviar o rollup de alertas: %w", err)
	}

	keys := make([]string, 0, len(batch))
	for _, event := range batch {
		keys = append(keys, event.DedupKey)
	}
	if err := s.alertRepo.MarkNotified(keys); err != nil {
		return fmt.Errorf("erro ao marcar alertas notificados: %w", err)
	}

	logrus.Infof("Rollup de alertas enviado rule=%s eventos=%d", rule.ID, len(batch))
	return nil
}
