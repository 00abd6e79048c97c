package alerting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	feishumocks "github.com/vfg2006/ad-monitor-api/infrastructure/integrator/feishu/mocks"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	balanceRepo    *mocks.MockBalanceSnapshotRepository
	financeRepo    *mocks.MockFinanceDailyRepository
	alertRepo      *mocks.MockAlertEventRepository
	advertiserRepo *mocks.MockAdvertiserRepository
	notifier       *feishumocks.MockNotifier
}

func newService(t *testing.T, ctrl *gomock.Controller, referenceTime time.Time) (*alertService, *serviceMocks) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	m := &serviceMocks{
		balanceRepo:    mocks.NewMockBalanceSnapshotRepository(ctrl),
		financeRepo:    mocks.NewMockFinanceDailyRepository(ctrl),
		alertRepo:      mocks.NewMockAlertEventRepository(ctrl),
		advertiserRepo: mocks.NewMockAdvertiserRepository(ctrl),
		notifier:       feishumocks.NewMockNotifier(ctrl),
	}

	service := &alertService{
		cfg: &config.Config{
			Timezone: "Asia/Shanghai",
			Location: loc,
			Feishu:   config.Feishu{UnitMult: 0.00001, Digits: 2},
		},
		balanceRepo:    m.balanceRepo,
		financeRepo:    m.financeRepo,
		alertRepo:      m.alertRepo,
		advertiserRepo: m.advertiserRepo,
		notifier:       m.notifier,
		now:            func() time.Time { return referenceTime },
	}

	return service, m
}

func dailyRule() domain.AlertRule {
	return domain.AlertRule{
		ID:                   "RULE_00",
		Granularity:          domain.GranularityDay,
		BaselineLookbackDays: 1,
		Thresholds:           []domain.RuleThreshold{{Multiplier: 2.0, Severity: domain.SeverityWarn}},
		MaxItems:             80,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestAlertService_Evaluate(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	referenceTime := time.Date(2025, 3, 10, 0, 5, 0, 0, loc)
	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	snapshotTime := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	tests := []struct {
		name     string
		rule     domain.AlertRule
		setup    func(m *serviceMocks)
		validate func(t *testing.T, eval *Evaluation)
	}{
		{
			name: "Saldo abaixo do limiar vira evento com dedup_key do bucket",
			rule: dailyRule(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 101, SnapshotTime: snapshotTime, Valid: floatPtr(100000)},
				}, nil)
				m.financeRepo.EXPECT().CostByDay(yesterday).Return(map[int64]float64{101: 80000}, nil)
				m.alertRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(event *domain.AlertEvent) (bool, error) {
						assert.Equal(t, int64(101), event.AdvertiserID)
						assert.Equal(t, domain.SeverityWarn, event.Severity)
						assert.Equal(t, 2.0, event.ThresholdMultiplier)
						assert.InDelta(t, 1.25, event.Ratio, 0.001)
						assert.Equal(t, "2025-03-10", event.PeriodBucket)
						assert.Equal(t, domain.AlertDedupKey(101, "RULE_00", "2025-03-10"), event.DedupKey)
						assert.Equal(t, domain.AlertStatusOpen, event.Status)
						return true, nil
					})
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Equal(t, 1, eval.Hits)
				assert.Len(t, eval.NewEvents, 1)
			},
		},
		{
			name: "Tabela com dois limiares grava o mais apertado cruzado",
			rule: func() domain.AlertRule {
				rule := dailyRule()
				rule.Thresholds = []domain.RuleThreshold{
					{Multiplier: 1.0, Severity: domain.SeverityCrit},
					{Multiplier: 2.0, Severity: domain.SeverityWarn},
				}
				return rule
			}(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 1001, SnapshotTime: snapshotTime, Valid: floatPtr(5000)},
				}, nil)
				m.financeRepo.EXPECT().CostByDay(yesterday).Return(map[int64]float64{1001: 10000}, nil)
				m.alertRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(event *domain.AlertEvent) (bool, error) {
						assert.Equal(t, domain.SeverityCrit, event.Severity)
						assert.Equal(t, 1.0, event.ThresholdMultiplier)
						assert.InDelta(t, 0.5, event.Ratio, 0.001)
						return true, nil
					})
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Equal(t, 1, eval.Hits)
				assert.Len(t, eval.NewEvents, 1)
			},
		},
		{
			name: "Baseline zero suprime o anunciante",
			rule: dailyRule(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 101, SnapshotTime: snapshotTime, Valid: floatPtr(100000)},
					{AdvertiserID: 202, SnapshotTime: snapshotTime, Valid: floatPtr(50)},
				}, nil)
				m.financeRepo.EXPECT().CostByDay(yesterday).Return(map[int64]float64{101: 0}, nil)
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Equal(t, 0, eval.Hits)
				assert.Equal(t, 2, eval.Suppressed)
				assert.Empty(t, eval.NewEvents)
			},
		},
		{
			name: "Leitura sem saldo coletado é pulada para evitar falso positivo",
			rule: dailyRule(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 101, SnapshotTime: snapshotTime, Valid: nil},
				}, nil)
				m.financeRepo.EXPECT().CostByDay(yesterday).Return(map[int64]float64{101: 80000}, nil)
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Equal(t, 1, eval.Suppressed)
				assert.Empty(t, eval.NewEvents)
			},
		},
		{
			name: "Dedup no banco: evento repetido no bucket não entra em NewEvents",
			rule: dailyRule(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 101, SnapshotTime: snapshotTime, Valid: floatPtr(100000)},
				}, nil)
				m.financeRepo.EXPECT().CostByDay(yesterday).Return(map[int64]float64{101: 80000}, nil)
				m.alertRepo.EXPECT().Insert(gomock.Any()).Return(false, nil)
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Equal(t, 1, eval.Hits)
				assert.Empty(t, eval.NewEvents)
			},
		},
		{
			name: "Lookback maior que um dia usa a média diária da janela",
			rule: func() domain.AlertRule {
				rule := dailyRule()
				rule.BaselineLookbackDays = 7
				return rule
			}(),
			setup: func(m *serviceMocks) {
				m.balanceRepo.EXPECT().LatestPerAdvertiser().Return([]*domain.BalanceReading{
					{AdvertiserID: 101, SnapshotTime: snapshotTime, Valid: floatPtr(100000)},
				}, nil)
				windowStart := time.Date(2025, 3, 3, 0, 0, 0, 0, loc)
				m.financeRepo.EXPECT().
					CostBetween(windowStart, yesterday).
					Return(map[int64]float64{101: 560000}, nil)
				m.alertRepo.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(event *domain.AlertEvent) (bool, error) {
						assert.InDelta(t, 80000.0, event.BaselineSpend, 0.001)
						return true, nil
					})
			},
			validate: func(t *testing.T, eval *Evaluation) {
				assert.Len(t, eval.NewEvents, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newService(t, ctrl, referenceTime)
			tt.setup(m)

			eval, err := service.Evaluate(tt.rule, referenceTime)

			require.NoError(t, err)
			tt.validate(t, eval)
		})
	}
}

func TestAlertService_NotifyPending(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	referenceTime := time.Date(2025, 3, 10, 0, 35, 0, 0, loc)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	pendingEvent := func(advertiserID int64, dedupKey string) *domain.AlertEvent {
		return &domain.AlertEvent{
			AdvertiserID:        advertiserID,
			AdvertiserName:      "Conta",
			RuleID:              "RULE_30M",
			Severity:            domain.SeverityCrit,
			BalanceValid:        50000,
			BaselineSpend:       80000,
			ThresholdMultiplier: 1.0,
			Ratio:               0.62,
			SnapshotTime:        referenceTime,
			PeriodBucket:        "2025-03-10T00:30",
			DedupKey:            dedupKey,
			Status:              domain.AlertStatusOpen,
		}
	}

	rule := domain.AlertRule{
		ID:              "RULE_30M",
		Granularity:     domain.GranularityMinutes,
		BucketMinutes:   30,
		Thresholds:      []domain.RuleThreshold{{Multiplier: 1.0, Severity: domain.SeverityCrit}},
		MaxNotifyPerDay: 3,
	}

	t.Run("Entrega confirmada marca o lote inteiro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl, referenceTime)

		m.alertRepo.EXPECT().ListUnnotified("RULE_30M", notifyWindow).Return([]*domain.AlertEvent{
			pendingEvent(101, "key-a"),
			pendingEvent(202, "key-b"),
		}, nil)
		m.alertRepo.EXPECT().CountNotifiedSince(midnight).Return(map[int64]int{}, nil)
		m.notifier.EXPECT().
			SendText(gomock.Any()).
			DoAndReturn(func(text string) error {
				// O título do rollup é o da regra dona dos eventos.
				assert.Contains(t, text, "余额预警·30分钟")
				return nil
			})
		m.alertRepo.EXPECT().MarkNotified([]string{"key-a", "key-b"}).Return(nil)

		assert.NoError(t, service.notifyPending(rule, referenceTime))
	})

	t.Run("Falha de entrega não marca nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl, referenceTime)

		m.alertRepo.EXPECT().ListUnnotified("RULE_30M", notifyWindow).Return([]*domain.AlertEvent{
			pendingEvent(101, "key-a"),
		}, nil)
		m.alertRepo.EXPECT().CountNotifiedSince(midnight).Return(map[int64]int{}, nil)
		m.notifier.EXPECT().SendText(gomock.Any()).Return(errors.New("webhook indisponível"))

		err := service.notifyPending(rule, referenceTime)

		assert.ErrorContains(t, err, "webhook indisponível")
	})

	t.Run("Teto diário por anunciante filtra o lote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl, referenceTime)

		m.alertRepo.EXPECT().ListUnnotified("RULE_30M", notifyWindow).Return([]*domain.AlertEvent{
			pendingEvent(101, "key-a"),
			pendingEvent(202, "key-b"),
		}, nil)
		m.alertRepo.EXPECT().CountNotifiedSince(midnight).Return(map[int64]int{101: 3}, nil)
		m.notifier.EXPECT().SendText(gomock.Any()).Return(nil)
		m.alertRepo.EXPECT().MarkNotified([]string{"key-b"}).Return(nil)

		assert.NoError(t, service.notifyPending(rule, referenceTime))
	})

	t.Run("Sem pendências não envia nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl, referenceTime)

		m.alertRepo.EXPECT().ListUnnotified("RULE_30M", notifyWindow).Return(nil, nil)

		assert.NoError(t, service.notifyPending(rule, referenceTime))
	})
}

func TestAlertService_BuildDailyReportText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc, _ := time.LoadLocation("Asia/Shanghai")
	referenceTime := time.Date(2025, 3, 10, 0, 5, 0, 0, loc)
	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)

	service, _ := newService(t, ctrl, referenceTime)

	text := service.buildDailyReportText(
		dailyRule(),
		yesterday,
		[]int64{101, 202},
		map[int64]string{101: "Conta A", 202: "Conta B"},
		map[int64]float64{101: 100000, 202: 900000},
		map[int64]float64{101: 80000, 202: 100000},
		map[int64]float64{101: 560000, 202: 700000},
	)

	// Conta A: 100000/80000 = 1.25 < 2.0, dispara; Conta B: 9.0, não.
	assert.Contains(t, text, "触发 1 个账户")
	assert.Contains(t, text, "Conta A")
	assert.Contains(t, text, "2025-03-09")
	// 560000 em unidades de 1e-5 yuan = 5.60 yuan
	assert.Contains(t, text, "5.60")
}
