package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

func newTestAlertRulesService(rules []domain.AlertRule) *AlertRulesService {
	cfg := &config.Config{Location: time.UTC}
	return NewAlertRulesService(cfg, rules, nil, nil)
}

func TestAlertRulesService_TriggerManualSync(t *testing.T) {
	service := newTestAlertRulesService([]domain.AlertRule{
		{ID: "RULE_00", CronSchedule: "5 0 * * *", Enabled: true},
	})

	t.Run("regra desconhecida é recusada", func(t *testing.T) {
		err := service.TriggerManualSync("RULE_INEXISTENTE")
		require.Error(t, err)
	})
}

func TestAlertRulesService_GetStatus(t *testing.T) {
	service := newTestAlertRulesService([]domain.AlertRule{
		{ID: "RULE_00", CronSchedule: "5 0 * * *", Enabled: true},
		{ID: "RULE_30M", CronSchedule: "*/30 * * * *", Enabled: false},
	})

	status := service.GetStatus()

	rules, ok := status["rules"].(map[string]any)
	require.True(t, ok)
	require.Len(t, rules, 2)

	daily, ok := rules["RULE_00"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, daily["rule_enabled"])
	assert.Equal(t, "5 0 * * *", daily["rule_cron"])

	intraday, ok := rules["RULE_30M"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, intraday["rule_enabled"])
}
