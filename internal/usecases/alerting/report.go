package alerting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"github.com/vfg2006/ad-monitor-api/pkg/utils"
)

var ruleTitles = map[string]string{
	"RULE_00":  "余额预警·日检(00:05)",
	"RULE_30M": "余额预警·30分钟",
}

func ruleTitle(ruleID string) string {
	if title, ok := ruleTitles[ruleID]; ok {
		return title
	}
	return ruleID
}

// buildAlertText monta o texto do rollup de alertas. Valores monetários
// são convertidos das unidades da plataforma para yuan.
func (s *alertService) buildAlertText(rule domain.AlertRule, now time.Time, events []*domain.AlertEvent) string {
	unitMult := s.cfg.Feishu.UnitMult
	digits := s.cfg.Feishu.Digits

	lines := []string{
		fmt.Sprintf("【%s】触发 %d 个账户", ruleTitle(rule.ID), len(events)),
		fmt.Sprintf("时间: %s (%s)", now.Format(time.DateTime), s.cfg.Timezone),
		"说明: 余额/消耗单位已换算为'元'。",
		"",
	}

	shown := events
	if rule.MaxItems > 0 && len(shown) > rule.MaxItems {
		shown = shown[:rule.MaxItems]
	}

	for i, event := range shown {
		name := event.AdvertiserName
		if name == "" {
			name = "(无名称)"
		}

		lines = append(lines, fmt.Sprintf(
			"%d. %s | %d | 严重度=%s | 可用余额=%s元 | 基准消耗=%s元 | 阈值=%s元 | 倍数=%.2f | 快照=%s",
			i+1,
			name,
			event.AdvertiserID,
			event.Severity,
			utils.FormatYuan(event.BalanceValid, unitMult, digits),
			utils.FormatYuan(event.BaselineSpend, unitMult, digits),
			utils.FormatYuan(event.ThresholdMultiplier*event.BaselineSpend, unitMult, digits),
			event.Ratio,
			event.SnapshotTime.In(s.cfg.Location).Format("01-02 15:04:05"),
		))
	}

	if len(events) > len(shown) {
		lines = append(lines, fmt.Sprintf("... 还有 %d 个账户未展示(为避免刷屏)。", len(events)-len(shown)))
	}

	return strings.Join(lines, "\n")
}

// sendDailyReport envia o resumo diário de saldo: todos os anunciantes
// com consumo ontem, com consumo de 7 dias e dias restantes estimados.
// O resumo é informativo e nunca marca alertas como notificados.
func (s *alertService) sendDailyReport(rule domain.AlertRule, now time.Time) error {
	yesterday := utils.Yesterday(now)

	yCost, err := s.financeRepo.CostByDay(yesterday)
	if err != nil {
		return fmt.Errorf("erro ao carregar o consumo de ontem: %w", err)
	}

	cost7, err := s.financeRepo.CostBetween(yesterday.AddDate(0, 0, -6), yesterday)
	if err != nil {
		return fmt.Errorf("erro ao carregar o consumo de 7 dias: %w", err)
	}

	readings, err := s.balanceRepo.LatestPerAdvertiser()
	if err != nil {
		return fmt.Errorf("erro ao carregar os saldos: %w", err)
	}
	balances := make(map[int64]float64, len(readings))
	for _, reading := range readings {
		if reading.Valid != nil {
			balances[reading.AdvertiserID] = *reading.Valid
		}
	}

	reportIDs := make([]int64, 0, len(yCost))
	for advertiserID, cost := range yCost {
		if cost > 0 {
			reportIDs = append(reportIDs, advertiserID)
		}
	}
	sort.Slice(reportIDs, func(i, j int) bool { return reportIDs[i] < reportIDs[j] })

	if len(reportIDs) == 0 {
		logrus.Infof("Resumo diário sem anunciantes com consumo ontem rule=%s", rule.ID)
		return nil
	}

	names, err := s.advertiserRepo.GetNameMap(reportIDs)
	if err != nil {
		return fmt.Errorf("erro ao carregar os nomes dos anunciantes: %w", err)
	}

	text := s.buildDailyReportText(rule, yesterday, reportIDs, names, balances, yCost, cost7)
	if err := s.notifier.SendText(text); err != nil {
		return fmt.Errorf("erro ao enviar o resumo diário: %w", err)
	}

	logrus.Infof("Resumo diário enviado rule=%s anunciantes=%d", rule.ID, len(reportIDs))
	return nil
}

func (s *alertService) buildDailyReportText(
	rule domain.AlertRule,
	yesterday time.Time,
	reportIDs []int64,
	names map[int64]string,
	balances map[int64]float64,
	yCost map[int64]float64,
	cost7 map[int64]float64,
) string {
	unitMult := s.cfg.Feishu.UnitMult
	digits := s.cfg.Feishu.Digits

	fmtYuan := func(v float64) string {
		return utils.FormatYuan(v, unitMult, digits)
	}

	// A seção de status reaplica os limiares da regra sobre os dados do
	// relatório: é um retrato, não um novo disparo.
	alerted := make([]int64, 0)
	for _, advertiserID := range reportIDs {
		cost := yCost[advertiserID]
		if cost <= 0 {
			continue
		}
		if _, hit := rule.Match(balances[advertiserID] / cost); hit {
			alerted = append(alerted, advertiserID)
		}
	}

	lines := make([]string, 0, len(reportIDs)+8)
	if len(alerted) > 0 {
		lines = append(lines, fmt.Sprintf("【余额预警·每日】⚠️ 触发 %d 个账户", len(alerted)))
		for _, advertiserID := range alerted {
			name := names[advertiserID]
			if name == "" {
				name = fmt.Sprintf("%d", advertiserID)
			}
			cost := yCost[advertiserID]
			ratio := 0.0
			if cost > 0 {
				ratio = balances[advertiserID] / cost
			}
			lines = append(lines, fmt.Sprintf("- %s｜余额 %s｜昨日消耗 %s｜倍率 %.2f",
				name, fmtYuan(balances[advertiserID]), fmtYuan(cost), ratio))
		}
	} else {
		lines = append(lines, "【余额预警·每日】✅ 余额充足，未触发预警")
	}

	lines = append(lines,
		"--------------------",
		fmt.Sprintf("【账户资金日报】日期: %s (昨日)", yesterday.Format(time.DateOnly)),
		"字段：余额｜昨日消耗｜7日消耗｜可用天数(余额/7日均消)｜倍率(余额/昨日)",
		"",
	)

	shown := reportIDs
	if rule.MaxItems > 0 && len(shown) > rule.MaxItems {
		shown = shown[:rule.MaxItems]
	}

	for _, advertiserID := range shown {
		name := names[advertiserID]
		if name == "" {
			name = fmt.Sprintf("%d", advertiserID)
		}

		balance := balances[advertiserID]
		cost := yCost[advertiserID]
		week := cost7[advertiserID]

		daysLeft := "-"
		if week > 0 {
			daysLeft = fmt.Sprintf("%.1f", balance/(week/7))
		}

		ratio := 0.0
		if cost > 0 {
			ratio = balance / cost
		}

		lines = append(lines, fmt.Sprintf("%s｜%s｜%s｜%s｜%s｜%.2f",
			name, fmtYuan(balance), fmtYuan(cost), fmtYuan(week), daysLeft, ratio))
	}

	if len(reportIDs) > len(shown) {
		lines = append(lines, fmt.Sprintf("... 还有 %d 个账户未展示(为避免刷屏)。", len(reportIDs)-len(shown)))
	}

	return strings.Join(lines, "\n")
}
