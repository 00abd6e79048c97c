package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Severity é a severidade de um alerta, ordenável por Rank.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
	SeverityCrit Severity = "crit"
)

// Rank retorna o peso da severidade para desempate (maior = mais severo).
func (s Severity) Rank() int {
	switch s {
	case SeverityCrit:
		return 3
	case SeverityWarn:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// RuleThreshold é uma entrada da tabela ordenada de limiares da regra:
// dispara quando ratio < Multiplier.
type RuleThreshold struct {
	Multiplier float64
	Severity   Severity
}

// BucketGranularity define como o horário de avaliação é truncado para
// formar o period_bucket da regra.
type BucketGranularity string

const (
	GranularityDay     BucketGranularity = "day"
	GranularityMinutes BucketGranularity = "minutes"
)

// AlertRule é uma instância de regra de depleção de saldo, configurada
// externamente (nunca hardcoded).
type AlertRule struct {
	ID                   string
	Granularity          BucketGranularity
	BucketMinutes        int
	BaselineLookbackDays int
	Thresholds           []RuleThreshold
	AlwaysNotify         bool
	MaxItems             int
	MaxNotifyPerDay      int
	CronSchedule         string
	Enabled              bool
}

// PeriodBucket trunca o horário de avaliação para a granularidade da regra.
func (r *AlertRule) PeriodBucket(t time.Time) string {
	if r.Granularity == GranularityDay {
		return t.Format("2006-01-02")
	}

	minutes := r.BucketMinutes
	if minutes <= 0 {
		minutes = 30
	}

	truncated := t.Truncate(time.Duration(minutes) * time.Minute)
	return truncated.Format("2006-01-02T15:04")
}

// Match seleciona o limiar mais apertado cruzado pelo ratio. Empates de
// multiplicador resolvem para a severidade mais alta.
func (r *AlertRule) Match(ratio float64) (RuleThreshold, bool) {
	candidates := make([]RuleThreshold, 0, len(r.Thresholds))
	for _, th := range r.Thresholds {
		if ratio < th.Multiplier {
			candidates = append(candidates, th)
		}
	}

	if len(candidates) == 0 {
		return RuleThreshold{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Multiplier != candidates[j].Multiplier {
			return candidates[i].Multiplier < candidates[j].Multiplier
		}
		return candidates[i].Severity.Rank() > candidates[j].Severity.Rank()
	})

	return candidates[0], true
}

// AlertDedupKey deriva a chave de deduplicação determinística de
// (anunciante, regra, period_bucket).
func AlertDedupKey(advertiserID int64, ruleID, periodBucket string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", advertiserID, ruleID, periodBucket)))
	return hex.EncodeToString(sum[:])
}

// ParseThresholds interpreta a tabela de limiares no formato
// "1.0:crit,2.0:warn" vinda da configuração.
func ParseThresholds(raw string) ([]RuleThreshold, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("tabela de limiares vazia")
	}

	entries := strings.Split(raw, ",")
	thresholds := make([]RuleThreshold, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("entrada de limiar inválida: %q", entry)
		}

		mult, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("multiplicador inválido em %q: %w", entry, err)
		}
		if mult <= 0 {
			return nil, fmt.Errorf("multiplicador deve ser positivo em %q", entry)
		}

		sev := Severity(strings.TrimSpace(parts[1]))
		if sev.Rank() == 0 {
			return nil, fmt.Errorf("severidade desconhecida em %q", entry)
		}

		thresholds = append(thresholds, RuleThreshold{Multiplier: mult, Severity: sev})
	}

	return thresholds, nil
}
