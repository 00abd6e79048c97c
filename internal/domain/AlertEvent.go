package domain

import (
	"encoding/json"
	"time"
)

// AlertStatus é o ciclo de vida de um AlertEvent. Nasce open e só
// transiciona para acked/closed por ação explícita de operador.
type AlertStatus string

const (
	AlertStatusOpen   AlertStatus = "open"
	AlertStatusAcked  AlertStatus = "acked"
	AlertStatusClosed AlertStatus = "closed"
)

// Valid informa se o status é um valor conhecido.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusOpen, AlertStatusAcked, AlertStatusClosed:
		return true
	}
	return false
}

// AlertEvent é uma ocorrência persistida de alerta. DedupKey é globalmente
// único: dentro de um period_bucket só o primeiro insert sobrevive.
// NotifiedAt começa nulo e é marcado apenas após entrega confirmada do
// lote de notificação.
type AlertEvent struct {
	ID                  int64
	AlertTime           time.Time
	AdvertiserID        int64
	AdvertiserName      string
	RuleID              string
	Severity            Severity
	BalanceValid        float64
	BaselineSpend       float64
	ThresholdMultiplier float64
	Ratio               float64
	SnapshotTime        time.Time
	PeriodBucket        string
	DedupKey            string
	Status              AlertStatus
	NotifiedAt          *time.Time
	Detail              json.RawMessage
}
