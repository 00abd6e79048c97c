package domain

import (
	"encoding/json"
	"time"
)

// BalanceTiers agrupa os três níveis de saldo reportados pela plataforma
// para um pool de verba.
type BalanceTiers struct {
	Total  *float64
	Valid  *float64
	Frozen *float64
}

// BalanceSnapshot é o fato pontual de saldo, chaveado por (anunciante,
// snapshot_time). Append-only: reinserir o mesmo período é uma colisão,
// nunca uma sobrescrita.
type BalanceSnapshot struct {
	AdvertiserID int64
	SnapshotTime time.Time
	Account      BalanceTiers
	General      BalanceTiers
	Bidding      BalanceTiers
	Raw          json.RawMessage
}

// BalanceReading é a leitura mais recente de saldo por anunciante, usada
// pelo avaliador de regras. Valid pode ser nil quando a coleta do saldo
// falhou; nesse caso o anunciante é pulado para evitar falso positivo.
type BalanceReading struct {
	AdvertiserID int64
	SnapshotTime time.Time
	Valid        *float64
}
