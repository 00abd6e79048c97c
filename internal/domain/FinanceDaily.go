package domain

import (
	"encoding/json"
	"time"
)

// FinanceDailyRecord é o fato diário de consumo/receita, chaveado por
// (anunciante, data). Mutável até o fechamento do dia: a plataforma revisa
// os totais intradiários, então a última escrita do dia vence.
type FinanceDailyRecord struct {
	AdvertiserID int64
	Date         time.Time
	Cost         *float64
	CashCost     *float64
	GrantCost    *float64
	Income       *float64
	TransferIn   *float64
	TransferOut  *float64
	CashBalance  *float64
	GrantBalance *float64
	TotalBalance *float64
	Raw          json.RawMessage
}
