package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInventarioVazio indica um documento de snapshot sem anunciantes:
// a ingestão falha rápido, sem escrita parcial.
var ErrInventarioVazio = errors.New("documento de snapshot sem anunciantes")

// ErrPeriodoDuplicado indica colisão de (anunciante, snapshot_time) no
// append de BalanceSnapshot. O chamador deve garantir monotonicidade do
// timestamp ou alargar a granularidade.
var ErrPeriodoDuplicado = errors.New("snapshot de saldo já existe para o período")

// SnapshotDocument é o payload de ingestão produzido pelo coletor externo:
// lista de anunciantes com identidade, saldos correntes e detalhe
// financeiro diário recente.
type SnapshotDocument struct {
	GeneratedAt string                        `json:"generated_at"`
	Advertisers []*AdvertiserSnapshot         `json:"advertisers"`
	Balances    map[string]json.RawMessage    `json:"balances_map"`
	Finance     map[string][]*FinanceDayEntry `json:"finance_detail_map"`
}

// SnapshotTime interpreta generated_at no fuso local da plataforma.
func (d *SnapshotDocument) SnapshotTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", d.GeneratedAt, loc)
}

// AdvertiserSnapshot carrega identidade e os três níveis de saldo de cada
// pool no momento do snapshot.
type AdvertiserSnapshot struct {
	AdvertiserID   int64    `json:"advertiser_id"`
	Name           string   `json:"advertiser_name"`
	Company        *string  `json:"company"`
	FirstIndustry  *string  `json:"first_industry_name"`
	SecondIndustry *string  `json:"second_industry_name"`
	Status         string   `json:"status"`
	AccountTotal   *float64 `json:"account_total"`
	AccountValid   *float64 `json:"account_valid"`
	AccountFrozen  *float64 `json:"account_frozen"`
	GeneralTotal   *float64 `json:"account_general_total"`
	GeneralValid   *float64 `json:"account_general_valid"`
	GeneralFrozen  *float64 `json:"account_general_frozen"`
	BiddingTotal   *float64 `json:"account_bidding_total"`
	BiddingValid   *float64 `json:"account_bidding_valid"`
	BiddingFrozen  *float64 `json:"account_bidding_frozen"`
}

// FinanceDayEntry é uma linha do detalhe financeiro diário. O payload
// original é arquivado verbatim em Raw.
type FinanceDayEntry struct {
	Date         string   `json:"date"`
	StatDate     string   `json:"stat_date"`
	Cost         *float64 `json:"cost"`
	CashCost     *float64 `json:"cash_cost"`
	GrantCost    *float64 `json:"grant_cost"`
	Income       *float64 `json:"income"`
	TransferIn   *float64 `json:"transfer_in"`
	TransferOut  *float64 `json:"transfer_out"`
	CashBalance  *float64 `json:"cash_balance"`
	GrantBalance *float64 `json:"grant_balance"`
	TotalBalance *float64 `json:"total_balance"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON preserva o payload bruto além das colunas normalizadas.
func (e *FinanceDayEntry) UnmarshalJSON(data []byte) error {
	type alias FinanceDayEntry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*e = FinanceDayEntry(a)
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Day resolve a data da linha: date ou, na ausência, stat_date.
func (e *FinanceDayEntry) Day() (time.Time, bool) {
	raw := e.Date
	if raw == "" {
		raw = e.StatDate
	}
	if raw == "" {
		return time.Time{}, false
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
