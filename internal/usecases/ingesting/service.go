package ingesting

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

// Summary é o resultado de uma ingestão de snapshot.
type Summary struct {
	SnapshotTime time.Time
	Advertisers  int
	Balances     int
	Duplicates   int
	FinanceRows  int
	Failures     int
}

// Ingester consome o documento de snapshot produzido pelo coletor externo
// e materializa dimensão de anunciantes, fatos de saldo e fatos financeiros.
type Ingester interface {
	IngestFile(ctx context.Context, path string) (*Summary, error)
	Ingest(ctx context.Context, doc *domain.SnapshotDocument) (*Summary, error)
}

type ingestService struct {
	cfg  *config.Config
	conn postgres.Conn

	// Fábricas de repositório por Queryer, para operar dentro da transação
	// de cada anunciante.
	newAdvertiserRepo func(postgres.Queryer) repository.AdvertiserRepository
	newBalanceRepo    func(postgres.Queryer) repository.BalanceSnapshotRepository
	newFinanceRepo    func(postgres.Queryer) repository.FinanceDailyRepository
}

func NewService(cfg *config.Config, conn postgres.Conn) Ingester {
	return &ingestService{
		cfg:               cfg,
		conn:              conn,
		newAdvertiserRepo: repository.NewAdvertiserRepository,
		newBalanceRepo:    repository.NewBalanceSnapshotRepository,
		newFinanceRepo:    repository.NewFinanceDailyRepository,
	}
}

func (s *ingestService) IngestFile(ctx context.Context, path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o snapshot %s: %w", path, err)
	}

	doc := &domain.SnapshotDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("erro ao decodificar o snapshot %s: %w", path, err)
	}

	return s.Ingest(ctx, doc)
}

// Ingest valida o documento inteiro antes de qualquer escrita e processa
// cada anunciante na própria transação: a falha de um não derruba os
// demais. Reapresentar o mesmo snapshot é inócuo: o período duplicado de
// saldo é pulado e os upserts restantes são idempotentes.
func (s *ingestService) Ingest(ctx context.Context, doc *domain.SnapshotDocument) (*Summary, error) {
	if doc.GeneratedAt == "" {
		return nil, fmt.Errorf("documento de snapshot sem generated_at")
	}

	snapshotTime, err := doc.SnapshotTime(s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("generated_at inválido %q: %w", doc.GeneratedAt, err)
	}

	if len(doc.Advertisers) == 0 {
		return nil, domain.ErrInventarioVazio
	}

	summary := &Summary{SnapshotTime: snapshotTime}

	for _, adv := range doc.Advertisers {
		adv := adv
		var financeRows int
		err := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			rows, err := s.ingestAdvertiser(tx, doc, adv, snapshotTime)
			financeRows = rows
			return err
		})
		if err != nil {
			if errors.Is(err, domain.ErrPeriodoDuplicado) {
				summary.Duplicates++
				continue
			}

			summary.Failures++
			logrus.Warnf("Falha na ingestão do anunciante %d: %v", adv.AdvertiserID, err)
			continue
		}

		summary.Advertisers++
		summary.Balances++
		summary.FinanceRows += financeRows
	}

	logrus.Infof("Ingestão concluída snapshot=%s anunciantes=%d saldos=%d duplicados=%d financeiro=%d falhas=%d",
		snapshotTime.Format(time.DateTime), summary.Advertisers, summary.Balances,
		summary.Duplicates, summary.FinanceRows, summary.Failures)

	if summary.Failures > 0 && summary.Advertisers == 0 {
		return summary, fmt.Errorf("ingestão falhou para todos os %d anunciantes", summary.Failures)
	}

	return summary, nil
}

func (s *ingestService) ingestAdvertiser(
	tx *sql.Tx,
	doc *domain.SnapshotDocument,
	adv *domain.AdvertiserSnapshot,
	snapshotTime time.Time,
) (int, error) {
	advertiserRepo := s.newAdvertiserRepo(tx)
	balanceRepo := s.newBalanceRepo(tx)
	financeRepo := s.newFinanceRepo(tx)

	advertiser := &domain.Advertiser{
		ID:             adv.AdvertiserID,
		Name:           adv.Name,
		Company:        adv.Company,
		FirstIndustry:  adv.FirstIndustry,
		SecondIndustry: adv.SecondIndustry,
		Status:         adv.Status,
		FirstSeenAt:    snapshotTime,
		LastSeenAt:     snapshotTime,
	}
	if err := advertiserRepo.SaveOrUpdate([]*domain.Advertiser{advertiser}); err != nil {
		return 0, err
	}

	snapshot := buildBalanceSnapshot(doc, adv, snapshotTime)
	if err := balanceRepo.Append(snapshot); err != nil {
		return 0, err
	}

	financeRows := 0
	for _, entry := range doc.Finance[fmt.Sprintf("%d", adv.AdvertiserID)] {
		day, ok := entry.Day()
		if !ok {
			continue
		}

		record := &domain.FinanceDailyRecord{
			AdvertiserID: adv.AdvertiserID,
			Date:         day,
			Cost:         entry.Cost,
			CashCost:     entry.CashCost,
			GrantCost:    entry.GrantCost,
			Income:       entry.Income,
			TransferIn:   entry.TransferIn,
			TransferOut:  entry.TransferOut,
			CashBalance:  entry.CashBalance,
			GrantBalance: entry.GrantBalance,
			TotalBalance: entry.TotalBalance,
			Raw:          entry.Raw,
		}
		if err := financeRepo.SaveOrUpdate(record); err != nil {
			return 0, err
		}
		financeRows++
	}

	return financeRows, nil
}

// buildBalanceSnapshot monta o fato de saldo do anunciante, arquivando o
// payload bruto do coletor quando disponível.
func buildBalanceSnapshot(doc *domain.SnapshotDocument, adv *domain.AdvertiserSnapshot, snapshotTime time.Time) *domain.BalanceSnapshot {
	return &domain.BalanceSnapshot{
		AdvertiserID: adv.AdvertiserID,
		SnapshotTime: snapshotTime,
		Account: domain.BalanceTiers{
			Total:  adv.AccountTotal,
			Valid:  adv.AccountValid,
			Frozen: adv.AccountFrozen,
		},
		General: domain.BalanceTiers{
			Total:  adv.GeneralTotal,
			Valid:  adv.GeneralValid,
			Frozen: adv.GeneralFrozen,
		},
		Bidding: domain.BalanceTiers{
			Total:  adv.BiddingTotal,
			Valid:  adv.BiddingValid,
			Frozen: adv.BiddingFrozen,
		},
		Raw: doc.Balances[fmt.Sprintf("%d", adv.AdvertiserID)],
	}
}
