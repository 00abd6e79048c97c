package ingesting

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeConn executa o corpo da "transação" diretamente, sem banco.
type fakeConn struct{}

func (f *fakeConn) Exec(query string, args ...interface{}) (sql.Result, error) { return nil, nil }
func (f *fakeConn) Query(query string, args ...interface{}) (*sql.Rows, error) { return nil, nil }
func (f *fakeConn) QueryRow(query string, args ...interface{}) *sql.Row        { return nil }
func (f *fakeConn) Begin(ctx context.Context) (*sql.Tx, error)                 { return nil, nil }
func (f *fakeConn) Close() error                                               { return nil }
func (f *fakeConn) Ping(ctx context.Context) error                             { return nil }
func (f *fakeConn) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	return &config.Config{Location: loc}
}

func floatPtr(v float64) *float64 { return &v }

func snapshotDoc() *domain.SnapshotDocument {
	return &domain.SnapshotDocument{
		GeneratedAt: "2025-03-10 08:30:00",
		Advertisers: []*domain.AdvertiserSnapshot{
			{
				AdvertiserID: 101,
				Name:         "Conta A",
				Status:       "STATUS_ENABLE",
				AccountValid: floatPtr(5000000),
			},
			{
				AdvertiserID: 202,
				Name:         "Conta B",
				Status:       "STATUS_ENABLE",
				AccountValid: floatPtr(120000),
			},
		},
		Finance: map[string][]*domain.FinanceDayEntry{
			"101": {
				{Date: "2025-03-09", Cost: floatPtr(300000)},
				{Date: "2025-03-08", Cost: floatPtr(250000)},
			},
		},
	}
}

func TestIngestService_Ingest(t *testing.T) {
	tests := []struct {
		name        string
		doc         *domain.SnapshotDocument
		setup       func(advRepo *mocks.MockAdvertiserRepository, balRepo *mocks.MockBalanceSnapshotRepository, finRepo *mocks.MockFinanceDailyRepository)
		validate    func(t *testing.T, summary *Summary)
		expectedErr error
	}{
		{
			name: "Documento completo materializa dimensão, saldos e financeiro",
			doc:  snapshotDoc(),
			setup: func(advRepo *mocks.MockAdvertiserRepository, balRepo *mocks.MockBalanceSnapshotRepository, finRepo *mocks.MockFinanceDailyRepository) {
				advRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(2)
				balRepo.EXPECT().Append(gomock.Any()).Return(nil).Times(2)
				finRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(2)
			},
			validate: func(t *testing.T, summary *Summary) {
				assert.Equal(t, 2, summary.Advertisers)
				assert.Equal(t, 2, summary.Balances)
				assert.Equal(t, 2, summary.FinanceRows)
				assert.Equal(t, 0, summary.Duplicates)
				assert.Equal(t, 0, summary.Failures)
			},
		},
		{
			name: "Documento sem anunciantes falha rápido sem escrever",
			doc: &domain.SnapshotDocument{
				GeneratedAt: "2025-03-10 08:30:00",
			},
			setup: func(advRepo *mocks.MockAdvertiserRepository, balRepo *mocks.MockBalanceSnapshotRepository, finRepo *mocks.MockFinanceDailyRepository) {
			},
			expectedErr: domain.ErrInventarioVazio,
		},
		{
			name: "Período duplicado é contado e não conta como falha",
			doc:  snapshotDoc(),
			setup: func(advRepo *mocks.MockAdvertiserRepository, balRepo *mocks.MockBalanceSnapshotRepository, finRepo *mocks.MockFinanceDailyRepository) {
				advRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(2)
				balRepo.EXPECT().Append(gomock.Any()).Return(domain.ErrPeriodoDuplicado).Times(2)
			},
			validate: func(t *testing.T, summary *Summary) {
				assert.Equal(t, 0, summary.Advertisers)
				assert.Equal(t, 2, summary.Duplicates)
				assert.Equal(t, 0, summary.Failures)
			},
		},
		{
			name: "Falha de um anunciante não derruba os demais",
			doc:  snapshotDoc(),
			setup: func(advRepo *mocks.MockAdvertiserRepository, balRepo *mocks.MockBalanceSnapshotRepository, finRepo *mocks.MockFinanceDailyRepository) {
				first := advRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(errors.New("deadlock"))
				advRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).After(first)
				balRepo.EXPECT().Append(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, summary *Summary) {
				assert.Equal(t, 1, summary.Advertisers)
				assert.Equal(t, 1, summary.Failures)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			advRepo := mocks.NewMockAdvertiserRepository(ctrl)
			balRepo := mocks.NewMockBalanceSnapshotRepository(ctrl)
			finRepo := mocks.NewMockFinanceDailyRepository(ctrl)
			tt.setup(advRepo, balRepo, finRepo)

			service := &ingestService{
				cfg:  testConfig(t),
				conn: &fakeConn{},
				newAdvertiserRepo: func(postgres.Queryer) repository.AdvertiserRepository {
					return advRepo
				},
				newBalanceRepo: func(postgres.Queryer) repository.BalanceSnapshotRepository {
					return balRepo
				},
				newFinanceRepo: func(postgres.Queryer) repository.FinanceDailyRepository {
					return finRepo
				},
			}

			summary, err := service.Ingest(context.Background(), tt.doc)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, summary)
		})
	}
}

func TestIngestService_IngestSemGeneratedAt(t *testing.T) {
	service := &ingestService{cfg: testConfig(t), conn: &fakeConn{}}

	_, err := service.Ingest(context.Background(), &domain.SnapshotDocument{})

	assert.ErrorContains(t, err, "generated_at")
}
