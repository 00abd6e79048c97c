package runlog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Run(t *testing.T) {
	referenceTime := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		fn          func() error
		setup       func(repo *mocks.MockJobRunRepository)
		expectedErr string
	}{
		{
			name: "Job com sucesso fecha o ledger com success e exit_code 0",
			fn:   func() error { return nil },
			setup: func(repo *mocks.MockJobRunRepository) {
				repo.EXPECT().
					Begin(gomock.Any()).
					DoAndReturn(func(run *domain.JobRun) error {
						assert.Equal(t, "ingest_snapshot", run.JobName)
						assert.Equal(t, domain.JobRunStatusRunning, run.Status)
						assert.NotEmpty(t, run.RunID)
						return nil
					})
				repo.EXPECT().
					Finish("ingest_snapshot", gomock.Any(), domain.JobRunStatusSuccess, 0, "").
					Return(nil)
			},
		},
		{
			name: "Job com falha fecha o ledger com fail e propaga o erro",
			fn:   func() error { return errors.New("snapshot ilegível") },
			setup: func(repo *mocks.MockJobRunRepository) {
				repo.EXPECT().Begin(gomock.Any()).Return(nil)
				repo.EXPECT().
					Finish("ingest_snapshot", gomock.Any(), domain.JobRunStatusFail, 1, "snapshot ilegível").
					Return(nil)
			},
			expectedErr: "snapshot ilegível",
		},
		{
			name: "ExitError define o exit_code do ledger",
			fn: func() error {
				return &ExitError{Code: 3, Err: errors.New("documento sem anunciantes")}
			},
			setup: func(repo *mocks.MockJobRunRepository) {
				repo.EXPECT().Begin(gomock.Any()).Return(nil)
				repo.EXPECT().
					Finish("ingest_snapshot", gomock.Any(), domain.JobRunStatusFail, 3, "documento sem anunciantes").
					Return(nil)
			},
			expectedErr: "documento sem anunciantes",
		},
		{
			name: "Falha no ledger não mascara o sucesso do job",
			fn:   func() error { return nil },
			setup: func(repo *mocks.MockJobRunRepository) {
				repo.EXPECT().Begin(gomock.Any()).Return(errors.New("banco fora do ar"))
				repo.EXPECT().
					Finish("ingest_snapshot", gomock.Any(), domain.JobRunStatusSuccess, 0, "").
					Return(errors.New("banco fora do ar"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockJobRunRepository(ctrl)
			tt.setup(repo)

			service := &recorderService{
				jobRunRepository: repo,
				now:              func() time.Time { return referenceTime },
			}

			err := service.Run("ingest_snapshot", tt.fn)

			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
