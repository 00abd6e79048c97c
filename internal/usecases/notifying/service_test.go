package notifying

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	feishumocks "github.com/vfg2006/ad-monitor-api/infrastructure/integrator/feishu/mocks"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, ctrl *gomock.Controller) (*notifyService, *mocks.MockCommentActionRepository, *feishumocks.MockNotifier) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	actionRepo := mocks.NewMockCommentActionRepository(ctrl)
	notifier := feishumocks.NewMockNotifier(ctrl)

	service := &notifyService{
		cfg: &config.Config{
			Location:      loc,
			CommentNotify: config.CommentNotify{WindowHours: 24},
		},
		actionRepo: actionRepo,
		notifier:   notifier,
		now:        func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, loc) },
	}

	return service, actionRepo, notifier
}

func report(advertiserID, commentID int64, name, text string) *domain.HiddenCommentReport {
	return &domain.HiddenCommentReport{
		AdvertiserID:   advertiserID,
		AdvertiserName: name,
		CommentID:      commentID,
		CommentText:    text,
	}
}

func TestNotifyService_NotifyHiddenComments(t *testing.T) {
	t.Run("Janela vazia é silêncio: nada enviado, nada marcado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, actionRepo, _ := newService(t, ctrl)

		actionRepo.EXPECT().ListUnnotified(24 * time.Hour).Return(nil, nil)

		assert.NoError(t, service.NotifyHiddenComments())
	})

	t.Run("Entrega confirmada marca o lote inteiro de uma vez", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, actionRepo, notifier := newService(t, ctrl)

		actionRepo.EXPECT().ListUnnotified(24 * time.Hour).Return([]*domain.HiddenCommentReport{
			report(101, 9001, "Conta A", "太差了"),
			report(101, 9002, "Conta A", "骗人的"),
			report(202, 9003, "Conta B", "质量不行"),
		}, nil)
		notifier.EXPECT().
			SendText(gomock.Any()).
			DoAndReturn(func(text string) error {
				assert.Contains(t, text, "本次新增隐藏：3 条")
				assert.Contains(t, text, "- Conta A：2 条")
				assert.Contains(t, text, "- Conta B：1 条")
				return nil
			})
		actionRepo.EXPECT().MarkNotified([]domain.CommentActionKey{
			{AdvertiserID: 101, CommentID: 9001},
			{AdvertiserID: 101, CommentID: 9002},
			{AdvertiserID: 202, CommentID: 9003},
		}).Return(nil)

		assert.NoError(t, service.NotifyHiddenComments())
	})

	t.Run("Falha de entrega deixa o lote intacto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, actionRepo, notifier := newService(t, ctrl)

		actionRepo.EXPECT().ListUnnotified(24 * time.Hour).Return([]*domain.HiddenCommentReport{
			report(101, 9001, "Conta A", "太差了"),
		}, nil)
		notifier.EXPECT().SendText(gomock.Any()).Return(errors.New("HTTP 502"))

		err := service.NotifyHiddenComments()

		assert.ErrorContains(t, err, "HTTP 502")
	})
}
