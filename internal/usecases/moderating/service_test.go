package moderating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/oceanengine"
	oemocks "github.com/vfg2006/ad-monitor-api/infrastructure/integrator/oceanengine/mocks"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	oe             *oemocks.MockIntegrator
	advertiserRepo *mocks.MockAdvertiserRepository
	commentRepo    *mocks.MockCommentRepository
	actionRepo     *mocks.MockCommentActionRepository
}

func newService(t *testing.T, ctrl *gomock.Controller) (*moderationService, *serviceMocks) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	m := &serviceMocks{
		oe:             oemocks.NewMockIntegrator(ctrl),
		advertiserRepo: mocks.NewMockAdvertiserRepository(ctrl),
		commentRepo:    mocks.NewMockCommentRepository(ctrl),
		actionRepo:     mocks.NewMockCommentActionRepository(ctrl),
	}

	service := &moderationService{
		cfg: &config.Config{
			Location: loc,
			CommentSync: config.CommentSync{
				LookbackDays: 1,
				PageSize:     100,
			},
		},
		oe:             m.oe,
		advertiserRepo: m.advertiserRepo,
		commentRepo:    m.commentRepo,
		actionRepo:     m.actionRepo,
		now:            func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, loc) },
	}

	return service, m
}

func stringPtr(v string) *string { return &v }

func negativeComment(id int64) *oceanengine.CommentItem {
	return &oceanengine.CommentItem{
		CommentID:   id,
		Text:        "产品质量太差了",
		EmotionType: stringPtr(domain.EmotionNegative),
		HideStatus:  stringPtr(domain.HideStatusNotHidden),
	}
}

func neutralComment(id int64) *oceanengine.CommentItem {
	return &oceanengine.CommentItem{
		CommentID:   id,
		Text:        "不错",
		EmotionType: stringPtr("POSITIVE"),
		HideStatus:  stringPtr(domain.HideStatusNotHidden),
	}
}

func TestModerationService_SyncAndHide(t *testing.T) {
	t.Run("Negativos visíveis são ocultados e desfechos gravados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl)

		m.advertiserRepo.EXPECT().ListIDs().Return([]int64{101}, nil)
		m.oe.EXPECT().
			ListComments(gomock.Any()).
			DoAndReturn(func(params oceanengine.ListCommentsParams) (*oceanengine.CommentPage, error) {
				assert.Equal(t, int64(101), params.AdvertiserID)
				assert.Equal(t, "NOT_HIDE", params.HideStatus)
				return &oceanengine.CommentPage{
					Comments: []*oceanengine.CommentItem{
						negativeComment(9001),
						negativeComment(9002),
						neutralComment(9003),
					},
				}, nil
			})
		m.commentRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(comments []*domain.Comment) error {
				assert.Len(t, comments, 3)
				return nil
			})
		m.actionRepo.EXPECT().
			ActionedCommentIDs(int64(101), domain.ActionHide, []int64{9001, 9002}).
			Return(map[int64]struct{}{}, nil)
		m.oe.EXPECT().
			HideComments(int64(101), []int64{9001, 9002}).
			Return(&oceanengine.HideResult{
				SuccessCommentIDs: []int64{9001},
				RequestID:         "req-1",
			}, nil)
		m.actionRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(action *domain.CommentAction) (bool, error) {
				switch action.CommentID {
				case 9001:
					assert.Equal(t, domain.ActionStatusSuccess, action.Status)
				case 9002:
					assert.Equal(t, domain.ActionStatusFailed, action.Status)
				default:
					t.Fatalf("desfecho inesperado para comment_id=%d", action.CommentID)
				}
				return true, nil
			}).
			Times(2)
		m.commentRepo.EXPECT().MarkHidden(int64(101), []int64{9001}).Return(nil)

		summary, err := service.SyncAndHide()

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Advertisers)
		assert.Equal(t, 3, summary.Upserted)
		assert.Equal(t, 1, summary.HideSuccess)
		assert.Equal(t, 1, summary.HideFailed)
	})

	t.Run("Comentário com desfecho gravado nunca é reacionado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl)

		m.advertiserRepo.EXPECT().ListIDs().Return([]int64{101}, nil)
		m.oe.EXPECT().ListComments(gomock.Any()).Return(&oceanengine.CommentPage{
			Comments: []*oceanengine.CommentItem{negativeComment(9001)},
		}, nil)
		m.commentRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.actionRepo.EXPECT().
			ActionedCommentIDs(int64(101), domain.ActionHide, []int64{9001}).
			Return(map[int64]struct{}{9001: {}}, nil)
		// Nenhuma chamada a HideComments: o único candidato já foi acionado.

		summary, err := service.SyncAndHide()

		require.NoError(t, err)
		assert.Equal(t, 1, summary.AlreadyActioned)
		assert.Equal(t, 0, summary.HideSuccess)
	})

	t.Run("Conta sem permissão é pulada sem derrubar o ciclo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl)

		m.advertiserRepo.EXPECT().ListIDs().Return([]int64{101, 202}, nil)

		first := m.oe.EXPECT().
			ListComments(gomock.Any()).
			Return(nil, &oceanengine.APIError{API: "qc_comment_get", Code: oceanengine.CodeNoPermission})
		m.oe.EXPECT().
			ListComments(gomock.Any()).
			Return(&oceanengine.CommentPage{}, nil).
			After(first)
		m.commentRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		summary, err := service.SyncAndHide()

		require.NoError(t, err)
		assert.Equal(t, 1, summary.SkippedNoAccess)
		assert.Equal(t, 1, summary.Advertisers)
	})

	t.Run("Falha do lote de ocultação grava failed e segue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newService(t, ctrl)

		m.advertiserRepo.EXPECT().ListIDs().Return([]int64{101}, nil)
		m.oe.EXPECT().ListComments(gomock.Any()).Return(&oceanengine.CommentPage{
			Comments: []*oceanengine.CommentItem{negativeComment(9001)},
		}, nil)
		m.commentRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.actionRepo.EXPECT().
			ActionedCommentIDs(int64(101), domain.ActionHide, []int64{9001}).
			Return(map[int64]struct{}{}, nil)
		m.oe.EXPECT().
			HideComments(int64(101), []int64{9001}).
			Return(nil, errors.New("timeout"))
		m.actionRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(action *domain.CommentAction) (bool, error) {
				assert.Equal(t, domain.ActionStatusFailed, action.Status)
				assert.Equal(t, "timeout", *action.ErrorMessage)
				return true, nil
			})

		summary, err := service.SyncAndHide()

		require.NoError(t, err)
		assert.Equal(t, 1, summary.HideFailed)
	})
}
