package notifying

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/feishu"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

const (
	maxAdvertisersShown = 10
	maxSamplesPerGroup  = 3
	maxSampleRunes      = 60
)

// Notifier envia o rollup de comentários ocultados ainda não notificados.
// Janela vazia é silêncio: nenhuma mensagem e nenhuma marcação. A marcação
// de notified_at acontece uma única vez, atômica para o lote, e somente
// após entrega confirmada.
type Notifier interface {
	NotifyHiddenComments() error
}

type notifyService struct {
	cfg        *config.Config
	actionRepo repository.CommentActionRepository
	notifier   feishu.Notifier

	now func() time.Time
}

func NewService(cfg *config.Config, actionRepo repository.CommentActionRepository, notifier feishu.Notifier) Notifier {
	return &notifyService{
		cfg:        cfg,
		actionRepo: actionRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *notifyService) NotifyHiddenComments() error {
	window := time.Duration(s.cfg.CommentNotify.WindowHours) * time.Hour

	reports, err := s.actionRepo.ListUnnotified(window)
	if err != nil {
		return fmt.Errorf("erro ao listar ocultações pendentes: %w", err)
	}

	if len(reports) == 0 {
		logrus.Info("Rollup de comentários sem pendências, nada a enviar")
		return nil
	}

	text := s.buildText(reports)
	if err := s.notifier.SendText(text); err != nil {
		// Sem confirmação de entrega o lote fica intacto para o próximo
		// ciclo.
		return fmt.Errorf("erro ao enviar o rollup de comentários: %w", err)
	}

	keys := make([]domain.CommentActionKey, 0, len(reports))
	for _, report := range reports {
		keys = append(keys, domain.CommentActionKey{
			AdvertiserID: report.AdvertiserID,
			CommentID:    report.CommentID,
		})
	}
	if err := s.actionRepo.MarkNotified(keys); err != nil {
		return fmt.Errorf("erro ao marcar ocultações notificadas: %w", err)
	}

	logrus.Infof("Rollup de comentários enviado e marcado registros=%d", len(reports))
	return nil
}

// buildText agrupa por anunciante, mostra os maiores grupos e uma amostra
// de comentários por grupo.
func (s *notifyService) buildText(reports []*domain.HiddenCommentReport) string {
	now := s.now().In(s.cfg.Location)

	groups := make(map[string][]*domain.HiddenCommentReport)
	for _, report := range reports {
		name := report.AdvertiserName
		if name == "" {
			name = fmt.Sprintf("%d", report.AdvertiserID)
		}
		groups[name] = append(groups[name], report)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(groups[names[i]]) != len(groups[names[j]]) {
			return len(groups[names[i]]) > len(groups[names[j]])
		}
		return names[i] < names[j]
	})

	lines := []string{
		fmt.Sprintf("【千川负向评论已隐藏汇总】%s", now.Format(time.DateTime)),
		fmt.Sprintf("统计窗口：最近 %d 小时；本次新增隐藏：%d 条", s.cfg.CommentNotify.WindowHours, len(reports)),
		"",
	}

	shown := names
	if len(shown) > maxAdvertisersShown {
		shown = shown[:maxAdvertisersShown]
	}

	for _, name := range shown {
		group := groups[name]
		lines = append(lines, fmt.Sprintf("- %s：%d 条", name, len(group)))

		samples := group
		if len(samples) > maxSamplesPerGroup {
			samples = samples[:maxSamplesPerGroup]
		}
		for _, sample := range samples {
			lines = append(lines, "    · "+sampleLine(sample))
		}
	}

	if len(names) > len(shown) {
		lines = append(lines, fmt.Sprintf("（其余 %d 个账户略）", len(names)-len(shown)))
	}

	return strings.Join(lines, "\n")
}

func sampleLine(report *domain.HiddenCommentReport) string {
	text := strings.TrimSpace(strings.ReplaceAll(report.CommentText, "\n", " "))
	if runes := []rune(text); len(runes) > maxSampleRunes {
		text = string(runes[:maxSampleRunes]) + "…"
	}

	extras := make([]string, 0, 2)
	if report.AwemeName != nil && *report.AwemeName != "" {
		extras = append(extras, "视频:"+*report.AwemeName)
	}
	if report.AdName != nil && *report.AdName != "" {
		extras = append(extras, "广告:"+*report.AdName)
	}

	if len(extras) > 0 {
		return text + "（" + strings.Join(extras, " ") + "）"
	}
	return text
}
