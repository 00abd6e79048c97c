package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/scheduler"
	"github.com/vfg2006/ad-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/ad-monitor-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeIngestion     = "ingestion"
	CronJobTypeAlertDaily    = "alert-daily"
	CronJobTypeAlertIntraday = "alert-intraday"
	CronJobTypeComments      = "comments"
	CronJobTypeNotify        = "notify"
)

// Identificadores das regras de saldo expostas pelos tipos de cron.
const (
	dailyRuleID    = "RULE_00"
	intradayRuleID = "RULE_30M"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	IngestionSyncService         *scheduler.IngestionSyncService
	AlertRulesService            *scheduler.AlertRulesService
	CommentModerationSyncService *scheduler.CommentModerationSyncService
	CommentNotifyService         *scheduler.CommentNotifyService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Apenas operadores admin podem disparar jobs manualmente
		claims, ok := middleware.OperatorFromContext(r.Context())
		if !ok || claims.Role != "admin" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeIngestion:
			if services.IngestionSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, "Serviço de ingestão de snapshot não disponível", nil)
				return
			}
			services.IngestionSyncService.TriggerManualSync()

		case CronJobTypeAlertDaily:
			if err := triggerAlertRule(services, dailyRuleID); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, err.Error(), nil)
				return
			}

		case CronJobTypeAlertIntraday:
			if err := triggerAlertRule(services, intradayRuleID); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, err.Error(), nil)
				return
			}

		case CronJobTypeComments:
			if services.CommentModerationSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, "Serviço de moderação de comentários não disponível", nil)
				return
			}
			services.CommentModerationSyncService.TriggerManualSync()

		case CronJobTypeNotify:
			if services.CommentNotifyService == nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, "Serviço de rollup de comentários não disponível", nil)
				return
			}
			services.CommentNotifyService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: ingestion, alert-daily, alert-intraday, comments, notify", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

var errAlertServiceUnavailable = errors.New("serviço de regras de saldo não disponível")

func triggerAlertRule(services CronJobServices, ruleID string) error {
	if services.AlertRulesService == nil {
		return errAlertServiceUnavailable
	}
	return services.AlertRulesService.TriggerManualSync(ruleID)
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		claims, ok := middleware.OperatorFromContext(r.Context())
		if !ok || claims.Role != "admin" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"ingestion": services.IngestionSyncService.GetStatus(),
			"alerts":    services.AlertRulesService.GetStatus(),
			"comments":  services.CommentModerationSyncService.GetStatus(),
			"notify":    services.CommentNotifyService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
