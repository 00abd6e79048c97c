package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"github.com/vfg2006/ad-monitor-api/pkg/apiErrors"
)

const defaultAlertListLimit = 100

type alertEventResponse struct {
	ID                  int64           `json:"id"`
	AlertTime           time.Time       `json:"alert_time"`
	AdvertiserID        int64           `json:"advertiser_id"`
	AdvertiserName      string          `json:"advertiser_name,omitempty"`
	RuleID              string          `json:"rule_id"`
	Severity            string          `json:"severity"`
	BalanceValid        float64         `json:"balance_valid"`
	BaselineSpend       float64         `json:"baseline_spend"`
	ThresholdMultiplier float64         `json:"threshold_multiplier"`
	Ratio               float64         `json:"ratio"`
	PeriodBucket        string          `json:"period_bucket"`
	DedupKey            string          `json:"dedup_key"`
	Status              string          `json:"status"`
	NotifiedAt          *time.Time      `json:"notified_at,omitempty"`
	Detail              json.RawMessage `json:"detail,omitempty"`
}

type updateAlertStatusRequest struct {
	Status string `json:"status"`
}

// ListOpenAlerts lista os alertas ainda abertos, mais recentes primeiro.
func ListOpenAlerts(repo repository.AlertEventRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := uint64(defaultAlertListLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		events, err := repo.ListOpen(limit)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar alertas abertos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar alertas no banco de dados", nil)
			return
		}

		out := make([]alertEventResponse, 0, len(events))
		for _, event := range events {
			out = append(out, alertEventToResponse(event))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// UpdateAlertStatus transiciona um alerta para acked ou closed.
func UpdateAlertStatus(repo repository.AlertEventRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dedupKey := httprouter.ParamsFromContext(r.Context()).ByName("dedup_key")
		if dedupKey == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Chave do alerta é obrigatória", nil)
			return
		}

		var req updateAlertStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		status := domain.AlertStatus(req.Status)
		if !status.Valid() || status == domain.AlertStatusOpen {
			apiErrors.WriteError(w, apiErrors.ErrInvalidStatus, "Status inválido. Valores aceitos: acked, closed", nil)
			return
		}

		found, err := repo.UpdateStatus(dedupKey, status)
		if err != nil {
			logrus.WithError(err).Error("Erro ao atualizar status do alerta")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar alerta no banco de dados", nil)
			return
		}
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrAlertNotFound, "Alerta não encontrado", map[string]any{
				"dedup_key": dedupKey,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"dedup_key": dedupKey,
			"status":    status,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func alertEventToResponse(event *domain.AlertEvent) alertEventResponse {
	return alertEventResponse{
		ID:                  event.ID,
		AlertTime:           event.AlertTime,
		AdvertiserID:        event.AdvertiserID,
		AdvertiserName:      event.AdvertiserName,
		RuleID:              event.RuleID,
		Severity:            string(event.Severity),
		BalanceValid:        event.BalanceValid,
		BaselineSpend:       event.BaselineSpend,
		ThresholdMultiplier: event.ThresholdMultiplier,
		Ratio:               event.Ratio,
		PeriodBucket:        event.PeriodBucket,
		DedupKey:            event.DedupKey,
		Status:              string(event.Status),
		NotifiedAt:          event.NotifiedAt,
		Detail:              event.Detail,
	}
}
