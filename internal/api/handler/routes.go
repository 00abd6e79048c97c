package handler

import (
	"net/http"

	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/api/handler/router"
)

func Healthcheck(deps HealthDependencies) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(deps),
		},
	}
}

func Alerts(repo repository.AlertEventRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/alerts",
			Method:  http.MethodGet,
			Handler: ListOpenAlerts(repo),
		},
		{
			Path:    "/v1/alerts/:dedup_key/status",
			Method:  http.MethodPost,
			Handler: UpdateAlertStatus(repo),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
