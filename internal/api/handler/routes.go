package handler

import (
	"net/http"

	"github.com/vfg2006/lead-intelligence-api/internal/api/handler/router"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/querying"
	"github.com/vfg2006/lead-intelligence-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Leads(service querying.Querier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/filters/fields",
			Method:      http.MethodGet,
			Handler:     ListFilterableFields(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:context",
			Method:      http.MethodGet,
			Handler:     QueryLeads(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Accounts(service querying.Querier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/ranking",
			Method:      http.MethodGet,
			Handler:     GetAccountRanking(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
