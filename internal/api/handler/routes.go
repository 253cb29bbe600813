package handler

import (
	"net/http"

	"github.com/pvilarim/ecomdash-api/infrastructure/repository"
	"github.com/pvilarim/ecomdash-api/internal/api/handler/router"
	"github.com/pvilarim/ecomdash-api/internal/usecases/authenticating"
	"github.com/pvilarim/ecomdash-api/internal/usecases/ingesting"
	"github.com/pvilarim/ecomdash-api/internal/usecases/narrating"
	"github.com/pvilarim/ecomdash-api/internal/usecases/reporting"
	"github.com/pvilarim/ecomdash-api/pkg/middleware"
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

func Reports(reporter reporting.Reporter, narrator narrating.Narrator, snapshotRepo repository.StatsSnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/summary",
			Method:      http.MethodGet,
			Handler:     GetReportSummary(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/narrative",
			Method:      http.MethodPost,
			Handler:     GenerateNarrative(narrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/snapshots",
			Method:      http.MethodGet,
			Handler:     GetSnapshotHistory(snapshotRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Uploads(service ingesting.Ingestor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/uploads/:type",
			Method:      http.MethodPost,
			Handler:     UploadReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Expenses(repo repository.ExpenseRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/expenses",
			Method:      http.MethodPost,
			Handler:     CreateExpense(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func ProductCosts(repo repository.ProductCostRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/costs",
			Method:      http.MethodGet,
			Handler:     ListProductCosts(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/costs/:sku",
			Method:      http.MethodPut,
			Handler:     UpsertProductCost(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
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
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
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
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
