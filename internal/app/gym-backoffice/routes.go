package gymbackoffice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/asset/assetcreate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/asset/assetlist"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/asset/assetread"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/asset/assetremove"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/asset/assetupdate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financecreate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financelist"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financeread"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financeremove"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financesummary"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/finance/financeupdate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/plan/plancreate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/plan/planlist"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/plan/planread"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/plan/planremove"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/plan/planupdate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/changepassword"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/deactivate"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/deleteadmin"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/deletionlist"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/register"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/resetpassword"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/stafflist"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/staff/verify"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/create"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/list"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/read"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/remove"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/renew"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/handlers/student/update"
	"github.com/magabrotheeeer/gym-backoffice/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
	assetservice "github.com/magabrotheeeer/gym-backoffice/internal/services/asset"
	authservice "github.com/magabrotheeeer/gym-backoffice/internal/services/auth"
	financeservice "github.com/magabrotheeeer/gym-backoffice/internal/services/finance"
	membservice "github.com/magabrotheeeer/gym-backoffice/internal/services/membership"
	planservice "github.com/magabrotheeeer/gym-backoffice/internal/services/plan"
	staffservice "github.com/magabrotheeeer/gym-backoffice/internal/services/staff"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	membershipService *membservice.MembershipService,
	planService *planservice.PlanService,
	financeService *financeservice.FinanceService,
	assetService *assetservice.AssetService,
	staffService *staffservice.StaffService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/staff/verify", verify.New(logger, staffService).ServeHTTP)
		r.Post("/staff/reset-password", resetpassword.New(logger, staffService).ServeHTTP)
		r.Post("/staff/change-password", changepassword.New(logger, staffService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/students", create.New(logger, membershipService).ServeHTTP)
			r.Get("/students", list.New(logger, membershipService).ServeHTTP)
			r.Get("/students/{matricula}", read.New(logger, membershipService).ServeHTTP)
			r.Put("/students/{matricula}", update.New(logger, membershipService).ServeHTTP)
			r.Delete("/students/{matricula}", remove.New(logger, membershipService).ServeHTTP)
			r.Post("/students/renew", renew.New(logger, membershipService).ServeHTTP)

			r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
			r.Get("/plans/{id}", planread.New(logger, planService).ServeHTTP)

			r.Get("/assets", assetlist.New(logger, assetService).ServeHTTP)
			r.Get("/assets/{id}", assetread.New(logger, assetService).ServeHTTP)
			r.Post("/assets", assetcreate.New(logger, assetService).ServeHTTP)
			r.Put("/assets/{id}", assetupdate.New(logger, assetService).ServeHTTP)
			r.Delete("/assets/{id}", assetremove.New(logger, assetService).ServeHTTP)

			// Операции администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAccessLevel(logger,
					models.AccessAdministrator, models.AccessSuperAdmin))

				r.Post("/plans", plancreate.New(logger, planService).ServeHTTP)
				r.Put("/plans/{id}", planupdate.New(logger, planService).ServeHTTP)
				r.Delete("/plans/{id}", planremove.New(logger, planService).ServeHTTP)

				r.Post("/finance", financecreate.New(logger, financeService).ServeHTTP)
				r.Get("/finance", financelist.New(logger, financeService).ServeHTTP)
				r.Get("/finance/summary", financesummary.New(logger, financeService).ServeHTTP)
				r.Get("/finance/{id}", financeread.New(logger, financeService).ServeHTTP)
				r.Put("/finance/{id}", financeupdate.New(logger, financeService).ServeHTTP)
				r.Delete("/finance/{id}", financeremove.New(logger, financeService).ServeHTTP)

				r.Post("/staff", register.New(logger, staffService).ServeHTTP)
				r.Get("/staff", stafflist.New(logger, staffService).ServeHTTP)
				r.Get("/staff/deletions", deletionlist.New(logger, staffService).ServeHTTP)
				r.Delete("/staff/{national_id}", deactivate.New(logger, staffService).ServeHTTP)
				r.Post("/staff/delete-admin", deleteadmin.New(logger, staffService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
