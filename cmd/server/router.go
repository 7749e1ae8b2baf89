package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/dailyplan-api/internal/api"
	apiMiddleware "github.com/phrazzld/dailyplan-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	planHandler := api.NewPlanHandler(app.planService)
	generationHandler := api.NewGenerationHandler(app.planService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/generation/status", generationHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/generation/tasks", generationHandler.GenerateTasks)

			r.Get("/plans", planHandler.ListPlans)
			r.Get("/plans/default-date", planHandler.DefaultDate)
			r.Route("/plans/{date}", func(r chi.Router) {
				r.Get("/", planHandler.GetPlan)
				r.Put("/", planHandler.SavePlan)
				r.Delete("/", planHandler.DeletePlan)
				r.Put("/order", planHandler.ReorderTasks)
				r.Patch("/tasks/{taskID}", planHandler.UpdateTask)
				r.Post("/tasks/{taskID}/cycle-priority", planHandler.CyclePriority)
				r.Delete("/tasks/{taskID}", planHandler.DeleteTask)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
