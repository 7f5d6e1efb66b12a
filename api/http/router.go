package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rsinha/jobmatch/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	cand *handlers.CandidateHandler,
	jobs *handlers.JobHandler,
	matching *handlers.MatchingHandler,
	rec *handlers.RecruiterHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Candidate intake and self-service
	cg := v1.Group("/candidates")
	cg.Post("/", cand.Upload)
	cg.Get("/:id", cand.Get)
	cg.Post("/:id/preferences", cand.SavePreferences)
	cg.Get("/:id/matches", matching.FindMatches)
	cg.Get("/:id/applications", matching.Applications)

	// Public job board
	jg := v1.Group("/jobs")
	jg.Get("/", jobs.List)
	jg.Get("/stats", jobs.Stats)
	jg.Get("/:id", jobs.Get)
	jg.Post("/", authMW, jobs.Create)
	jg.Post("/import", authMW, jobs.Import)
	jg.Get("/:id/shortlist", authMW, matching.Shortlist)

	// Applications
	v1.Post("/applications", matching.Apply)
	v1.Patch("/applications/:id", authMW, matching.UpdateStatus)

	// Recruiter directory (protected)
	rg := v1.Group("/recruiter", authMW)
	rg.Get("/candidates", rec.ListCandidates)
	rg.Get("/candidates/:id", rec.GetCandidate)
	rg.Get("/dashboard", rec.Dashboard)
	rg.Get("/filters", rec.FilterOptions)
}
