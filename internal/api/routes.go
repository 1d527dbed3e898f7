package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/setup", handler.Setup)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthAllowPasswordChange, handler.Me)
	auth.Post("/change-password", handler.AuthAllowPasswordChange, handler.ChangePassword)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("/", handler.GetProfile)
	profile.Put("/", handler.UpdateProfile)

	observations := api.Group("/observations", handler.AuthRequired)
	observations.Get("/", handler.ListObservations)
	observations.Get("/latest", handler.LatestObservation)
	observations.Get("/:date", handler.GetObservation)
	observations.Put("/:date", handler.PutObservation)
	observations.Delete("/:date", handler.DeleteObservation)

	riskRoutes := api.Group("/risk", handler.AuthRequired)
	riskRoutes.Get("/diseases", handler.DiseaseRisks)
	riskRoutes.Get("/diseases/:disease", handler.DiseaseRisk)
	riskRoutes.Get("/prodromal", handler.ProdromalRisk)
	riskRoutes.Post("/uv", handler.UVRisk)
	riskRoutes.Get("/index", handler.DailyIndex)

	flares := api.Group("/flares", handler.AuthRequired)
	flares.Get("/", handler.ListFlares)
	flares.Post("/", handler.CreateFlare)
	flares.Delete("/:id", handler.DeleteFlare)

	stress := api.Group("/stress", handler.AuthRequired)
	stress.Get("/", handler.ListStress)
	stress.Post("/", handler.CreateStress)
	stress.Delete("/:id", handler.DeleteStress)

	food := api.Group("/food", handler.AuthRequired)
	food.Get("/", handler.ListFood)
	food.Post("/", handler.CreateFood)
	food.Delete("/:id", handler.DeleteFood)

	sleep := api.Group("/sleep", handler.AuthRequired)
	sleep.Get("/", handler.ListSleep)
	sleep.Post("/", handler.CreateSleep)
	sleep.Delete("/:id", handler.DeleteSleep)

	api.Get("/lifestyle/analysis", handler.AuthRequired, handler.LifestyleAnalysis)
}
