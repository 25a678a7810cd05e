package routes

import (
	"mudra/admin"
	"mudra/auth"
	"mudra/catalog"
	"mudra/cert"
	"mudra/geo"
	"mudra/middleware"
	"mudra/notify"
	"mudra/orders"
	"mudra/ratelim"
	"mudra/stampduty"
	"mudra/uploads"
	"mudra/wizard"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/auth/session", auth.Session)

	router.POST("/api/auth/request-otp", ratelim.RateLimit(auth.RequestOTPHandler))
	router.POST("/api/auth/verify-otp", ratelim.RateLimit(auth.VerifyOTPHandler))
}

func AddGeoRoutes(router *httprouter.Router) {
	router.GET("/api/geo/states", geo.GetStates)
	router.POST("/api/geo/states", middleware.RequireAdmin(geo.CreateState))
	router.PUT("/api/geo/states/:id", middleware.RequireAdmin(geo.UpdateState))
	router.DELETE("/api/geo/states/:id", middleware.RequireAdmin(geo.DeleteState))

	router.GET("/api/geo/districts", geo.GetDistricts)
	router.POST("/api/geo/districts", middleware.RequireAdmin(geo.CreateDistrict))
	router.PUT("/api/geo/districts/:id", middleware.RequireAdmin(geo.UpdateDistrict))
	router.DELETE("/api/geo/districts/:id", middleware.RequireAdmin(geo.DeleteDistrict))

	router.GET("/api/geo/tehsils", geo.GetTehsils)
	router.POST("/api/geo/tehsils", middleware.RequireAdmin(geo.CreateTehsil))
	router.PUT("/api/geo/tehsils/:id", middleware.RequireAdmin(geo.UpdateTehsil))
	router.DELETE("/api/geo/tehsils/:id", middleware.RequireAdmin(geo.DeleteTehsil))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/catalog/categories", catalog.GetCategories)
	router.POST("/api/catalog/categories", middleware.RequireAdmin(catalog.CreateCategory))
	router.PUT("/api/catalog/categories/:id", middleware.RequireAdmin(catalog.UpdateCategory))
	router.DELETE("/api/catalog/categories/:id", middleware.RequireAdmin(catalog.DeleteCategory))

	router.GET("/api/catalog/products", catalog.GetProducts)
	router.GET("/api/catalog/products/:id", catalog.GetProduct)
	router.POST("/api/catalog/products", middleware.RequireAdmin(catalog.CreateProduct))
	router.PUT("/api/catalog/products/:id", middleware.RequireAdmin(catalog.UpdateProduct))
	router.DELETE("/api/catalog/products/:id", middleware.RequireAdmin(catalog.DeleteProduct))
}

func AddWizardRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/duty/quote", stampduty.QuoteHandler)

	router.POST("/api/wizard/start", rateLimiter.Limit(wizard.StartWizard))
	router.GET("/api/wizard/:id", wizard.GetWizard)
	router.PUT("/api/wizard/:id", wizard.UpdateWizard)
	router.GET("/api/wizard/:id/quote", wizard.QuoteWizard)
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", middleware.Authenticate(orders.CreateOrder))
	router.GET("/api/profile/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/:id", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:id/certificate", cert.PrintCertificate)

	router.GET("/api/certs/verify", cert.VerifyCertificate)
}

func AddAdminRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/api/admin/stats", middleware.RequireAdmin(admin.GetStats))
	router.GET("/api/admin/orders", middleware.RequireAdmin(admin.GetOrders))
	router.PATCH("/api/admin/orders/:id/status", middleware.RequireAdmin(admin.UpdateOrderStatus))
	router.POST("/api/admin/orders/:id/scan", middleware.RequireAdmin(uploads.UploadScan))
	router.POST("/api/admin/import/:kind", middleware.RequireAdmin(admin.BulkImport))

	router.GET("/ws/admin/orders", notify.ServeOrderFeed(hub))
}
