package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/routes"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/services"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("ENVIRONMENT") != "production" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeFiles()

	logger := utils.NewLogger(os.Getenv("ENVIRONMENT"))
	defer logger.Sync()

	requestStore := storage.OpenRequestStore(logger)
	notificationSvc := services.NewNotificationService(logger)
	bookingSvc := services.NewBookingService(requestStore, notificationSvc, logger)
	routes.InitializeServices(requestStore, bookingSvc, notificationSvc)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Uploaded images
	app.HandleDir("/uploads", iris.Dir(storage.UploadDir()))

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
	}

	partners := app.Party("/api/partners")
	{
		partners.Get("/", routes.GetPartners)
		partners.Get("/{id:uint}", routes.GetPartner)
		partners.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.CreatePartner)
		partners.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdatePartner)
		partners.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.DeletePartner)
		partners.Post("/{id:uint}/schedules", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreatePartnerSchedule)
	}

	agents := app.Party("/api/agents")
	{
		agents.Get("/", routes.GetAgents)
		agents.Get("/{id:uint}", routes.GetAgent)
		agents.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.CreateAgent)
		agents.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateAgent)
		agents.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.DeleteAgent)
		agents.Post("/{id:uint}/schedules", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateAgentSchedule)
	}

	schedules := app.Party("/api/schedules")
	{
		schedules.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateSchedule)
		schedules.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteSchedule)
	}

	freelancers := app.Party("/api/freelancers")
	{
		freelancers.Get("/", routes.GetFreelancers)
		freelancers.Get("/{id:uint}", routes.GetFreelancer)
		freelancers.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.CreateFreelancer)
		freelancers.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateFreelancer)
		freelancers.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.DeleteFreelancer)
		freelancers.Post("/{id:uint}/contents", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateContent)
	}

	contents := app.Party("/api/contents")
	{
		contents.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteContent)
		contents.Post("/{id:uint}/purchase", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.PurchaseContent)
	}

	products := app.Party("/api/products")
	{
		products.Get("/", routes.GetProducts)
		products.Get("/{id:uint}", routes.GetProduct)
		products.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.CreateProduct)
		products.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.UpdateProduct)
		products.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, utils.SuperAdminOnlyMiddleware, routes.DeleteProduct)
	}

	orders := app.Party("/api/orders", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		orders.Post("/", routes.CreateOrder)
		orders.Get("/mine", routes.GetMyOrders)
		orders.Post("/{id:uint}/return", routes.RequestReturn)
	}

	requests := app.Party("/api/requests", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		requests.Post("/apply", routes.ApplySchedule)
		requests.Get("/mine", routes.GetMyRequests)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
	}

	upload := app.Party("/api/upload", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		upload.Post("/", routes.UploadImage)
		upload.Post("/multiple", routes.UploadImages)
	}

	app.Post("/api/admin/login", routes.AdminLogin)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/requests", routes.AdminListRequests)
		admin.Get("/requests/{id:uint}", routes.AdminGetRequest)
		admin.Patch("/requests/{id:uint}/status", routes.AdminUpdateRequestStatus)
		admin.Patch("/requests/{id:uint}", routes.AdminPatchRequest)
		admin.Delete("/requests/{id:uint}", routes.AdminDeleteRequest)

		admin.Get("/orders", utils.SuperAdminOnlyMiddleware, routes.AdminListOrders)
		admin.Get("/orders/{id:uint}", utils.SuperAdminOnlyMiddleware, routes.AdminGetOrder)
		admin.Patch("/orders/{id:uint}/status", utils.SuperAdminOnlyMiddleware, routes.AdminUpdateOrderStatus)
		admin.Patch("/orders/{id:uint}/tracking", utils.SuperAdminOnlyMiddleware, routes.AdminSetTracking)
		admin.Post("/orders/{id:uint}/invoice", utils.SuperAdminOnlyMiddleware, routes.AdminRegenerateInvoice)
		admin.Post("/orders/{id:uint}/return", utils.SuperAdminOnlyMiddleware, routes.AdminDecideReturn)

		admin.Get("/users", utils.SuperAdminOnlyMiddleware, routes.AdminListUsers)
		admin.Get("/accounts", utils.SuperAdminOnlyMiddleware, routes.AdminListAccounts)
		admin.Post("/accounts", utils.SuperAdminOnlyMiddleware, routes.AdminCreateAccount)
		admin.Patch("/accounts/{id:uint}/password", utils.SuperAdminOnlyMiddleware, routes.AdminResetPassword)
		admin.Delete("/accounts/{id:uint}", utils.SuperAdminOnlyMiddleware, routes.AdminDeleteAccount)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
