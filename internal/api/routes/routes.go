// server/internal/api/routes/routes.go
package routes

import (
	"gesla-logistics-api-server/config"
	"gesla-logistics-api-server/internal/api/handlers"
	"gesla-logistics-api-server/internal/api/middleware"
	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/s3"
	"gesla-logistics-api-server/internal/socket"
	"gesla-logistics-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter receives the wired dependencies and declares the routes.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	loadService *loads.Service,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Wire the handlers
	loadHandler := &handlers.LoadHandler{Service: loadService}
	archiveHandler := &handlers.ArchiveHandler{Service: loadService}
	dashboardHandler := &handlers.DashboardHandler{Service: loadService}
	carrierHandler := &handlers.CarrierHandler{Store: store.NewCollection(db, "carriers", "carrierID")}
	clientHandler := &handlers.ClientHandler{Store: store.NewCollection(db, "clients", "clientID")}
	materialHandler := &handlers.MaterialHandler{Store: store.NewCollection(db, "materials", "materialID")}
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	uploadHandler := &handlers.UploadHandler{Uploader: s3Uploader, Service: loadService}
	reportHandler := &handlers.ReportHandler{Service: loadService}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		// WebSocket notification feed (token in query string)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// === PROTECTED ROUTES ===

		// Admin-only group
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin"))
		{
			admin.POST("/users", userHandler.CreateUser)
			admin.GET("/users", userHandler.GetAllUsers)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}

		// Main business routes for back-office roles
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("admin", "operator"))
		{
			// Load lifecycle
			loadRoutes := businessRoutes.Group("/loads")
			{
				loadRoutes.POST("/", loadHandler.CreateLoad)
				loadRoutes.GET("/", loadHandler.GetAllLoads)
				loadRoutes.GET("/fiscal/pending", loadHandler.GetPendingFiscal)
				loadRoutes.GET("/:id", loadHandler.GetLoad)
				loadRoutes.PUT("/:id", loadHandler.UpdateLoad)
				loadRoutes.DELETE("/:id", loadHandler.DeleteLoad)
				loadRoutes.PATCH("/:id/status", loadHandler.UpdateLoadStatus)
				loadRoutes.POST("/:id/documents/:kind", uploadHandler.UploadDocument)
			}

			// Archive (terminal loads + restore)
			archiveRoutes := businessRoutes.Group("/archive")
			{
				archiveRoutes.GET("/loads", archiveHandler.GetArchivedLoads)
				archiveRoutes.POST("/loads/:id/restore", archiveHandler.RestoreLoad)
			}

			// Dashboard aggregates
			dashboardRoutes := businessRoutes.Group("/dashboard")
			{
				dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
				dashboardRoutes.GET("/carriers", dashboardHandler.GetCarrierTotals)
				dashboardRoutes.GET("/carriers/top", dashboardHandler.GetTopCarriers)
				dashboardRoutes.GET("/clients", dashboardHandler.GetClientTotals)
				dashboardRoutes.GET("/monthly", dashboardHandler.GetMonthlyTotals)
				dashboardRoutes.GET("/shipping-types", dashboardHandler.GetShippingTypeTotals)
			}

			// Reports
			businessRoutes.GET("/reports/dashboard", reportHandler.DownloadDashboardReport)

			// Carrier management (CRUD, soft delete)
			carrierRoutes := businessRoutes.Group("/carriers")
			{
				carrierRoutes.POST("/", carrierHandler.CreateCarrier)
				carrierRoutes.GET("/", carrierHandler.GetAllCarriers)
				carrierRoutes.GET("/:id", carrierHandler.GetCarrierByID)
				carrierRoutes.PUT("/:id", carrierHandler.UpdateCarrier)
				carrierRoutes.DELETE("/:id", carrierHandler.DeleteCarrier)
			}

			// Client management (CRUD, soft delete)
			clientRoutes := businessRoutes.Group("/clients")
			{
				clientRoutes.POST("/", clientHandler.CreateClient)
				clientRoutes.GET("/", clientHandler.GetAllClients)
				clientRoutes.GET("/:id", clientHandler.GetClientByID)
				clientRoutes.PUT("/:id", clientHandler.UpdateClient)
				clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
			}

			// Material catalog (CRUD, hard delete)
			materialRoutes := businessRoutes.Group("/materials")
			{
				materialRoutes.POST("/", materialHandler.CreateMaterial)
				materialRoutes.GET("/", materialHandler.GetAllMaterials)
				materialRoutes.GET("/:id", materialHandler.GetMaterialByID)
				materialRoutes.PUT("/:id", materialHandler.UpdateMaterial)
				materialRoutes.DELETE("/:id", materialHandler.DeleteMaterial)
			}
		}
	}

	return router
}
