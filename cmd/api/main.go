// server/cmd/api/main.go
package main

import (
	"log"

	"gesla-logistics-api-server/config"
	"gesla-logistics-api-server/internal/api/routes"
	"gesla-logistics-api-server/internal/auth"
	"gesla-logistics-api-server/internal/database"
	"gesla-logistics-api-server/internal/events"
	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/notify"
	"gesla-logistics-api-server/internal/s3"
	"gesla-logistics-api-server/internal/socket"
	"gesla-logistics-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	// 2. Connect Mongo and seed the default admin
	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Could not seed admin user: %v", err)
	}

	// 3. Notification side channel: WebSocket hub + log sink
	wsHub := socket.NewHub()
	notifier := notify.NewService(&notify.HubSink{Hub: wsHub}, notify.LogSink{})

	// 4. Optional WhatsApp bot gateway for fiscal alerts
	whatsapp := notify.NewWhatsAppChannel(cfg.WhatsApp)
	if whatsapp == nil {
		log.Println("WhatsApp gateway not configured, fiscal alerts go to the feed only")
	}

	// 5. Status event bus; the feed listener mirrors transitions to clients
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(func(ev events.StatusEvent) {
		if ev.Previous == nil {
			return // creation already produces its own notification
		}
		notifier.AddNotification(notify.Notification{
			Title:       "Status changed",
			Description: "Load " + ev.Load.PortCode + ": " + string(*ev.Previous) + " -> " + string(ev.Load.Status),
			Type:        "status_change",
		})
	})

	// 6. Document storage is optional in local setups
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not create S3 uploader: %v", err)
		}
	}

	// 7. The load lifecycle engine
	var alerts loads.AlertChannel
	if whatsapp != nil {
		alerts = whatsapp
	}
	loadService := loads.NewService(store.NewLoadStore(db), dispatcher, notifier, alerts, cfg.App.BaseURL)

	// 8. Router and server
	router := routes.SetupRouter(cfg, db, loadService, uploader, wsHub)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
