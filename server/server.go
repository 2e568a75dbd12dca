package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SadaaFM/config"
	"SadaaFM/db"
	"SadaaFM/logger"
	"SadaaFM/model"
	"SadaaFM/repository"
	"SadaaFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: "logs/server.log",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// GORM side path for play history. The server runs without it; plays
	// still bump play_count, only the event log is skipped.
	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Warn("GORM connection failed, play history disabled", logger.ErrorField(err))
	} else {
		defer db.CloseGormDB()
		if err := db.AutoMigrateModels(&model.PlayEvent{}); err != nil {
			logger.Warn("play_events migration failed", logger.ErrorField(err))
		}
	}

	// Redis backs the catalog cache only; reads fall through to MySQL
	// when it is down.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis connection failed, catalog cache disabled", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
		log.Println("Successfully connected to Redis")
	}

	// MinIO hosts uploaded ringtone clips. Without it the upload endpoint
	// and the /ringtones/ proxy return errors; the catalog API is unaffected.
	if err := storage.InitMinio(cfg); err != nil {
		logger.Warn("MinIO initialization failed, ringtone hosting disabled", logger.ErrorField(err))
	}

	instrumentalRepo := repository.NewMySQLInstrumentalRepository()
	playRepo := repository.NewGormPlayEventRepository()

	apiHandler := NewAPIHandler(instrumentalRepo, playRepo, cfg)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// API Endpoints
	router.HandleFunc("/api/", apiHandler.RootHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals", apiHandler.GetInstrumentalsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals/featured", apiHandler.GetFeaturedHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals", apiHandler.CreateInstrumentalHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/instrumentals/{id}", apiHandler.GetInstrumentalHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals/{id}", apiHandler.UpdateInstrumentalHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/instrumentals/{id}/play", apiHandler.PlayHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/instrumentals/{id}/ringtone", apiHandler.UploadRingtoneHandler).Methods(http.MethodPost)

	// Stored ringtone clips are streamed straight out of MinIO.
	router.PathPrefix("/ringtones/").HandlerFunc(apiHandler.ServeRingtoneHandler).Methods(http.MethodGet)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("List instrumentals via GET /api/instrumentals")
		log.Println("Featured subset via GET /api/instrumentals/featured")
		log.Println("Create via POST /api/instrumentals, update via PUT /api/instrumentals/{id}")
		log.Println("Ringtone uploads via POST /api/instrumentals/{id}/ringtone")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
