package cmd

import (
    "log"
    "net/http"

    "github.com/gorilla/mux"
    "github.com/spf13/cobra"

    "onboarding-go/config"
    "onboarding-go/database"
    "onboarding-go/handlers"
    "onboarding-go/middleware"
    "onboarding-go/service"
    "onboarding-go/storage"
    "onboarding-go/utils"
    "onboarding-go/verifier"
)

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Run the HTTP API",
    RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
    cfg := config.Load()
    config.ValidateConfig(cfg)

    if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
        return err
    }

    db, err := database.Initialize(cfg.DatabasePath)
    if err != nil {
        return err
    }

    verifierClient := verifier.NewClient(cfg.VerifierURL, cfg.VerifierAPIKey, cfg.VerifierTimeout)
    tickets := service.NewTicketService(db, verifierClient, cfg.StatusSyncPolicy)

    var store storage.ObjectStorage
    if cfg.OSSEndpoint != "" {
        ossStore, err := storage.NewOSSService(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.OSSBucket)
        if err != nil {
            return err
        }
        store = ossStore
    } else {
        log.Println("OSS_ENDPOINT not set, file uploads disabled")
    }

    h := handlers.NewHandlers(db, tickets, store, cfg)

    r := mux.NewRouter()
    r.Use(middleware.CORS)
    r.Use(middleware.RateLimit)

    // Public routes
    r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")
    r.HandleFunc("/api/form/sections", h.GetFormSections).Methods("GET")
    r.HandleFunc("/api/tickets", h.CreateTicket).Methods("POST")
    r.HandleFunc("/api/tickets/{customId}", h.GetTicket).Methods("GET")
    r.HandleFunc("/api/upload", h.UploadDocument).Methods("POST")
    r.HandleFunc("/api/admin/login", h.Login).Methods("POST")
    r.HandleFunc("/api/admin/session", h.Session).Methods("GET")

    // Admin routes
    adminRoutes := r.PathPrefix("/api/admin").Subrouter()
    adminRoutes.Use(middleware.JWTAuth)
    adminRoutes.Use(middleware.AdminAuth)
    adminRoutes.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
    adminRoutes.HandleFunc("/tickets", h.GetTickets).Methods("GET")
    adminRoutes.HandleFunc("/tickets/{id}", h.GetTicketByID).Methods("GET")
    adminRoutes.HandleFunc("/tickets/{id}", h.UpdateTicket).Methods("PUT")

    log.Printf("Server starting on port %s", cfg.Port)
    log.Printf("Environment: %s", cfg.Environment)
    log.Printf("Database: %s", cfg.DatabasePath)
    log.Printf("Status sync policy: %s", cfg.StatusSyncPolicy)

    return http.ListenAndServe(":"+cfg.Port, r)
}
