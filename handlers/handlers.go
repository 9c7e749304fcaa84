package handlers

import (
    "encoding/json"
    "net/http"
    "time"

    "gorm.io/gorm"

    "onboarding-go/config"
    "onboarding-go/models"
    "onboarding-go/service"
    "onboarding-go/storage"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
    Status    int         `json:"status"`
    Error     string      `json:"error"`
    Details   interface{} `json:"details,omitempty"`
    Timestamp time.Time   `json:"timestamp"`
}

func sendError(w http.ResponseWriter, status int, err string, details interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(ErrorResponse{
        Status:    status,
        Error:     err,
        Details:   details,
        Timestamp: time.Now(),
    })
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

type Handlers struct {
    db      *gorm.DB
    tickets *service.TicketService
    storage storage.ObjectStorage
    config  *config.Config
}

// NewHandlers wires the HTTP surface. storage may be nil when object
// storage is not configured; the upload endpoint then reports unavailable.
func NewHandlers(db *gorm.DB, tickets *service.TicketService, store storage.ObjectStorage, cfg *config.Config) *Handlers {
    return &Handlers{
        db:      db,
        tickets: tickets,
        storage: store,
        config:  cfg,
    }
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
    sendJSON(w, http.StatusOK, map[string]interface{}{
        "status":    "healthy",
        "timestamp": time.Now(),
        "service":   "OnboardingGo",
        "version":   "1.0.0",
    })
}

func (h *Handlers) logAudit(adminEmail, action, resource, details, ipAddress, userAgent string) {
    audit := models.AuditLog{
        AdminEmail: adminEmail,
        Action:     action,
        Resource:   resource,
        Details:    details,
        IPAddress:  ipAddress,
        UserAgent:  userAgent,
    }
    h.db.Create(&audit)
}
