package handlers

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"

    "github.com/gorilla/mux"

    "onboarding-go/middleware"
    "onboarding-go/models"
    "onboarding-go/service"
    "onboarding-go/utils"
)

// loginRequest carries the allow-list credentials. The email is matched
// verbatim against the configured entries, which may use short internal
// addresses, so no format rule beyond presence applies here.
type loginRequest struct {
    Email    string `json:"email" validate:"required"`
    Password string `json:"password" validate:"required"`
}

// Login matches the credentials against the configured allow-list and
// issues a one-hour admin session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
    var req loginRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body", nil)
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
        return
    }

    for i, cred := range h.config.AdminCredentials {
        if cred.Email != req.Email {
            continue
        }
        if !utils.CheckPasswordHash(req.Password, cred.PasswordHash) {
            break
        }

        token, err := utils.GenerateToken(strconv.Itoa(i+1), cred.Email, utils.RoleAdmin)
        if err != nil {
            log.Printf("login: sign token: %v", err)
            sendError(w, http.StatusInternalServerError, "Failed to create session", nil)
            return
        }

        h.logAudit(cred.Email, "LOGIN", "session", "", r.RemoteAddr, r.UserAgent())
        sendJSON(w, http.StatusOK, map[string]string{"token": token})
        return
    }

    sendError(w, http.StatusUnauthorized, "Unauthorized", nil)
}

// Session reports the current session claims, or null for a missing or
// invalid token. This is a query-style check and never fails.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
    authHeader := r.Header.Get("Authorization")
    token, found := strings.CutPrefix(authHeader, "Bearer ")
    if !found {
        sendJSON(w, http.StatusOK, nil)
        return
    }

    claims, err := utils.ValidateToken(token)
    if err != nil {
        sendJSON(w, http.StatusOK, nil)
        return
    }
    sendJSON(w, http.StatusOK, map[string]string{
        "userId": claims.UserID,
        "email":  claims.Email,
        "role":   claims.Role,
    })
}

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
    counts, err := h.tickets.Dashboard(r.Context())
    if err != nil {
        log.Printf("dashboard: %v", err)
        sendError(w, http.StatusInternalServerError, "Failed to fetch dashboard", nil)
        return
    }
    sendJSON(w, http.StatusOK, counts)
}

// GetTickets lists tickets for the admin console with optional substring
// search and zero-based pagination.
func (h *Handlers) GetTickets(w http.ResponseWriter, r *http.Request) {
    search := utils.SanitizeString(r.URL.Query().Get("search"))

    limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
    if err != nil || limit <= 0 || limit > 100 {
        limit = 10
    }
    page, err := strconv.Atoi(r.URL.Query().Get("page"))
    if err != nil || page < 0 {
        page = 0
    }

    items, total, err := h.tickets.List(r.Context(), search, limit, page)
    if err != nil {
        log.Printf("list tickets: %v", err)
        sendError(w, http.StatusInternalServerError, "Failed to fetch tickets", nil)
        return
    }

    sendJSON(w, http.StatusOK, map[string]interface{}{
        "data":  items,
        "count": total,
    })
}

// GetTicketByID is the admin detail view, keyed by internal id.
func (h *Handlers) GetTicketByID(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
    if err != nil {
        sendError(w, http.StatusBadRequest, "Invalid ticket id", nil)
        return
    }

    ticket, err := h.tickets.GetByID(r.Context(), uint(id))
    if err != nil {
        if errors.Is(err, service.ErrTicketNotFound) {
            sendError(w, http.StatusNotFound, "Ticket not found", nil)
            return
        }
        log.Printf("get ticket %d: %v", id, err)
        sendError(w, http.StatusInternalServerError, "Failed to fetch ticket", nil)
        return
    }

    sendJSON(w, http.StatusOK, ticket)
}

type updateTicketRequest struct {
    Status models.TicketStatus `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

// UpdateTicket persists a new status and syncs it to the external verifier.
func (h *Handlers) UpdateTicket(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
    if err != nil {
        sendError(w, http.StatusBadRequest, "Invalid ticket id", nil)
        return
    }

    var req updateTicketRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body", nil)
        return
    }
    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
        return
    }

    if err := h.tickets.UpdateStatus(r.Context(), uint(id), req.Status); err != nil {
        switch {
        case errors.Is(err, service.ErrTicketNotFound):
            sendError(w, http.StatusNotFound, "Ticket not found", nil)
        case errors.Is(err, service.ErrUpstream):
            log.Printf("update ticket %d: %v", id, err)
            sendError(w, http.StatusBadGateway, "Failed to sync status", nil)
        default:
            log.Printf("update ticket %d: %v", id, err)
            sendError(w, http.StatusInternalServerError, "Failed to update ticket", nil)
        }
        return
    }

    if claims := middleware.GetUserFromContext(r); claims != nil {
        h.logAudit(claims.Email, "UPDATE_STATUS", fmt.Sprintf("ticket/%d", id),
            string(req.Status), r.RemoteAddr, r.UserAgent())
    }

    w.WriteHeader(http.StatusNoContent)
}
