package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "path/filepath"
    "strings"

    "github.com/gorilla/mux"

    "onboarding-go/models"
    "onboarding-go/schema"
    "onboarding-go/service"
    "onboarding-go/utils"
)

// CreateTicket is the public submission endpoint. The server pass of the
// validation engine runs here regardless of what the client already
// checked.
func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request) {
    var req models.TicketRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid request body", nil)
        return
    }

    if err := utils.ValidateStruct(req); err != nil {
        sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
        return
    }
    req.Normalize()

    customID, err := h.tickets.Create(r.Context(), &req)
    if err != nil {
        if errors.Is(err, service.ErrUpstream) {
            log.Printf("create ticket: %v", err)
            sendError(w, http.StatusBadGateway, "Failed to submit registration", nil)
            return
        }
        log.Printf("create ticket: %v", err)
        sendError(w, http.StatusInternalServerError, "Failed to create ticket", nil)
        return
    }

    sendJSON(w, http.StatusCreated, map[string]string{"custom_id": customID})
}

// GetTicket is the public lookup by custom id, used by the success page.
func (h *Handlers) GetTicket(w http.ResponseWriter, r *http.Request) {
    customID := mux.Vars(r)["customId"]

    ticket, err := h.tickets.GetByCustomID(r.Context(), customID)
    if err != nil {
        if errors.Is(err, service.ErrTicketNotFound) {
            sendError(w, http.StatusNotFound, "Ticket not found", nil)
            return
        }
        log.Printf("get ticket %s: %v", customID, err)
        sendError(w, http.StatusInternalServerError, "Failed to fetch ticket", nil)
        return
    }

    sendJSON(w, http.StatusOK, ticket)
}

// GetFormSections serves the field schema registry so the client renders
// and pre-validates from the same source the server enforces.
func (h *Handlers) GetFormSections(w http.ResponseWriter, r *http.Request) {
    sendJSON(w, http.StatusOK, schema.Sections())
}

const maxUploadBytes = 16 << 20 // 16 MiB

// UploadDocument stores one form document in object storage and returns the
// public URL the submission references. The target field's accept map
// decides which extensions pass.
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
    if h.storage == nil {
        sendError(w, http.StatusServiceUnavailable, "File storage is not configured", nil)
        return
    }

    r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
    if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
        sendError(w, http.StatusBadRequest, "Invalid multipart request", nil)
        return
    }

    fieldName := r.FormValue("field")
    field, ok := schema.FindField(fieldName)
    if !ok || field.Kind != schema.KindFile {
        sendError(w, http.StatusBadRequest, "Unknown upload field", nil)
        return
    }

    file, header, err := r.FormFile("file")
    if err != nil {
        sendError(w, http.StatusBadRequest, "Missing file", nil)
        return
    }
    defer file.Close()

    if !extensionAccepted(field, header.Filename) {
        sendError(w, http.StatusBadRequest, "File type not accepted for this field", nil)
        return
    }

    url, err := h.storage.Upload(fieldName, header.Filename, file)
    if err != nil {
        log.Printf("upload %s: %v", fieldName, err)
        sendError(w, http.StatusInternalServerError, "Failed to store file", nil)
        return
    }

    sendJSON(w, http.StatusOK, map[string]string{"url": url})
}

func extensionAccepted(field schema.Field, fileName string) bool {
    ext := strings.ToLower(filepath.Ext(fileName))
    for _, exts := range field.Accept {
        for _, allowed := range exts {
            if ext == allowed {
                return true
            }
        }
    }
    return false
}
