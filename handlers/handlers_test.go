package handlers

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "mime/multipart"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/google/uuid"
    "github.com/gorilla/mux"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"

    "onboarding-go/config"
    "onboarding-go/middleware"
    "onboarding-go/models"
    "onboarding-go/service"
    "onboarding-go/utils"
    "onboarding-go/verifier"
)

type fakeVerifier struct {
    createErr error
}

func (f *fakeVerifier) CreateEnterprise(context.Context, verifier.CreateEnterpriseRequest) (string, error) {
    if f.createErr != nil {
        return "", f.createErr
    }
    return "ext-user-1", nil
}

func (f *fakeVerifier) UpdateEnterpriseStatus(context.Context, string, string) error {
    return nil
}

type fakeStorage struct{}

func (fakeStorage) Upload(fieldName, fileName string, r io.Reader) (string, error) {
    return "https://files.example.com/" + fieldName + "/" + fileName, nil
}

type testEnv struct {
    router   *mux.Router
    db       *gorm.DB
    verifier *fakeVerifier
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()

    require.NoError(t, utils.InitializeJWT("handlers-test-secret-0123456789abcd"))

    dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
    db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Silent),
    })
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&models.Ticket{}, &models.AuditLog{}))

    hash, err := utils.HashPassword("s3cret-pass")
    require.NoError(t, err)
    cfg := &config.Config{
        AdminCredentials: []config.AdminCredential{
            {Email: "root@admin", PasswordHash: hash},
        },
    }

    fv := &fakeVerifier{}
    tickets := service.NewTicketService(db, fv, "fail-open")
    h := NewHandlers(db, tickets, fakeStorage{}, cfg)

    r := mux.NewRouter()
    r.HandleFunc("/api/tickets", h.CreateTicket).Methods("POST")
    r.HandleFunc("/api/tickets/{customId}", h.GetTicket).Methods("GET")
    r.HandleFunc("/api/form/sections", h.GetFormSections).Methods("GET")
    r.HandleFunc("/api/upload", h.UploadDocument).Methods("POST")
    r.HandleFunc("/api/admin/login", h.Login).Methods("POST")
    r.HandleFunc("/api/admin/session", h.Session).Methods("GET")
    admin := r.PathPrefix("/api/admin").Subrouter()
    admin.Use(middleware.JWTAuth)
    admin.Use(middleware.AdminAuth)
    admin.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
    admin.HandleFunc("/tickets", h.GetTickets).Methods("GET")
    admin.HandleFunc("/tickets/{id}", h.GetTicketByID).Methods("GET")
    admin.HandleFunc("/tickets/{id}", h.UpdateTicket).Methods("PUT")

    return &testEnv{router: r, db: db, verifier: fv}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
    t.Helper()
    var reader io.Reader
    if body != nil {
        payload, err := json.Marshal(body)
        require.NoError(t, err)
        reader = bytes.NewReader(payload)
    }
    req := httptest.NewRequest(method, path, reader)
    req.Header.Set("Content-Type", "application/json")
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    e.router.ServeHTTP(rec, req)
    return rec
}

func (e *testEnv) login(t *testing.T) string {
    t.Helper()
    rec := e.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
        "email":    "root@admin",
        "password": "s3cret-pass",
    })
    require.Equal(t, http.StatusOK, rec.Code)
    var resp map[string]string
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.NotEmpty(t, resp["token"])
    return resp["token"]
}

func validTicketPayload() map[string]interface{} {
    return map[string]interface{}{
        "full_name": "Maria Silva",
        "email":     "maria@example.com",

        "website":            "https://www.acme.com.br",
        "trade_name":         "Acme",
        "legal_name":         "Acme Comércio Ltda",
        "tax_id":             "11.222.333/0001-81",
        "monthly_revenue":    "R$ 50.000,00",
        "incorporation_date": "2015-03-20",
        "phone":              "11987654321",
        "company_email":      "contato@acme.com.br",
        "tax_id_age":         "9",
        "partners_count":     "2",

        "postal_code":    "01310-100",
        "street_address": "Av. Paulista, 1000",
        "address_number": "1000",
        "district":       "Bela Vista",
        "address_type":   "Comercial",
        "country":        "Brasil",
        "state":          "SP",
        "city":           "São Paulo",
        "area_code":      "11",

        "terms_accepted": true,

        "partner_social_id":   "529.982.247-25",
        "partner_full_name":   "João Souza",
        "partner_email":       "joao@example.com",
        "partner_phone":       "11912345678",
        "partner_birth_date":  "1980-07-01",
        "partner_mother_name": "Ana Souza",
        "partner_father_name": "Pedro Souza",
        "partner_gender":      "Masculino",
        "partner_nationality": "Brasileiro",
        "partner_document_rg": "12.345.678-9",

        "partner_address_street":   "Rua das Flores, 50",
        "partner_address_number":   "50",
        "partner_address_district": "Centro",
        "partner_address_zipcode":  "04567-890",
        "partner_address_city":     "São Paulo",
        "partner_address_state":    "SP",

        "contract_file_url":      "https://files.example.com/contract.pdf",
        "balance_file_url":       "https://files.example.com/balance.pdf",
        "address_proof_file_url": "https://files.example.com/proof.pdf",
        "selfie_file_url":        "https://files.example.com/selfie.jpg",
        "identity_file_url":      "https://files.example.com/identity.jpg",
    }
}

func TestCreateTicketEndpoint(t *testing.T) {
    env := newTestEnv(t)

    rec := env.do(t, http.MethodPost, "/api/tickets", "", validTicketPayload())
    require.Equal(t, http.StatusCreated, rec.Code)

    var resp map[string]string
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Regexp(t, `^AX[0-9a-z]+$`, resp["custom_id"])

    // The public read finds it by custom id.
    rec = env.do(t, http.MethodGet, "/api/tickets/"+resp["custom_id"], "", nil)
    require.Equal(t, http.StatusOK, rec.Code)
    var ticket models.Ticket
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
    assert.Equal(t, models.StatusPending, ticket.Status)
}

func TestCreateTicketValidationFailure(t *testing.T) {
    env := newTestEnv(t)

    payload := validTicketPayload()
    payload["tax_id"] = "123"
    delete(payload, "email")

    rec := env.do(t, http.MethodPost, "/api/tickets", "", payload)
    require.Equal(t, http.StatusBadRequest, rec.Code)

    var resp ErrorResponse
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, "Validation failed", resp.Error)
    details, ok := resp.Details.(map[string]interface{})
    require.True(t, ok)
    assert.Contains(t, details, "tax_id")
    assert.Contains(t, details, "email")

    // Nothing persisted.
    var count int64
    require.NoError(t, env.db.Model(&models.Ticket{}).Count(&count).Error)
    assert.EqualValues(t, 0, count)
}

func TestCreateTicketUpstreamFailure(t *testing.T) {
    env := newTestEnv(t)
    env.verifier.createErr = errors.New("verifier down")

    rec := env.do(t, http.MethodPost, "/api/tickets", "", validTicketPayload())
    assert.Equal(t, http.StatusBadGateway, rec.Code)

    var count int64
    require.NoError(t, env.db.Model(&models.Ticket{}).Count(&count).Error)
    assert.EqualValues(t, 0, count)
}

func TestGetTicketNotFound(t *testing.T) {
    env := newTestEnv(t)
    rec := env.do(t, http.MethodGet, "/api/tickets/AXmissing", "", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
    env := newTestEnv(t)

    t.Run("valid credentials issue a token", func(t *testing.T) {
        env.login(t)
    })

    t.Run("wrong password is unauthorized", func(t *testing.T) {
        rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
            "email":    "root@admin",
            "password": "wrong",
        })
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("missing credentials fail validation", func(t *testing.T) {
        rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{})
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("unknown email is unauthorized", func(t *testing.T) {
        rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
            "email":    "nobody@admin",
            "password": "s3cret-pass",
        })
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })
}

func TestSessionEndpoint(t *testing.T) {
    env := newTestEnv(t)

    rec := env.do(t, http.MethodGet, "/api/admin/session", "", nil)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "null\n", rec.Body.String())

    token := env.login(t)
    rec = env.do(t, http.MethodGet, "/api/admin/session", token, nil)
    require.Equal(t, http.StatusOK, rec.Code)
    var session map[string]string
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
    assert.Equal(t, "root@admin", session["email"])
    assert.Equal(t, utils.RoleAdmin, session["role"])
}

func TestAdminFlow(t *testing.T) {
    env := newTestEnv(t)

    rec := env.do(t, http.MethodPost, "/api/tickets", "", validTicketPayload())
    require.Equal(t, http.StatusCreated, rec.Code)

    t.Run("admin routes require a token", func(t *testing.T) {
        rec := env.do(t, http.MethodGet, "/api/admin/dashboard", "", nil)
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    token := env.login(t)

    t.Run("dashboard counts", func(t *testing.T) {
        rec := env.do(t, http.MethodGet, "/api/admin/dashboard", token, nil)
        require.Equal(t, http.StatusOK, rec.Code)
        var counts service.DashboardCounts
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
        assert.EqualValues(t, 1, counts.CountTickets)
        assert.EqualValues(t, 1, counts.CountPendingTickets)
    })

    t.Run("list with search and defaults", func(t *testing.T) {
        rec := env.do(t, http.MethodGet, "/api/admin/tickets?search=maria", token, nil)
        require.Equal(t, http.StatusOK, rec.Code)
        var resp struct {
            Data  []models.Ticket `json:"data"`
            Count int64           `json:"count"`
        }
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
        assert.EqualValues(t, 1, resp.Count)
        require.Len(t, resp.Data, 1)
    })

    t.Run("status update round trip", func(t *testing.T) {
        var ticket models.Ticket
        require.NoError(t, env.db.First(&ticket).Error)

        rec := env.do(t, http.MethodPut, fmt.Sprintf("/api/admin/tickets/%d", ticket.ID), token,
            map[string]string{"status": "APPROVED"})
        require.Equal(t, http.StatusNoContent, rec.Code)

        var got models.Ticket
        require.NoError(t, env.db.First(&got, ticket.ID).Error)
        assert.Equal(t, models.StatusApproved, got.Status)
    })

    t.Run("invalid status rejected", func(t *testing.T) {
        rec := env.do(t, http.MethodPut, "/api/admin/tickets/1", token,
            map[string]string{"status": "OPEN"})
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("detail not found", func(t *testing.T) {
        rec := env.do(t, http.MethodGet, "/api/admin/tickets/9999", token, nil)
        assert.Equal(t, http.StatusNotFound, rec.Code)
    })
}

func TestUploadEndpoint(t *testing.T) {
    env := newTestEnv(t)

    buildUpload := func(t *testing.T, field, fileName string) (*bytes.Buffer, string) {
        t.Helper()
        var buf bytes.Buffer
        w := multipart.NewWriter(&buf)
        require.NoError(t, w.WriteField("field", field))
        fw, err := w.CreateFormFile("file", fileName)
        require.NoError(t, err)
        _, err = fw.Write([]byte("file-bytes"))
        require.NoError(t, err)
        require.NoError(t, w.Close())
        return &buf, w.FormDataContentType()
    }

    t.Run("accepted extension", func(t *testing.T) {
        body, contentType := buildUpload(t, "contract_file_url", "contract.pdf")
        req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
        req.Header.Set("Content-Type", contentType)
        rec := httptest.NewRecorder()
        env.router.ServeHTTP(rec, req)

        require.Equal(t, http.StatusOK, rec.Code)
        var resp map[string]string
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
        assert.Equal(t, "https://files.example.com/contract_file_url/contract.pdf", resp["url"])
    })

    t.Run("rejected extension", func(t *testing.T) {
        body, contentType := buildUpload(t, "contract_file_url", "contract.exe")
        req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
        req.Header.Set("Content-Type", contentType)
        rec := httptest.NewRecorder()
        env.router.ServeHTTP(rec, req)
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("unknown field", func(t *testing.T) {
        body, contentType := buildUpload(t, "full_name", "x.pdf")
        req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
        req.Header.Set("Content-Type", contentType)
        rec := httptest.NewRecorder()
        env.router.ServeHTTP(rec, req)
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })
}
