package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "onboarding-go/utils"
)

const testSecret = "middleware-test-secret-0123456789ab"

func gatedHandler() http.Handler {
    return JWTAuth(AdminAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
    })))
}

func signToken(t *testing.T, role string, expiresAt time.Time) string {
    t.Helper()
    claims := utils.Claims{
        UserID: "1",
        Email:  "someone@example.com",
        Role:   role,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(expiresAt),
            IssuedAt:  jwt.NewNumericDate(time.Now()),
        },
    }
    token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
    require.NoError(t, err)
    return token
}

func doRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    handler.ServeHTTP(rec, req)
    return rec
}

func TestAdminGateTiers(t *testing.T) {
    require.NoError(t, utils.InitializeJWT(testSecret))
    handler := gatedHandler()

    t.Run("no token is unauthorized", func(t *testing.T) {
        rec := doRequest(handler, "")
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("malformed header is unauthorized", func(t *testing.T) {
        rec := doRequest(handler, "Token abc")
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("expired token is unauthorized", func(t *testing.T) {
        token := signToken(t, utils.RoleAdmin, time.Now().Add(-time.Minute))
        rec := doRequest(handler, "Bearer "+token)
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("valid non-admin token is forbidden", func(t *testing.T) {
        token := signToken(t, "VIEWER", time.Now().Add(time.Hour))
        rec := doRequest(handler, "Bearer "+token)
        assert.Equal(t, http.StatusForbidden, rec.Code)
    })

    t.Run("valid admin token passes", func(t *testing.T) {
        token := signToken(t, utils.RoleAdmin, time.Now().Add(time.Hour))
        rec := doRequest(handler, "Bearer "+token)
        assert.Equal(t, http.StatusOK, rec.Code)
    })
}

func TestGetUserFromContext(t *testing.T) {
    require.NoError(t, utils.InitializeJWT(testSecret))

    var got *utils.Claims
    handler := JWTAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        got = GetUserFromContext(r)
    }))

    token := signToken(t, utils.RoleAdmin, time.Now().Add(time.Hour))
    doRequest(handler, "Bearer "+token)

    require.NotNil(t, got)
    assert.Equal(t, "someone@example.com", got.Email)
}
