package middleware

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "onboarding-go/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// JWTAuth is the authenticated tier: a valid, unexpired session token must
// be present. Missing or bad tokens are a hard 401.
func JWTAuth(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        authHeader := r.Header.Get("Authorization")
        if authHeader == "" {
            http.Error(w, "Authorization header required", http.StatusUnauthorized)
            return
        }

        bearerToken := strings.Split(authHeader, " ")
        if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
            http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
            return
        }

        claims, err := utils.ValidateToken(bearerToken[1])
        if err != nil {
            log.Printf("Token validation failed for %s: %v", r.URL.Path, err)
            http.Error(w, "Invalid token", http.StatusUnauthorized)
            return
        }

        ctx := context.WithValue(r.Context(), UserContextKey, claims)
        next.ServeHTTP(w, r.WithContext(ctx))
    })
}

// AdminAuth is the admin tier on top of JWTAuth: session present and role
// ADMIN. A valid non-admin session is a 403, not a 401.
func AdminAuth(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
        if !ok {
            w.Header().Set("Content-Type", "application/json")
            w.WriteHeader(http.StatusUnauthorized)
            json.NewEncoder(w).Encode(map[string]string{
                "error": "Unauthorized",
            })
            return
        }

        if claims.Role != utils.RoleAdmin {
            log.Printf("User %s attempted to access admin endpoint %s without admin role",
                claims.Email, r.URL.Path)
            w.Header().Set("Content-Type", "application/json")
            w.WriteHeader(http.StatusForbidden)
            json.NewEncoder(w).Encode(map[string]string{
                "error": "Forbidden",
            })
            return
        }

        next.ServeHTTP(w, r)
    })
}

func GetUserFromContext(r *http.Request) *utils.Claims {
    if claims, ok := r.Context().Value(UserContextKey).(*utils.Claims); ok {
        return claims
    }
    return nil
}
