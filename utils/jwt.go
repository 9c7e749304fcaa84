package utils

import (
    "fmt"
    "log"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "ADMIN"

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = time.Hour

var jwtSecret []byte

// Claims is the signed session payload. Role currently only ever holds
// ADMIN, but the model supports future non-admin authenticated roles.
type Claims struct {
    UserID string `json:"user_id"`
    Email  string `json:"email"`
    Role   string `json:"role"`
    jwt.RegisteredClaims
}

// InitializeJWT sets up the process-wide signing secret
func InitializeJWT(secret string) error {
    if len(secret) < 32 {
        log.Printf("WARNING: JWT secret should be at least 32 characters for security, got %d", len(secret))
    }
    jwtSecret = []byte(secret)
    return nil
}

func GenerateToken(userID, email, role string) (string, error) {
    if jwtSecret == nil {
        return "", fmt.Errorf("JWT secret not initialized")
    }

    claims := Claims{
        UserID: userID,
        Email:  email,
        Role:   role,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
            IssuedAt:  jwt.NewNumericDate(time.Now()),
            Issuer:    "onboarding-go",
        },
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signedToken, err := token.SignedString(jwtSecret)
    if err != nil {
        return "", fmt.Errorf("failed to sign token: %v", err)
    }

    return signedToken, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
    if jwtSecret == nil {
        return nil, fmt.Errorf("JWT secret not initialized")
    }

    claims := &Claims{}
    token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
        // Verify signing method
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return jwtSecret, nil
    })

    if err != nil {
        return nil, fmt.Errorf("failed to parse token: %v", err)
    }

    if !token.Valid {
        return nil, fmt.Errorf("invalid token")
    }

    if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
        return nil, fmt.Errorf("token expired")
    }

    return claims, nil
}
