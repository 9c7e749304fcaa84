package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-000"

func TestTokenRoundTrip(t *testing.T) {
    require.NoError(t, InitializeJWT(testSecret))

    token, err := GenerateToken("1", "admin@example.com", RoleAdmin)
    require.NoError(t, err)

    claims, err := ValidateToken(token)
    require.NoError(t, err)
    assert.Equal(t, "1", claims.UserID)
    assert.Equal(t, "admin@example.com", claims.Email)
    assert.Equal(t, RoleAdmin, claims.Role)
    assert.WithinDuration(t, time.Now().Add(SessionTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
    require.NoError(t, InitializeJWT(testSecret))

    otherKey := []byte("another key entirely, not the one")
    claims := Claims{
        UserID: "1",
        Email:  "admin@example.com",
        Role:   RoleAdmin,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
        },
    }
    forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(otherKey)
    require.NoError(t, err)

    _, err = ValidateToken(forged)
    assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
    require.NoError(t, InitializeJWT(testSecret))

    claims := Claims{
        UserID: "1",
        Email:  "admin@example.com",
        Role:   RoleAdmin,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
            IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
        },
    }
    expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
    require.NoError(t, err)

    _, err = ValidateToken(expired)
    assert.Error(t, err)
}
