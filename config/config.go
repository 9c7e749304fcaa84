package config

import (
    "log"
    "os"
    "strconv"
    "strings"
    "time"
)

// AdminCredential is one entry of the admin allow-list.
// PasswordHash is a bcrypt hash, never the plaintext password.
type AdminCredential struct {
    Email        string
    PasswordHash string
}

type Config struct {
    Port        string
    Environment string

    DatabasePath string
    JWTSecret    string

    // AdminCredentials comes from ADMIN_CREDENTIALS as
    // "email:bcrypt-hash;email:bcrypt-hash". Empty list means no admin can log in.
    AdminCredentials []AdminCredential

    VerifierURL     string
    VerifierAPIKey  string
    VerifierTimeout time.Duration

    // StatusSyncPolicy controls what happens when the verifier status sync
    // fails after an admin status change: "fail-open" keeps the local write,
    // "fail-closed" calls the verifier first and aborts on failure.
    StatusSyncPolicy string

    OSSEndpoint        string
    OSSAccessKeyID     string
    OSSAccessKeySecret string
    OSSBucket          string
}

func Load() *Config {
    return &Config{
        Port:             getEnv("PORT", "8080"),
        Environment:      getEnv("ENVIRONMENT", "development"),
        DatabasePath:     getEnv("DATABASE_URL", "onboarding.db"),
        JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
        AdminCredentials: parseAdminCredentials(getEnv("ADMIN_CREDENTIALS", "")),
        VerifierURL:      getEnv("VERIFIER_URL", "https://api.pagnovo.com"),
        VerifierAPIKey:   getEnv("VERIFIER_API_KEY", ""),
        VerifierTimeout:  time.Duration(getEnvInt("VERIFIER_TIMEOUT_SECONDS", 10)) * time.Second,
        StatusSyncPolicy: getEnv("STATUS_SYNC_POLICY", "fail-open"),

        OSSEndpoint:        getEnv("OSS_ENDPOINT", ""),
        OSSAccessKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
        OSSAccessKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
        OSSBucket:          getEnv("OSS_BUCKET", ""),
    }
}

func parseAdminCredentials(raw string) []AdminCredential {
    var creds []AdminCredential
    for _, entry := range strings.Split(raw, ";") {
        entry = strings.TrimSpace(entry)
        if entry == "" {
            continue
        }
        email, hash, ok := strings.Cut(entry, ":")
        if !ok || email == "" || hash == "" {
            log.Printf("WARNING: Skipping malformed ADMIN_CREDENTIALS entry %q", entry)
            continue
        }
        creds = append(creds, AdminCredential{Email: email, PasswordHash: hash})
    }
    return creds
}

func getEnv(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
    if value := os.Getenv(key); value != "" {
        if n, err := strconv.Atoi(value); err == nil {
            return n
        }
        log.Printf("WARNING: %s is not a valid integer, using default %d", key, defaultValue)
    }
    return defaultValue
}

func ValidateConfig(cfg *Config) {
    if len(cfg.JWTSecret) < 32 {
        log.Printf("WARNING: JWT_SECRET should be at least 32 characters for security")
    }
    if cfg.Environment == "production" && cfg.JWTSecret == "your-secret-key-change-in-production" {
        log.Fatal("JWT_SECRET must be set in production")
    }
    if len(cfg.AdminCredentials) == 0 {
        log.Printf("WARNING: ADMIN_CREDENTIALS is empty, admin login is disabled")
    }
    if cfg.VerifierAPIKey == "" {
        log.Printf("WARNING: VERIFIER_API_KEY is empty, KYC verifier calls will be rejected upstream")
    }
    switch cfg.StatusSyncPolicy {
    case "fail-open", "fail-closed":
    default:
        log.Fatalf("STATUS_SYNC_POLICY must be fail-open or fail-closed, got %q", cfg.StatusSyncPolicy)
    }
}
