package models

import (
    "time"

    "gorm.io/gorm"
)

// AuditLog records privileged actions: admin logins and ticket status
// changes. Rows are append-only.
type AuditLog struct {
    ID         uint           `json:"id" gorm:"primaryKey"`
    AdminEmail string         `json:"admin_email" gorm:"index"`
    Action     string         `json:"action" gorm:"not null"`
    Resource   string         `json:"resource" gorm:"not null"`
    Details    string         `json:"details"`
    IPAddress  string         `json:"ip_address"`
    UserAgent  string         `json:"user_agent"`
    CreatedAt  time.Time      `json:"created_at"`
    UpdatedAt  time.Time      `json:"updated_at"`
    DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
