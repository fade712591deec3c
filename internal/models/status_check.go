package models

import "time"

// StatusCheck is a client heartbeat recorded through POST /api/status.
type StatusCheck struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ClientName string    `gorm:"not null" json:"client_name"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`
}
