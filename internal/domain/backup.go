package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

const (
	BackupRunning = "running"
	BackupDone    = "done"
	BackupFailed  = "failed"
)

// Backup 備份任務紀錄 (實際備份檔存在 WRM 那端，我們只記狀態)
type Backup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WebsiteID primitive.ObjectID `bson:"website_id" json:"website_id"`
	Status    string             `bson:"status" json:"status"`
	SizeBytes int64              `bson:"size_bytes" json:"size_bytes"`

	TriggeredBy string    `bson:"triggered_by" json:"triggered_by"` // manual / schedule
	StartedAt   time.Time `bson:"started_at" json:"started_at"`
	FinishedAt  time.Time `bson:"finished_at,omitempty" json:"finished_at"`
	ErrorMsg    string    `bson:"error_msg,omitempty" json:"error_msg"`
}
