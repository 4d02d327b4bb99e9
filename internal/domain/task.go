package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
	TaskOverdue   = "overdue"
)

// Task 維護待辦事項 (例如：更新外掛、檢查備份)
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WebsiteID primitive.ObjectID `bson:"website_id,omitempty" json:"website_id"`
	Title     string             `bson:"title" json:"title"`
	Type      string             `bson:"type" json:"type"` // update / backup / security / other
	Status    string             `bson:"status" json:"status"`

	DueDate     time.Time `bson:"due_date,omitempty" json:"due_date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	CompletedAt time.Time `bson:"completed_at,omitempty" json:"completed_at"`
}
