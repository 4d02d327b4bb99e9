package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name" json:"name"`
	Password string             `bson:"password" json:"-"` // bcrypt hash，絕對不能回傳給前端
	Role     string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	// 忘記密碼流程用
	ResetToken   string    `bson:"reset_token,omitempty" json:"-"`
	ResetExpires time.Time `bson:"reset_expires,omitempty" json:"-"`
}
