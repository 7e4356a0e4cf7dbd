package domain

import "time"

type UserRole string

const (
	RoleLearner  UserRole = "learner"
	RoleEmployer UserRole = "employer"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role      UserRole  `gorm:"size:32;not null;index:idx_users_role" json:"role"`
	CreatedAt time.Time `json:"-"`
}
