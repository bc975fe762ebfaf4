package models

import "time"

const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
}

// IsStaff reports whether the user may moderate prompts and edit them
// without triggering re-review.
func (u User) IsStaff() bool {
	return u.Role == RoleStaff
}
