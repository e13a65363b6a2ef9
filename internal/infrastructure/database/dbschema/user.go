package dbschema

import (
	"time"

	"colloquy/dialogue-api/internal/domain/user"
	"colloquy/dialogue-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user schema history records attribute to.
type User struct {
	ID        string    `gorm:"column:id;size:64;primaryKey"`
	Username  string    `gorm:"column:username;size:150;not null;uniqueIndex"`
	Email     *string   `gorm:"column:email;size:320"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "dialogue_api.users"
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDomain converts a schema user back to the domain representation.
func (u *User) ToDomain() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
