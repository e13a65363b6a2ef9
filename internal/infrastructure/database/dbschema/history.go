package dbschema

import (
	"time"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(History{})
}

// History represents the database schema for prompt/response exchanges.
// Response stores the raw completion text exactly as the backend returned it.
type History struct {
	ID        string    `gorm:"column:id;size:64;primaryKey"`
	Username  string    `gorm:"column:username;size:150;not null;index"`
	RoleName  string    `gorm:"column:role_name;size:255;not null;index"`
	Prompt    string    `gorm:"column:prompt;type:text;not null"`
	Response  string    `gorm:"column:response;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();index"`
}

// TableName returns the table name for GORM
func (History) TableName() string {
	return "dialogue_api.histories"
}

// NewSchemaHistory converts a domain history record to a schema instance.
func NewSchemaHistory(rec *history.Record) *History {
	if rec == nil {
		return nil
	}

	return &History{
		ID:        rec.ID,
		Username:  rec.Username,
		RoleName:  rec.RoleName,
		Prompt:    rec.Prompt,
		Response:  rec.Response,
		CreatedAt: rec.CreatedAt,
	}
}

// ToDomain converts a schema history row back to the domain representation.
func (h *History) ToDomain() *history.Record {
	if h == nil {
		return nil
	}

	return &history.Record{
		ID:        h.ID,
		Username:  h.Username,
		RoleName:  h.RoleName,
		Prompt:    h.Prompt,
		Response:  h.Response,
		CreatedAt: h.CreatedAt,
	}
}
