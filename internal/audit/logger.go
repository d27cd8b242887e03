package audit

import (
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/models"
)

// Sink receives finished audit entries for storage. It only ingests; it
// never answers queries.
type Sink interface {
	Write(entry models.AuditLog) error
}

// Logger is the gorm-backed sink.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(entry models.AuditLog) error {
	return l.db.Create(&entry).Error
}
