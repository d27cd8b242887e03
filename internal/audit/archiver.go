package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/models"
)

// ObjectPutter is the slice of the S3 client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver exports daily NDJSON snapshots of the audit log to S3 so
// operators can reconcile offline. It only copies rows — the table itself
// stays append-only and untouched. Export failures are logged and retried
// on the next tick; like every audit concern, this is best-effort.
type Archiver struct {
	db     *gorm.DB
	client ObjectPutter
	bucket string
}

func NewArchiver(db *gorm.DB, region, accessKey, secretKey, bucket string) *Archiver {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	})
	return &Archiver{db: db, client: client, bucket: bucket}
}

// Run exports yesterday's entries once per interval until ctx is done.
func (a *Archiver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			day := time.Now().UTC().AddDate(0, 0, -1)
			if err := a.ArchiveDay(ctx, day); err != nil {
				log.Println("audit archive error:", err)
			}
		}
	}
}

// ArchiveDay uploads all audit entries created on the given UTC day as one
// NDJSON object under audit/<date>.ndjson.
func (a *Archiver) ArchiveDay(ctx context.Context, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var entries []models.AuditLog
	if err := a.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return fmt.Errorf("load audit entries: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode audit entry %d: %w", entry.ID, err)
		}
	}

	key := fmt.Sprintf("audit/%s.ndjson", start.Format("2006-01-02"))
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
