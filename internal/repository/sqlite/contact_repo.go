package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clepsydra-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// contactRecord is the gorm model behind the contact_submissions table.
type contactRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;not null"`
	Phone     *string   `gorm:"size:30"`
	Service   string    `gorm:"size:64;not null;index"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (contactRecord) TableName() string {
	return "contact_submissions"
}

func (r contactRecord) toDomain() *domain.StoredSubmission {
	return &domain.StoredSubmission{
		ContactSubmission: domain.ContactSubmission{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Service:   r.Service,
			Message:   r.Message,
		},
		ID:        r.ID,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type ContactRepository struct {
	db *gorm.DB
}

var _ domain.ContactRepository = (*ContactRepository)(nil)

// Open opens (creating if needed) the sqlite database at path and migrates
// the submissions table.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&contactRecord{}); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}
	return db, nil
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new submission. The id is generated here, never taken
// from the caller.
func (r *ContactRepository) Create(ctx context.Context, submission *domain.ContactSubmission) (*domain.StoredSubmission, error) {
	s := submission.Clone()
	record := contactRecord{
		ID:        uuid.NewString(),
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Phone:     s.Phone,
		Service:   s.Service,
		Message:   s.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, domain.NewStorageError("create", err)
	}
	return record.toDomain(), nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.StoredSubmission, error) {
	var record contactRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, domain.NewStorageError("get", err)
	}
	return record.toDomain(), nil
}

func (r *ContactRepository) List(ctx context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	q := r.db.WithContext(ctx).Model(&contactRecord{})
	if filter.Service != "" {
		q = q.Where("service = ?", filter.Service)
	}
	// reusable for both the count and the page query
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError("count", err)
	}

	var records []contactRecord
	q = q.Order("created_at DESC").Order("rowid DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, 0, domain.NewStorageError("list", err)
	}

	submissions := make([]domain.StoredSubmission, 0, len(records))
	for _, rec := range records {
		submissions = append(submissions, *rec.toDomain())
	}
	return submissions, total, nil
}

func (r *ContactRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
