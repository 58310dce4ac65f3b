package postgres

import (
	"context"
	"errors"
	"fmt"

	"clepsydra-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

const contactColumns = `id, first_name, last_name, email, phone, service, message, created_at`

func (r *contactRepo) Create(ctx context.Context, s *domain.ContactSubmission) (*domain.StoredSubmission, error) {
	// id comes from the application so every driver shares one id format;
	// the primary key still rejects duplicates.
	query := `
		INSERT INTO contact_submissions (id, first_name, last_name, email, phone, service, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	stored := &domain.StoredSubmission{ContactSubmission: s.Clone(), ID: uuid.NewString()}
	err := r.db.QueryRow(ctx, query,
		stored.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.Service, s.Message,
	).Scan(&stored.CreatedAt)
	if err != nil {
		return nil, domain.NewStorageError("create", err)
	}
	stored.CreatedAt = stored.CreatedAt.UTC()
	return stored, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.StoredSubmission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = $1`
	s, err := scanSubmission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, domain.NewStorageError("get", err)
	}
	return s, nil
}

func (r *contactRepo) List(ctx context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	baseQuery := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM contact_submissions WHERE 1=1`

	args := []interface{}{}
	argCounter := 1

	if filter.Service != "" {
		baseQuery += fmt.Sprintf(" AND service = $%d", argCounter)
		countQuery += fmt.Sprintf(" AND service = $%d", argCounter)
		args = append(args, filter.Service)
		argCounter++
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, domain.NewStorageError("count", err)
	}

	baseQuery += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d", argCounter)
		args = append(args, filter.Limit)
		argCounter++
	}
	baseQuery += fmt.Sprintf(" OFFSET $%d", argCounter)
	args = append(args, max(filter.Offset, 0))

	rows, err := r.db.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, domain.NewStorageError("list", err)
	}
	defer rows.Close()

	var submissions []domain.StoredSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, domain.NewStorageError("list", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.NewStorageError("list", err)
	}
	return submissions, total, nil
}

func (r *contactRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanSubmission(row pgx.Row) (*domain.StoredSubmission, error) {
	var s domain.StoredSubmission
	if err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Service, &s.Message, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
