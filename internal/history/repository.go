// Package history persists scored assessments for later review. Service
// infrastructure only: the scoring core never reads from here and works
// unchanged when the database is disabled.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finlab/credscore/internal/contracts"
)

// Repository is the assessment history store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save stores one assessment with the raw inputs that produced it.
func (r *Repository) Save(ctx context.Context, rec *contracts.AssessmentRecord) (int64, error) {
	applicant, err := json.Marshal(rec.Applicant)
	if err != nil {
		return 0, fmt.Errorf("marshal applicant: %w", err)
	}

	query := `
		INSERT INTO scoring.assessments
			(applicant, probability, tier, display_score, degraded, degraded_reason, assessed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err = r.pool.QueryRow(ctx, query,
		applicant,
		rec.Assessment.Probability,
		string(rec.Assessment.Tier),
		rec.Assessment.DisplayScore,
		rec.Assessment.Degraded,
		rec.Assessment.DegradedReason,
		rec.Assessment.AssessedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert assessment: %w", err)
	}

	return id, nil
}

// List returns the most recent assessments, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]contracts.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, applicant, probability, tier, display_score, degraded, degraded_reason, assessed_at, created_at
		FROM scoring.assessments
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var records []contracts.AssessmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// DeleteOlderThan removes assessments created before the cutoff and returns
// the number of rows removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM scoring.assessments WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old assessments: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (*contracts.AssessmentRecord, error) {
	var rec contracts.AssessmentRecord
	var applicant []byte
	var tier string

	err := row.Scan(
		&rec.ID,
		&applicant,
		&rec.Assessment.Probability,
		&tier,
		&rec.Assessment.DisplayScore,
		&rec.Assessment.Degraded,
		&rec.Assessment.DegradedReason,
		&rec.Assessment.AssessedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan assessment: %w", err)
	}

	rec.Assessment.Tier = contracts.RiskTier(tier)
	rec.Assessment.TierLabel = rec.Assessment.Tier.Label()

	if err := json.Unmarshal(applicant, &rec.Applicant); err != nil {
		return nil, fmt.Errorf("unmarshal applicant: %w", err)
	}

	return &rec, nil
}
