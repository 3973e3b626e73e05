package triage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	SaveAudit(ctx context.Context, a *Audit) error
	SaveMessage(ctx context.Context, m *AuditMessage) error
	GetAudit(ctx context.Context, id uuid.UUID) (*Audit, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SaveAudit(ctx context.Context, a *Audit) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ReceivedAt.IsZero() {
		a.ReceivedAt = time.Now().UTC()
	}

	conditionsJSON, err := json.Marshal(a.KnownConditions)
	if err != nil {
		return err
	}
	reasonsJSON, err := json.Marshal(a.Reasons)
	if err != nil {
		return err
	}
	metaJSON, err := json.Marshal(a.Meta)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO triage_audit (id, received_at, symptoms, age, known_conditions, recommended_level, score, reasons, suggested_action, hospital_recommendation, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.ReceivedAt, a.Symptoms, a.Age, conditionsJSON,
		a.RecommendedLevel, a.Score, reasonsJSON, a.SuggestedAction,
		a.HospitalRecommendation, metaJSON)
	return err
}

func (r *postgresRepo) SaveMessage(ctx context.Context, m *AuditMessage) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO triage_message (id, audit_id, created_at, direction, text)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.AuditID, m.CreatedAt, m.Direction, m.Text)
	return err
}

func (r *postgresRepo) GetAudit(ctx context.Context, id uuid.UUID) (*Audit, error) {
	query := `
		SELECT id, received_at, symptoms, age, known_conditions, recommended_level, score, reasons, suggested_action, hospital_recommendation, meta
		FROM triage_audit WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var a Audit
	var conditionsJSON, reasonsJSON, metaJSON []byte
	err := row.Scan(
		&a.ID,
		&a.ReceivedAt,
		&a.Symptoms,
		&a.Age,
		&conditionsJSON,
		&a.RecommendedLevel,
		&a.Score,
		&reasonsJSON,
		&a.SuggestedAction,
		&a.HospitalRecommendation,
		&metaJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("triage audit not found")
		}
		return nil, err
	}

	if len(conditionsJSON) > 0 {
		if err := json.Unmarshal(conditionsJSON, &a.KnownConditions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal known_conditions: %w", err)
		}
	}
	if len(reasonsJSON) > 0 {
		if err := json.Unmarshal(reasonsJSON, &a.Reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
		}
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &a.Meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
		}
	}
	return &a, nil
}
