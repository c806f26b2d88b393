package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"placementportal/internal/domain"
)

// dbtx is the subset of *sql.DB and *sql.Tx the slot queries need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const slotColumns = `id, topic, details, meeting_reference, start_time, end_time, duration_minutes, owner_id, assignee_id, cancelled, created_at, updated_at`

// participantLockPrefix namespaces the advisory lock keys taken by RunLocked.
const participantLockPrefix = "interview-participant:"

type slotRepository struct {
	db   *sql.DB
	conn dbtx
}

// NewSlotRepository returns a SlotRepository backed by the interview_slots table.
func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{db: db, conn: db}
}

func (r *slotRepository) Create(ctx context.Context, s *domain.Slot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO interview_slots (id, topic, details, meeting_reference, start_time, end_time, duration_minutes, owner_id, cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)
	`
	_, err := r.conn.ExecContext(ctx, query,
		s.ID, s.Topic, s.Details, s.MeetingReference, s.StartTime, s.EndTime, s.DurationMinutes, s.OwnerID, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE id = $1`
	s, err := scanSlot(r.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *slotRepository) ListActiveByParticipant(ctx context.Context, participantID string, from, to time.Time) ([]*domain.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM interview_slots
		WHERE (owner_id = $1 OR assignee_id = $1)
		  AND cancelled = FALSE
		  AND end_time > $2
		  AND start_time < $3
		ORDER BY start_time
	`
	return r.query(ctx, query, participantID, from, to)
}

func (r *slotRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM interview_slots
		WHERE owner_id = $1 OR assignee_id = $1
		ORDER BY start_time DESC
	`
	return r.query(ctx, query, participantID)
}

func (r *slotRepository) ListOpen(ctx context.Context, viewerID string, after time.Time, p domain.PaginationParams) ([]*domain.Slot, int, error) {
	where := `
		WHERE assignee_id IS NULL
		  AND cancelled = FALSE
		  AND owner_id <> $1
		  AND start_time > $2
	`
	var total int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM interview_slots`+where, viewerID, after).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + slotColumns + ` FROM interview_slots` + where + ` ORDER BY start_time, id`
	args := []any{viewerID, after}
	if limit := p.Limit(); limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, p.Offset())
	}
	slots, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

func (r *slotRepository) Assign(ctx context.Context, slotID, participantID string, now time.Time) (bool, error) {
	query := `
		UPDATE interview_slots
		SET assignee_id = $2, updated_at = $3
		WHERE id = $1
		  AND assignee_id IS NULL
		  AND cancelled = FALSE
		  AND owner_id <> $2
		  AND start_time > $3
	`
	return r.exec(ctx, query, slotID, participantID, now)
}

func (r *slotRepository) ClearAssignee(ctx context.Context, slotID, participantID string, now time.Time) (bool, error) {
	query := `
		UPDATE interview_slots
		SET assignee_id = NULL, updated_at = $3
		WHERE id = $1
		  AND assignee_id = $2
		  AND cancelled = FALSE
		  AND start_time > $3
	`
	return r.exec(ctx, query, slotID, participantID, now)
}

func (r *slotRepository) MarkCancelled(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error) {
	query := `
		UPDATE interview_slots
		SET cancelled = TRUE, updated_at = $3
		WHERE id = $1
		  AND owner_id = $2
		  AND cancelled = FALSE
		  AND start_time > $3
	`
	return r.exec(ctx, query, slotID, ownerID, now)
}

func (r *slotRepository) Delete(ctx context.Context, slotID, ownerID string, now time.Time) (bool, error) {
	query := `
		DELETE FROM interview_slots
		WHERE id = $1
		  AND owner_id = $2
		  AND assignee_id IS NULL
		  AND cancelled = FALSE
		  AND start_time > $3
	`
	return r.exec(ctx, query, slotID, ownerID, now)
}

// RunLocked opens a transaction, takes a transaction-scoped advisory lock per
// participant in sorted order and runs fn with a repository bound to it.
// The locks are released on commit or rollback.
func (r *slotRepository) RunLocked(ctx context.Context, participantIDs []string, fn func(ctx context.Context, repo domain.SlotRepository) error) error {
	if r.db == nil {
		// Already inside a transaction.
		return fn(ctx, r)
	}

	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, participantLockPrefix+id); err != nil {
			return fmt.Errorf("lock participant %s: %w", id, err)
		}
	}

	if err := fn(ctx, &slotRepository{conn: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *slotRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *slotRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Slot, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(row scanner) (*domain.Slot, error) {
	s := &domain.Slot{}
	var assignee sql.NullString
	err := row.Scan(
		&s.ID, &s.Topic, &s.Details, &s.MeetingReference, &s.StartTime, &s.EndTime, &s.DurationMinutes,
		&s.OwnerID, &assignee, &s.Cancelled, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignee.Valid {
		s.AssigneeID = &assignee.String
	}
	s.RefreshStatus()
	return s, nil
}
