package achievements

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"workpulse/internal/domain/rewards"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListDefinitions(ctx context.Context, tenantID string, activeOnly bool) ([]Definition, error) {
	query := `
    SELECT id, code, name, description, category, point_value, requirements, is_active
    FROM achievement_definitions
    WHERE tenant_id = $1`
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY category, name"

	rows, err := s.DB.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Definition
	for rows.Next() {
		var def Definition
		if err := rows.Scan(&def.ID, &def.Code, &def.Name, &def.Description, &def.Category, &def.PointValue, &def.Requirements, &def.IsActive); err != nil {
			return nil, err
		}
		def.TenantID = tenantID
		out = append(out, def)
	}
	return out, rows.Err()
}

func (s *Store) CreateDefinition(ctx context.Context, tenantID string, def Definition) (string, error) {
	if len(def.Requirements) == 0 {
		def.Requirements = json.RawMessage(`{}`)
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO achievement_definitions (tenant_id, code, name, description, category, point_value, requirements, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, tenantID, def.Code, def.Name, def.Description, def.Category, def.PointValue, def.Requirements, def.IsActive).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "", ErrDuplicateCode
	}
	return id, err
}

func (s *Store) UpdateDefinition(ctx context.Context, tenantID, id string, def Definition) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE achievement_definitions
    SET name = $1, description = $2, category = $3, point_value = $4, requirements = $5, is_active = $6
    WHERE tenant_id = $7 AND id = $8
  `, def.Name, def.Description, def.Category, def.PointValue, def.Requirements, def.IsActive, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDefinitionNotFound
	}
	return nil
}

func (s *Store) ProgressByEmployee(ctx context.Context, tenantID, employeeID string) (map[string]Progress, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT achievement_id, progress, is_completed, unlocked_at
    FROM achievement_progress
    WHERE tenant_id = $1 AND employee_id = $2
  `, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]Progress{}
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.AchievementID, &p.Progress, &p.IsCompleted, &p.UnlockedAt); err != nil {
			return nil, err
		}
		p.EmployeeID = employeeID
		out[p.AchievementID] = p
	}
	return out, rows.Err()
}

// SaveProgress upserts the computed progress rows for one employee and
// returns the achievement ids that transitioned to completed in this call.
//
// The whole batch runs in one transaction holding a per-(tenant, employee)
// advisory lock, so two concurrent evaluations of the same employee cannot
// both observe an incomplete row and both fire the unlock. Completion is
// additionally guarded by `is_completed = false` in the UPDATE itself, and
// the unlock ledger row is deduplicated by the ledger's related-reference
// unique index.
func (s *Store) SaveProgress(ctx context.Context, tenantID, employeeID string, updates []progressUpdate, now time.Time) ([]string, error) {
	if len(updates) == 0 {
		return nil, nil
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))", tenantID, employeeID); err != nil {
		return nil, err
	}

	var completed []string
	for _, update := range updates {
		if _, err := tx.Exec(ctx, `
      INSERT INTO achievement_progress (tenant_id, employee_id, achievement_id, progress)
      VALUES ($1,$2,$3,$4)
      ON CONFLICT (employee_id, achievement_id) DO UPDATE
      SET progress = CASE
        WHEN achievement_progress.is_completed THEN GREATEST(achievement_progress.progress, EXCLUDED.progress)
        ELSE EXCLUDED.progress
      END
    `, tenantID, employeeID, update.AchievementID, update.Progress); err != nil {
			return nil, err
		}

		if update.Progress < 100 {
			continue
		}

		tag, err := tx.Exec(ctx, `
      UPDATE achievement_progress
      SET is_completed = true, unlocked_at = $1
      WHERE tenant_id = $2 AND employee_id = $3 AND achievement_id = $4 AND is_completed = false
    `, now, tenantID, employeeID, update.AchievementID)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		if _, err := tx.Exec(ctx, `
      INSERT INTO point_transactions (tenant_id, employee_id, points, point_type, reason, related_type, related_id, earned_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      ON CONFLICT (tenant_id, related_type, related_id, point_type) WHERE related_id <> '' DO NOTHING
    `, tenantID, employeeID, update.PointValue, rewards.PointTypeAchievement,
			"unlocked: "+update.Name, rewards.RelatedTypeAchievement, update.AchievementID, now); err != nil {
			return nil, err
		}

		completed = append(completed, update.AchievementID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return completed, nil
}

func (s *Store) CountCompletedInWindow(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM achievement_progress
    WHERE tenant_id = $1 AND employee_id = $2 AND is_completed
      AND unlocked_at >= $3 AND unlocked_at < $4
  `, tenantID, employeeID, from, to).Scan(&count)
	return count, err
}
