package blackoutrule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/craftday/workshop-booking-service/internal/domain"
	"github.com/craftday/workshop-booking-service/pkg/psqlbuilder"
	"github.com/craftday/workshop-booking-service/pkg/txmanager"
)

// DBExecutor is the query surface the repository runs on
type DBExecutor = txmanager.Executor

// Repository stores blackout rules
type Repository struct {
	db DBExecutor
}

// NewRepository creates the blackout rule repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the rule and fills its ID and CreatedAt
func (r *Repository) Create(ctx context.Context, rule *domain.BlackoutRule) (*domain.BlackoutRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_rules").
		Columns("config_id", "date", "start_minutes", "end_minutes", "reason").
		Values(rule.ConfigID, rule.Date, rule.StartMinutes, rule.EndMinutes, rule.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// GetByID loads one rule
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlackoutRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "config_id", "date", "start_minutes", "end_minutes", "reason", "created_at").
		From("blackout_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.BlackoutRule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.ConfigID,
		&rule.Date,
		&rule.StartMinutes,
		&rule.EndMinutes,
		&rule.Reason,
		&rule.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &rule, nil
}

// GetByConfigAndRange loads rules of one config whose date falls inside
// [from, to), ordered by date then window start.
func (r *Repository) GetByConfigAndRange(ctx context.Context, configID int64, from, to time.Time) ([]domain.BlackoutRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "config_id", "date", "start_minutes", "end_minutes", "reason", "created_at").
		From("blackout_rules").
		Where(squirrel.Eq{"config_id": configID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date ASC", "start_minutes ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfigAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfigAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.BlackoutRule, 0)
	for rows.Next() {
		var rule domain.BlackoutRule
		if err := rows.Scan(
			&rule.ID,
			&rule.ConfigID,
			&rule.Date,
			&rule.StartMinutes,
			&rule.EndMinutes,
			&rule.Reason,
			&rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByConfigAndRange - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByConfigAndRange - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Delete removes the rule
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}
	return nil
}
