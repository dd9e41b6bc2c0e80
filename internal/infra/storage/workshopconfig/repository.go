package workshopconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/craftday/workshop-booking-service/internal/domain"
	"github.com/craftday/workshop-booking-service/pkg/psqlbuilder"
	"github.com/craftday/workshop-booking-service/pkg/txmanager"
)

// Repository stores workshop configs and their pricing tiers
type Repository struct {
	db DBExecutor
}

// NewRepository creates the workshop config repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID loads a config together with its pricing tiers, ordered by
// sort_order.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkshopConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"timezone",
		"opening_hour",
		"closing_hour",
		"slot_duration_minutes",
		"slot_capacity",
		"booking_window_days",
		"is_active",
		"auto_cancel_on_blackout",
		"created_at",
		"updated_at",
	).
		From("workshop_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.WorkshopConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Title,
		&cfg.Timezone,
		&cfg.OpeningHour,
		&cfg.ClosingHour,
		&cfg.SlotDurationMinutes,
		&cfg.SlotCapacity,
		&cfg.BookingWindowDays,
		&cfg.IsActive,
		&cfg.AutoCancelOnBlackout,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	tiers, err := r.getTiers(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	cfg.Tiers = tiers

	return &cfg, nil
}

// Create inserts a config with its tiers
func (r *Repository) Create(ctx context.Context, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("workshop_configs").
		Columns(
			"title",
			"timezone",
			"opening_hour",
			"closing_hour",
			"slot_duration_minutes",
			"slot_capacity",
			"booking_window_days",
			"is_active",
			"auto_cancel_on_blackout",
		).
		Values(
			cfg.Title,
			cfg.Timezone,
			cfg.OpeningHour,
			cfg.ClosingHour,
			cfg.SlotDurationMinutes,
			cfg.SlotCapacity,
			cfg.BookingWindowDays,
			cfg.IsActive,
			cfg.AutoCancelOnBlackout,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	if err := r.replaceTiers(ctx, executor, cfg.ID, cfg.Tiers); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Update rewrites the config settings and replaces its tier set
func (r *Repository) Update(ctx context.Context, id int64, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("workshop_configs").
		Set("title", cfg.Title).
		Set("timezone", cfg.Timezone).
		Set("opening_hour", cfg.OpeningHour).
		Set("closing_hour", cfg.ClosingHour).
		Set("slot_duration_minutes", cfg.SlotDurationMinutes).
		Set("slot_capacity", cfg.SlotCapacity).
		Set("booking_window_days", cfg.BookingWindowDays).
		Set("is_active", cfg.IsActive).
		Set("auto_cancel_on_blackout", cfg.AutoCancelOnBlackout).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cfg.ID = id
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	if err := r.replaceTiers(ctx, executor, id, cfg.Tiers); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getTiers loads the tiers of one config ordered by sort_order
func (r *Repository) getTiers(ctx context.Context, executor DBExecutor, configID int64) ([]domain.PricingTier, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"config_id",
		"hours",
		"price_per_person",
		"pieces_per_person",
		"sort_order",
		"is_active",
	).
		From("pricing_tiers").
		Where(squirrel.Eq{"config_id": configID}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.PricingTier, 0)
	for rows.Next() {
		var tier domain.PricingTier
		if err := rows.Scan(
			&tier.ID,
			&tier.ConfigID,
			&tier.Hours,
			&tier.PricePerPerson,
			&tier.PiecesPerPerson,
			&tier.SortOrder,
			&tier.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: getTiers - scan row: %v", ErrScanRow, err)
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTiers - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}

// replaceTiers swaps the tier set of a config
func (r *Repository) replaceTiers(ctx context.Context, executor DBExecutor, configID int64, tiers []domain.PricingTier) error {
	query, args, err := psqlbuilder.Delete("pricing_tiers").
		Where(squirrel.Eq{"config_id": configID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceTiers - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceTiers - execute delete: %v", ErrExecQuery, err)
	}

	if len(tiers) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("pricing_tiers").
		Columns("config_id", "hours", "price_per_person", "pieces_per_person", "sort_order", "is_active")
	for _, tier := range tiers {
		insert = insert.Values(configID, tier.Hours, tier.PricePerPerson, tier.PiecesPerPerson, tier.SortOrder, tier.IsActive)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceTiers - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceTiers - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
