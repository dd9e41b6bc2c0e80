package registration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/craftday/workshop-booking-service/internal/domain"
	"github.com/craftday/workshop-booking-service/pkg/psqlbuilder"
	"github.com/craftday/workshop-booking-service/pkg/txmanager"
)

// Repository stores registrations and their booked slots
type Repository struct {
	db DBExecutor
}

// NewRepository creates the registration repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var registrationColumns = []string{
	"id",
	"reference",
	"user_id",
	"config_id",
	"participants",
	"total_hours",
	"slots_count",
	"pricing_snapshot",
	"status",
	"cancelled_at",
	"cancelled_reason",
	"cancelled_by_user_id",
	"cancelled_by_blackout_rule_id",
	"created_at",
	"updated_at",
}

// Create inserts the registration and its slots
func (r *Repository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("registrations").
		Columns(
			"reference",
			"user_id",
			"config_id",
			"participants",
			"total_hours",
			"slots_count",
			"pricing_snapshot",
			"status",
		).
		Values(
			reg.Reference,
			reg.UserID,
			reg.ConfigID,
			reg.Participants,
			reg.TotalHours,
			reg.SlotsCount,
			[]byte(reg.PricingSnapshot),
			string(reg.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&reg.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reg.CreatedAt = createdAt.Time
	reg.UpdatedAt = updatedAt.Time

	if err := r.insertSlots(ctx, executor, reg.ID, reg.Slots); err != nil {
		return nil, err
	}

	created, err := r.getSlots(ctx, executor, reg.ID)
	if err != nil {
		return nil, err
	}
	reg.Slots = created

	return reg, nil
}

// GetByID loads a registration with its slots
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reg, err := r.scanRegistration(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	slots, err := r.getSlots(ctx, executor, reg.ID)
	if err != nil {
		return nil, err
	}
	reg.Slots = slots

	return reg, nil
}

// GetByUserID loads all registrations of a user, newest first, with slots
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.RegistrationStatus) ([]*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := r.scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByUserID: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	for _, reg := range regs {
		slots, err := r.getSlots(ctx, executor, reg.ID)
		if err != nil {
			return nil, err
		}
		reg.Slots = slots
	}

	return regs, nil
}

// GetOccupancyByRange sums booked participants per slot start over active
// registrations of one config, within [from, to).
func (r *Repository) GetOccupancyByRange(ctx context.Context, configID int64, from, to time.Time) ([]SlotOccupancy, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"rs.slot_start_at",
		"COALESCE(SUM(r.participants), 0)",
	).
		From("registration_slots rs").
		Join("registrations r ON r.id = rs.registration_id").
		Where(squirrel.Eq{"r.config_id": configID}).
		Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.GtOrEq{"rs.slot_start_at": from}).
		Where(squirrel.Lt{"rs.slot_start_at": to}).
		GroupBy("rs.slot_start_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyByRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancy := make([]SlotOccupancy, 0)
	for rows.Next() {
		var entry SlotOccupancy
		if err := rows.Scan(&entry.SlotStartAt, &entry.Participants); err != nil {
			return nil, fmt.Errorf("%w: GetOccupancyByRange - scan row: %v", ErrScanRow, err)
		}
		occupancy = append(occupancy, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyByRange - rows error: %v", ErrScanRow, err)
	}

	return occupancy, nil
}

// GetActiveByConfigAndRange loads active registrations holding at least one
// slot inside [from, to). Used by blackout enforcement.
func (r *Repository) GetActiveByConfigAndRange(ctx context.Context, configID int64, from, to time.Time) ([]*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT r.id").
		From("registrations r").
		Join("registration_slots rs ON rs.registration_id = r.id").
		Where(squirrel.Eq{"r.config_id": configID}).
		Where(squirrel.Eq{"r.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.GtOrEq{"rs.slot_start_at": from}).
		Where(squirrel.Lt{"rs.slot_start_at": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConfigAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConfigAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByConfigAndRange - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConfigAndRange - rows error: %v", ErrScanRow, err)
	}

	regs := make([]*domain.Registration, 0, len(ids))
	for _, id := range ids {
		reg, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

// Cancel marks a registration cancelled. byUserID is nil for
// system-initiated cancellations; ruleID links the triggering blackout rule
// when there is one.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, byUserID *int64, ruleID *int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("registrations").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancelled_reason", reason).
		Set("cancelled_by_user_id", byUserID).
		Set("cancelled_by_blackout_rule_id", ruleID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// ApplyPartialCancellation records a partial system cancellation: the
// registration keeps its status while the cancellation fields and the
// updated pricing snapshot (with the embedded recovery block) are written.
func (r *Repository) ApplyPartialCancellation(ctx context.Context, id int64, reason string, ruleID int64, snapshot json.RawMessage, keptSlots []domain.RegistrationSlot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("registrations").
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancelled_reason", reason).
		Set("cancelled_by_user_id", nil).
		Set("cancelled_by_blackout_rule_id", ruleID).
		Set("pricing_snapshot", []byte(snapshot)).
		Set("slots_count", len(keptSlots)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApplyPartialCancellation - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execExpectingRow(ctx, executor, query, args, "ApplyPartialCancellation"); err != nil {
		return err
	}

	return r.replaceSlots(ctx, executor, id, keptSlots)
}

// ReplaceSlots commits a reschedule: the slot set is swapped, the
// cancellation fields and recovery metadata are cleared, and the
// registration takes the given status.
func (r *Repository) ReplaceSlots(ctx context.Context, id int64, slots []domain.RegistrationSlot, snapshot json.RawMessage, totalHours int, status domain.RegistrationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("registrations").
		Set("status", string(status)).
		Set("cancelled_at", nil).
		Set("cancelled_reason", nil).
		Set("cancelled_by_user_id", nil).
		Set("cancelled_by_blackout_rule_id", nil).
		Set("pricing_snapshot", []byte(snapshot)).
		Set("slots_count", len(slots)).
		Set("total_hours", totalHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execExpectingRow(ctx, executor, query, args, "ReplaceSlots"); err != nil {
		return err
	}

	return r.replaceSlots(ctx, executor, id, slots)
}

// Helper methods

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, registrationID int64, slots []domain.RegistrationSlot) error {
	if len(slots) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("registration_slots").
		Columns("registration_id", "slot_start_at", "slot_end_at")
	for _, slot := range slots {
		insert = insert.Values(registrationID, slot.SlotStartAt, slot.SlotEndAt)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSlots - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) replaceSlots(ctx context.Context, executor DBExecutor, registrationID int64, slots []domain.RegistrationSlot) error {
	query, args, err := psqlbuilder.Delete("registration_slots").
		Where(squirrel.Eq{"registration_id": registrationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceSlots - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertSlots(ctx, executor, registrationID, slots)
}

func (r *Repository) getSlots(ctx context.Context, executor DBExecutor, registrationID int64) ([]domain.RegistrationSlot, error) {
	query, args, err := psqlbuilder.Select("id", "registration_id", "slot_start_at", "slot_end_at").
		From("registration_slots").
		Where(squirrel.Eq{"registration_id": registrationID}).
		OrderBy("slot_start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.RegistrationSlot, 0)
	for rows.Next() {
		var slot domain.RegistrationSlot
		if err := rows.Scan(&slot.ID, &slot.RegistrationID, &slot.SlotStartAt, &slot.SlotEndAt); err != nil {
			return nil, fmt.Errorf("%w: getSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRegistration(row rowScanner) (*domain.Registration, error) {
	var reg domain.Registration
	var snapshot []byte
	var status string
	var cancelledAt sql.NullTime
	var cancelledReason sql.NullString
	var cancelledByUser, cancelledByRule sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reg.ID,
		&reg.Reference,
		&reg.UserID,
		&reg.ConfigID,
		&reg.Participants,
		&reg.TotalHours,
		&reg.SlotsCount,
		&snapshot,
		&status,
		&cancelledAt,
		&cancelledReason,
		&cancelledByUser,
		&cancelledByRule,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan registration: %v", ErrScanRow, err)
	}

	reg.PricingSnapshot = json.RawMessage(snapshot)
	reg.Status = domain.RegistrationStatus(status)
	if cancelledAt.Valid {
		reg.CancelledAt = &cancelledAt.Time
	}
	if cancelledReason.Valid {
		reg.CancelledReason = &cancelledReason.String
	}
	if cancelledByUser.Valid {
		reg.CancelledByUserID = &cancelledByUser.Int64
	}
	if cancelledByRule.Valid {
		reg.CancelledByBlackoutRule = &cancelledByRule.Int64
	}
	reg.CreatedAt = createdAt.Time
	reg.UpdatedAt = updatedAt.Time

	return &reg, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func statusStrings(statuses []domain.RegistrationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
