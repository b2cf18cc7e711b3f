package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/pantrydesk/booking-service/internal/domain"
	"github.com/pantrydesk/booking-service/pkg/dbmetrics"
	"github.com/pantrydesk/booking-service/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// Constraint names from migrations; a 23505 on either means the booker
// already holds an active booking on the date.
const (
	userDateActiveIndex      = "bookings_user_date_active_key"
	newClientDateActiveIndex = "bookings_new_client_date_active_key"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"new_client_id",
	"slot_id",
	"date",
	"status",
	"reschedule_token",
	"note",
	"is_staff_booking",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository is the bookings storage layer.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a bookings repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking row.
// When the context carries an open transaction (see pkg/dbmetrics), the
// insert runs inside it; the admission use case relies on this to make the
// capacity count and the insert one atomic unit.
//
// A violation of the partial unique index over the booker reference and date
// is mapped to ErrDuplicateActiveBooking.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"new_client_id",
			"slot_id",
			"date",
			"status",
			"reschedule_token",
			"note",
			"is_staff_booking",
		).
		Values(
			b.UserID,
			b.NewClientID,
			b.SlotID,
			b.Date,
			b.Status,
			b.RescheduleToken,
			b.Note,
			b.IsStaffBooking,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isDuplicateActive(err) {
			return nil, ErrDuplicateActiveBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID fetches a booking by its primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByRescheduleToken fetches a booking by its reschedule token.
// Used by the no-login reschedule and cancel paths.
func (r *Repository) GetByRescheduleToken(ctx context.Context, token string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reschedule_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRescheduleToken - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByRescheduleToken")
}

// GetByUserID lists the bookings of a self-service user, newest date first,
// optionally filtered by status.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetBySlotAndDate lists the bookings of a slot on a date (the staff roster).
// Cancelled rows are excluded unless the filter asks for them.
func (r *Repository) GetBySlotAndDate(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"slot_id": filter.SlotID}).
		Where(squirrel.Eq{"date": filter.Date}).
		OrderBy("created_at ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveBySlotDate counts non-cancelled bookings for (slot, date).
// excludeID, when non-nil, leaves one booking out of the count - the
// reschedule use case passes the moving booking's own id so it does not
// count against its current slot (self-exclusion).
//
// The count is only meaningful as an admission check when run inside a
// transaction that holds the slot row lock (see slot.GetByIDForUpdate).
func (r *Repository) CountActiveBySlotDate(ctx context.Context, slotID int64, date time.Time, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotDate - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotDate - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveCountsByDate returns, per slot, the number of non-cancelled
// bookings on the date. Slots with no bookings are absent from the map.
func (r *Repository) GetActiveCountsByDate(ctx context.Context, date time.Time) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		GroupBy("slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCountsByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCountsByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var slotID int64
		var count int
		if err := rows.Scan(&slotID, &count); err != nil {
			return nil, fmt.Errorf("%w: GetActiveCountsByDate - scan row: %w", ErrScanRow, err)
		}
		counts[slotID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveCountsByDate - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// Move updates a booking's slot, date and reschedule token in one statement.
// The caller must have verified destination capacity inside the same
// transaction before calling Move. A partial-unique-index violation (the
// booker already holds an active booking on the destination date) is mapped
// to ErrDuplicateActiveBooking.
func (r *Repository) Move(ctx context.Context, id int64, slotID int64, date time.Time, newToken string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("slot_id", slotID).
		Set("date", date).
		Set("reschedule_token", newToken).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateActive(err) {
			return ErrDuplicateActiveBooking
		}
		return fmt.Errorf("%w: Move - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Move - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel marks a booking cancelled and stamps cancelled_at. After commit the
// partial unique index no longer covers the row, so the booker may rebook
// the same date and the slot regains one unit of capacity.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus sets a booking's status. Used for post-visit outcome
// recording (no_show, visited).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !domain.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking scans a single row, mapping sql.ErrNoRows to ErrBookingNotFound.
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.NewClientID,
		&b.SlotID,
		&b.Date,
		&b.Status,
		&b.RescheduleToken,
		&b.Note,
		&b.IsStaffBooking,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings scans query results into a booking slice.
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.NewClientID,
			&b.SlotID,
			&b.Date,
			&b.Status,
			&b.RescheduleToken,
			&b.Note,
			&b.IsStaffBooking,
			&b.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// isDuplicateActive reports whether err is a unique violation on one of the
// partial active-booking indexes.
func isDuplicateActive(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return false
	}
	return pqErr.Constraint == userDateActiveIndex || pqErr.Constraint == newClientDateActiveIndex
}
