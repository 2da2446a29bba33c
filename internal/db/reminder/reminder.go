package reminder

import (
	"context"
	"errors"
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const reminderColumns = `r.id, r.medication_id, r.user_id, r.remind_time, r.notify_type, r.active, r.last_sent, r.created_at`

// A reminder may fire again only when its last_sent falls outside of the
// current day.
const notSentWithinDay = `(r.last_sent IS NULL OR r.last_sent < $2 OR r.last_sent >= $3)`

type PgxReminderRepository struct {
	db db.DBTX
}

func NewPgxReminderRepository(db db.DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder AS r (medication_id, user_id, remind_time, notify_type, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+reminderColumns,
		int64(input.MedicationID),
		int64(input.UserID),
		input.RemindTime.String(),
		string(input.NotifyType),
		input.Active,
		input.CreatedAt,
	)
	return decodeReminder(row)
}

func (r *PgxReminderRepository) GetByID(
	ctx context.Context,
	id reminder.ID,
) (rem reminder.ReminderWithMedication, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+reminderColumns+`, m.name, m.dosage
		FROM reminder AS r
		JOIN medication AS m ON m.id = r.medication_id
		WHERE r.id = $1`,
		int64(id),
	)
	rem, err = decodeReminderWithMedication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) ReadByUser(
	ctx context.Context,
	userID user.ID,
) (reminders []reminder.ReminderWithMedication, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+reminderColumns+`, m.name, m.dosage
		FROM reminder AS r
		JOIN medication AS m ON m.id = r.medication_id
		WHERE r.user_id = $1
		ORDER BY r.remind_time, r.id`,
		int64(userID),
	)
	if err != nil {
		return reminders, err
	}
	defer rows.Close()

	reminders = make([]reminder.ReminderWithMedication, 0)
	for rows.Next() {
		rem, err := decodeReminderWithMedication(rows)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) ReadByMedication(
	ctx context.Context,
	medicationID reminder.MedicationID,
) (reminders []reminder.Reminder, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+reminderColumns+`
		FROM reminder AS r
		WHERE r.medication_id = $1
		ORDER BY r.remind_time, r.id`,
		int64(medicationID),
	)
	if err != nil {
		return reminders, err
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Update(
	ctx context.Context,
	input reminder.UpdateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE reminder AS r SET
			remind_time = CASE WHEN $2::boolean THEN $3::text ELSE r.remind_time END,
			notify_type = CASE WHEN $4::boolean THEN $5::text ELSE r.notify_type END,
			active = CASE WHEN $6::boolean THEN $7::boolean ELSE r.active END
		WHERE r.id = $1
		RETURNING `+reminderColumns,
		int64(input.ID),
		input.DoRemindTimeUpdate,
		input.RemindTime.String(),
		input.DoNotifyTypeUpdate,
		string(input.NotifyType),
		input.DoActiveUpdate,
		input.Active,
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) ReadDue(
	ctx context.Context,
	options reminder.DueOptions,
) (reminders []reminder.DueReminder, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+reminderColumns+`, u.name, u.email, u.phone, m.name, m.dosage
		FROM reminder AS r
		JOIN "user" AS u ON u.id = r.user_id
		JOIN medication AS m ON m.id = r.medication_id
		WHERE r.active AND r.remind_time = $1 AND `+notSentWithinDay+`
		ORDER BY r.id`,
		options.At.String(),
		options.Day.Start,
		options.Day.End,
	)
	if err != nil {
		return reminders, err
	}
	defer rows.Close()

	reminders = make([]reminder.DueReminder, 0)
	for rows.Next() {
		due, err := decodeDueReminder(rows)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, due)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) MarkSent(ctx context.Context, input reminder.MarkSentInput) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE reminder AS r SET last_sent = $4
		WHERE r.id = $1 AND `+notSentWithinDay,
		int64(input.ID),
		input.Day.Start,
		input.Day.End,
		input.At,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type reminderRow struct {
	id           int64
	medicationID int64
	userID       int64
	remindTime   string
	notifyType   string
	active       bool
	lastSent     pgtype.Timestamptz
	createdAt    time.Time
}

func (row *reminderRow) targets() []interface{} {
	return []interface{}{
		&row.id,
		&row.medicationID,
		&row.userID,
		&row.remindTime,
		&row.notifyType,
		&row.active,
		&row.lastSent,
		&row.createdAt,
	}
}

func (row *reminderRow) decode() (rem reminder.Reminder, err error) {
	remindTime, err := reminder.ParseClockTime(row.remindTime)
	if err != nil {
		return rem, e.NewInvalidStateError(fmt.Sprintf("invalid remind time %q of reminder %d", row.remindTime, row.id))
	}
	rem = reminder.Reminder{
		ID:           reminder.ID(row.id),
		MedicationID: reminder.MedicationID(row.medicationID),
		UserID:       user.ID(row.userID),
		RemindTime:   remindTime,
		NotifyType:   reminder.NotifyType(row.notifyType),
		Active:       row.active,
		LastSent:     c.NewOptional(row.lastSent.Time, row.lastSent.Status == pgtype.Present),
		CreatedAt:    row.createdAt,
	}
	return rem, rem.Validate()
}

func decodeReminder(scanner db.Scanner) (rem reminder.Reminder, err error) {
	var row reminderRow
	if err := scanner.Scan(row.targets()...); err != nil {
		return rem, err
	}
	return row.decode()
}

func decodeReminderWithMedication(scanner db.Scanner) (rem reminder.ReminderWithMedication, err error) {
	var row reminderRow
	targets := append(row.targets(), &rem.MedicationName, &rem.MedicationDosage)
	if err := scanner.Scan(targets...); err != nil {
		return rem, err
	}
	rem.Reminder, err = row.decode()
	return rem, err
}

func decodeDueReminder(scanner db.Scanner) (due reminder.DueReminder, err error) {
	var (
		row   reminderRow
		email string
		phone pgtype.Text
	)
	targets := append(row.targets(), &due.UserName, &email, &phone, &due.MedicationName, &due.MedicationDosage)
	if err := scanner.Scan(targets...); err != nil {
		return due, err
	}
	due.UserEmail = c.Email(email)
	due.UserPhone = c.NewOptional(c.PhoneNumber(phone.String), phone.Status == pgtype.Present)
	due.Reminder, err = row.decode()
	return due, err
}
