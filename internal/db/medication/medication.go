package medication

import (
	"context"
	"errors"
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medication"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const medicationColumns = `id, user_id, name, dosage, frequency, times, start_date, end_date, expiry_date,
	notes, description, image_path, created_at`

type PgxMedicationRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxMedicationRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxMedicationRepository{db: db}
}

func (r *PgxMedicationRepository) Create(
	ctx context.Context,
	input medication.CreateInput,
) (m medication.Medication, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO medication (
			user_id, name, dosage, frequency, times, start_date, end_date, expiry_date,
			notes, description, image_path, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+medicationColumns,
		int64(input.UserID),
		input.Name,
		input.Dosage,
		input.Frequency,
		encodeTimes(input.Times),
		encodeDate(input.StartDate),
		encodeDate(input.EndDate),
		encodeDate(input.ExpiryDate),
		input.Notes,
		input.Description,
		encodeText(input.ImagePath),
		input.CreatedAt,
	)
	m, err = decodeMedication(row)
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func (r *PgxMedicationRepository) GetByID(ctx context.Context, id medication.ID) (m medication.Medication, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+medicationColumns+` FROM medication WHERE id = $1`, int64(id))
	return r.get(row)
}

func (r *PgxMedicationRepository) Lock(ctx context.Context, id medication.ID) error {
	_, err := r.db.Exec(ctx, `SELECT id FROM medication WHERE id = $1 FOR UPDATE`, int64(id))
	return err
}

func (r *PgxMedicationRepository) ReadByUser(
	ctx context.Context,
	userID user.ID,
) (medications []medication.Medication, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+medicationColumns+` FROM medication WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		int64(userID),
	)
	if err != nil {
		return medications, err
	}
	defer rows.Close()

	medications = make([]medication.Medication, 0)
	for rows.Next() {
		m, err := decodeMedication(rows)
		if err != nil {
			return medications, err
		}
		if err := m.Validate(); err != nil {
			return medications, err
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}

func (r *PgxMedicationRepository) Update(
	ctx context.Context,
	input medication.UpdateInput,
) (m medication.Medication, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE medication SET
			name = CASE WHEN $2::boolean THEN $3::text ELSE name END,
			dosage = CASE WHEN $4::boolean THEN $5::text ELSE dosage END,
			frequency = CASE WHEN $6::boolean THEN $7::text ELSE frequency END,
			times = CASE WHEN $8::boolean THEN $9::text[] ELSE times END,
			start_date = CASE WHEN $10::boolean THEN $11::date ELSE start_date END,
			end_date = CASE WHEN $12::boolean THEN $13::date ELSE end_date END,
			expiry_date = CASE WHEN $14::boolean THEN $15::date ELSE expiry_date END,
			notes = CASE WHEN $16::boolean THEN $17::text ELSE notes END,
			description = CASE WHEN $18::boolean THEN $19::text ELSE description END,
			image_path = CASE WHEN $20::boolean THEN $21::text ELSE image_path END
		WHERE id = $1
		RETURNING `+medicationColumns,
		int64(input.ID),
		input.DoNameUpdate,
		input.Name,
		input.DoDosageUpdate,
		input.Dosage,
		input.DoFrequencyUpdate,
		input.Frequency,
		input.DoTimesUpdate,
		encodeTimes(input.Times),
		input.DoStartDateUpdate,
		encodeDate(input.StartDate),
		input.DoEndDateUpdate,
		encodeDate(input.EndDate),
		input.DoExpiryDateUpdate,
		encodeDate(input.ExpiryDate),
		input.DoNotesUpdate,
		input.Notes,
		input.DoDescriptionUpdate,
		input.Description,
		input.DoImagePathUpdate,
		encodeText(input.ImagePath),
	)
	return r.get(row)
}

// Delete removes the medication together with its reminders.
func (r *PgxMedicationRepository) Delete(ctx context.Context, id medication.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM medication WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return medication.ErrMedicationDoesNotExist
	}
	return nil
}

func (r *PgxMedicationRepository) get(row pgx.Row) (m medication.Medication, err error) {
	m, err = decodeMedication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, medication.ErrMedicationDoesNotExist
	}
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func encodeTimes(times []reminder.ClockTime) []string {
	encoded := make([]string, 0, len(times))
	for _, t := range times {
		encoded = append(encoded, t.String())
	}
	return encoded
}

func encodeDate(date c.Optional[time.Time]) pgtype.Date {
	if !date.IsPresent {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{Time: date.Value, Status: pgtype.Present}
}

func encodeText(text c.Optional[string]) pgtype.Text {
	if !text.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: text.Value, Status: pgtype.Present}
}

func decodeDate(date pgtype.Date) c.Optional[time.Time] {
	return c.NewOptional(date.Time, date.Status == pgtype.Present)
}

func decodeMedication(row db.Scanner) (m medication.Medication, err error) {
	var (
		id         int64
		userID     int64
		times      []string
		startDate  pgtype.Date
		endDate    pgtype.Date
		expiryDate pgtype.Date
		imagePath  pgtype.Text
		createdAt  time.Time
	)
	err = row.Scan(
		&id,
		&userID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&times,
		&startDate,
		&endDate,
		&expiryDate,
		&m.Notes,
		&m.Description,
		&imagePath,
		&createdAt,
	)
	if err != nil {
		return m, err
	}

	m.ID = medication.ID(id)
	m.UserID = user.ID(userID)
	m.Times = make([]reminder.ClockTime, 0, len(times))
	for _, raw := range times {
		t, err := reminder.ParseClockTime(raw)
		if err != nil {
			return m, e.NewInvalidStateError(fmt.Sprintf("invalid time %q of medication %d", raw, id))
		}
		m.Times = append(m.Times, t)
	}
	m.StartDate = decodeDate(startDate)
	m.EndDate = decodeDate(endDate)
	m.ExpiryDate = decodeDate(expiryDate)
	m.ImagePath = c.NewOptional(imagePath.String, imagePath.Status == pgtype.Present)
	m.CreatedAt = createdAt
	return m, nil
}
