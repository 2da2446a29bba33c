package user

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, phone, password_hash, created_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		encodePhone(input.Phone),
		encodePasswordHash(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = decodeUser(row)

	var errEmailUniqueConstraint *pgconn.PgError
	if errors.As(err, &errEmailUniqueConstraint) {
		if errEmailUniqueConstraint.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			errEmailUniqueConstraint.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Ensure(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone
		RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		encodePhone(input.Phone),
		encodePasswordHash(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = decodeUser(row)
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return r.get(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return r.get(row)
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			name = CASE WHEN $2::boolean THEN $3::text ELSE name END,
			phone = CASE WHEN $4::boolean THEN $5::text ELSE phone END
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		input.DoNameUpdate,
		input.Name,
		input.DoPhoneUpdate,
		encodePhone(input.Phone),
	)
	return r.get(row)
}

func (r *PgxUserRepository) get(row pgx.Row) (u user.User, err error) {
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func encodePhone(phone c.Optional[c.PhoneNumber]) pgtype.Text {
	if !phone.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(phone.Value), Status: pgtype.Present}
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) pgtype.Text {
	if !ph.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(ph.Value), Status: pgtype.Present}
}

func decodeUser(row db.Scanner) (u user.User, err error) {
	var (
		id           int64
		name         string
		email        string
		phone        pgtype.Text
		passwordHash pgtype.Text
		createdAt    time.Time
	)
	err = row.Scan(&id, &name, &email, &phone, &passwordHash, &createdAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Name:         name,
		Email:        c.Email(email),
		Phone:        c.NewOptional(c.PhoneNumber(phone.String), phone.Status == pgtype.Present),
		PasswordHash: c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Status == pgtype.Present),
		CreatedAt:    createdAt,
	}, nil
}
