package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asistencia-qr/internal/database"
	"asistencia-qr/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUsernameTaken is returned by CreateUser when the username already exists
// (mapped from the unique constraint on users.username).
var ErrUsernameTaken = errors.New("username already taken")

const userColumns = `id, username, password_hash, is_admin, qr_token,
	 COALESCE(first_name, ''), COALESCE(paternal_last_name, ''),
	 COALESCE(maternal_last_name, ''), COALESCE(gender, ''),
	 COALESCE(phone_number, '')`

func scanUser(row interface{ Scan(dest ...any) error }, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.Token,
		&u.FirstName,
		&u.PaternalLastName,
		&u.MaternalLastName,
		&u.Gender,
		&u.PhoneNumber,
	)
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

// GetUserByToken resolves a check-in token to its owner. Administrators carry
// no token and are excluded here, so an admin token and an unknown token are
// indistinguishable to the caller.
func GetUserByToken(ctx context.Context, db database.DB, token uuid.UUID) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE qr_token = $1 AND is_admin = FALSE`,
		token,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByToken: %w", err)
	}
	return u, nil
}

// TokenExists reports whether any user already holds the given token.
func TokenExists(ctx context.Context, db database.DB, token uuid.UUID) (bool, error) {
	row := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE qr_token = $1)`,
		token,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("TokenExists: %w", err)
	}
	return exists, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, is_admin, qr_token,
		                    first_name, paternal_last_name, maternal_last_name,
		                    gender, phone_number)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
		         NULLIF($8, ''), NULLIF($9, ''))
		 RETURNING id`,
		u.Username,
		u.PasswordHash,
		u.IsAdmin,
		u.Token,
		u.FirstName,
		u.PaternalLastName,
		u.MaternalLastName,
		u.Gender,
		u.PhoneNumber,
	)
	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// SearchUsers finds non-administrator users whose name fields contain term
// (case-insensitive) or whose phone number contains it. An empty term returns
// no results rather than the whole directory.
func SearchUsers(ctx context.Context, db database.DB, term string) ([]model.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.User{}, nil
	}
	pattern := "%" + term + "%"

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "username", "password_hash", "is_admin", "qr_token",
			"COALESCE(first_name, '')", "COALESCE(paternal_last_name, '')",
			"COALESCE(maternal_last_name, '')", "COALESCE(gender, '')",
			"COALESCE(phone_number, '')").
		From("users").
		Where(sq.Eq{"is_admin": false}).
		Where(sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"paternal_last_name": pattern},
			sq.ILike{"maternal_last_name": pattern},
			sq.Like{"phone_number": pattern},
		}).
		OrderBy("paternal_last_name", "maternal_last_name", "first_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("SearchUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	return users, nil
}

// EnsureAdmin creates the seeded administrator account when no user with the
// given username exists yet. Returns true when the account was created.
func EnsureAdmin(ctx context.Context, db database.DB, username, passwordHash string) (bool, error) {
	row := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		username,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if exists {
		return false, nil
	}

	_, err := db.Exec(ctx,
		`INSERT INTO users (username, password_hash, is_admin, qr_token,
		                    first_name, paternal_last_name, maternal_last_name,
		                    gender, phone_number)
		 VALUES ($1, $2, TRUE, NULL, 'Admin', 'User', 'System', 'O', '000000000')`,
		username,
		passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// Another instance seeded it first.
			return false, nil
		}
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return true, nil
}
