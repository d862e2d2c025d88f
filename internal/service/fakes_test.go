package service

import (
	"time"

	"asistencia-qr/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	newToken = uuid.New
	qrEncode = qrcode.Encode
}

// boolRow implements pgx.Row for EXISTS queries.
type boolRow struct {
	v   bool
	err error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.v
	return nil
}

// userRow implements pgx.Row for the user column set.
type userRow struct {
	u   model.User
	err error
}

func (r userRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.u.ID
	*dest[1].(*string) = r.u.Username
	*dest[2].(*string) = r.u.PasswordHash
	*dest[3].(*bool) = r.u.IsAdmin
	*dest[4].(**uuid.UUID) = r.u.Token
	*dest[5].(*string) = r.u.FirstName
	*dest[6].(*string) = r.u.PaternalLastName
	*dest[7].(*string) = r.u.MaternalLastName
	*dest[8].(*string) = r.u.Gender
	*dest[9].(*string) = r.u.PhoneNumber
	return nil
}

// timeRows implements pgx.Rows yielding one timestamp per row.
type timeRows struct {
	data []time.Time
	idx  int
	err  error
}

func (r *timeRows) Close()                                       {}
func (r *timeRows) Err() error                                   { return r.err }
func (r *timeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *timeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *timeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *timeRows) Scan(dest ...any) error {
	*dest[0].(*time.Time) = r.data[r.idx]
	r.idx++
	return nil
}
func (r *timeRows) Values() ([]any, error) { return nil, nil }
func (r *timeRows) RawValues() [][]byte    { return nil }
func (r *timeRows) Conn() *pgx.Conn        { return nil }
