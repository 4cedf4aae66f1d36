package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/misterclayt0n/liftlog/internal/timer"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrRoutineReadOnly  = errors.New("recommended routines are read-only")
	ErrRoutineExists    = errors.New("routine already exists")
	ErrExerciseNotFound = errors.New("exercise not found")
)

const (
	driverSQLite = "sqlite"
	driverLibSQL = "libsql"
)

// Storage is the SQLite/libsql backed store for routines, the exercise library,
// the active-session slot, workout records and the profile.
type Storage struct {
	DB *sql.DB

	driver string
	clock  timer.Clock
	log    logrus.FieldLogger
}

type Option func(*Storage)

func WithClock(c timer.Clock) Option { return func(s *Storage) { s.clock = c } }

func WithLogger(l logrus.FieldLogger) Option { return func(s *Storage) { s.log = l } }

// Open connects to the database and brings its schema up to date. Remote
// libsql/Turso URLs go through the libsql driver; anything else is treated as
// a local SQLite file.
func Open(ctx context.Context, connString string, opts ...Option) (*Storage, error) {
	if connString == "" {
		return nil, errors.New("empty connection string")
	}

	s := &Storage{
		clock: timer.SystemClock{},
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	driver, dsn := driverFor(connString)
	if driver == driverSQLite && !strings.HasPrefix(connString, "file:") && connString != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(connString), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach db: %w", err)
	}
	s.DB = db
	s.driver = driver

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate db: %w", err)
	}

	s.log.WithField("driver", driver).Debug("storage ready")
	return s, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func driverFor(connString string) (driver, dsn string) {
	for _, scheme := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(connString, scheme) {
			return driverLibSQL, connString
		}
	}

	sep := "?"
	if strings.Contains(connString, "?") {
		sep = "&"
	}
	return driverSQLite, connString + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func (s *Storage) now() time.Time {
	return s.clock.Now()
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullString(str string) any {
	if str == "" {
		return nil
	}
	return str
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func timePtr(n sql.NullString) (*time.Time, error) {
	if !n.Valid || n.String == "" {
		return nil, nil
	}
	t, err := parseTime(n.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
