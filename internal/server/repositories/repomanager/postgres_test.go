package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/papers"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	var _ users.Repository = m.Users(db)
	var _ refreshtokens.Repository = m.RefreshTokens(db)
	var _ categories.Repository = m.Categories(db)
	var _ papers.Repository = m.Papers(db)
	var _ notes.Repository = m.Notes(db)

	if m.Categories(db) == nil || m.Papers(db) == nil || m.Notes(db) == nil {
		t.Fatal("factory returned nil")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpenDB(t *testing.T) {
	db, mock := newDB(t)

	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	t.Run("ping ok", func(t *testing.T) {
		sqlOpen = func(driver, dsn string) (*sql.DB, error) {
			require.Equal(t, "pgx", driver)
			require.Equal(t, "postgres://dsn", dsn)
			return db, nil
		}
		mock.ExpectPing()

		got, err := OpenDB(context.Background(), "postgres://dsn")
		require.NoError(t, err)
		require.Same(t, db, got)
	})

	t.Run("open error", func(t *testing.T) {
		sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

		_, err := OpenDB(context.Background(), "x")
		require.ErrorContains(t, err, "open db: bad dsn")
	})

	t.Run("ping error closes db", func(t *testing.T) {
		db2, mock2 := newDB(t)
		sqlOpen = func(string, string) (*sql.DB, error) { return db2, nil }
		mock2.ExpectPing().WillReturnError(errors.New("refused"))
		mock2.ExpectClose()

		_, err := OpenDB(context.Background(), "x")
		require.ErrorContains(t, err, "ping db: refused")
		require.NoError(t, mock2.ExpectationsWereMet())
	})

	_ = db.Close()
}
