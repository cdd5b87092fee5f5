package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"admin-console/internal/apperr"
	"admin-console/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

var identityColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"username", "display_name", "password_hash", "kind", "role_id",
}

func TestIdentityStoreFindLogin(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "identities"`).
			WillReturnRows(sqlmock.NewRows(identityColumns).
				AddRow(7, now, now, nil, "admin@console.local", "Administrator", "hash", "Employee", 1))

		identity, err := NewIdentityStore(db).FindLogin(context.Background(), "admin@console.local", models.KindEmployee)
		require.NoError(t, err)
		assert.Equal(t, uint(7), identity.ID)
		assert.Equal(t, models.KindEmployee, identity.Kind)
		assert.Equal(t, 1, identity.RoleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "identities"`).
			WillReturnRows(sqlmock.NewRows(identityColumns))

		_, err := NewIdentityStore(db).FindLogin(context.Background(), "ghost", models.KindUser)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("db failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "identities"`).
			WillReturnError(errors.New("connection reset"))

		_, err := NewIdentityStore(db).FindLogin(context.Background(), "admin", models.KindEmployee)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAuditLogRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	NewAuditLog(db, zap.NewNop()).Record(context.Background(), 7, "role", "5", "delete", "Deleted role 5")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRecordIgnoresNil(t *testing.T) {
	var a *AuditLog
	assert.NotPanics(t, func() {
		a.Record(context.Background(), 1, "role", "5", "delete", "")
	})
}
