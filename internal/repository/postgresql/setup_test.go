package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	connectErr error
	connectDB  sync.Once
)

// testDatabase connects once per run and skips the calling test when
// TEST_DATABASE_URL is not set.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	connectDB.Do(func() {
		testDB, connectErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, connectErr, "failed to connect to test database")
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"payroll_records", "leave_requests", "attendances", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}
