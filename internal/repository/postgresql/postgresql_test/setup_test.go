package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-leave-attendance/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, applies the migrations and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = database.Migrate(ctx, db, migrations.FS)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE attendances, leave_requests, employees CASCADE")
	require.NoError(t, err)

	return db
}

func createTestEmployee(t *testing.T, db *database.DB, balance int) employee.Employee {
	t.Helper()

	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		FullName:     "Test Employee",
		Email:        uuid.NewString() + "@example.com",
		LeaveBalance: balance,
		Active:       true,
	})
	require.NoError(t, err)
	return emp
}
