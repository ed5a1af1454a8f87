//go:build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/iliyamo/office-management/internal/config"
	"github.com/iliyamo/office-management/internal/database"
	"github.com/iliyamo/office-management/internal/model"
)

// startMySQL runs a throwaway MySQL 8 container and returns a migrated pool.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "root",
			"MYSQL_DATABASE":      "office",
			"MYSQL_USER":          "office",
			"MYSQL_PASSWORD":      "office",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(120 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	cfg := config.DBConfig{
		User: "office", Pass: "office", Host: host, Port: port.Port(), Name: "office",
		MaxOpenConns: 5, MaxIdleConns: 5, ConnMaxLifetime: time.Minute,
	}
	var db *sql.DB
	for i := 0; i < 20; i++ {
		if db, err = database.Open(ctx, cfg); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

func TestIntegration_InventoryLifecycle(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()
	floors, rooms, seats := NewFloorRepo(db), NewRoomRepo(db), NewSeatRepo(db)
	employees, stats := NewEmployeeRepo(db), NewStatsRepo(db)
	tm := NewTxManager(db)

	f := &model.Floor{Name: "Ground", FloorNumber: 0}
	require.NoError(t, floors.Create(ctx, f))
	assert.ErrorIs(t, floors.Create(ctx, &model.Floor{Name: "Dup", FloorNumber: 0}), ErrDuplicate)

	// an update that changes nothing still finds its row
	require.NoError(t, floors.Update(ctx, f))

	rm := &model.Room{FloorID: f.ID, RoomNumber: "101", Name: "Lab"}
	require.NoError(t, rooms.Create(ctx, rm))
	assert.ErrorIs(t, rooms.Create(ctx, &model.Room{FloorID: 9999, RoomNumber: "1", Name: "x"}), ErrReferenceMissing)

	s := &model.Seat{RoomID: rm.ID, SeatNumber: "A-1"}
	require.NoError(t, seats.Create(ctx, s))
	assert.False(t, s.Occupied)

	e := &model.Employee{FullName: "Ada Lovelace", Occupation: "Engineer"}
	require.NoError(t, employees.Create(ctx, e))

	err := tm.WithTx(ctx, func(ctx context.Context) error {
		locked, err := seats.GetByIDForUpdate(ctx, s.ID)
		if err != nil {
			return err
		}
		return seats.SetEmployee(ctx, locked.ID, &e.ID)
	})
	require.NoError(t, err)

	held, err := seats.ListByEmployees(ctx, []uint64{e.ID})
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "Ada Lovelace", held[0].Employee.FullName)
	assert.Equal(t, "101", held[0].Room.RoomNumber)

	list, total, err := employees.Search(ctx, "ENGIN", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, total, err = employees.Search(ctx, "100%", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.ErrorIs(t, floors.Delete(ctx, f.ID), ErrStillReferenced)

	got, err := stats.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalEmployees: 1, TotalFloors: 1, TotalOffices: 1, TotalSeats: 1}, got)
}
