package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/schedule"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func setupServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	grid, err := schedule.NewGrid("08:00", "20:00", 30)
	require.NoError(t, err)
	svc := New(Deps{
		DB:       db,
		Lists:    NewListCache(time.Minute),
		Grid:     grid,
		PageSize: 20,
		Now:      func() time.Time { return fixedNow },
	})
	return svc, db
}

func scopeFor(t *testing.T, clinic string) gateway.Scope {
	t.Helper()
	s, err := gateway.NewScope(clinic, "1", "10.0.0.1")
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }
