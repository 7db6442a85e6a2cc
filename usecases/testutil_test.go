package usecases

import (
	"testing"

	"vita-server/db"
	"vita-server/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema.
func newTestDB(t *testing.T) db.Database {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&entities.User{},
		&entities.UserProfile{},
		&entities.HistoryEntry{},
		&entities.Goal{},
		&entities.HealthGroup{},
		&entities.GroupMember{},
		&entities.Reward{},
		&entities.RedemptionEntry{},
	))
	return &db.GormDatabase{DB: gdb}
}
