package database

import (
	"testing"

	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectSQLiteMigrates(t *testing.T) {
	db, err := Connect("sqlite", "file:connect-test?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)

	for _, table := range []any{&models.User{}, &models.Job{}, &models.FollowUp{}, &models.EmailSettings{}, &models.DispatchedFollowUp{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	user := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	job := models.Job{UserID: user.ID, Company: "Stripe", Position: "SRE"}
	require.NoError(t, db.Create(&job).Error)

	var stored models.Job
	require.NoError(t, db.First(&stored, job.ID).Error)
	assert.Equal(t, models.StatusApplied, stored.Status)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "", zap.NewNop())
	assert.Error(t, err)
}
