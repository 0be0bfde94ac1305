package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminIDs(t *testing.T) {
	ids, err := ParseAdminIDs("123, 456,789")

	require.NoError(t, err)
	assert.Equal(t, []int64{123, 456, 789}, ids)
}

func TestParseAdminIDs_Empty(t *testing.T) {
	ids, err := ParseAdminIDs("")

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestParseAdminIDs_SkipsBlankEntries(t *testing.T) {
	ids, err := ParseAdminIDs("123,,456,")

	require.NoError(t, err)
	assert.Equal(t, []int64{123, 456}, ids)
}

func TestParseAdminIDs_InvalidEntry(t *testing.T) {
	_, err := ParseAdminIDs("123,abc")

	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "samsariya", cfg.Mongo.Database)
	assert.Equal(t, "09:00-21:00", cfg.WorkHours)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int64(10), int64(cfg.Poller.Interval.Seconds()))
	assert.Equal(t, int64(15), int64(cfg.Sheets.Timeout.Seconds()))
}
