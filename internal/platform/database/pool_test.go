package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresURL(t *testing.T) {
	_, err := New(context.Background(), DefaultConfig(""))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	pool := FromDB(db)
	mock.ExpectPing()
	assert.NoError(t, pool.Health(context.Background()))

	mock.ExpectClose()
	require.NoError(t, pool.Close())
	assert.NoError(t, mock.ExpectationsWereMet())

	var nilPool *Pool
	assert.ErrorIs(t, nilPool.Health(context.Background()), ErrNotConfigured)
	assert.NoError(t, nilPool.Close())
}
