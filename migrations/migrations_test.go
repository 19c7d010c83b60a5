package migrations

import (
	"context"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"io/fs"
	"testing"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"sql/000001_create_invoice.up.sql",
		"sql/000001_create_invoice.down.sql",
		"sql/000002_create_shipment.up.sql",
		"sql/000002_create_shipment.down.sql",
	}, entries)
}

func TestDownRejectsNonPositiveSteps(t *testing.T) {
	assert.EqualError(t, Down(context.Background(), nil, 0, zap.NewNop()), "steps must be positive, got 0")
}

func TestUpReleasesConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT CURRENT_DATABASE\(\)`).WillReturnError(errors.New("connection reset"))

	err = Up(context.Background(), db, zap.NewNop())
	assert.ErrorContains(t, err, "failed to create migration driver")
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
