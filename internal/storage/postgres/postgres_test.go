package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ucsb-cs156/campus-api/internal/config"
)

func TestNew_RequiresDSN(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), config.Storage{Driver: config.DriverPostgres})
	require.EqualError(t, err, "postgres.New: storage dsn is empty")
}
