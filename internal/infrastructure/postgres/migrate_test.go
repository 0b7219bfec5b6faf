package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL_CambiaEsquema(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya/convertida", pgx5URL("pgx5://ya/convertida"))
}

func TestMigrationsFS_ContieneInit(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(up), "stock_movements_consistent")

	_, err = migrationsFS.ReadFile("migrations/000001_init.down.sql")
	assert.NoError(t, err)
}
