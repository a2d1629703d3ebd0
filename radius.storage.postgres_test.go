package radius

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()

	assert.Equal(t, PostgresDefaultMaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, PostgresDefaultMaxIdleConns, cfg.MaxIdleConns)
	assert.Equal(t, PostgresDefaultConnMaxLifetime, cfg.ConnMaxLifetime)
	assert.Equal(t, PostgresDefaultConnMaxIdleTime, cfg.ConnMaxIdleTime)
	assert.Equal(t, PostgresTablePrefix, cfg.TablePrefix)
	assert.Equal(t, PostgresDefaultQueryTimeout, cfg.QueryTimeout)
	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.ConnectionString)
}

func TestPostgresStorage_EmptyConnectionString(t *testing.T) {
	_, err := NewPostgresStorage(PostgresConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresEmptyConnString)

	_, err = OpenStorage(StorageDriverNamePostgres, "")
	require.Error(t, err)
}

func TestPostgresStorage_InvalidConnectionString(t *testing.T) {
	_, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: "invalid://not-a-valid-connection-string",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresConnectionFailed)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"page", "page"},
		{"page_", `page\_`},
		{"100%", `100\%`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}
