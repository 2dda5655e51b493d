package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"healthquote-funnel/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureJournalSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	client := &PostgresClient{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS lead_deliveries")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, client.EnsureJournalSchema(context.Background()))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS lead_deliveries")).
		WillReturnError(errors.New("permission denied"))
	err = client.EnsureJournalSchema(context.Background())
	assert.ErrorContains(t, err, "permission denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresConfigDSN(t *testing.T) {
	dsn := config.PostgresConfig{
		Host: "db", Port: 5432, User: "funnel", Password: "secret", Database: "journal", SSLMode: "disable",
	}.GetDSN()
	assert.Equal(t, "host=db port=5432 user=funnel password=secret dbname=journal sslmode=disable", dsn)
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))

	_, err = NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestNewElasticsearch(t *testing.T) {
	client, err := NewElasticsearch(config.ElasticsearchConfig{URL: "http://localhost:9200"})
	require.NoError(t, err)
	assert.NotNil(t, client.Client)
}
