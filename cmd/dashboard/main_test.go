package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tool-dashboard/internal/common/database"
)

type fakeStore struct {
	failures int
	pings    int
	closes   int
}

func (f *fakeStore) Ping(ctx context.Context) error {
	f.pings++
	if f.pings <= f.failures {
		return fmt.Errorf("connection refused")
	}
	return nil
}

func (f *fakeStore) Close() error {
	f.closes++
	return nil
}

func TestConnectStore(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		wantErr    bool
		wantPings  int
		wantCloses int
	}{
		{name: "first ping answers", failures: 0, wantPings: 1},
		{name: "answers after retries", failures: 2, wantPings: 3},
		{name: "never answers", failures: 10, wantErr: true, wantPings: 4, wantCloses: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStore{failures: tt.failures}

			err := connectStore(context.Background(), s, 4, time.Millisecond, zaptest.NewLogger(t), "test store")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed after 4 attempts")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantPings, s.pings)
			assert.Equal(t, tt.wantCloses, s.closes)
		})
	}
}

func TestConnectStore_PostgresPoolOpenedOnceAndClosed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		mock.ExpectPing().WillReturnError(fmt.Errorf("dial tcp: connection refused"))
	}
	mock.ExpectClose()

	pg := &database.PostgresClient{DB: db}
	err = connectStore(context.Background(), pg, 3, time.Millisecond, zaptest.NewLogger(t), "PostgreSQL connection")

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
