package counter

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Current_DefaultsToOne(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedis(db)

	mock.ExpectGet(Key).RedisNil()

	n, err := c.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Current_StoredValue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedis(db)

	mock.ExpectGet(Key).SetVal("7")

	n, err := c.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Advance_FirstCallYieldsTwo(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedis(db)

	mock.ExpectSetNX(Key, int64(1), 0).SetVal(true)
	mock.ExpectIncr(Key).SetVal(2)

	n, err := c.Advance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Advance_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedis(db)

	mock.ExpectSetNX(Key, int64(1), 0).SetVal(false)
	mock.ExpectIncr(Key).SetErr(errors.New("connection refused"))

	_, err := c.Advance(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemory_Advance(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	n, _ := c.Current(ctx)
	assert.Equal(t, int64(1), n)

	n, _ = c.Advance(ctx)
	assert.Equal(t, int64(2), n)

	n, _ = c.Current(ctx)
	assert.Equal(t, int64(2), n)
}
