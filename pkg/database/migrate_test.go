package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := migrationNames()

	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_seminar_activity.sql", names[0])
	assert.IsNonDecreasing(t, names)
}
