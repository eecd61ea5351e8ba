package swipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/models"
)

func TestIDMapFromActivities(t *testing.T) {
	m := IDMapFromActivities(models.GetDefaultActivities())
	require.Equal(t, 6, m.Len())

	id, err := m.External(3)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000003", id)

	n, ok := m.Internal(id)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, err = m.External(42)
	assert.ErrorIs(t, err, ErrNoMapping)

	_, ok = m.Internal("missing")
	assert.False(t, ok)
}

func TestIDMapSkipsUnnumbered(t *testing.T) {
	m := IDMapFromActivities([]models.Activity{{ID: "a"}, {ID: "b", Number: 2}})
	assert.Equal(t, 1, m.Len())
}
