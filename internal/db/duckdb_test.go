package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDBIsShared(t *testing.T) {
	first, err := GetDB()
	require.NoError(t, err)
	second, err := GetDB()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestOpenIsPrivate(t *testing.T) {
	a, err := Open()
	require.NoError(t, err)
	defer a.Close()
	b, err := Open()
	require.NoError(t, err)
	defer b.Close()

	_, err = a.Exec(`CREATE TABLE only_here (v INTEGER)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, a.QueryRow(`SELECT count(*) FROM only_here`).Scan(&n))
	assert.Equal(t, 0, n)

	_, err = b.Exec(`SELECT count(*) FROM only_here`)
	assert.Error(t, err)
}
