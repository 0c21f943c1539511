package xpathconf

import (
	"errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryError(t *testing.T) {
	err := error(&QueryError{Path: "/missing", Name: Name(9999), Err: syscall.ENOENT})

	assert.Contains(t, err.Error(), `"/missing"`)
	assert.Contains(t, err.Error(), "Name(9999)")
	assert.ErrorIs(t, err, syscall.ENOENT)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "/missing", qe.Path)
}

func TestConstructionError(t *testing.T) {
	err := error(&ConstructionError{Err: ErrUnsupportedPlatform})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Equal(t, "xpathconf: build standard names: xpathconf: unsupported platform", err.Error())

	err = &ConstructionError{Field: "PIPE_BUF", Err: errors.New("negative code -1")}
	assert.Contains(t, err.Error(), "field PIPE_BUF")
}

func TestRegistrationError(t *testing.T) {
	err := error(&RegistrationError{Err: ErrAlreadyInitialized})
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Contains(t, err.Error(), "register entry points")
}
