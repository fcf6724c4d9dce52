package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewPool_InvalidConnString verifies config parsing failures surface
func TestNewPool_InvalidConnString(t *testing.T) {
	pool, err := NewPool("this is not a connection string", 10, time.Minute, time.Hour)

	assert.Nil(t, pool)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}
