package loads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePortCode(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "GSL-26-001", GeneratePortCode(now, 1))
	assert.Equal(t, "GSL-26-042", GeneratePortCode(now, 42))
	assert.Equal(t, "GSL-26-1000", GeneratePortCode(now, 1000)) // padding grows past 999

	y2031 := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "GSL-31-007", GeneratePortCode(y2031, 7))
}
