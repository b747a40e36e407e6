package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsErrorCap(t *testing.T) {
	stats := NewStats(3)

	for i := 0; i < 5; i++ {
		stats.AddError(fmt.Sprintf("error %d", i))
	}

	assert.Equal(t, 5, stats.TotalErrors)
	assert.Len(t, stats.Errors, 3)
	assert.Equal(t, "error 0", stats.Errors[0])
	assert.True(t, stats.Truncated())
}

func TestStatsDefaultCap(t *testing.T) {
	stats := NewStats(0)

	for i := 0; i < defaultMaxErrors+10; i++ {
		stats.AddError("boom")
	}

	assert.Len(t, stats.Errors, defaultMaxErrors)
	assert.Equal(t, defaultMaxErrors+10, stats.TotalErrors)
}

func TestStatsNotTruncated(t *testing.T) {
	stats := NewStats(10)
	stats.AddError("one")

	assert.False(t, stats.Truncated())
	assert.Equal(t, 1, stats.TotalErrors)
}
