package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpandLeaveDays_ClipsToRange(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	leaves := []Leave{
		{StartDate: time.Date(2024, time.May, 30, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
		{StartDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{StartDate: time.Date(2024, time.June, 29, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC)},
	}

	got := expandLeaveDays(leaves, start, end)

	assert.Len(t, got, 5)
	for _, k := range []string{"2024-06-01", "2024-06-02", "2024-06-10", "2024-06-29", "2024-06-30"} {
		assert.Contains(t, got, k)
	}
	assert.NotContains(t, got, "2024-05-31")
	assert.NotContains(t, got, "2024-07-01")
}
