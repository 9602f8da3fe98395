package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobFilterNormalized(t *testing.T) {
	tests := []struct {
		name       string
		in         JobFilter
		wantPage   int
		wantLimit  int
		wantSort   string
		wantOffset int
	}{
		{"defaults", JobFilter{}, DefaultPage, DefaultLimit, SortLatest, 0},
		{"second page", JobFilter{Page: 2, Limit: 5, Sort: SortAZ}, 2, 5, SortAZ, 5},
		{"limit clamped", JobFilter{Page: 1, Limit: 1000}, 1, MaxLimit, SortLatest, 0},
		{"negative page", JobFilter{Page: -3, Limit: 10}, DefaultPage, 10, SortLatest, 0},
		{"unknown sort", JobFilter{Sort: "random"}, DefaultPage, DefaultLimit, SortLatest, 0},
		{"huge page clamped", JobFilter{Page: math.MaxInt, Limit: MaxLimit}, MaxPage, MaxLimit, SortLatest, (MaxPage - 1) * MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()

			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantSort, got.Sort)
			assert.Equal(t, tt.wantOffset, got.Offset())
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}
