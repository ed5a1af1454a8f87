package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_TotalPagesIsCeiling(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 1, 100},
		{101, 100, 2},
	}
	for _, tc := range cases {
		p := NewPage[int](nil, tc.total, 0, tc.size)
		assert.Equal(t, tc.want, p.TotalPages, "total=%d size=%d", tc.total, tc.size)
		assert.NotNil(t, p.Content)
	}
}

func TestSeat_IsOccupied(t *testing.T) {
	id := uint64(7)
	assert.False(t, Seat{}.IsOccupied())
	assert.True(t, Seat{EmployeeID: &id}.IsOccupied())
}
