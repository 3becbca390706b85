package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, DefaultPageLimit},
		{"negative page", -3, 10, 1, 10},
		{"zero limit", 2, 0, 2, DefaultPageLimit},
		{"over max limit", 2, 500, 2, MaxPageLimit},
		{"at max limit", 2, MaxPageLimit, 2, MaxPageLimit},
		{"passthrough", 4, 50, 4, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ClampPage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPage(t *testing.T) {
	t.Run("pages is ceil(records/limit)", func(t *testing.T) {
		p := NewPage([]int{1, 2, 3}, 1, 10, 21)
		assert.EqualValues(t, 3, p.Pagination.Pages)
		assert.EqualValues(t, 21, p.Pagination.Records)
	})

	t.Run("exact division", func(t *testing.T) {
		p := NewPage([]int{}, 2, 10, 20)
		assert.EqualValues(t, 2, p.Pagination.Pages)
	})

	t.Run("empty result keeps data non-nil", func(t *testing.T) {
		p := NewPage[int](nil, 1, 10, 0)
		assert.NotNil(t, p.Data)
		assert.EqualValues(t, 0, p.Pagination.Pages)
	})
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
}
