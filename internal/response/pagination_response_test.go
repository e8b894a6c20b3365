package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 40, p.To)
	assert.True(t, p.HasMore)

	last := NewPagination(3, 20, 45)
	assert.Equal(t, 45, last.To)
	assert.False(t, last.HasMore)

	empty := NewPagination(1, 20, 0)
	assert.Equal(t, 0, empty.From)
	assert.Equal(t, 0, empty.To)
	assert.False(t, empty.HasMore)
}
