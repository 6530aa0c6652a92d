package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortColumnWhitelist(t *testing.T) {
	allowed := []string{"created_at", "amount"}

	assert.Equal(t, "amount ASC", sortColumn("amount", "asc", allowed))
	assert.Equal(t, "created_at DESC", sortColumn("created_at", "desc", allowed))

	// Unknown columns fall back to the first allowed one.
	assert.Equal(t, "created_at DESC", sortColumn("1; DROP TABLE orders", "desc", allowed))
	assert.Equal(t, "created_at DESC", sortColumn("", "whatever", allowed))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 0, pageCount(5, 0))
}
