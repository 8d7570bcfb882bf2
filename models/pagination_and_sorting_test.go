package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPaginationDefaults(t *testing.T) {
	defaulted := WithPaginationDefaults(PaginationAndSorting{})
	assert.Equal(t, DefaultPageSize, defaulted.Limit)
	assert.Equal(t, SortingOrderDesc, defaulted.Order)

	capped := WithPaginationDefaults(PaginationAndSorting{Limit: 50000})
	assert.Equal(t, MaxPageSize, capped.Limit)

	explicit := WithPaginationDefaults(PaginationAndSorting{
		Limit:          25,
		Order:          SortingOrderAsc,
		OffsetSequence: 100,
	})
	assert.Equal(t, 25, explicit.Limit)
	assert.Equal(t, SortingOrderAsc, explicit.Order)
	assert.Equal(t, int64(100), explicit.OffsetSequence)
}
