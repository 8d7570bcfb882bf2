package models

type SortingOrder string

const (
	SortingOrderAsc  SortingOrder = "ASC"
	SortingOrderDesc SortingOrder = "DESC"
)

// PaginationAndSorting pages event listings on the global sequence number,
// which is a stable cursor: committed events never move.
type PaginationAndSorting struct {
	OffsetSequence int64
	Order          SortingOrder
	Limit          int
}

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

func WithPaginationDefaults(pagination PaginationAndSorting) PaginationAndSorting {
	if pagination.Limit <= 0 {
		pagination.Limit = DefaultPageSize
	}
	if pagination.Limit > MaxPageSize {
		pagination.Limit = MaxPageSize
	}
	if pagination.Order == "" {
		pagination.Order = SortingOrderDesc
	}
	return pagination
}
