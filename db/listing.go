package db

import (
	sq "github.com/Masterminds/squirrel"
)

// ListOptions contains the common paging and filter options of list queries
type ListOptions struct {
	PageSize int
	Page     int
	// Search matches against name and email columns
	Search string
	// Status filters on the exact status column value
	Status string
	// Role filters admin users by role
	Role string
}

func (o *ListOptions) normalize() {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
}

func (o *ListOptions) offset() uint64 {
	return uint64((o.Page - 1) * o.PageSize)
}

// searchPredicate builds a LIKE predicate over the given columns
func searchPredicate(search string, columns ...string) sq.Or {
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.Like{c: "%" + search + "%"})
	}
	return or
}
