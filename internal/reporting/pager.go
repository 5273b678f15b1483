// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"context"
	"iter"
)

type Pagination struct {
	PageNumber     int `json:"pageNumber,string"`
	PageSize       int `json:"pageSize,string"`
	TotalAvailable int `json:"totalAvailable,string"`
}

// PageFunc fetches a single page (starting at 1) of a paginated listing.
type PageFunc[T any] func(ctx context.Context, pageNumber int) ([]T, Pagination, error)

// Pager lazily walks all pages of a listing. Pages are only requested while the consumer keeps
// iterating; a failed request is yielded once and ends the sequence.
func Pager[T any](ctx context.Context, fetch PageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var seen = 0
		for pageNumber := 1; ; pageNumber++ {
			if err := ctx.Err(); err != nil {
				var zero T
				yield(zero, err)
				return
			}

			items, pagination, err := fetch(ctx, pageNumber)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			seen += len(items)
			if len(items) == 0 || seen >= pagination.TotalAvailable {
				return
			}
		}
	}
}
