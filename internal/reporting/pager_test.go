// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pagedNumbers(total int, pageSize int, fetched *[]int) PageFunc[int] {
	return func(_ context.Context, pageNumber int) ([]int, Pagination, error) {
		*fetched = append(*fetched, pageNumber)

		var items []int
		for i := (pageNumber - 1) * pageSize; i < min(pageNumber*pageSize, total); i++ {
			items = append(items, i)
		}
		return items, Pagination{PageNumber: pageNumber, PageSize: pageSize, TotalAvailable: total}, nil
	}
}

func TestPager_AllPages(t *testing.T) {
	var assertions = assert.New(t)
	var fetched []int

	var items []int
	for item, err := range Pager(context.Background(), pagedNumbers(7, 3, &fetched)) {
		assertions.NoError(err)
		items = append(items, item)
	}

	assertions.Equal([]int{0, 1, 2, 3, 4, 5, 6}, items)
	assertions.Equal([]int{1, 2, 3}, fetched)
}

func TestPager_Empty(t *testing.T) {
	var assertions = assert.New(t)
	var fetched []int

	var count = 0
	for range Pager(context.Background(), pagedNumbers(0, 3, &fetched)) {
		count++
	}

	assertions.Zero(count)
	assertions.Equal([]int{1}, fetched)
}

func TestPager_IsLazy(t *testing.T) {
	var assertions = assert.New(t)
	var fetched []int

	for item := range Pager(context.Background(), pagedNumbers(100, 10, &fetched)) {
		if item == 12 {
			break
		}
	}

	assertions.Equal([]int{1, 2}, fetched, "pages after the consumer stopped must not be requested")
}

func TestPager_StopsOnError(t *testing.T) {
	var assertions = assert.New(t)
	var failure = errors.New("boom")

	var fetch PageFunc[int] = func(_ context.Context, pageNumber int) ([]int, Pagination, error) {
		if pageNumber == 2 {
			return nil, Pagination{}, failure
		}
		return []int{1, 2}, Pagination{TotalAvailable: 10}, nil
	}

	var items []int
	var errs []error
	for item, err := range Pager(context.Background(), fetch) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	assertions.Equal([]int{1, 2}, items)
	assertions.Equal([]error{failure}, errs)
}

func TestPager_CancelledContext(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()

	var fetched []int
	for _, err := range Pager(ctx, pagedNumbers(5, 2, &fetched)) {
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Empty(t, fetched)
}
