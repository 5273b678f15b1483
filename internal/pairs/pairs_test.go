// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package pairs

import (
	"bytes"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		k        int
		arr      []int
		expected int
	}{
		{name: "empty", k: 2, arr: []int{}, expected: 0},
		{name: "nil", k: 1, arr: nil, expected: 0},
		{name: "difference of two", k: 2, arr: []int{1, 2, 3, 4, 5}, expected: 3},
		{name: "documented sample", k: 2, arr: []int{1, 5, 3, 4, 2}, expected: 3},
		{name: "difference of one", k: 1, arr: []int{1, 5, 3, 4, 2}, expected: 4},
		{name: "example from description", k: 1, arr: []int{1, 2, 3, 4}, expected: 3},
		{name: "no pairs", k: 10, arr: []int{1, 2, 3}, expected: 0},
		{name: "single element", k: 1, arr: []int{7}, expected: 0},
		{name: "duplicates", k: 1, arr: []int{1, 1, 2, 2, 2}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Count(tt.k, tt.arr))
		})
	}
}

func TestCount_DuplicatesDoNotInflate(t *testing.T) {
	var assertions = assert.New(t)
	var random = rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		var arr = make([]int, random.Intn(200))
		for j := range arr {
			arr[j] = random.Intn(100) + 1
		}
		var k = random.Intn(10) + 1

		var deduplicated = slices.Compact(slices.Sorted(slices.Values(arr)))
		assertions.Equal(Count(k, deduplicated), Count(k, arr))
	}
}

func TestCount_IndependentOfOrder(t *testing.T) {
	var assertions = assert.New(t)
	var arr = []int{9, 1, 4, 7, 3, 12, 6, 15}
	var expected = Count(3, arr)

	var reversed = slices.Clone(arr)
	slices.Reverse(reversed)
	assertions.Equal(expected, Count(3, reversed))

	var sorted = slices.Sorted(slices.Values(arr))
	assertions.Equal(expected, Count(3, sorted))
	assertions.Equal(6, expected)
}

func TestSolve(t *testing.T) {
	var assertions = assert.New(t)
	var out bytes.Buffer

	assertions.NoError(Solve(strings.NewReader("5 2\n1 5 3 4 2\n"), &out))
	assertions.Equal("3\n", out.String())
}

func TestSolve_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing k", input: "5"},
		{name: "not a number", input: "5 x\n1 2 3 4 5"},
		{name: "short array", input: "3 1\n1 2"},
		{name: "negative size", input: "-1 1\n"},
		{name: "size above limit", input: "100001 1\n1 2\n"},
		{name: "size overflowing capacity", input: "9223372036854775807 1\n1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Solve(strings.NewReader(tt.input), new(bytes.Buffer))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}
