// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

// Package pairs counts the pairs of integers in a list that differ by a fixed value.
package pairs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrMalformedInput = errors.New("malformed input")

// Count returns the number of pairs (a, b) with a and b in arr and a - b == k.
// k is expected to be positive; duplicates in arr are counted once.
func Count(k int, arr []int) int {
	var set = make(map[int]struct{}, len(arr))
	for _, v := range arr {
		set[v] = struct{}{}
	}

	var count = 0
	for v := range set {
		if _, ok := set[v+k]; ok {
			count++
		}
	}
	return count
}

// MaxSize is the largest array Solve accepts.
const MaxSize = 100_000

// Solve reads "n k" followed by n integers from r and writes the pair count to w.
func Solve(r io.Reader, w io.Writer) error {
	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	n, err := nextInt(scanner, "n")
	if err != nil {
		return err
	}
	k, err := nextInt(scanner, "k")
	if err != nil {
		return err
	}
	if n < 0 || n > MaxSize {
		return fmt.Errorf("%w: size %d out of range [0, %d]", ErrMalformedInput, n, MaxSize)
	}

	var arr = make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := nextInt(scanner, fmt.Sprintf("arr[%d]", i))
		if err != nil {
			return err
		}
		arr = append(arr, v)
	}

	_, err = fmt.Fprintln(w, Count(k, arr))
	return err
}

func nextInt(scanner *bufio.Scanner, name string) (int, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedInput, name)
	}

	v, err := strconv.Atoi(scanner.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedInput, name, err)
	}
	return v, nil
}
