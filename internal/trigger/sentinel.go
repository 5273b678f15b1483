// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the part of the filesystem the sentinel touches.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Remove(name string) error
	Create(name string) error
}

type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

func (OSFileSystem) Create(name string) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return file.Close()
}

// Sentinel is a file whose existence requests a refresh cycle.
type Sentinel struct {
	path string
	fs   FileSystem
}

func NewSentinel(path string, fs FileSystem) *Sentinel {
	if fs == nil {
		fs = OSFileSystem{}
	}
	return &Sentinel{path: path, fs: fs}
}

func (s *Sentinel) Path() string {
	return s.path
}

// Poll reports whether the sentinel file exists.
func (s *Sentinel) Poll() (bool, error) {
	_, err := s.fs.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s: %w", ErrSentinelUnreadable, s.path, err)
	}
}

// Consume deletes the sentinel. A sentinel that is already gone counts as consumed.
func (s *Sentinel) Consume() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrSentinelLocked, s.path, err)
	}
	return nil
}

// Touch creates the sentinel, requesting a refresh on the next poll.
func (s *Sentinel) Touch() error {
	if err := s.fs.Create(s.path); err != nil {
		return fmt.Errorf("could not create trigger file %s: %w", s.path, err)
	}
	return nil
}
