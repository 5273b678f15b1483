// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"io/fs"
	"sync"
	"time"
)

// FakeFileSystem is an in-memory trigger.FileSystem that records every call.
type FakeFileSystem struct {
	mu     sync.Mutex
	files  map[string]bool
	Locked bool
	Events *EventLog
}

func NewFakeFileSystem(events *EventLog, paths ...string) *FakeFileSystem {
	var files = make(map[string]bool)
	for _, path := range paths {
		files[path] = true
	}
	return &FakeFileSystem{files: files, Events: events}
}

func (f *FakeFileSystem) Stat(name string) (fs.FileInfo, error) {
	f.Events.Add("fs:stat")
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.files[name] {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fakeFileInfo{name: name}, nil
}

func (f *FakeFileSystem) Remove(name string) error {
	f.Events.Add("fs:remove")
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Locked {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
	}
	if !f.files[name] {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(f.files, name)
	return nil
}

func (f *FakeFileSystem) Create(name string) error {
	f.Events.Add("fs:create")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = true
	return nil
}

func (f *FakeFileSystem) Exists(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[name]
}

type fakeFileInfo struct {
	name string
}

func (i fakeFileInfo) Name() string       { return i.name }
func (i fakeFileInfo) Size() int64        { return 0 }
func (i fakeFileInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (i fakeFileInfo) IsDir() bool        { return false }
func (i fakeFileInfo) Sys() any           { return nil }
