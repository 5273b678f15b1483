// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lockedFileSystem struct {
	OSFileSystem
}

func (lockedFileSystem) Remove(name string) error {
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
}

func TestSentinel_Lifecycle(t *testing.T) {
	var assertions = assert.New(t)
	var sentinel = NewSentinel(filepath.Join(t.TempDir(), "in", "refresh.trigger"), nil)

	present, err := sentinel.Poll()
	assertions.NoError(err)
	assertions.False(present)

	assertions.NoError(sentinel.Touch())
	present, err = sentinel.Poll()
	assertions.NoError(err)
	assertions.True(present)

	assertions.NoError(sentinel.Consume())
	assertions.NoFileExists(sentinel.Path())

	assertions.NoError(sentinel.Consume(), "consuming a missing sentinel is not an error")
}

func TestSentinel_ConsumeLocked(t *testing.T) {
	var assertions = assert.New(t)
	var path = filepath.Join(t.TempDir(), "refresh.trigger")
	assertions.NoError(os.WriteFile(path, []byte("content is irrelevant"), 0o600))

	var sentinel = NewSentinel(path, lockedFileSystem{})
	err := sentinel.Consume()

	assertions.ErrorIs(err, ErrSentinelLocked)
	assertions.ErrorIs(err, fs.ErrPermission)
	assertions.FileExists(path)
}
