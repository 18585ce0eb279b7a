// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package wavebase

import (
	"errors"
	"fmt"
	"log"

	"github.com/alexflint/go-filemutex"
)

// LockServeFile takes a non-blocking exclusive lock on lockPath. A held lock
// returns an error wrapping ErrLockHeld.
func LockServeFile(lockPath string) (FDLock, error) {
	log.Printf("[base] acquiring serve lock %s\n", lockPath)
	m, err := filemutex.New(lockPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open lock file %q: %w", lockPath, err)
	}
	err = m.TryLock()
	if errors.Is(err, filemutex.AlreadyLocked) {
		m.Close()
		return nil, fmt.Errorf("%q: %w", lockPath, ErrLockHeld)
	}
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("cannot lock %q: %w", lockPath, err)
	}
	return m, nil
}
