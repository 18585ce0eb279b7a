// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package wavebase

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// LockServeFile takes a non-blocking exclusive flock on lockPath and records the
// holder's pid in it. A held lock returns an error wrapping ErrLockHeld.
func LockServeFile(lockPath string) (FDLock, error) {
	log.Printf("[base] acquiring serve lock %s\n", lockPath)
	fd, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("cannot open lock file %q: %w", lockPath, err)
	}
	err = unix.Flock(int(fd.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if errors.Is(err, unix.EWOULDBLOCK) {
		holder := readLockHolder(fd)
		fd.Close()
		return nil, fmt.Errorf("%q (pid %s): %w", lockPath, holder, ErrLockHeld)
	}
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("cannot lock %q: %w", lockPath, err)
	}
	if err := fd.Truncate(0); err == nil {
		fd.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}
	return fd, nil
}

func readLockHolder(fd *os.File) string {
	buf := make([]byte, 32)
	n, _ := fd.ReadAt(buf, 0)
	holder := strings.TrimSpace(string(buf[:n]))
	if holder == "" {
		return "unknown"
	}
	return holder
}
