// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wavebase

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfigHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigHomeEnvVar, dir)
	if got := GetConfigHomeDir(); got != filepath.Clean(dir) {
		t.Errorf("expected %q, got %q", dir, got)
	}
	if got := GetSettingsPath(); got != filepath.Join(dir, SettingsFile) {
		t.Errorf("unexpected settings path %q", got)
	}
}

func TestConfigHomeDefault(t *testing.T) {
	t.Setenv(ConfigHomeEnvVar, "")
	if got := GetConfigHomeDir(); got != filepath.Join(GetHomeDir(), DefaultConfigDirName) {
		t.Errorf("unexpected default config home %q", got)
	}
}

func TestExpandHomeDir(t *testing.T) {
	home := GetHomeDir()
	tests := []struct {
		in       string
		expected string
	}{
		{"~", home},
		{"~/cfg", filepath.Join(home, "cfg")},
		{"/tmp/x/../y", "/tmp/y"},
	}
	for _, tc := range tests {
		got, err := ExpandHomeDir(tc.in)
		if err != nil || got != tc.expected {
			t.Errorf("%q: expected %q, got %q %v", tc.in, tc.expected, got, err)
		}
	}
	if _, err := ExpandHomeDir("~/../../etc"); err == nil && home != "/" {
		t.Errorf("expected traversal error")
	}
}

func TestTryMkdirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := TryMkdirs(dir, 0700, "test dir"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := TryMkdirs(dir, 0700, "test dir"); err != nil {
		t.Errorf("existing dir should be fine: %v", err)
	}
}

func TestLockServeFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigHomeEnvVar, dir)
	lockPath := GetServeLockPath()
	if lockPath != filepath.Join(dir, ServeLockFile) {
		t.Fatalf("unexpected lock path %q", lockPath)
	}
	lock, err := LockServeFile(lockPath)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if _, err := LockServeFile(lockPath); !errors.Is(err, ErrLockHeld) {
		t.Errorf("second lock should report ErrLockHeld, got %v", err)
	}
	lock.Close()
	relock, err := LockServeFile(lockPath)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	relock.Close()
}
