// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wavebase

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// set by the build (-ldflags)
var WaveframeVersion = "0.0.0"
var BuildTime = "0"

const (
	ConfigHomeEnvVar = "WAVEFRAME_CONFIG_HOME"
	DevVarName       = "WAVEFRAME_DEV"
)

const DefaultConfigDirName = ".waveframe"
const ServeLockFile = "serve.lock"
const SettingsFile = "settings.json"

var baseLock = &sync.Mutex{}
var ensureDirCache = map[string]bool{}

var ErrLockHeld = errors.New("lock is held by another framectl serve")

type FDLock interface {
	Close() error
}

func IsDevMode() bool {
	return os.Getenv(DevVarName) != ""
}

func GetHomeDir() string {
	homeVar, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return homeVar
}

// GetConfigHomeDir returns $WAVEFRAME_CONFIG_HOME, or ~/.waveframe when unset.
func GetConfigHomeDir() string {
	if dir := os.Getenv(ConfigHomeEnvVar); dir != "" {
		return ExpandHomeDirSafe(dir)
	}
	return filepath.Join(GetHomeDir(), DefaultConfigDirName)
}

func GetSettingsPath() string {
	return filepath.Join(GetConfigHomeDir(), SettingsFile)
}

// GetServeLockPath is the lock file that keeps one inspector server per config home.
func GetServeLockPath() string {
	return filepath.Join(GetConfigHomeDir(), ServeLockFile)
}

func ExpandHomeDir(pathStr string) (string, error) {
	if pathStr != "~" && !strings.HasPrefix(pathStr, "~/") && (!strings.HasPrefix(pathStr, `~\`) || runtime.GOOS != "windows") {
		return filepath.Clean(pathStr), nil
	}
	homeDir := GetHomeDir()
	if pathStr == "~" {
		return homeDir, nil
	}
	expandedPath := filepath.Clean(filepath.Join(homeDir, pathStr[2:]))
	if !strings.HasPrefix(expandedPath, homeDir) {
		return "", fmt.Errorf("potential path traversal detected for path %s", pathStr)
	}
	return expandedPath, nil
}

func ExpandHomeDirSafe(pathStr string) string {
	path, _ := ExpandHomeDir(pathStr)
	return path
}

func EnsureConfigDir() error {
	return CacheEnsureDir(GetConfigHomeDir(), "confighome", 0700, "waveframe config directory")
}

func CacheEnsureDir(dirName string, cacheKey string, perm os.FileMode, dirDesc string) error {
	baseLock.Lock()
	ok := ensureDirCache[cacheKey]
	baseLock.Unlock()
	if ok {
		return nil
	}
	err := TryMkdirs(dirName, perm, dirDesc)
	if err != nil {
		return err
	}
	baseLock.Lock()
	ensureDirCache[cacheKey] = true
	baseLock.Unlock()
	return nil
}

func TryMkdirs(dirName string, perm os.FileMode, dirDesc string) error {
	info, err := os.Stat(dirName)
	if errors.Is(err, fs.ErrNotExist) {
		err = os.MkdirAll(dirName, perm)
		if err != nil {
			return fmt.Errorf("cannot make %s %q: %w", dirDesc, dirName, err)
		}
		info, err = os.Stat(dirName)
	}
	if err != nil {
		return fmt.Errorf("error trying to stat %s: %w", dirDesc, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q must be a directory", dirDesc, dirName)
	}
	return nil
}

func ClientArch() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
