// Copyright 2024, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wconfig

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/wavetermdev/waveframe/pkg/panichandler"
)

type SettingsHandler func(settings SettingsType)

// Watcher re-reads a settings file whenever it changes and hands the result to every
// subscriber.  A file that fails to parse keeps the previous settings.
type Watcher struct {
	lock     *sync.Mutex
	fileName string
	watcher  *fsnotify.Watcher
	settings SettingsType
	handlers []SettingsHandler
	started  bool
}

func MakeWatcher(fileName string) (*Watcher, error) {
	fileName = filepath.Clean(fileName)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory; editors replace files rather than write them in place
	dirName := filepath.Dir(fileName)
	if err := watcher.Add(dirName); err != nil {
		watcher.Close()
		return nil, err
	}
	return &Watcher{
		lock:     &sync.Mutex{},
		fileName: fileName,
		watcher:  watcher,
	}, nil
}

func (w *Watcher) Subscribe(fn SettingsHandler) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start reads the initial settings, sends them to subscribers, then watches.
func (w *Watcher) Start() {
	w.lock.Lock()
	if w.started {
		w.lock.Unlock()
		return
	}
	w.started = true
	watcher := w.watcher
	w.lock.Unlock()
	log.Printf("[wconfig] watching %s\n", w.fileName)
	w.reload()
	go func() {
		defer func() {
			panichandler.PanicHandlerNoError("wconfig:watcher", recover())
		}()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				w.handleEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[wconfig] watcher error: %v\n", err)
			}
		}
	}()
}

func (w *Watcher) GetSettings() SettingsType {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.settings
}

func (w *Watcher) Close() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
		log.Printf("[wconfig] watcher closed\n")
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if filepath.Clean(event.Name) != w.fileName {
		return
	}
	w.reload()
}

func (w *Watcher) reload() {
	settings, err := ReadSettings(w.fileName)
	if err != nil {
		log.Printf("[wconfig] error reading %s, keeping previous settings: %v\n", w.fileName, err)
		return
	}
	w.lock.Lock()
	w.settings = settings
	handlers := append([]SettingsHandler(nil), w.handlers...)
	w.lock.Unlock()
	for _, fn := range handlers {
		fn(settings)
	}
}
