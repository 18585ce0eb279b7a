// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ds

import "sync"

// SyncMap is a mutex guarded map. The frame adapter keeps its side tables
// (tooltip associations, trigger bindings) in these so a multi-goroutine host
// stays consistent.
type SyncMap[K comparable, T any] struct {
	lock *sync.Mutex
	m    map[K]T
}

func MakeSyncMap[K comparable, T any]() *SyncMap[K, T] {
	return &SyncMap[K, T]{
		lock: &sync.Mutex{},
		m:    make(map[K]T),
	}
}

func (sm *SyncMap[K, T]) Set(key K, value T) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	sm.m[key] = value
}

func (sm *SyncMap[K, T]) Get(key K) T {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	return sm.m[key]
}

func (sm *SyncMap[K, T]) GetEx(key K) (T, bool) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	v, ok := sm.m[key]
	return v, ok
}

func (sm *SyncMap[K, T]) Delete(key K) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	delete(sm.m, key)
}

// GetAndDelete removes key and returns the value it held.
func (sm *SyncMap[K, T]) GetAndDelete(key K) (T, bool) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	v, ok := sm.m[key]
	if ok {
		delete(sm.m, key)
	}
	return v, ok
}

// DeleteFn removes every entry for which testFn returns true and returns the removed values.
func (sm *SyncMap[K, T]) DeleteFn(testFn func(K, T) bool) []T {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	var removed []T
	for k, v := range sm.m {
		if testFn(k, v) {
			removed = append(removed, v)
			delete(sm.m, k)
		}
	}
	return removed
}

func (sm *SyncMap[K, T]) Len() int {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	return len(sm.m)
}
