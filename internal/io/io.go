package io

import (
	"os"
	"path/filepath"
	"sync"

	. "gdbfront/internal/logger"

	"github.com/rjeczalik/notify"
)

func IsFileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SourceWatcher reports changes to the source files the debugger resolved.
// Each file is watched through its directory, a directory is watched once.
type SourceWatcher struct {
	events chan notify.EventInfo
	done   chan struct{}
	files  map[string]bool
	dirs   map[string]bool
	mu     sync.Mutex
}

func NewSourceWatcher() *SourceWatcher {
	return &SourceWatcher{
		events: make(chan notify.EventInfo, 16),
		done:   make(chan struct{}),
		files:  map[string]bool{},
		dirs:   map[string]bool{},
	}
}

func (sw *SourceWatcher) StartWatch(onUpdate func(path string)) {
	go func() {
		for {
			select {
			case <-sw.done:
				return
			case e := <-sw.events:
				path := e.Path()
				if !sw.Watched(path) { continue }
				Log.Info("source changed:", path)
				onUpdate(path)
			}
		}
	}()
}

// Add starts watching filePath. Missing files are skipped.
func (sw *SourceWatcher) Add(filePath string) error {
	path, err := resolve(filePath)
	if err != nil { return err }
	if !IsFileExists(path) { return nil }

	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.files[path] { return nil }
	sw.files[path] = true

	dir := filepath.Dir(path)
	if sw.dirs[dir] { return nil }

	err = notify.Watch(dir, sw.events, notify.Write, notify.Create, notify.Rename, notify.Remove)
	if err != nil {
		delete(sw.files, path)
		Log.Error("watch", dir, err.Error())
		return err
	}
	sw.dirs[dir] = true
	return nil
}

func (sw *SourceWatcher) Watched(filePath string) bool {
	path, err := resolve(filePath)
	if err != nil { return false }
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.files[path]
}

func (sw *SourceWatcher) Stop() {
	notify.Stop(sw.events)
	close(sw.done)
}

func resolve(filePath string) (string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil { return "", err }
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
