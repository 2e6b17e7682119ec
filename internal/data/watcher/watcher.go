package watcher

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/wbx/go-timer-workbench/internal/util"
)

// FileEvent is a change notification for a spool file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches the spool directory for new or updated event files.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan FileEvent
}

func NewFileWatcher(paths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		events:  make(chan FileEvent, 100),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	// Recursively add directories
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			return fw.watcher.Add(p)
		}

		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Only spool files are interesting
			if filepath.Ext(event.Name) == ".jsonl" {
				fw.events <- FileEvent{
					Path:      event.Name,
					Operation: event.Op.String(),
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("Spool monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
