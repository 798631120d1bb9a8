package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/avelar/watchtrack/internal/logger"
)

// Watch observes the configuration file and invokes onReload with the
// freshly loaded configuration whenever it changes. It returns a stop
// function. Watching a file that does not exist yet is handled by
// watching its directory.
func Watch(onReload func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c, err := Reload()
				if err != nil {
					logger.Warn("Failed to reload config after change: %v", err)
					continue
				}
				logger.Info("Configuration reloaded from %s", path)
				if onReload != nil {
					onReload(c)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher error: %v", err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
