package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce batches rapid file events (editor save bursts) into a
// single lint run.
const watchDebounce = 500 * time.Millisecond

// watchLogger configures the logger for the watch loop
func watchLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// runWatch lints once, then re-lints whenever a proto file under the
// directory changes.
func runWatch(opts lintOptions) error {
	logger := watchLogger(opts.verbose)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchAddRecursive(watcher, opts.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.dir, err)
	}

	lintOnce := func() {
		if err := runLint(opts); err != nil {
			logger.Warnf("Lint: %v", err)
		}
	}

	logger.Infof("Watching %s for proto file changes", opts.dir)
	lintOnce()

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only care about write and create events for .proto files
			if (event.Op&(fsnotify.Write|fsnotify.Create) != 0) && filepath.Ext(event.Name) == ".proto" {
				logger.Infof("Modified file: %s", event.Name)
				debounce.Reset(watchDebounce)
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() && !watchSkipDir(filepath.Base(event.Name)) {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warnf("Error watching new directory: %v", err)
					}
				}
			}
		case <-debounce.C:
			lintOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("Watcher error: %v", err)
		}
	}
}

// watchAddRecursive recursively adds all directories to the watcher
func watchAddRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && watchSkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func watchSkipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "third_party"
}
