package service

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// LogLevelWatcher monitors the config file and hot-applies log level changes
// to the shared atomic level, so operators can turn on debug logging without
// restarting the service.
//
// Only the log.level key is reloaded; everything else still requires a
// restart.
type LogLevelWatcher struct {
	path    string
	level   zap.AtomicLevel
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewLogLevelWatcher creates a watcher over the given config file.
func NewLogLevelWatcher(path string, level zap.AtomicLevel, logger *zap.Logger) (*LogLevelWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files on save, which drops the
	// watch if it is attached to the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &LogLevelWatcher{
		path:    path,
		level:   level,
		watcher: fw,
		logger:  logger.With(zap.String("component", "loglevel-watcher")),
		stopCh:  make(chan struct{}),
	}, nil
}

// Start blocks consuming file events until Stop is called.
func (w *LogLevelWatcher) Start() {
	w.logger.Info("Log level watcher started", zap.String("path", w.path))

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// Stop signals the watcher to stop and releases the inotify handle.
func (w *LogLevelWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
		w.watcher.Close()
	}
}

func (w *LogLevelWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("Config re-read failed", zap.Error(err))
		return
	}

	var cfg struct {
		Log struct {
			Level string `yaml:"level"`
		} `yaml:"log"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		w.logger.Warn("Config re-parse failed", zap.Error(err))
		return
	}
	if cfg.Log.Level == "" {
		return
	}

	parsed, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		w.logger.Warn("Unknown log level in config", zap.String("level", cfg.Log.Level))
		return
	}

	if w.level.Level() != parsed {
		w.level.SetLevel(parsed)
		w.logger.Info("Log level changed", zap.String("level", parsed.String()))
	}
}
