package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// KeyAPIBase holds the last API base the console connected to.
const KeyAPIBase = "jshop_api_base"

// FileStore is a small string key/value store persisted as one JSON object.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	log    *logrus.Logger
}

// Open loads path if it exists. A missing file starts an empty store; a
// corrupt one is logged and ignored so the console still starts.
func Open(path string, logger *logrus.Logger) *FileStore {
	s := &FileStore{path: path, values: map[string]string{}, log: logger}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Infof("Settings: %s not found, starting empty", path)
	case err != nil:
		logger.Warnf("Settings: failed to read %s: %v", path, err)
	default:
		if err := json.Unmarshal(b, &s.values); err != nil {
			logger.Warnf("Settings: ignoring corrupt %s: %v", path, err)
			s.values = map[string]string{}
		}
	}
	return s
}

func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := writeJSONAtomic(s.path, s.values); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		s.log.Errorf("Settings: failed to persist %s: %v", key, err)
		return fmt.Errorf("failed to persist setting %s: %w", key, err)
	}
	s.log.Debugf("Settings: stored %s", key)
	return nil
}

func writeJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err == nil {
		return nil
	}

	defer os.Remove(tmp)

	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	return os.Rename(tmp, path)
}
