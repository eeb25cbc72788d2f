package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"

	"github.com/tmeire/polyglot/storage"
)

// FileStore persists one JSON blob per client through a storage driver,
// under the stable key "preferences/<clientID>.json".
type FileStore struct {
	driver storage.Driver
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a preference store over a storage driver.
func NewFileStore(driver storage.Driver) *FileStore {
	return &FileStore{driver: driver}
}

func fileKey(clientID string) string {
	return "preferences/" + clientID + ".json"
}

func (s *FileStore) Load(ctx context.Context, clientID string) (Preferences, bool, error) {
	r, err := s.driver.Get(ctx, fileKey(clientID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, err
	}
	defer r.Close()

	var p Preferences
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Preferences{}, false, err
	}
	return p, true, nil
}

func (s *FileStore) Save(ctx context.Context, clientID string, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.driver.Put(ctx, fileKey(clientID), bytes.NewReader(data))
}
