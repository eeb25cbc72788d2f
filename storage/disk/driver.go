package disk

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/tmeire/polyglot/storage"
)

// Driver implements storage.Driver for local disk storage.
type Driver struct {
	root string
}

// Ensure Driver implements storage.Driver
var _ storage.Driver = (*Driver)(nil)

// NewDriver creates a new disk storage driver rooted at root.
func NewDriver(root string) *Driver {
	return &Driver{root: root}
}

func (d *Driver) Put(ctx context.Context, key string, r io.Reader) error {
	path := filepath.Join(d.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}

func (d *Driver) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.root, key))
}

func (d *Driver) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(d.root, key))
}
