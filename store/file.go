package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/m3rciful/shoplistbot/shoplist"
)

// FileStore keeps the document as one pretty-printed JSON file under a base
// directory, backed by diskv.
type FileStore struct {
	d   *diskv.Diskv
	key string
}

// NewFile builds a file store writing <dir>/<name>.
func NewFile(dir, name string) *FileStore {
	return &FileStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		key: name,
	}
}

// Load reads and deserializes the document file.
func (f *FileStore) Load(_ context.Context) (*shoplist.Document, error) {
	data, err := f.d.Read(f.key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.key)
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc shoplist.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save serializes and writes the full document.
func (f *FileStore) Save(_ context.Context, doc *shoplist.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := f.d.Write(f.key, data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
