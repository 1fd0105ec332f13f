package session

import (
	"encoding/json"
	"os"
	"sync"
)

// FileStore is a JSON file-backed KeyValue store. Every write flushes the
// whole map to disk synchronously; there is no grouping of writes.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFileStore loads the store at path, starting empty when the file
// does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&fs.values); err != nil {
		return nil, err
	}
	return fs, nil
}

// Get returns the stored value, or "" when the key is absent.
func (fs *FileStore) Get(key string) string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.values[key]
}

// Set stores the value and flushes to disk.
func (fs *FileStore) Set(key, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	_ = fs.save()
}

// Delete removes the key and flushes to disk.
func (fs *FileStore) Delete(key string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.values, key)
	_ = fs.save()
}

func (fs *FileStore) save() error {
	f, err := os.Create(fs.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(fs.values)
}
