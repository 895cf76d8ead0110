package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errStoreFileIsDir = errors.New("session store file is dir")
)

type fileEntry struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

type fileData struct {
	Sessions map[string]fileEntry `json:"sessions"`
}

// FileStore is an scs.Store kept in memory and written to a json file on
// Flush, so browser sessions survive a restart without redis.
type FileStore struct {
	path string
	log  *zap.Logger
	now  func() time.Time

	mu   sync.Mutex
	data *fileData
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	f := &FileStore{
		path: path,
		log:  log,
		now:  time.Now,
		data: &fileData{Sessions: map[string]fileEntry{}},
	}

	if err := f.readfile(); err != nil && !errors.Is(err, os.ErrNotExist) {
		// only log, the store starts empty and the file is replaced on flush
		f.log.Warn("failed reading session store file", zap.String("path", path), zap.Error(err))
	}

	return f
}

func (f *FileStore) readfile() error {
	finfo, err := os.Stat(f.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errStoreFileIsDir
	}

	file, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	data := &fileData{}
	if err := json.NewDecoder(file).Decode(data); err != nil {
		return err
	}
	if data.Sessions == nil {
		data.Sessions = map[string]fileEntry{}
	}
	f.data = data
	return nil
}

// Flush writes unexpired sessions to disk.
func (f *FileStore) Flush() error {
	f.mu.Lock()
	now := f.now()
	out := &fileData{Sessions: make(map[string]fileEntry, len(f.data.Sessions))}
	for token, e := range f.data.Sessions {
		if e.Expiry.After(now) {
			out.Sessions[token] = e
		}
	}
	f.mu.Unlock()

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

func (f *FileStore) Find(token string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.data.Sessions[token]
	if !ok {
		return nil, false, nil
	}
	if !e.Expiry.After(f.now()) {
		delete(f.data.Sessions, token)
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (f *FileStore) Commit(token string, b []byte, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data.Sessions[token] = fileEntry{Data: b, Expiry: expiry}
	return nil
}

func (f *FileStore) Delete(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data.Sessions, token)
	return nil
}
