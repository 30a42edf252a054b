package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vellum/internal/emit"
	"vellum/internal/project"
	"vellum/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированные файлы по ключу сборки на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the outputs of one successful compile.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	// Inputs are the display paths of the loaded schema files, for inspection.
	Inputs []string
	Files  []emit.File
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Для удобства читаемости/очистки: подкаталог "out".
	return filepath.Join(c.dir, "out", key.Hex()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(tmp, p)
	return err
}

// Get reads and deserializes a payload from the disk cache. Payloads of
// another schema version count as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key.Hex(), err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey combines every loaded file hash, in load order, with the options
// that shape the outputs.
func cacheKey(fs *source.FileSet, name string, opts *Options, targets []string) project.Digest {
	settings := fmt.Sprintf("v%d|%s|%s|%s|%s", diskCacheSchemaVersion, name,
		strings.Join(targets, ","), opts.SymbolsFormat, opts.IREncoding)
	hashes := make([]project.Digest, 0, fs.Len())
	for i := range fs.Len() {
		if f := fs.Get(source.FileID(i)); f != nil {
			hashes = append(hashes, project.Digest(f.Hash))
		}
	}
	return project.Combine(project.DigestString(settings), hashes...)
}
