package cache

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// fileMagic starts the header line of every entry file.
const fileMagic = "textsvg-cache/1"

// entryExt marks entry files inside shard directories.
const entryExt = ".bin"

// FileCache stores artifacts as files under a directory, for the CLI.
//
// Each entry is one file, <dir>/<ab>/<cdef...>.bin, named by the hash of the
// key. The file holds a header line with the expiry and then the artifact
// bytes unchanged, so PNG and PDF output is not re-encoded. Writes go
// through a temporary file and a rename, so concurrent processes never read
// a partial entry.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the artifact for key. Expired and unreadable entries are
// removed and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expires, data, ok := decodeEntry(raw)
	if !ok || c.expired(expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data under key. A ttl of zero never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}

	path := c.path(key)
	shard := filepath.Dir(path)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(shard, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encodeEntry(expires, data)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// Clear removes every entry and the shard directories, and returns the
// number of entries removed.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	err := c.walk(func(path string, _ fs.DirEntry) error {
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	c.removeEmptyShards()
	return removed, err
}

// Prune removes expired and unreadable entries and returns how many it
// removed. Live entries are untouched.
func (c *FileCache) Prune() (int, error) {
	removed := 0
	err := c.walk(func(path string, _ fs.DirEntry) error {
		expires, ok := readExpiry(path)
		if ok && !c.expired(expires) {
			return nil
		}
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	c.removeEmptyShards()
	return removed, err
}

// FileStats summarizes the cache directory.
type FileStats struct {
	Entries int
	Bytes   int64
}

// Stats counts entries and their size on disk, expired ones included.
func (c *FileCache) Stats() (FileStats, error) {
	var st FileStats
	err := c.walk(func(_ string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// walk calls fn for every entry file. A missing directory has no entries.
func (c *FileCache) walk(fn func(path string, d fs.DirEntry) error) error {
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		return fn(path, d)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *FileCache) removeEmptyShards() {
	shards, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, s := range shards {
		if s.IsDir() {
			// Only empty shards can be removed.
			_ = os.Remove(filepath.Join(c.dir, s.Name()))
		}
	}
}

func (c *FileCache) expired(expires time.Time) bool {
	return !expires.IsZero() && c.now().After(expires)
}

// path shards entries by the first two hex digits of the key hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

// encodeEntry prefixes data with "textsvg-cache/1 <unix-nanos>\n". Zero
// nanos means no expiry.
func encodeEntry(expires time.Time, data []byte) []byte {
	var nanos int64
	if !expires.IsZero() {
		nanos = expires.UnixNano()
	}
	header := fmt.Sprintf("%s %d\n", fileMagic, nanos)
	return append([]byte(header), data...)
}

func decodeEntry(raw []byte) (time.Time, []byte, bool) {
	header, data, found := bytes.Cut(raw, []byte("\n"))
	if !found {
		return time.Time{}, nil, false
	}
	expires, ok := parseHeader(string(header))
	return expires, data, ok
}

// readExpiry reads only the header line of an entry file.
func readExpiry(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		return time.Time{}, false
	}
	return parseHeader(strings.TrimSuffix(line, "\n"))
}

func parseHeader(line string) (time.Time, bool) {
	magic, nanos, found := strings.Cut(line, " ")
	if !found || magic != fileMagic {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil || n < 0 {
		return time.Time{}, false
	}
	if n == 0 {
		return time.Time{}, true
	}
	return time.Unix(0, n), true
}

var _ Cache = (*FileCache)(nil)
