package nagifront

import (
	"crypto/sha256"
	"os"

	"github.com/dekarrin/rezi"
)

// cacheRecord is a grammar cache's on-disk content: a per-source-file
// content hash. grammar.Rule itself has no exported serialization
// surface (its state map is built fresh from an EBNF Node tree on every
// Load), so what's cached here is not the parsed rule table but the
// cheaper fact a caller actually needs before deciding to re-parse at
// all: has this source file's bytes changed since the last run.
type cacheRecord struct {
	Hashes map[string][32]byte
}

func newCacheRecord() cacheRecord {
	return cacheRecord{Hashes: make(map[string][32]byte)}
}

// LoadCache reads a previously-written grammar cache from path. A
// missing cache file is not an error — every source is simply reported
// as changed until the cache is saved once.
func LoadCache(path string) (cacheRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newCacheRecord(), nil
		}
		return cacheRecord{}, &CacheError{Path: path, Err: err}
	}

	var rec cacheRecord
	if err := rezi.DecBinary(data, &rec); err != nil {
		return cacheRecord{}, &CacheError{Path: path, Err: err}
	}
	if rec.Hashes == nil {
		rec.Hashes = make(map[string][32]byte)
	}
	return rec, nil
}

// SaveCache writes rec to path, overwriting any previous contents.
func SaveCache(path string, rec cacheRecord) error {
	data := rezi.EncBinary(rec)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &CacheError{Path: path, Err: err}
	}
	return nil
}

// Stale reports whether src's content hash differs from (or is absent
// from) the cached hash recorded under name.
func (c cacheRecord) Stale(name string, src []byte) bool {
	sum := sha256.Sum256(src)
	prev, ok := c.Hashes[name]
	return !ok || prev != sum
}

// Touch records src's current content hash under name, so the next
// LoadCache call can tell whether it changed.
func (c cacheRecord) Touch(name string, src []byte) {
	c.Hashes[name] = sha256.Sum256(src)
}
