package badgerstore

import (
	"net/url"
	"strings"
	"sync"
)

// keyPool provides reusable byte slices for building lookup keys.
// Pooled keys are only used for reads and iterator prefixes; Badger keeps
// a reference to keys passed to txn.Set until commit.
var keyPool = sync.Pool{
	New: func() any {
		// Prefix + "idx:" + index name + escaped value + id fits in 256 bytes
		// for all but very long URLs.
		return make([]byte, 0, 256)
	},
}

// buildKey constructs a primary key from prefix and id using a pooled buffer.
// Callers MUST call releaseKey when done with the key.
func buildKey(prefix, id string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, id...)
	return buf
}

// buildIndexPrefix constructs the scan prefix for every entry of an index
// value: prefix + "idx:" + name + ":" + value + ":".
// Callers MUST call releaseKey when done with the key.
func buildIndexPrefix(prefix, indexName, value string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, "idx:"...)
	buf = append(buf, indexName...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	buf = append(buf, ':')
	return buf
}

// releaseKey returns a key buffer to the pool for reuse.
func releaseKey(key []byte) {
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}

// indexKey returns a freshly allocated index entry key. Index entries are
// not unique: the owning id is the last segment.
func indexKey(prefix, indexName, value, id string) []byte {
	return []byte(prefix + "idx:" + indexName + ":" + value + ":" + id)
}

// indexValue escapes each part and joins them with ':' so composite values
// such as (user, url) can never collide with one another.
func indexValue(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.QueryEscape(p)
	}
	return strings.Join(escaped, ":")
}
