package cache

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rohanthewiz/rurl/consts"
	"github.com/rohanthewiz/rurl/core/tpl"
	"github.com/segmentio/fasthash/fnv1a"
)

const shardCount = 16

// Store memoizes parsed templates by the identity of their literal fragments.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (*tpl.Result, bool)
	Set(key string, r *tpl.Result)
}

// Key returns the cache key for a fragment sequence.
// Each fragment is prefixed with its length, so no two
// different sequences share a key whatever text they hold.
//
// Example:
//
//	["/a/", "/b"]  ->  "3:/a/2:/b"
func Key(fragments []string) string {
	var sb strings.Builder
	for _, fragment := range fragments {
		sb.WriteString(strconv.Itoa(len(fragment)))
		sb.WriteString(consts.Colon)
		sb.WriteString(fragment)
	}
	return sb.String()
}

// Sharded is a Store split into maps guarded by their own lock,
// so lookups of different templates rarely contend.
type Sharded struct {
	shards [shardCount]shard
}

type shard struct {
	mu      sync.RWMutex
	results map[string]*tpl.Result
}

// New creates an empty sharded store.
func New() *Sharded {
	s := &Sharded{}
	for i := range s.shards {
		s.shards[i].results = make(map[string]*tpl.Result)
	}
	return s
}

var shared = New()

// Shared returns the process-wide store used by the default formatter.
func Shared() *Sharded {
	return shared
}

// Get returns the result stored for key, if any.
func (s *Sharded) Get(key string) (*tpl.Result, bool) {
	sh := s.shard(key)
	sh.mu.RLock()
	r, ok := sh.results[key]
	sh.mu.RUnlock()
	return r, ok
}

// Set stores r for key. The last write wins.
func (s *Sharded) Set(key string, r *tpl.Result) {
	sh := s.shard(key)
	sh.mu.Lock()
	sh.results[key] = r
	sh.mu.Unlock()
}

// Len returns the number of stored results.
func (s *Sharded) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.results)
		sh.mu.RUnlock()
	}
	return n
}

// Keys lists the stored keys in sorted order.
func (s *Sharded) Keys() (keys []string) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for k := range sh.results {
			keys = append(keys, k)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(keys)
	return keys
}

func (s *Sharded) shard(key string) *shard {
	return &s.shards[fnv1a.HashString64(key)%shardCount]
}
