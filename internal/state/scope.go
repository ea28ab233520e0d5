package state

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Scoped namespaces keys by origin so several projects can share one
// backing store without clobbering each other's values.
type Scoped struct {
	Store
	prefix string
}

// Scope wraps s. An empty origin returns s unchanged.
func Scope(s Store, origin string) Store {
	if origin == "" {
		return s
	}
	return &Scoped{Store: s, prefix: OriginPrefix(origin)}
}

// OriginPrefix is the key prefix used for origin.
func OriginPrefix(origin string) string {
	return fmt.Sprintf("%016x/", xxhash.Sum64String(origin))
}

// Get implements Store.
func (s *Scoped) Get(key string) (string, bool) {
	return s.Store.Get(s.prefix + key)
}

// Set implements Store.
func (s *Scoped) Set(key, value string) error {
	return s.Store.Set(s.prefix+key, value)
}
