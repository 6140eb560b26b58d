// Package artifact derives a stable identifier for a mapping file from
// its raw bytes, for correlating a mapping with the binary cache or
// trace reports built from it without shipping the mapping itself.
package artifact

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mabhi256/r8deobf/internal/mapping"
)

var (
	namespaceOnce sync.Once
	namespace     uuid.UUID
)

func guardsquareNamespace() uuid.UUID {
	namespaceOnce.Do(func() {
		namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("guardsquare.com"))
	})
	return namespace
}

// ID derives a UUIDv5 over the raw bytes of a mapping file, namespaced
// under guardsquare.com. Two mappings with byte-identical contents
// always derive the same ID.
func ID(source []byte) uuid.UUID {
	return uuid.NewSHA1(guardsquareNamespace(), source)
}

// Of is a convenience wrapper deriving the ID directly from a parsed
// Mapping's source bytes.
func Of(m *mapping.Mapping) uuid.UUID {
	return ID(m.Source())
}
