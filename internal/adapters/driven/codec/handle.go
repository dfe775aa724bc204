package codec

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

// Ensure HandleCodec implements the interface.
var _ driven.TokenCodec = (*HandleCodec)(nil)

// DefaultHandleCapacity bounds the payload cache when the configuration
// does not say otherwise.
const DefaultHandleCapacity = 100

// HandleCodec binds payloads to random high-entropy handles kept in a
// capacity-bounded LRU cache. The wire form is the handle's canonical
// UUID text (36 bytes, comfortably under the transport ceiling). Decode
// consumes the entry: a handle resolves at most once, and entries evicted
// under pressure resolve to not-found, which callers treat as a stale
// button rather than a failure.
type HandleCodec struct {
	// mu makes the get-and-remove in Decode atomic; the cache's own
	// locking only covers individual calls.
	mu    sync.Mutex
	cache *lru.Cache[string, domain.CallbackPayload]
}

// NewHandleCodec creates a handle codec with the given cache capacity.
func NewHandleCodec(capacity int) (*HandleCodec, error) {
	if capacity <= 0 {
		capacity = DefaultHandleCapacity
	}
	cache, err := lru.New[string, domain.CallbackPayload](capacity)
	if err != nil {
		return nil, err
	}
	return &HandleCodec{cache: cache}, nil
}

// Encode stores the payload and returns its handle.
func (c *HandleCodec) Encode(p domain.CallbackPayload) (string, error) {
	id := uuid.NewString()
	c.mu.Lock()
	c.cache.Add(id, p)
	c.mu.Unlock()
	return id, nil
}

// Decode removes and returns the payload for a handle. Data that is not
// a canonical UUID is domain.ErrTokenMalformed; a UUID with no live entry
// is domain.ErrTokenNotFound.
func (c *HandleCodec) Decode(token string) (domain.CallbackPayload, error) {
	// Only the canonical 36-byte form is a handle; uuid.Parse alone also
	// admits braced, URN and hyphenless spellings.
	if len(token) != 36 {
		return nil, fmt.Errorf("%w: not a handle", domain.ErrTokenMalformed)
	}
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.cache.Get(token)
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	c.cache.Remove(token)
	return payload, nil
}

// Len returns the number of live handles. Used by tests.
func (c *HandleCodec) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}
