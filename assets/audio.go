package assets

import (
	"context"
	"sync"

	"github.com/automoto/doomerang-soundtrack/diag"
	"golang.org/x/sync/singleflight"
)

// BufferCache decodes resolved payloads into Buffers and keeps them for the
// session. It never evicts. Concurrent misses on the same key share a single
// resolve+decode; different keys load independently.
type BufferCache struct {
	resolver *Resolver
	decoder  Decoder
	reporter diag.Reporter

	mu      sync.RWMutex
	buffers map[string]*Buffer
	loads   singleflight.Group
}

// NewBufferCache creates an empty cache on top of resolver and decoder.
func NewBufferCache(resolver *Resolver, decoder Decoder, reporter diag.Reporter) *BufferCache {
	return &BufferCache{
		resolver: resolver,
		decoder:  decoder,
		reporter: diag.OrDefault(reporter),
		buffers:  make(map[string]*Buffer),
	}
}

// Get returns the Buffer for key, loading it on first use.
// The context of the caller that starts a load bounds the load itself. Every
// caller stops waiting when its own context is done.
func (c *BufferCache) Get(ctx context.Context, key string) (*Buffer, error) {
	if buf, ok := c.lookup(key); ok {
		return buf, nil
	}

	ch := c.loads.DoChan(key, func() (interface{}, error) {
		// Another caller may have finished while we were queued on the key
		if buf, ok := c.lookup(key); ok {
			return buf, nil
		}
		return c.load(ctx, key)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Buffer), nil
	case <-ctx.Done():
		return nil, &AssetUnavailableError{Key: key, Cause: ctx.Err()}
	}
}

func (c *BufferCache) load(ctx context.Context, key string) (*Buffer, error) {
	res, err := c.resolver.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	buf, err := c.decoder.Decode(key, res.Filename, res.Payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[key] = buf
	c.mu.Unlock()
	return buf, nil
}

func (c *BufferCache) lookup(key string) (*Buffer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	buf, ok := c.buffers[key]
	return buf, ok
}

// Cached reports whether key is already decoded.
func (c *BufferCache) Cached(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Len returns the number of decoded buffers.
func (c *BufferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}

// Preload decodes keys up front so the first transition to them does not wait
// on I/O. With no keys it preloads the whole catalog. Failures are reported and
// counted; they do not stop the remaining keys.
func (c *BufferCache) Preload(ctx context.Context, keys ...string) (failed int) {
	if len(keys) == 0 {
		keys = c.resolver.Keys()
	}
	for _, key := range keys {
		if _, err := c.Get(ctx, key); err != nil {
			c.reporter.Report(err)
			failed++
		}
	}
	return failed
}
