package assets

import (
	"context"
	"path"

	"github.com/automoto/doomerang-soundtrack/diag"
)

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	Key      string
	Filename string
	Location string
	Payload  []byte
	Failures []Attempt // candidates tried before the one that succeeded
}

// Resolver finds an asset's bytes by trying candidate locations in order.
// It holds no state between calls beyond its fixed catalog and locations.
type Resolver struct {
	catalog   map[string]string
	locations []Source
	reporter  diag.Reporter
}

// NewResolver copies catalog (key -> filename) and locations; later changes to
// the arguments do not affect the resolver.
func NewResolver(catalog map[string]string, locations []Source, reporter diag.Reporter) *Resolver {
	c := make(map[string]string, len(catalog))
	for k, v := range catalog {
		c[k] = v
	}
	l := make([]Source, len(locations))
	copy(l, locations)
	return &Resolver{catalog: c, locations: l, reporter: diag.OrDefault(reporter)}
}

// Filename returns the catalog filename for key.
func (r *Resolver) Filename(key string) (string, bool) {
	name, ok := r.catalog[key]
	return name, ok
}

// Keys returns every key in the catalog, in no particular order.
func (r *Resolver) Keys() []string {
	keys := make([]string, 0, len(r.catalog))
	for k := range r.catalog {
		keys = append(keys, k)
	}
	return keys
}

// Resolve fetches key's payload from the first location that serves it.
// Each failed candidate is reported before the next one is tried.
func (r *Resolver) Resolve(ctx context.Context, key string) (Resolution, error) {
	name, ok := r.catalog[key]
	if !ok {
		return Resolution{}, &AssetUnavailableError{Key: key, Cause: ErrUnknownKey}
	}
	if len(r.locations) == 0 {
		return Resolution{}, &AssetUnavailableError{Key: key, Cause: ErrNoLocations}
	}

	var failures []Attempt
	for _, src := range r.locations {
		if err := ctx.Err(); err != nil {
			return Resolution{}, &AssetUnavailableError{Key: key, Failures: failures, Cause: err}
		}
		data, err := src.Fetch(ctx, name)
		if err != nil {
			a := Attempt{Location: src.Location(), Path: path.Join(src.Location(), name), Err: err}
			failures = append(failures, a)
			r.reporter.Report(a)
			continue
		}
		return Resolution{
			Key:      key,
			Filename: name,
			Location: src.Location(),
			Payload:  data,
			Failures: failures,
		}, nil
	}
	return Resolution{}, &AssetUnavailableError{Key: key, Failures: failures}
}
