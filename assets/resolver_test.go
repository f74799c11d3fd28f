package assets

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/automoto/doomerang-soundtrack/diag"
)

func TestResolveFallsBackInOrder(t *testing.T) {
	payload := []byte("song")
	for n := 0; n < 4; n++ {
		var sources []Source
		for i := 0; i < n; i++ {
			sources = append(sources, newMemSource("bad", nil))
		}
		good := newMemSource("good", map[string][]byte{"a.ogg": payload})
		after := newMemSource("after", map[string][]byte{"a.ogg": []byte("other")})
		sources = append(sources, good, after)

		rec := &diag.Recorder{}
		r := NewResolver(map[string]string{"a": "a.ogg"}, sources, rec)
		res, err := r.Resolve(context.Background(), "a")
		if err != nil {
			t.Fatalf("n=%d: Resolve error: %v", n, err)
		}
		if !bytes.Equal(res.Payload, payload) {
			t.Errorf("n=%d: payload = %q, want %q", n, res.Payload, payload)
		}
		if res.Location != "good" {
			t.Errorf("n=%d: location = %q, want good", n, res.Location)
		}
		if len(res.Failures) != n {
			t.Errorf("n=%d: failures = %d, want %d", n, len(res.Failures), n)
		}
		if rec.Len() != n {
			t.Errorf("n=%d: reported = %d, want %d", n, rec.Len(), n)
		}
		if after.calls.Load() != 0 {
			t.Errorf("n=%d: resolver kept going after success", n)
		}
	}
}

func TestResolveAllFail(t *testing.T) {
	rec := &diag.Recorder{}
	r := NewResolver(map[string]string{"boss": "boss.ogg"},
		[]Source{newMemSource("a", nil), newMemSource("b", nil)}, rec)

	_, err := r.Resolve(context.Background(), "boss")
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("err = %v, want ErrAssetUnavailable", err)
	}
	var ue *AssetUnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("err is %T, want *AssetUnavailableError", err)
	}
	if ue.Key != "boss" || len(ue.Failures) != 2 {
		t.Errorf("got key %q with %d failures, want boss with 2", ue.Key, len(ue.Failures))
	}
	if ue.Failures[0].Location != "a" || ue.Failures[1].Location != "b" {
		t.Errorf("failures out of order: %+v", ue.Failures)
	}
	if rec.Len() != 2 {
		t.Errorf("reported %d failures, want 2", rec.Len())
	}
}

func TestResolveUnknownKey(t *testing.T) {
	src := newMemSource("a", nil)
	r := NewResolver(map[string]string{}, []Source{src}, diag.Discard)
	_, err := r.Resolve(context.Background(), "nope")
	if !errors.Is(err, ErrAssetUnavailable) || !errors.Is(err, ErrUnknownKey) {
		t.Errorf("err = %v, want unavailable/unknown key", err)
	}
	if src.calls.Load() != 0 {
		t.Errorf("unknown key should not touch any location")
	}
}

func TestResolveNoLocations(t *testing.T) {
	r := NewResolver(map[string]string{"a": "a.ogg"}, nil, diag.Discard)
	_, err := r.Resolve(context.Background(), "a")
	if !errors.Is(err, ErrNoLocations) {
		t.Errorf("err = %v, want ErrNoLocations", err)
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewResolver(map[string]string{"a": "a.ogg"},
		[]Source{newMemSource("a", map[string][]byte{"a.ogg": {1}})}, diag.Discard)
	_, err := r.Resolve(ctx, "a")
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrAssetUnavailable) {
		t.Errorf("err = %v, want canceled asset error", err)
	}
}

// Catalog ambient -> a/ambient.mp3, b/ambient.mp3 with "a" unreachable.
func TestResolveSecondDirectoryScenario(t *testing.T) {
	fsys := fstest.MapFS{
		"b/ambient.mp3": {Data: []byte("ID3 payload")},
	}
	rec := &diag.Recorder{}
	r := NewResolver(
		map[string]string{"ambient": "ambient.mp3"},
		[]Source{NewFSSource("a", fsys, "a"), NewFSSource("b", fsys, "b")},
		rec,
	)
	res, err := r.Resolve(context.Background(), "ambient")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Location != "b" {
		t.Errorf("location = %q, want b", res.Location)
	}
	errs := rec.Errors()
	if len(errs) != 1 {
		t.Fatalf("reported %d failures, want 1", len(errs))
	}
	var a Attempt
	if !errors.As(errs[0], &a) || a.Location != "a" || a.Path != "a/ambient.mp3" {
		t.Errorf("reported failure = %v, want attempt on a/ambient.mp3", errs[0])
	}
}

func TestResolverCopiesConfiguration(t *testing.T) {
	catalog := map[string]string{"a": "a.ogg"}
	src := newMemSource("a", map[string][]byte{"a.ogg": {1}})
	r := NewResolver(catalog, []Source{src}, diag.Discard)
	catalog["a"] = "changed.ogg"

	if name, _ := r.Filename("a"); name != "a.ogg" {
		t.Errorf("Filename = %q, resolver should not see later catalog edits", name)
	}
}
