package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"metamap/convert"
	"metamap/registry"
)

// TestConcurrentResolve verifies that concurrent first resolutions converge
// on one shared instance per implementation and one configured instance per
// configuration.
func TestConcurrentResolve(t *testing.T) {
	r := registry.NewDefault()

	types := []reflect.Type{
		reflect.TypeFor[int](), reflect.TypeFor[*int](), reflect.TypeFor[string](),
		reflect.TypeFor[bool](), reflect.TypeFor[time.Time](), reflect.TypeFor[float64](),
	}
	layouts := []string{time.RFC3339, "2006-01-02", time.Kitchen}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([][]convert.Converter, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c, err := r.Resolve(types[i%len(types)])
				if err != nil {
					t.Errorf("resolve: %v", err)
					return
				}
				if i < len(types) {
					results[w] = append(results[w], c)
				}

				layout := layouts[i%len(layouts)]
				tc, err := r.ResolveConfigured(reflect.TypeFor[time.Time](), convert.Config{Format: layout})
				if err != nil {
					t.Errorf("resolve configured: %v", err)
					return
				}
				ts := time.Date(2020, 1, 2, 3, 4, 0, 0, time.UTC)
				s, _ := tc.ToString(ts)
				if want := ts.Format(layout); s != want {
					t.Errorf("layout %q: got %q want %q", layout, s, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		for i := range results[0] {
			if results[w][i] != results[0][i] {
				t.Fatalf("worker %d got a different instance for %v", w, types[i])
			}
		}
	}
}
