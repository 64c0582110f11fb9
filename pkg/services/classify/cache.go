package classify

import "sync"

// Process-wide model cache. The bundle is loaded at most once per process:
// callers racing before the first successful load all funnel through the
// mutex, exactly one performs the load, and everyone after that observes the
// fully constructed model. A failed load is not cached so the process can
// recover once a bundle appears on disk.
var cache struct {
	mu    sync.Mutex
	model *Model
}

// Shared returns the cached model, loading it from dir on first use.
func Shared(dir string) (*Model, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.model != nil {
		return cache.model, nil
	}

	model, err := Load(dir)
	if err != nil {
		return nil, err
	}
	cache.model = model
	return model, nil
}

// ResetShared clears the cached model. Test hook.
func ResetShared() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.model = nil
}
