package core

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// HookFactory is a function that creates a Hook instance
type HookFactory func(ctx *HookContext) Hook

// HookInfo is the listing view of a registered hook
type HookInfo struct {
	Key         string
	Name        string
	Description string
}

// Registry maps hook keys to factories. Every hook it creates shares the
// registry's current HookContext.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HookFactory
	ctx       *HookContext
}

// NewRegistry creates an empty registry; a nil ctx means DefaultHookContext
func NewRegistry(ctx *HookContext) *Registry {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &Registry{factories: map[string]HookFactory{}, ctx: ctx}
}

// Register adds hooks under their keys. If any key is already taken nothing
// is registered.
func (r *Registry) Register(hooks map[string]HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range slices.Sorted(maps.Keys(hooks)) {
		if _, taken := r.factories[key]; taken {
			return fmt.Errorf("hook with key '%s' already registered", key)
		}
	}
	maps.Copy(r.factories, hooks)
	return nil
}

// Create builds the hook registered under key with the current context
func (r *Registry) Create(key string) (Hook, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	ctx := r.ctx
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("hook with key '%s' not found", key)
	}
	return factory(ctx), nil
}

// Has reports whether key is registered
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[key]
	return ok
}

// Keys returns the registered keys, sorted
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// Describe instantiates every hook once and returns its metadata, sorted by key
func (r *Registry) Describe() []HookInfo {
	keys := r.Keys()
	infos := make([]HookInfo, 0, len(keys))
	for _, key := range keys {
		hook, err := r.Create(key)
		if err != nil {
			continue
		}
		infos = append(infos, HookInfo{Key: key, Name: hook.Name(), Description: hook.Description()})
	}
	return infos
}

// SetContext replaces the context handed to hooks created from now on
func (r *Registry) SetContext(ctx *HookContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
}

var globalRegistry = NewRegistry(nil)

// CreateHook creates a hook from the global registry
func CreateHook(key string) (Hook, error) {
	return globalRegistry.Create(key)
}

// HasHook reports whether key is registered globally
func HasHook(key string) bool {
	return globalRegistry.Has(key)
}

// GetHookKeys returns the globally registered keys, sorted
func GetHookKeys() []string {
	return globalRegistry.Keys()
}

// DescribeHooks lists the globally registered hooks, sorted by key
func DescribeHooks() []HookInfo {
	return globalRegistry.Describe()
}

// SetGlobalContext sets the context for hooks created by CreateHook
func SetGlobalContext(ctx *HookContext) {
	globalRegistry.SetContext(ctx)
}

// RegisterBuiltinHooks is called from the hooks package init. A duplicate key
// is a programming error and panics.
func RegisterBuiltinHooks(hooks map[string]HookFactory) {
	if err := globalRegistry.Register(hooks); err != nil {
		panic(err)
	}
}
