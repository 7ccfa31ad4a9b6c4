package core

import (
	"reflect"
	"testing"
)

// stubHook is a minimal hook implementation for registry tests
type stubHook struct {
	*BaseHook
}

func (h *stubHook) Run() error {
	return nil
}

func stubFactory(key string) HookFactory {
	return func(ctx *HookContext) Hook {
		return &stubHook{BaseHook: NewBaseHook(key, key+" hook", "stub for "+key, ctx)}
	}
}

func stubs(keys ...string) map[string]HookFactory {
	hooks := make(map[string]HookFactory, len(keys))
	for _, key := range keys {
		hooks[key] = stubFactory(key)
	}
	return hooks
}

func TestRegistryCreate(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	if err := registry.Register(stubs("stub")); err != nil {
		t.Fatalf("Failed to register hook: %v", err)
	}

	hook, err := registry.Create("stub")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if hook.Key() != "stub" {
		t.Errorf("Expected hook key 'stub', got '%s'", hook.Key())
	}
	if !registry.Has("stub") {
		t.Error("Expected Has to report registered key")
	}
	if registry.Has("missing") {
		t.Error("Expected Has to be false for unknown key")
	}
}

func TestRegistryIsAllOrNothing(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))
	if err := registry.Register(stubs("b")); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	if err := registry.Register(stubs("a", "b")); err == nil {
		t.Fatal("Expected registration with a taken key to fail")
	}
	if registry.Has("a") {
		t.Error("Expected no partial registration")
	}

	if err := registry.Register(stubs("a", "c")); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}
	if !reflect.DeepEqual(registry.Keys(), []string{"a", "b", "c"}) {
		t.Errorf("Unexpected keys: %v", registry.Keys())
	}
}

func TestRegistryCreateNotFound(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))

	if _, err := registry.Create("nonexistent"); err == nil {
		t.Error("Expected error when creating non-existent hook")
	}
}

func TestRegistrySetContext(t *testing.T) {
	registry := NewRegistry(TestHookContext(func(string) bool { return true }))
	_ = registry.Register(stubs("stub"))

	first, _ := registry.Create("stub")
	if !first.IsEnabled() {
		t.Error("Expected hook to be enabled with first context")
	}

	registry.SetContext(TestHookContext(func(string) bool { return false }))
	second, _ := registry.Create("stub")
	if second.IsEnabled() {
		t.Error("Expected hook to be disabled with second context")
	}
}

func TestRegistryDescribe(t *testing.T) {
	registry := NewRegistry(TestHookContext(nil))
	_ = registry.Register(stubs("two", "one"))

	want := []HookInfo{
		{Key: "one", Name: "one hook", Description: "stub for one"},
		{Key: "two", Name: "two hook", Description: "stub for two"},
	}
	if got := registry.Describe(); !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %+v, want %+v", got, want)
	}
}

func TestGlobalRegistry(t *testing.T) {
	saved := globalRegistry
	globalRegistry = NewRegistry(TestHookContext(nil))
	defer func() { globalRegistry = saved }()

	RegisterBuiltinHooks(stubs("global-stub"))

	if !HasHook("global-stub") {
		t.Fatal("Expected global-stub to be registered")
	}
	hook, err := CreateHook("global-stub")
	if err != nil {
		t.Fatalf("Failed to create hook: %v", err)
	}
	if hook.Key() != "global-stub" {
		t.Errorf("Expected key 'global-stub', got '%s'", hook.Key())
	}
	if infos := DescribeHooks(); len(infos) != 1 || GetHookKeys()[0] != "global-stub" {
		t.Errorf("Unexpected global hooks: %+v", infos)
	}

	SetGlobalContext(TestHookContext(func(string) bool { return false }))
	if hook, _ := CreateHook("global-stub"); hook.IsEnabled() {
		t.Error("Expected global context change to apply to new hooks")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected duplicate built-in registration to panic")
		}
	}()
	RegisterBuiltinHooks(stubs("global-stub"))
}
