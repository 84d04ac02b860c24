package ds

import (
	"sort"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
)

func mustHash(t *testing.T, c client.IStructClient, key string) *Hash {
	t.Helper()
	h, err := NewHash(c, key)
	if err != nil {
		t.Fatalf("NewHash(%q) failed: %v", key, err)
	}
	return h
}

// --------------------------------------------------------------------------
// Basics
// --------------------------------------------------------------------------

func TestHashConstruction(t *testing.T) {
	if _, err := NewHash(newTestClient(), ""); !HasKind(err, KindType) {
		t.Errorf("expected KindType for empty key, got %v", err)
	}
}

func TestHashGetSetDelete(t *testing.T) {
	h := mustHash(t, newTestClient(), "m")

	// absent field without default raises, with default substitutes
	_, err := h.Get("x")
	wantKind(t, err, KindKey)
	if v, err := h.GetDefault("x", "7"); err != nil || v != "7" {
		t.Errorf("expected default 7, got %q (err=%v)", v, err)
	}

	if err := h.SetField("x", "1"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if v, err := h.Get("x"); err != nil || v != "1" {
		t.Errorf("expected 1, got %q (err=%v)", v, err)
	}
	// the default is ignored once the field exists
	if v, _ := h.GetDefault("x", "7"); v != "1" {
		t.Errorf("expected stored value over default, got %q", v)
	}

	if err := h.SetField("x", "2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if v, _ := h.Get("x"); v != "2" {
		t.Errorf("expected overwritten value 2, got %q", v)
	}

	if err := h.Delete("x"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	wantKind(t, h.Delete("x"), KindKey)
}

func TestHashIteration(t *testing.T) {
	h := mustHash(t, newTestClient(), "it")
	_ = h.SetField("a", "1")
	_ = h.SetField("b", "2")

	if n, _ := h.Len(); n != 2 {
		t.Errorf("expected 2 fields, got %d", n)
	}
	if ok, _ := h.Contains("a"); !ok {
		t.Errorf("expected Contains(a) true")
	}
	if ok, _ := h.Contains("z"); ok {
		t.Errorf("expected Contains(z) false")
	}

	keys, err := h.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("unexpected keys: %v", keys)
	}

	values, err := h.Values()
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	sort.Strings(values)
	if len(values) != 2 || values[0] != "1" || values[1] != "2" {
		t.Errorf("unexpected values: %v", values)
	}

	items, err := h.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 2 || items["a"] != "1" || items["b"] != "2" {
		t.Errorf("unexpected items: %v", items)
	}
}

// --------------------------------------------------------------------------
// Compound operations
// --------------------------------------------------------------------------

func TestHashPop(t *testing.T) {
	h := mustHash(t, newTestClient(), "pop")
	_ = h.SetField("a", "1")

	v, err := h.Pop("a")
	if err != nil || v != "1" {
		t.Fatalf("expected pop of 1, got %q (err=%v)", v, err)
	}
	_, err = h.Pop("a")
	wantKind(t, err, KindKey)

	if v, err := h.PopDefault("a", "d"); err != nil || v != "d" {
		t.Errorf("expected default d, got %q (err=%v)", v, err)
	}

	_ = h.SetField("b", "2")
	if v, err := h.PopDefault("b", "d"); err != nil || v != "2" {
		t.Errorf("expected stored value 2, got %q (err=%v)", v, err)
	}
	if ok, _ := h.Contains("b"); ok {
		t.Errorf("expected field removed after PopDefault")
	}
}

func TestHashPopItem(t *testing.T) {
	h := mustHash(t, newTestClient(), "popitem")
	_ = h.SetField("only", "v")

	field, value, err := h.PopItem()
	if err != nil || field != "only" || value != "v" {
		t.Fatalf("expected (only, v), got (%q, %q) (err=%v)", field, value, err)
	}

	_, _, err = h.PopItem()
	wantKind(t, err, KindKey)
}

func TestHashSetDefault(t *testing.T) {
	h := mustHash(t, newTestClient(), "sd")

	if v, err := h.SetDefault("x", "1"); err != nil || v != "1" {
		t.Fatalf("expected default assigned, got %q (err=%v)", v, err)
	}
	// a second SetDefault must not overwrite
	if v, err := h.SetDefault("x", "2"); err != nil || v != "1" {
		t.Errorf("expected existing value kept, got %q (err=%v)", v, err)
	}
	if v, _ := h.Get("x"); v != "1" {
		t.Errorf("expected stored value 1, got %q", v)
	}
}

func TestHashUpdate(t *testing.T) {
	c := newTestClient()
	h := mustHash(t, c, "u")
	other := mustHash(t, c, "u-other")
	_ = h.SetField("a", "1")
	_ = other.SetField("a", "override")
	_ = other.SetField("b", "2")

	if err := h.Update(other); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if v, _ := h.Get("a"); v != "override" {
		t.Errorf("expected overridden value, got %q", v)
	}
	if v, _ := h.Get("b"); v != "2" {
		t.Errorf("expected copied field, got %q", v)
	}
	// the operand is untouched
	if n, _ := other.Len(); n != 2 {
		t.Errorf("expected operand unmodified, got %d fields", n)
	}

	if err := h.UpdateValues(map[string]string{"c": "3"}); err != nil {
		t.Fatalf("UpdateValues failed: %v", err)
	}
	if v, _ := h.Get("c"); v != "3" {
		t.Errorf("expected 3, got %q", v)
	}
}

func TestHashFromKeysAndCopy(t *testing.T) {
	c := newTestClient()
	h, err := NewHashFromKeys(c, "fk", []string{"a", "b"}, "init", WithKeyFactory(countingKeyFactory()))
	if err != nil {
		t.Fatalf("NewHashFromKeys failed: %v", err)
	}
	if v, _ := h.Get("a"); v != "init" {
		t.Errorf("expected init, got %q", v)
	}
	if n, _ := h.Len(); n != 2 {
		t.Errorf("expected 2 fields, got %d", n)
	}

	cp, err := h.Copy()
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if cp.Key() != "derived-1" {
		t.Errorf("expected injected key factory to name the copy, got %q", cp.Key())
	}
	if v, _ := cp.Get("b"); v != "init" {
		t.Errorf("expected copied field, got %q", v)
	}

	// the copy is independent
	_ = cp.SetField("a", "changed")
	if v, _ := h.Get("a"); v != "init" {
		t.Errorf("expected original untouched, got %q", v)
	}
}

func TestHashClear(t *testing.T) {
	h := mustHash(t, newTestClient(), "clr")
	_ = h.SetField("a", "1")

	if err := h.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if ok, _ := h.Exists(); ok {
		t.Errorf("expected key removed after Clear")
	}
	// clearing again is a no-op
	if err := h.Clear(); err != nil {
		t.Errorf("second Clear raised: %v", err)
	}
}

func TestHashWrongTypeKey(t *testing.T) {
	c := newTestClient()
	if err := c.ListPush("shared", "x"); err != nil {
		t.Fatalf("ListPush failed: %v", err)
	}

	h := mustHash(t, c, "shared")
	wantKind(t, h.SetField("a", "1"), KindType)
	_, err := h.Items()
	wantKind(t, err, KindType)
}
