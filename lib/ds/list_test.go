package ds

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/lib/client/lclient"
)

// --------------------------------------------------------------------------
// Shared test helpers (used by the list, set and hash tests)
// --------------------------------------------------------------------------

func newTestClient() client.IStructClient {
	return lclient.NewLocalStructClient()
}

// countingKeyFactory returns a factory producing derived-1, derived-2, ...
func countingKeyFactory() KeyFactory {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("derived-%d", n)
	}
}

func mustList(t *testing.T, c client.IStructClient, key string, opts ...Option) *List {
	t.Helper()
	l, err := NewList(c, key, opts...)
	if err != nil {
		t.Fatalf("NewList(%q) failed: %v", key, err)
	}
	return l
}

func wantKind(t *testing.T, err error, kind ErrKind) {
	t.Helper()
	if !HasKind(err, kind) {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
}

func wantItems(t *testing.T, l *List, expected ...string) {
	t.Helper()
	items, err := l.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, items)
		}
	}
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

func TestListConstruction(t *testing.T) {
	c := newTestClient()

	if _, err := NewList(c, ""); !HasKind(err, KindType) {
		t.Errorf("expected KindType for empty key, got %v", err)
	}
	if _, err := NewList(nil, "k"); !HasKind(err, KindType) {
		t.Errorf("expected KindType for nil client, got %v", err)
	}

	// Binding to an absent key is valid and yields an empty sequence
	l := mustList(t, c, "absent")
	n, err := l.Len()
	if err != nil || n != 0 {
		t.Errorf("expected empty list, got length %d (err=%v)", n, err)
	}
}

// --------------------------------------------------------------------------
// Atomic operations
// --------------------------------------------------------------------------

func TestListAppendAndGet(t *testing.T) {
	l := mustList(t, newTestClient(), "q")

	for _, v := range []string{"1", "2", "3"} {
		if err := l.Append(v); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		n, err := l.Len()
		if err != nil {
			t.Fatalf("Len failed: %v", err)
		}
		// The just-appended value is always the last element
		got, err := l.Get(n - 1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != v {
			t.Errorf("expected %q at tail, got %q", v, got)
		}
	}

	if n, _ := l.Len(); n != 3 {
		t.Errorf("expected length 3, got %d", n)
	}
	if v, _ := l.Get(0); v != "1" {
		t.Errorf("expected 1 at index 0, got %q", v)
	}
	if v, _ := l.Get(-1); v != "3" {
		t.Errorf("expected 3 at index -1, got %q", v)
	}
}

func TestListGetEmpty(t *testing.T) {
	l := mustList(t, newTestClient(), "empty")

	// Any index on an empty sequence is out of range
	for _, i := range []int64{0, 1, -1, 42} {
		_, err := l.Get(i)
		wantKind(t, err, KindIndex)
	}
}

func TestListRangeMatchesIndexing(t *testing.T) {
	l := mustList(t, newTestClient(), "r")
	if err := l.Append("a", "b", "c", "d"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	n, err := l.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	items, err := l.Slice(0, n-1, 1)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if int64(len(items)) != n {
		t.Fatalf("expected %d elements, got %d", n, len(items))
	}
	for i := int64(0); i < n; i++ {
		v, err := l.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if items[i] != v {
			t.Errorf("slice and index disagree at %d: %q vs %q", i, items[i], v)
		}
	}
}

func TestListSliceStep(t *testing.T) {
	l := mustList(t, newTestClient(), "s")
	_ = l.Append("a", "b", "c")

	for _, step := range []int64{0, 2, -1} {
		_, err := l.Slice(0, -1, step)
		wantKind(t, err, KindUnsupported)
	}
}

func TestListSetItem(t *testing.T) {
	l := mustList(t, newTestClient(), "set")
	_ = l.Append("a", "b", "c")

	if err := l.SetItem(1, "B"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := l.SetItem(-1, "C"); err != nil {
		t.Fatalf("negative SetItem failed: %v", err)
	}
	wantItems(t, l, "a", "B", "C")

	wantKind(t, l.SetItem(3, "x"), KindIndex)
	wantKind(t, l.SetItem(-4, "x"), KindIndex)
}

func TestListRemove(t *testing.T) {
	l := mustList(t, newTestClient(), "rem")
	_ = l.Append("a", "b", "a")

	if err := l.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	wantItems(t, l, "b", "a")

	wantKind(t, l.Remove("zzz"), KindValue)
}

// --------------------------------------------------------------------------
// Compound operations
// --------------------------------------------------------------------------

func TestListDelete(t *testing.T) {
	l := mustList(t, newTestClient(), "del")
	_ = l.Append("a", "b", "c", "d")

	// head and tail are O(1) pops
	if err := l.Delete(0); err != nil {
		t.Fatalf("Delete(0) failed: %v", err)
	}
	if err := l.Delete(-1); err != nil {
		t.Fatalf("Delete(-1) failed: %v", err)
	}
	wantItems(t, l, "b", "c")

	// middle delete goes through the sentinel path
	_ = l.Append("d")
	if err := l.Delete(1); err != nil {
		t.Fatalf("middle Delete failed: %v", err)
	}
	wantItems(t, l, "b", "d")

	wantKind(t, l.Delete(5), KindIndex)
	wantKind(t, l.Delete(-5), KindIndex)
}

func TestListInsert(t *testing.T) {
	l := mustList(t, newTestClient(), "ins")
	_ = l.Append("a", "c")

	if err := l.Insert(1, "b"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	wantItems(t, l, "a", "b", "c")

	// clamped: far negative inserts at the head, past-the-end appends
	if err := l.Insert(-100, "start"); err != nil {
		t.Fatalf("Insert at head failed: %v", err)
	}
	if err := l.Insert(100, "end"); err != nil {
		t.Fatalf("Insert at end failed: %v", err)
	}
	wantItems(t, l, "start", "a", "b", "c", "end")
}

func TestListReverseAndSort(t *testing.T) {
	l := mustList(t, newTestClient(), "rs")
	_ = l.Append("b", "c", "a")

	if err := l.Reverse(); err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	wantItems(t, l, "a", "c", "b")

	if err := l.Sort(nil); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	wantItems(t, l, "a", "b", "c")

	// custom comparator: descending
	if err := l.Sort(func(a, b string) bool { return a > b }); err != nil {
		t.Fatalf("descending Sort failed: %v", err)
	}
	wantItems(t, l, "c", "b", "a")
}

func TestListRepeat(t *testing.T) {
	l := mustList(t, newTestClient(), "rep")
	_ = l.Append("x", "y")

	if err := l.Repeat(3); err != nil {
		t.Fatalf("Repeat failed: %v", err)
	}
	wantItems(t, l, "x", "y", "x", "y", "x", "y")

	if err := l.Repeat(1); err != nil {
		t.Fatalf("Repeat(1) failed: %v", err)
	}
	wantItems(t, l, "x", "y", "x", "y", "x", "y")

	if err := l.Repeat(0); err != nil {
		t.Fatalf("Repeat(0) failed: %v", err)
	}
	if ok, _ := l.Exists(); ok {
		t.Errorf("expected key removed after Repeat(0)")
	}
}

func TestListExtendAndConcat(t *testing.T) {
	c := newTestClient()
	a := mustList(t, c, "a")
	b := mustList(t, c, "b")
	_ = a.Append("1", "2")
	_ = b.Append("3")

	if err := a.ExtendList(b); err != nil {
		t.Fatalf("ExtendList failed: %v", err)
	}
	wantItems(t, a, "1", "2", "3")
	// operand untouched
	wantItems(t, b, "3")

	joined, err := a.Concat(b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if len(joined) != 4 || joined[3] != "3" {
		t.Errorf("unexpected Concat result: %v", joined)
	}
	// Concat does not touch remote state
	wantItems(t, a, "1", "2", "3")
}

func TestListCopy(t *testing.T) {
	c := newTestClient()
	l := mustList(t, c, "orig", WithKeyFactory(countingKeyFactory()))
	_ = l.Append("a", "b")

	cp, err := l.Copy()
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if cp.Key() != "derived-1" {
		t.Errorf("expected injected key factory to name the copy, got %q", cp.Key())
	}
	wantItems(t, cp, "a", "b")

	// the copy is independent
	if err := cp.Append("c"); err != nil {
		t.Fatalf("Append on copy failed: %v", err)
	}
	wantItems(t, l, "a", "b")
}

func TestListEqual(t *testing.T) {
	c := newTestClient()
	a := mustList(t, c, "eq-a")
	b := mustList(t, c, "eq-b")
	_ = a.Append("1", "2")
	_ = b.Append("1", "2")

	if ok, err := a.Equal(b); err != nil || !ok {
		t.Errorf("expected lists equal (err=%v)", err)
	}
	if ok, err := a.EqualValues([]string{"1", "2"}); err != nil || !ok {
		t.Errorf("expected EqualValues true (err=%v)", err)
	}

	_ = b.Append("3")
	if ok, _ := a.Equal(b); ok {
		t.Errorf("expected lists unequal after mutation")
	}
}

func TestListCountContains(t *testing.T) {
	l := mustList(t, newTestClient(), "cnt")
	_ = l.Append("a", "b", "a", "a")

	if n, _ := l.Count("a"); n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
	if ok, _ := l.Contains("b"); !ok {
		t.Errorf("expected Contains(b) true")
	}
	if ok, _ := l.Contains("z"); ok {
		t.Errorf("expected Contains(z) false")
	}
}

func TestListWrongTypeKey(t *testing.T) {
	c := newTestClient()
	if err := c.SetAdd("shared", "x"); err != nil {
		t.Fatalf("SetAdd failed: %v", err)
	}

	l := mustList(t, c, "shared")
	wantKind(t, l.Append("a"), KindType)
	_, err := l.Len()
	wantKind(t, err, KindType)
}

// TestListConcurrentInsert reproduces the documented insert race: two
// concurrent middle inserts have no cross-call isolation, so the final length
// is at least the larger contribution but not necessarily the sum.
func TestListConcurrentInsert(t *testing.T) {
	c := newTestClient()
	l := mustList(t, c, "race")
	_ = l.Append("a", "b", "c", "d")

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(id int) {
			defer wg.Done()
			other := mustList(t, c, "race")
			_ = other.Insert(2, fmt.Sprintf("ins-%d", id))
		}(i)
	}
	wg.Wait()

	n, err := l.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n < 5 {
		t.Errorf("expected final length of at least 5, got %d", n)
	}
}
