package ds

import (
	"sort"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
)

func mustSet(t *testing.T, c client.IStructClient, key string, members ...string) *Set {
	t.Helper()
	s, err := NewSet(c, key)
	if err != nil {
		t.Fatalf("NewSet(%q) failed: %v", key, err)
	}
	if len(members) > 0 {
		if err := s.Add(members...); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return s
}

func wantMembers(t *testing.T, s *Set, expected ...string) {
	t.Helper()
	members, err := s.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	sort.Strings(members)
	sort.Strings(expected)
	if len(members) != len(expected) {
		t.Fatalf("expected members %v, got %v", expected, members)
	}
	for i := range expected {
		if members[i] != expected[i] {
			t.Fatalf("expected members %v, got %v", expected, members)
		}
	}
}

// --------------------------------------------------------------------------
// Basics
// --------------------------------------------------------------------------

func TestSetConstruction(t *testing.T) {
	if _, err := NewSet(newTestClient(), ""); !HasKind(err, KindType) {
		t.Errorf("expected KindType for empty key, got %v", err)
	}
}

func TestSetAddRemoveDiscard(t *testing.T) {
	s := mustSet(t, newTestClient(), "s", "1", "2", "2", "3")

	if n, _ := s.Len(); n != 3 {
		t.Errorf("expected cardinality 3, got %d", n)
	}
	if ok, _ := s.Contains("2"); !ok {
		t.Errorf("expected 2 to be a member")
	}

	if err := s.Remove("2"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	// remove of an absent member raises, every time
	wantKind(t, s.Remove("2"), KindKey)
	wantKind(t, s.Remove("2"), KindKey)

	// discard of an absent member never raises
	if err := s.Discard("2"); err != nil {
		t.Errorf("Discard raised: %v", err)
	}
	if err := s.Discard("2"); err != nil {
		t.Errorf("second Discard raised: %v", err)
	}

	wantMembers(t, s, "1", "3")
}

func TestSetPop(t *testing.T) {
	s := mustSet(t, newTestClient(), "pop", "only")

	m, err := s.Pop()
	if err != nil || m != "only" {
		t.Fatalf("expected pop of only member, got %q (err=%v)", m, err)
	}
	_, err = s.Pop()
	wantKind(t, err, KindKey)
}

// --------------------------------------------------------------------------
// Algebra
// --------------------------------------------------------------------------

func TestSetAlgebraMaterializing(t *testing.T) {
	c := newTestClient()
	a := mustSet(t, c, "a", "1", "2", "3")
	b := mustSet(t, c, "b", "2", "3", "4")

	u, err := a.Union(b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	wantMembers(t, u, "1", "2", "3", "4")

	i, err := a.Intersection(b)
	if err != nil {
		t.Fatalf("Intersection failed: %v", err)
	}
	wantMembers(t, i, "2", "3")

	d, err := a.Difference(b)
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}
	wantMembers(t, d, "1")

	sd, err := a.SymmetricDifference(b)
	if err != nil {
		t.Fatalf("SymmetricDifference failed: %v", err)
	}
	wantMembers(t, sd, "1", "4")

	// the originals are untouched by any algebra
	wantMembers(t, a, "1", "2", "3")
	wantMembers(t, b, "2", "3", "4")
}

// An algebra result equals itself under subsequent algebra.
func TestSetAlgebraRoundTrip(t *testing.T) {
	c := newTestClient()
	a := mustSet(t, c, "rt-a", "1", "2")
	b := mustSet(t, c, "rt-b", "2", "3")

	u, err := a.Union(b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	uu, err := u.Intersection(u)
	if err != nil {
		t.Fatalf("Intersection failed: %v", err)
	}
	if ok, err := u.Equal(uu); err != nil || !ok {
		t.Errorf("expected algebra round trip to preserve equality (err=%v)", err)
	}
}

func TestSetAlgebraInPlace(t *testing.T) {
	c := newTestClient()
	a := mustSet(t, c, "ip-a", "1", "2", "3")
	b := mustSet(t, c, "ip-b", "2", "3", "4")

	if err := a.Update(b); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	wantMembers(t, a, "1", "2", "3", "4")

	if err := a.IntersectionUpdate(b); err != nil {
		t.Fatalf("IntersectionUpdate failed: %v", err)
	}
	wantMembers(t, a, "2", "3", "4")

	if err := a.DifferenceUpdate(b); err != nil {
		t.Fatalf("DifferenceUpdate failed: %v", err)
	}
	if n, _ := a.Len(); n != 0 {
		t.Errorf("expected empty set after DifferenceUpdate, got %d members", n)
	}

	x := mustSet(t, c, "ip-x", "1", "2")
	y := mustSet(t, c, "ip-y", "2", "3")
	if err := x.SymmetricDifferenceUpdate(y); err != nil {
		t.Fatalf("SymmetricDifferenceUpdate failed: %v", err)
	}
	wantMembers(t, x, "1", "3")
	wantMembers(t, y, "2", "3")
}

func TestSetOperandCompatibility(t *testing.T) {
	a := mustSet(t, newTestClient(), "c-a", "1")
	foreign := mustSet(t, newTestClient(), "c-b", "1")

	_, err := a.Union(foreign)
	wantKind(t, err, KindType)
	wantKind(t, a.Update(foreign), KindType)
	_, err = a.IsSubset(foreign)
	wantKind(t, err, KindType)
	_, err = a.Union(nil)
	wantKind(t, err, KindType)
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

func TestSetPredicates(t *testing.T) {
	c := newTestClient()
	small := mustSet(t, c, "p-small", "1", "2")
	big := mustSet(t, c, "p-big", "1", "2", "3")
	same := mustSet(t, c, "p-same", "1", "2")
	other := mustSet(t, c, "p-other", "8", "9")

	checks := []struct {
		name     string
		got      func() (bool, error)
		expected bool
	}{
		{"small subset of big", func() (bool, error) { return small.IsSubset(big) }, true},
		{"big not subset of small", func() (bool, error) { return big.IsSubset(small) }, false},
		{"small subset of same", func() (bool, error) { return small.IsSubset(same) }, true},
		{"big superset of small", func() (bool, error) { return big.IsSuperset(small) }, true},
		{"small proper subset of big", func() (bool, error) { return small.IsProperSubset(big) }, true},
		{"small not proper subset of same", func() (bool, error) { return small.IsProperSubset(same) }, false},
		{"big proper superset of small", func() (bool, error) { return big.IsProperSuperset(small) }, true},
		{"same not proper superset of small", func() (bool, error) { return same.IsProperSuperset(small) }, false},
		{"small disjoint from other", func() (bool, error) { return small.IsDisjoint(other) }, true},
		{"small not disjoint from big", func() (bool, error) { return small.IsDisjoint(big) }, false},
		{"small equal to same", func() (bool, error) { return small.Equal(same) }, true},
		{"small not equal to big", func() (bool, error) { return small.Equal(big) }, false},
	}
	for _, check := range checks {
		got, err := check.got()
		if err != nil {
			t.Errorf("%s: unexpected error: %v", check.name, err)
			continue
		}
		if got != check.expected {
			t.Errorf("%s: expected %v, got %v", check.name, check.expected, got)
		}
	}
}

func TestSetCopyAndClear(t *testing.T) {
	c := newTestClient()
	s, err := NewSet(c, "orig", WithKeyFactory(countingKeyFactory()))
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	if err := s.Add("a", "b"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cp, err := s.Copy()
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if cp.Key() != "derived-1" {
		t.Errorf("expected injected key factory to name the copy, got %q", cp.Key())
	}
	wantMembers(t, cp, "a", "b")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if ok, _ := s.Exists(); ok {
		t.Errorf("expected key removed after Clear")
	}
	// the copy survives clearing the original
	wantMembers(t, cp, "a", "b")
}

func TestSetWrongTypeKey(t *testing.T) {
	c := newTestClient()
	if err := c.ListPush("shared", "x"); err != nil {
		t.Fatalf("ListPush failed: %v", err)
	}

	s := mustSet(t, c, "shared")
	// constructing on an aliased key is allowed, operations are not
	wantKind(t, s.Add("a"), KindType)
	_, err := s.Len()
	wantKind(t, err, KindType)
}
