package testing

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
)

// ClientFactory is a function that creates a new instance of an IStructClient
// implementation with an empty keyspace.
type ClientFactory func() client.IStructClient

// RunStructClientTests runs a comprehensive test suite for an IStructClient
// implementation.
func RunStructClientTests(t *testing.T, name string, factory ClientFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("ListPush&Range", func(t *testing.T) {
			testListPushRange(t, factory())
		})

		t.Run("ListPop", func(t *testing.T) {
			testListPop(t, factory())
		})

		t.Run("ListIndex", func(t *testing.T) {
			testListIndex(t, factory())
		})

		t.Run("ListSet", func(t *testing.T) {
			testListSet(t, factory())
		})

		t.Run("ListRemove&Trim", func(t *testing.T) {
			testListRemoveTrim(t, factory())
		})

		t.Run("SetBasics", func(t *testing.T) {
			testSetBasics(t, factory())
		})

		t.Run("SetAlgebra", func(t *testing.T) {
			testSetAlgebra(t, factory())
		})

		t.Run("HashBasics", func(t *testing.T) {
			testHashBasics(t, factory())
		})

		t.Run("KeyLifecycle", func(t *testing.T) {
			testKeyLifecycle(t, factory())
		})

		t.Run("WrongType", func(t *testing.T) {
			testWrongType(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func mustNoErr(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func sortedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	ac := append([]string(nil), a...)
	bc := append([]string(nil), b...)
	sort.Strings(ac)
	sort.Strings(bc)
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Test functions - List
// --------------------------------------------------------------------------

func testListPushRange(t *testing.T, c client.IStructClient) {
	key := "list-push"

	mustNoErr(t, c.ListPush(key, "a", "b"))
	mustNoErr(t, c.ListPush(key, "c"))

	length, err := c.ListLen(key)
	mustNoErr(t, err)
	if length != 3 {
		t.Errorf("expected length 3, got %d", length)
	}

	values, err := c.ListRange(key, 0, -1)
	mustNoErr(t, err)
	expected := []string{"a", "b", "c"}
	if len(values) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, values)
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, values)
			break
		}
	}

	// Partial inclusive range
	values, err = c.ListRange(key, 1, 2)
	mustNoErr(t, err)
	if len(values) != 2 || values[0] != "b" || values[1] != "c" {
		t.Errorf("expected [b c], got %v", values)
	}

	// Range on a missing key yields an empty slice, not an error
	values, err = c.ListRange("missing", 0, -1)
	mustNoErr(t, err)
	if len(values) != 0 {
		t.Errorf("expected empty range for missing key, got %v", values)
	}
}

func testListPop(t *testing.T, c client.IStructClient) {
	key := "list-pop"

	mustNoErr(t, c.ListPush(key, "a", "b", "c"))

	v, ok, err := c.ListPopHead(key)
	mustNoErr(t, err)
	if !ok || v != "a" {
		t.Errorf("expected head pop a, got %q (ok=%v)", v, ok)
	}

	v, ok, err = c.ListPopTail(key)
	mustNoErr(t, err)
	if !ok || v != "c" {
		t.Errorf("expected tail pop c, got %q (ok=%v)", v, ok)
	}

	length, err := c.ListLen(key)
	mustNoErr(t, err)
	if length != 1 {
		t.Errorf("expected length 1 after pops, got %d", length)
	}

	// Popping a missing key reports ok=false
	_, ok, err = c.ListPopHead("missing")
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected ok=false for pop on missing key")
	}
}

func testListIndex(t *testing.T, c client.IStructClient) {
	key := "list-index"

	mustNoErr(t, c.ListPush(key, "x", "y", "z"))

	v, ok, err := c.ListIndex(key, 0)
	mustNoErr(t, err)
	if !ok || v != "x" {
		t.Errorf("expected x at index 0, got %q (ok=%v)", v, ok)
	}

	// Negative index resolves from the tail
	v, ok, err = c.ListIndex(key, -1)
	mustNoErr(t, err)
	if !ok || v != "z" {
		t.Errorf("expected z at index -1, got %q (ok=%v)", v, ok)
	}

	// Out of bounds reports ok=false without an error
	_, ok, err = c.ListIndex(key, 10)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected ok=false for out-of-bounds index")
	}

	_, ok, err = c.ListIndex("missing", 0)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected ok=false for index on missing key")
	}
}

func testListSet(t *testing.T, c client.IStructClient) {
	key := "list-set"

	mustNoErr(t, c.ListPush(key, "a", "b", "c"))

	mustNoErr(t, c.ListSet(key, 1, "B"))
	v, _, err := c.ListIndex(key, 1)
	mustNoErr(t, err)
	if v != "B" {
		t.Errorf("expected B after ListSet, got %q", v)
	}

	mustNoErr(t, c.ListSet(key, -1, "C"))
	v, _, err = c.ListIndex(key, 2)
	mustNoErr(t, err)
	if v != "C" {
		t.Errorf("expected C after negative-index ListSet, got %q", v)
	}

	// Addressing a missing slot must fail with RetCOutOfRange
	err = c.ListSet(key, 99, "x")
	if !client.HasCode(err, client.RetCOutOfRange) {
		t.Errorf("expected RetCOutOfRange, got %v", err)
	}

	err = c.ListSet("missing", 0, "x")
	if !client.HasCode(err, client.RetCOutOfRange) {
		t.Errorf("expected RetCOutOfRange for missing key, got %v", err)
	}
}

func testListRemoveTrim(t *testing.T, c client.IStructClient) {
	key := "list-rem"

	mustNoErr(t, c.ListPush(key, "a", "b", "a", "c", "a"))

	removed, err := c.ListRemove(key, 1, "a")
	mustNoErr(t, err)
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}

	values, err := c.ListRange(key, 0, -1)
	mustNoErr(t, err)
	if len(values) != 4 || values[0] != "b" {
		t.Errorf("expected first occurrence removed, got %v", values)
	}

	removed, err = c.ListRemove(key, 1, "nope")
	mustNoErr(t, err)
	if removed != 0 {
		t.Errorf("expected 0 removed for absent value, got %d", removed)
	}

	mustNoErr(t, c.ListTrim(key, 0, 1))
	length, err := c.ListLen(key)
	mustNoErr(t, err)
	if length != 2 {
		t.Errorf("expected length 2 after trim, got %d", length)
	}

	// Trimming everything away removes the key
	mustNoErr(t, c.ListTrim(key, 5, 10))
	ok, err := c.Exists(key)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected key to vanish after trimming to an empty range")
	}
}

// --------------------------------------------------------------------------
// Test functions - Set
// --------------------------------------------------------------------------

func testSetBasics(t *testing.T, c client.IStructClient) {
	key := "set-basics"

	mustNoErr(t, c.SetAdd(key, "1", "2", "3", "2"))

	card, err := c.SetCard(key)
	mustNoErr(t, err)
	if card != 3 {
		t.Errorf("expected cardinality 3, got %d", card)
	}

	ok, err := c.SetIsMember(key, "2")
	mustNoErr(t, err)
	if !ok {
		t.Errorf("expected 2 to be a member")
	}

	removed, err := c.SetRemove(key, "2")
	mustNoErr(t, err)
	if !removed {
		t.Errorf("expected removal of present member to report true")
	}

	removed, err = c.SetRemove(key, "2")
	mustNoErr(t, err)
	if removed {
		t.Errorf("expected removal of absent member to report false")
	}

	members, err := c.SetMembers(key)
	mustNoErr(t, err)
	if !sortedEqual(members, []string{"1", "3"}) {
		t.Errorf("expected members {1,3}, got %v", members)
	}

	m, ok, err := c.SetPop(key)
	mustNoErr(t, err)
	if !ok || (m != "1" && m != "3") {
		t.Errorf("expected pop of 1 or 3, got %q (ok=%v)", m, ok)
	}
}

func testSetAlgebra(t *testing.T, c client.IStructClient) {
	mustNoErr(t, c.SetAdd("alg-a", "1", "2", "3"))
	mustNoErr(t, c.SetAdd("alg-b", "2", "3", "4"))

	mustNoErr(t, c.SetUnionStore("alg-u", "alg-a", "alg-b"))
	members, err := c.SetMembers("alg-u")
	mustNoErr(t, err)
	if !sortedEqual(members, []string{"1", "2", "3", "4"}) {
		t.Errorf("expected union {1,2,3,4}, got %v", members)
	}

	mustNoErr(t, c.SetInterStore("alg-i", "alg-a", "alg-b"))
	members, err = c.SetMembers("alg-i")
	mustNoErr(t, err)
	if !sortedEqual(members, []string{"2", "3"}) {
		t.Errorf("expected intersection {2,3}, got %v", members)
	}

	mustNoErr(t, c.SetDiffStore("alg-d", "alg-a", "alg-b"))
	members, err = c.SetMembers("alg-d")
	mustNoErr(t, err)
	if !sortedEqual(members, []string{"1"}) {
		t.Errorf("expected difference {1}, got %v", members)
	}

	// Read-only intersection leaves no trace in the store
	inter, err := c.SetInter("alg-a", "alg-b")
	mustNoErr(t, err)
	if !sortedEqual(inter, []string{"2", "3"}) {
		t.Errorf("expected read-only intersection {2,3}, got %v", inter)
	}

	// The source sets must be untouched by any of the above
	members, err = c.SetMembers("alg-a")
	mustNoErr(t, err)
	if !sortedEqual(members, []string{"1", "2", "3"}) {
		t.Errorf("expected source set unmodified, got %v", members)
	}

	// An empty result removes the destination key
	mustNoErr(t, c.SetInterStore("alg-empty", "alg-a", "alg-missing"))
	ok, err := c.Exists("alg-empty")
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected empty algebra result to remove the destination key")
	}
}

// --------------------------------------------------------------------------
// Test functions - Hash
// --------------------------------------------------------------------------

func testHashBasics(t *testing.T, c client.IStructClient) {
	key := "hash-basics"

	mustNoErr(t, c.HashSet(key, "name", "alice"))
	mustNoErr(t, c.HashSet(key, "age", "30"))
	mustNoErr(t, c.HashSet(key, "name", "bob")) // overwrite

	v, ok, err := c.HashGet(key, "name")
	mustNoErr(t, err)
	if !ok || v != "bob" {
		t.Errorf("expected name=bob, got %q (ok=%v)", v, ok)
	}

	_, ok, err = c.HashGet(key, "missing")
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected ok=false for missing field")
	}

	length, err := c.HashLen(key)
	mustNoErr(t, err)
	if length != 2 {
		t.Errorf("expected 2 fields, got %d", length)
	}

	fields, err := c.HashGetAll(key)
	mustNoErr(t, err)
	if len(fields) != 2 || fields["name"] != "bob" || fields["age"] != "30" {
		t.Errorf("unexpected HashGetAll result: %v", fields)
	}

	names, err := c.HashKeys(key)
	mustNoErr(t, err)
	if !sortedEqual(names, []string{"age", "name"}) {
		t.Errorf("unexpected field names: %v", names)
	}

	values, err := c.HashValues(key)
	mustNoErr(t, err)
	if !sortedEqual(values, []string{"30", "bob"}) {
		t.Errorf("unexpected field values: %v", values)
	}

	deleted, err := c.HashDel(key, "age")
	mustNoErr(t, err)
	if !deleted {
		t.Errorf("expected deletion of present field to report true")
	}

	deleted, err = c.HashDel(key, "age")
	mustNoErr(t, err)
	if deleted {
		t.Errorf("expected deletion of absent field to report false")
	}
}

// --------------------------------------------------------------------------
// Test functions - Keys and Errors
// --------------------------------------------------------------------------

func testKeyLifecycle(t *testing.T, c client.IStructClient) {
	key := "lifecycle"

	ok, err := c.Exists(key)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected key to not exist before first write")
	}

	mustNoErr(t, c.ListPush(key, "a"))
	ok, err = c.Exists(key)
	mustNoErr(t, err)
	if !ok {
		t.Errorf("expected key to exist after first write")
	}

	// Popping the last element removes the key
	_, _, err = c.ListPopHead(key)
	mustNoErr(t, err)
	ok, err = c.Exists(key)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected key to vanish once empty")
	}

	// Delete removes a key regardless of its kind
	mustNoErr(t, c.SetAdd(key, "a", "b"))
	mustNoErr(t, c.Delete(key))
	ok, err = c.Exists(key)
	mustNoErr(t, err)
	if ok {
		t.Errorf("expected key to not exist after Delete")
	}

	// Deleting a missing key is a no-op
	mustNoErr(t, c.Delete("missing"))
}

func testWrongType(t *testing.T, c client.IStructClient) {
	key := "wrong-type"

	mustNoErr(t, c.ListPush(key, "a"))

	if err := c.SetAdd(key, "x"); !client.HasCode(err, client.RetCWrongType) {
		t.Errorf("expected RetCWrongType for SetAdd on a list, got %v", err)
	}

	if err := c.HashSet(key, "f", "v"); !client.HasCode(err, client.RetCWrongType) {
		t.Errorf("expected RetCWrongType for HashSet on a list, got %v", err)
	}

	if _, err := c.SetCard(key); !client.HasCode(err, client.RetCWrongType) {
		t.Errorf("expected RetCWrongType for SetCard on a list, got %v", err)
	}

	if _, err := c.HashGetAll(key); !client.HasCode(err, client.RetCWrongType) {
		t.Errorf("expected RetCWrongType for HashGetAll on a list, got %v", err)
	}

	// The list itself must be untouched by the failed commands
	length, err := c.ListLen(key)
	mustNoErr(t, err)
	if length != 1 {
		t.Errorf("expected list untouched after wrong-type commands, got length %d", length)
	}
}

func testConcurrentAccess(t *testing.T, c client.IStructClient) {
	const (
		workers = 8
		perW    = 50
	)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perW; i++ {
				if err := c.ListPush("conc-list", fmt.Sprintf("%d-%d", id, i)); err != nil {
					t.Errorf("concurrent push failed: %v", err)
					return
				}
				if err := c.SetAdd("conc-set", fmt.Sprintf("%d", i)); err != nil {
					t.Errorf("concurrent add failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	length, err := c.ListLen("conc-list")
	mustNoErr(t, err)
	if length != workers*perW {
		t.Errorf("expected %d pushed elements, got %d", workers*perW, length)
	}

	card, err := c.SetCard("conc-set")
	mustNoErr(t, err)
	if card != perW {
		t.Errorf("expected cardinality %d, got %d", perW, card)
	}
}
