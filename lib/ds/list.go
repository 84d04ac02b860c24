package ds

import (
	"sort"

	"github.com/ValentinKolb/rDS/lib/client"
)

// List exposes ordered sequence semantics over a remote list key. Indexing
// supports negative values resolved from the tail (-1 is the last element).
//
// Operations with a direct store counterpart (Append, Get, SetItem, end-pop
// Delete, Remove) are atomic single commands. Everything else (middle Delete,
// Insert, Reverse, Repeat, Sort) is a compound operation over several round
// trips and is racy under concurrent writers, see the per-method docs.
type List struct {
	base
}

// NewList binds a list adapter to the given remote key. The remote list
// springs into existence on the first mutating call; binding to an absent key
// is valid and yields an empty sequence.
func NewList(c client.IStructClient, key string, opts ...Option) (*List, error) {
	b, err := newBase(c, key, opts...)
	if err != nil {
		return nil, err
	}
	return &List{base: b}, nil
}

// --------------------------------------------------------------------------
// Atomic operations (single store command)
// --------------------------------------------------------------------------

// Len returns the current remote length, 0 if the key is absent.
func (l *List) Len() (int64, error) {
	n, err := l.client.ListLen(l.key)
	return n, translate(err)
}

// Get returns the element at index i. Negative indices count from the tail.
// Returns a KindIndex error if no element exists at that position.
func (l *List) Get(i int64) (string, error) {
	v, ok, err := l.client.ListIndex(l.key, i)
	if err != nil {
		return "", translate(err)
	}
	if !ok {
		return "", newErrorf(KindIndex, "list index %d out of range for key %q", i, l.key)
	}
	return v, nil
}

// SetItem overwrites the element at index i in place. Returns a KindIndex
// error if the store reports an addressing error.
func (l *List) SetItem(i int64, value string) error {
	return translate(l.client.ListSet(l.key, i, value))
}

// Range materializes the elements between start and stop (both inclusive,
// negative indices count from the tail). Out-of-bounds positions are clamped,
// an empty or inverted range yields an empty slice.
func (l *List) Range(start, stop int64) ([]string, error) {
	values, err := l.client.ListRange(l.key, start, stop)
	return values, translate(err)
}

// Slice is Range with an explicit step. Only step 1 is expressible through
// the remote range primitive; any other step returns a KindUnsupported error.
func (l *List) Slice(start, stop, step int64) ([]string, error) {
	if step != 1 {
		return nil, newErrorf(KindUnsupported, "slice step must be 1, got %d", step)
	}
	return l.Range(start, stop)
}

// Append pushes the given values onto the tail, preserving argument order.
func (l *List) Append(values ...string) error {
	if len(values) == 0 {
		return nil
	}
	return translate(l.client.ListPush(l.key, values...))
}

// Extend pushes each element of values onto the tail in order.
func (l *List) Extend(values []string) error {
	return l.Append(values...)
}

// Remove deletes the first occurrence of value. Returns a KindValue error if
// no occurrence was removed.
func (l *List) Remove(value string) error {
	removed, err := l.client.ListRemove(l.key, 1, value)
	if err != nil {
		return translate(err)
	}
	if removed == 0 {
		return newErrorf(KindValue, "value %q not in list %q", value, l.key)
	}
	return nil
}

// Items materializes the full current contents.
func (l *List) Items() ([]string, error) {
	return l.Range(0, -1)
}

// --------------------------------------------------------------------------
// Compound operations (multiple store commands, non-atomic)
// --------------------------------------------------------------------------

// Delete removes the element at index i. Deleting the first or last position
// is a single atomic pop; deleting a middle position overwrites the slot with
// a unique sentinel and then removes that sentinel's first occurrence. The
// middle case is NOT atomic: a concurrent mutation between the two commands
// can shift the sentinel and corrupt the sequence.
func (l *List) Delete(i int64) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return newErrorf(KindIndex, "list index %d out of range for key %q", i, l.key)
	}

	switch idx {
	case 0:
		_, ok, err := l.client.ListPopHead(l.key)
		if err != nil {
			return translate(err)
		}
		if !ok {
			return newErrorf(KindIndex, "list index %d out of range for key %q", i, l.key)
		}
		return nil
	case n - 1:
		_, ok, err := l.client.ListPopTail(l.key)
		if err != nil {
			return translate(err)
		}
		if !ok {
			return newErrorf(KindIndex, "list index %d out of range for key %q", i, l.key)
		}
		return nil
	}

	sentinel := l.freshKey()
	if err := l.SetItem(idx, sentinel); err != nil {
		return err
	}
	_, err = l.client.ListRemove(l.key, 1, sentinel)
	return translate(err)
}

// Insert places value before the element at index i (clamped to the valid
// range, so inserting past the end appends). Implemented as materialize,
// truncate, re-append: O(n) round trips and NOT atomic. Readers can observe
// a transiently truncated sequence and a failure mid-operation leaves the
// sequence truncated with no rollback.
func (l *List) Insert(i int64, value string) error {
	items, err := l.Items()
	if err != nil {
		return err
	}
	n := int64(len(items))
	idx := i
	if idx < 0 {
		idx += n
		if idx < 0 {
			idx = 0
		}
	}
	if idx > n {
		idx = n
	}

	if idx == 0 {
		if err := l.Clear(); err != nil {
			return err
		}
	} else if err := translate(l.client.ListTrim(l.key, 0, idx-1)); err != nil {
		return err
	}
	if err := l.Append(value); err != nil {
		return err
	}
	return l.Append(items[idx:]...)
}

// Reverse inverts the order of all elements by materializing, clearing and
// re-pushing. NOT atomic.
func (l *List) Reverse() error {
	items, err := l.Items()
	if err != nil {
		return err
	}
	if err := l.Clear(); err != nil {
		return err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return l.Append(items...)
}

// Sort orders the elements with the given comparator (lexicographic order
// when less is nil) by materializing, sorting locally and rewriting the key.
// The sort is stable. NOT atomic: concurrent writes during the rewrite are
// lost or interleaved.
func (l *List) Sort(less func(a, b string) bool) error {
	items, err := l.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if less == nil {
		sort.Strings(items)
	} else {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	}
	if err := l.Clear(); err != nil {
		return err
	}
	return l.Append(items...)
}

// Repeat replaces the sequence with n concatenated copies of itself: n < 1
// clears the key, n == 1 is a no-op, n > 1 extends the sequence with its own
// current contents n-1 times. NOT atomic for n > 1.
func (l *List) Repeat(n int64) error {
	if n < 1 {
		return l.Clear()
	}
	if n == 1 {
		return nil
	}
	items, err := l.Items()
	if err != nil {
		return err
	}
	for i := int64(1); i < n; i++ {
		if err := l.Append(items...); err != nil {
			return err
		}
	}
	return nil
}

// ExtendList appends the full current contents of other to this list. The
// operand is materialized first, so both lists may live on different clients.
// NOT atomic across the read and the append.
func (l *List) ExtendList(other *List) error {
	if other == nil {
		return NewError(KindType, "operand list must not be nil")
	}
	items, err := other.Items()
	if err != nil {
		return err
	}
	return l.Append(items...)
}

// Copy materializes the current contents under a fresh key and returns a new
// adapter bound to it. NOT atomic across the read and the write.
func (l *List) Copy() (*List, error) {
	items, err := l.Items()
	if err != nil {
		return nil, err
	}
	cp := &List{base: l.derive()}
	if err := cp.Append(items...); err != nil {
		return nil, err
	}
	return cp, nil
}

// --------------------------------------------------------------------------
// Local (non-mutating) operations
// --------------------------------------------------------------------------

// Count materializes the contents and returns the number of elements equal
// to value.
func (l *List) Count(value string) (int64, error) {
	items, err := l.Items()
	if err != nil {
		return 0, err
	}
	var count int64
	for _, v := range items {
		if v == value {
			count++
		}
	}
	return count, nil
}

// Contains reports whether at least one element equals value.
func (l *List) Contains(value string) (bool, error) {
	count, err := l.Count(value)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Concat materializes both operands and returns their local concatenation.
// Remote state is not touched.
func (l *List) Concat(other *List) ([]string, error) {
	if other == nil {
		return nil, NewError(KindType, "operand list must not be nil")
	}
	left, err := l.Items()
	if err != nil {
		return nil, err
	}
	right, err := other.Items()
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// Equal reports whether both lists currently hold the same elements in the
// same order. Both operands are fully materialized, so the check is O(n).
func (l *List) Equal(other *List) (bool, error) {
	if other == nil {
		return false, NewError(KindType, "operand list must not be nil")
	}
	items, err := other.Items()
	if err != nil {
		return false, err
	}
	return l.EqualValues(items)
}

// EqualValues reports whether the list currently holds exactly the given
// elements in order.
func (l *List) EqualValues(values []string) (bool, error) {
	items, err := l.Items()
	if err != nil {
		return false, err
	}
	if len(items) != len(values) {
		return false, nil
	}
	for i := range items {
		if items[i] != values[i] {
			return false, nil
		}
	}
	return true, nil
}
