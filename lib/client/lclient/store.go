package lclient

import (
	"fmt"
	"sync"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Container Types
// --------------------------------------------------------------------------

// structKind tags which structure a container currently holds.
type structKind uint8

const (
	kindList structKind = iota
	kindSet
	kindHash
)

func (k structKind) String() string {
	switch k {
	case kindList:
		return "list"
	case kindSet:
		return "set"
	case kindHash:
		return "hash"
	default:
		return "unknown"
	}
}

// container holds exactly one structure. The mutex guards all three fields;
// only the field matching kind is ever non-nil.
type container struct {
	mu   sync.RWMutex
	kind structKind
	list []string
	set  map[string]struct{}
	hash map[string]string
}

// empty reports whether the container holds no elements.
// Caller must hold at least a read lock.
func (c *container) empty() bool {
	switch c.kind {
	case kindList:
		return len(c.list) == 0
	case kindSet:
		return len(c.set) == 0
	default:
		return len(c.hash) == 0
	}
}

// --------------------------------------------------------------------------
// Store Implementation
// --------------------------------------------------------------------------

type structStore struct {
	containers *xsync.MapOf[string, *container]
}

// NewLocalStructClient creates a new in-process structure store.
// This implementation is not distributed and only works inside a single
// process. Every primitive locks exactly one container, so each call is
// atomic on its own.
func NewLocalStructClient() client.IStructClient {
	return &structStore{
		containers: xsync.NewMapOf[string, *container](),
	}
}

// acquire loads the container for key, creating it with the given kind if it
// is absent. It returns the container write-locked; the caller must call
// release (or unlock it directly if it did not remove elements).
//
// Thread-safety: the container is locked before it is returned, loading and
// creation race through LoadOrCompute which is atomic.
func (s *structStore) acquire(key string, kind structKind) (*container, error) {
	for {
		c, _ := s.containers.LoadOrCompute(key, func() *container {
			n := &container{kind: kind}
			switch kind {
			case kindSet:
				n.set = make(map[string]struct{})
			case kindHash:
				n.hash = make(map[string]string)
			}
			return n
		})
		c.mu.Lock()

		// The container may have been emptied and removed from the map
		// between LoadOrCompute and Lock. Detect that and retry.
		if cur, ok := s.containers.Load(key); !ok || cur != c {
			c.mu.Unlock()
			continue
		}

		if c.kind != kind {
			c.mu.Unlock()
			return nil, wrongType(key, kind, c.kind)
		}
		return c, nil
	}
}

// inspect loads the container for key without creating it and returns it
// read-locked. The boolean return value indicates whether the key exists.
func (s *structStore) inspect(key string, kind structKind) (*container, bool, error) {
	c, ok := s.containers.Load(key)
	if !ok {
		return nil, false, nil
	}
	c.mu.RLock()
	if c.kind != kind {
		c.mu.RUnlock()
		return nil, false, wrongType(key, kind, c.kind)
	}
	return c, true, nil
}

// release unlocks a write-locked container and removes the key from the map
// if the container has become empty. An absent key and an empty structure are
// indistinguishable, same as in the modeled store.
func (s *structStore) release(key string, c *container) {
	if c.empty() {
		s.containers.Delete(key)
	}
	c.mu.Unlock()
}

func wrongType(key string, want, got structKind) error {
	return client.NewError(client.RetCWrongType,
		fmt.Sprintf("key %q holds a %s, not a %s", key, got, want))
}

// resolveIndex converts a possibly negative index into an absolute one.
// The boolean return value indicates whether the index is within bounds.
func resolveIndex(idx, length int64) (int64, bool) {
	if idx < 0 {
		idx += length
	}
	return idx, idx >= 0 && idx < length
}

// resolveRange converts a possibly negative inclusive range into absolute
// clamped slice bounds [start, stop+1).
func resolveRange(start, stop, length int64) (int64, int64, bool) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start >= length || stop < start {
		return 0, 0, false
	}
	return start, stop + 1, true
}

// --------------------------------------------------------------------------
// Interface Methods - List Operations (docu see client/interface.go)
// --------------------------------------------------------------------------

func (s *structStore) ListPush(key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	c, err := s.acquire(key, kindList)
	if err != nil {
		return err
	}
	defer s.release(key, c)

	c.list = append(c.list, values...)
	return nil
}

func (s *structStore) ListPopHead(key string) (string, bool, error) {
	return s.listPop(key, false)
}

func (s *structStore) ListPopTail(key string) (string, bool, error) {
	return s.listPop(key, true)
}

// listPop is the shared implementation of ListPopHead and ListPopTail.
func (s *structStore) listPop(key string, tail bool) (string, bool, error) {
	c, ok, err := s.inspectForWrite(key, kindList)
	if err != nil || !ok {
		return "", false, err
	}
	defer s.release(key, c)

	if len(c.list) == 0 {
		return "", false, nil
	}

	var v string
	if tail {
		v = c.list[len(c.list)-1]
		c.list = c.list[:len(c.list)-1]
	} else {
		v = c.list[0]
		c.list = c.list[1:]
	}
	return v, true, nil
}

// inspectForWrite is like inspect but takes the write lock and does not
// create missing keys.
func (s *structStore) inspectForWrite(key string, kind structKind) (*container, bool, error) {
	c, ok := s.containers.Load(key)
	if !ok {
		return nil, false, nil
	}
	c.mu.Lock()
	if cur, loaded := s.containers.Load(key); !loaded || cur != c {
		c.mu.Unlock()
		return nil, false, nil
	}
	if c.kind != kind {
		c.mu.Unlock()
		return nil, false, wrongType(key, kind, c.kind)
	}
	return c, true, nil
}

func (s *structStore) ListIndex(key string, index int64) (string, bool, error) {
	c, ok, err := s.inspect(key, kindList)
	if err != nil || !ok {
		return "", false, err
	}
	defer c.mu.RUnlock()

	idx, ok := resolveIndex(index, int64(len(c.list)))
	if !ok {
		return "", false, nil
	}
	return c.list[idx], true, nil
}

func (s *structStore) ListSet(key string, index int64, value string) error {
	c, ok, err := s.inspectForWrite(key, kindList)
	if err != nil {
		return err
	}
	if !ok {
		return client.NewError(client.RetCOutOfRange,
			fmt.Sprintf("index %d out of range for key %q", index, key))
	}
	defer c.mu.Unlock()

	idx, inBounds := resolveIndex(index, int64(len(c.list)))
	if !inBounds {
		return client.NewError(client.RetCOutOfRange,
			fmt.Sprintf("index %d out of range for key %q", index, key))
	}
	c.list[idx] = value
	return nil
}

func (s *structStore) ListRange(key string, start, stop int64) ([]string, error) {
	c, ok, err := s.inspect(key, kindList)
	if err != nil || !ok {
		return []string{}, err
	}
	defer c.mu.RUnlock()

	lo, hi, ok := resolveRange(start, stop, int64(len(c.list)))
	if !ok {
		return []string{}, nil
	}

	// Copy to keep callers from aliasing the stored slice
	out := make([]string, hi-lo)
	copy(out, c.list[lo:hi])
	return out, nil
}

func (s *structStore) ListRemove(key string, count int64, value string) (int64, error) {
	c, ok, err := s.inspectForWrite(key, kindList)
	if err != nil || !ok {
		return 0, err
	}
	defer s.release(key, c)

	if count <= 0 {
		count = int64(len(c.list))
	}

	removed := int64(0)
	kept := c.list[:0]
	for _, v := range c.list {
		if removed < count && v == value {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	c.list = kept
	return removed, nil
}

func (s *structStore) ListTrim(key string, start, stop int64) error {
	c, ok, err := s.inspectForWrite(key, kindList)
	if err != nil || !ok {
		return err
	}
	defer s.release(key, c)

	lo, hi, ok := resolveRange(start, stop, int64(len(c.list)))
	if !ok {
		c.list = nil
		return nil
	}
	c.list = append([]string(nil), c.list[lo:hi]...)
	return nil
}

func (s *structStore) ListLen(key string) (int64, error) {
	c, ok, err := s.inspect(key, kindList)
	if err != nil || !ok {
		return 0, err
	}
	defer c.mu.RUnlock()
	return int64(len(c.list)), nil
}

// --------------------------------------------------------------------------
// Interface Methods - Set Operations (docu see client/interface.go)
// --------------------------------------------------------------------------

func (s *structStore) SetAdd(key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	c, err := s.acquire(key, kindSet)
	if err != nil {
		return err
	}
	defer s.release(key, c)

	for _, m := range members {
		c.set[m] = struct{}{}
	}
	return nil
}

func (s *structStore) SetRemove(key string, member string) (bool, error) {
	c, ok, err := s.inspectForWrite(key, kindSet)
	if err != nil || !ok {
		return false, err
	}
	defer s.release(key, c)

	if _, found := c.set[member]; !found {
		return false, nil
	}
	delete(c.set, member)
	return true, nil
}

func (s *structStore) SetIsMember(key string, member string) (bool, error) {
	c, ok, err := s.inspect(key, kindSet)
	if err != nil || !ok {
		return false, err
	}
	defer c.mu.RUnlock()
	_, found := c.set[member]
	return found, nil
}

func (s *structStore) SetMembers(key string) ([]string, error) {
	c, ok, err := s.inspect(key, kindSet)
	if err != nil || !ok {
		return []string{}, err
	}
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.set))
	for m := range c.set {
		out = append(out, m)
	}
	return out, nil
}

func (s *structStore) SetCard(key string) (int64, error) {
	c, ok, err := s.inspect(key, kindSet)
	if err != nil || !ok {
		return 0, err
	}
	defer c.mu.RUnlock()
	return int64(len(c.set)), nil
}

func (s *structStore) SetUnionStore(dst string, keys ...string) error {
	return s.setAlgebraStore(dst, keys, s.union)
}

func (s *structStore) SetInterStore(dst string, keys ...string) error {
	return s.setAlgebraStore(dst, keys, s.inter)
}

func (s *structStore) SetDiffStore(dst string, keys ...string) error {
	return s.setAlgebraStore(dst, keys, s.diff)
}

func (s *structStore) SetInter(keys ...string) ([]string, error) {
	result, err := s.inter(keys)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(result))
	for m := range result {
		out = append(out, m)
	}
	return out, nil
}

func (s *structStore) SetPop(key string) (string, bool, error) {
	c, ok, err := s.inspectForWrite(key, kindSet)
	if err != nil || !ok {
		return "", false, err
	}
	defer s.release(key, c)

	for m := range c.set {
		delete(c.set, m)
		return m, true, nil
	}
	return "", false, nil
}

// setAlgebraStore computes an algebra result and replaces dst with it.
// The computation and the store are two steps; dst is swapped in a single
// map write so readers never observe a half-written result.
func (s *structStore) setAlgebraStore(dst string, keys []string, algebra func([]string) (map[string]struct{}, error)) error {
	result, err := algebra(keys)
	if err != nil {
		return err
	}

	if len(result) == 0 {
		s.containers.Delete(dst)
		return nil
	}

	// Replacing the container wholesale also overwrites a dst that held a
	// different structure kind, same as the modeled store commands do.
	s.containers.Store(dst, &container{kind: kindSet, set: result})
	return nil
}

// snapshotSet returns a copy of the members of a set key (empty if absent).
func (s *structStore) snapshotSet(key string) (map[string]struct{}, error) {
	c, ok, err := s.inspect(key, kindSet)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]struct{}{}, nil
	}
	defer c.mu.RUnlock()

	out := make(map[string]struct{}, len(c.set))
	for m := range c.set {
		out[m] = struct{}{}
	}
	return out, nil
}

func (s *structStore) union(keys []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	for _, key := range keys {
		members, err := s.snapshotSet(key)
		if err != nil {
			return nil, err
		}
		for m := range members {
			result[m] = struct{}{}
		}
	}
	return result, nil
}

func (s *structStore) inter(keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}
	result, err := s.snapshotSet(keys[0])
	if err != nil {
		return nil, err
	}
	for _, key := range keys[1:] {
		members, err := s.snapshotSet(key)
		if err != nil {
			return nil, err
		}
		for m := range result {
			if _, ok := members[m]; !ok {
				delete(result, m)
			}
		}
	}
	return result, nil
}

func (s *structStore) diff(keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}
	result, err := s.snapshotSet(keys[0])
	if err != nil {
		return nil, err
	}
	for _, key := range keys[1:] {
		members, err := s.snapshotSet(key)
		if err != nil {
			return nil, err
		}
		for m := range members {
			delete(result, m)
		}
	}
	return result, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Hash Operations (docu see client/interface.go)
// --------------------------------------------------------------------------

func (s *structStore) HashSet(key, field, value string) error {
	c, err := s.acquire(key, kindHash)
	if err != nil {
		return err
	}
	defer s.release(key, c)

	c.hash[field] = value
	return nil
}

func (s *structStore) HashGet(key, field string) (string, bool, error) {
	c, ok, err := s.inspect(key, kindHash)
	if err != nil || !ok {
		return "", false, err
	}
	defer c.mu.RUnlock()
	v, found := c.hash[field]
	return v, found, nil
}

func (s *structStore) HashDel(key, field string) (bool, error) {
	c, ok, err := s.inspectForWrite(key, kindHash)
	if err != nil || !ok {
		return false, err
	}
	defer s.release(key, c)

	if _, found := c.hash[field]; !found {
		return false, nil
	}
	delete(c.hash, field)
	return true, nil
}

func (s *structStore) HashGetAll(key string) (map[string]string, error) {
	c, ok, err := s.inspect(key, kindHash)
	if err != nil || !ok {
		return map[string]string{}, err
	}
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.hash))
	for f, v := range c.hash {
		out[f] = v
	}
	return out, nil
}

func (s *structStore) HashKeys(key string) ([]string, error) {
	c, ok, err := s.inspect(key, kindHash)
	if err != nil || !ok {
		return []string{}, err
	}
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.hash))
	for f := range c.hash {
		out = append(out, f)
	}
	return out, nil
}

func (s *structStore) HashValues(key string) ([]string, error) {
	c, ok, err := s.inspect(key, kindHash)
	if err != nil || !ok {
		return []string{}, err
	}
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.hash))
	for _, v := range c.hash {
		out = append(out, v)
	}
	return out, nil
}

func (s *structStore) HashLen(key string) (int64, error) {
	c, ok, err := s.inspect(key, kindHash)
	if err != nil || !ok {
		return 0, err
	}
	defer c.mu.RUnlock()
	return int64(len(c.hash)), nil
}

// --------------------------------------------------------------------------
// Interface Methods - Key Operations (docu see client/interface.go)
// --------------------------------------------------------------------------

func (s *structStore) Delete(key string) error {
	s.containers.Delete(key)
	return nil
}

func (s *structStore) Exists(key string) (bool, error) {
	_, ok := s.containers.Load(key)
	return ok, nil
}
