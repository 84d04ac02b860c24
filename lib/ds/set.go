package ds

import (
	"github.com/ValentinKolb/rDS/lib/client"
)

// Set exposes unordered unique-member semantics over a remote set key. The
// algebra operations run server-side (store union/intersection/difference
// commands against the operand keys), so full contents never travel to the
// client except for explicit materialization.
//
// Every algebra entry point requires all operands to be bound to the same
// client instance; a mismatch is a KindType error raised before any remote
// call. Symmetric difference has no native store command and is composed
// from scratch keys, see the per-method docs for its atomicity caveat.
type Set struct {
	base
}

// NewSet binds a set adapter to the given remote key.
func NewSet(c client.IStructClient, key string, opts ...Option) (*Set, error) {
	b, err := newBase(c, key, opts...)
	if err != nil {
		return nil, err
	}
	return &Set{base: b}, nil
}

// compatible verifies that every operand is non-nil and bound to the same
// client instance as the receiver.
func (s *Set) compatible(others ...*Set) error {
	for _, other := range others {
		if other == nil {
			return NewError(KindType, "operand set must not be nil")
		}
		if other.client != s.client {
			return newErrorf(KindType, "operand set %q is bound to a different client", other.key)
		}
	}
	return nil
}

// operandKeys returns the receiver's key followed by the operands' keys.
func (s *Set) operandKeys(others []*Set) []string {
	keys := make([]string, 0, len(others)+1)
	keys = append(keys, s.key)
	for _, other := range others {
		keys = append(keys, other.key)
	}
	return keys
}

// --------------------------------------------------------------------------
// Atomic operations (single store command)
// --------------------------------------------------------------------------

// Len returns the current cardinality, 0 if the key is absent.
func (s *Set) Len() (int64, error) {
	card, err := s.client.SetCard(s.key)
	return card, translate(err)
}

// Contains reports whether member is currently in the set.
func (s *Set) Contains(member string) (bool, error) {
	ok, err := s.client.SetIsMember(s.key, member)
	return ok, translate(err)
}

// Add inserts the given members, ignoring those already present.
func (s *Set) Add(members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return translate(s.client.SetAdd(s.key, members...))
}

// Discard removes member if present. Discarding an absent member is a silent
// no-op.
func (s *Set) Discard(member string) error {
	_, err := s.client.SetRemove(s.key, member)
	return translate(err)
}

// Remove removes member and returns a KindKey error if it was not present.
func (s *Set) Remove(member string) error {
	removed, err := s.client.SetRemove(s.key, member)
	if err != nil {
		return translate(err)
	}
	if !removed {
		return newErrorf(KindKey, "member %q not in set %q", member, s.key)
	}
	return nil
}

// Pop removes and returns an arbitrary member. Returns a KindKey error if
// the set is empty.
func (s *Set) Pop() (string, error) {
	member, ok, err := s.client.SetPop(s.key)
	if err != nil {
		return "", translate(err)
	}
	if !ok {
		return "", newErrorf(KindKey, "pop from empty set %q", s.key)
	}
	return member, nil
}

// Members materializes the full current contents. Order is unspecified.
func (s *Set) Members() ([]string, error) {
	members, err := s.client.SetMembers(s.key)
	return members, translate(err)
}

// --------------------------------------------------------------------------
// Materializing algebra (result under a fresh key)
// --------------------------------------------------------------------------

// Union stores the union of this set and the operands under a fresh key and
// returns a new adapter bound to it. Single server-side command.
func (s *Set) Union(others ...*Set) (*Set, error) {
	if err := s.compatible(others...); err != nil {
		return nil, err
	}
	result := &Set{base: s.derive()}
	if err := translate(s.client.SetUnionStore(result.key, s.operandKeys(others)...)); err != nil {
		return nil, err
	}
	return result, nil
}

// Intersection stores the intersection of this set and the operands under a
// fresh key and returns a new adapter bound to it. Single server-side
// command.
func (s *Set) Intersection(others ...*Set) (*Set, error) {
	if err := s.compatible(others...); err != nil {
		return nil, err
	}
	result := &Set{base: s.derive()}
	if err := translate(s.client.SetInterStore(result.key, s.operandKeys(others)...)); err != nil {
		return nil, err
	}
	return result, nil
}

// Difference stores this set minus the operands under a fresh key and
// returns a new adapter bound to it. Single server-side command.
func (s *Set) Difference(others ...*Set) (*Set, error) {
	if err := s.compatible(others...); err != nil {
		return nil, err
	}
	result := &Set{base: s.derive()}
	if err := translate(s.client.SetDiffStore(result.key, s.operandKeys(others)...)); err != nil {
		return nil, err
	}
	return result, nil
}

// SymmetricDifference stores the elements present in exactly one of the two
// sets under a fresh key and returns a new adapter bound to it. Composed as
// (s union other) minus (s intersection other) via two scratch keys which are
// deleted afterwards. NOT atomic: a concurrent writer can mutate an operand
// between the three algebra commands.
func (s *Set) SymmetricDifference(other *Set) (*Set, error) {
	if err := s.compatible(other); err != nil {
		return nil, err
	}
	result := &Set{base: s.derive()}
	if err := s.symmetricDifferenceStore(result.key, other); err != nil {
		return nil, err
	}
	return result, nil
}

// symmetricDifferenceStore computes the symmetric difference of s and other
// into dst using two scratch keys.
func (s *Set) symmetricDifferenceStore(dst string, other *Set) error {
	var (
		scratchUnion = s.freshKey()
		scratchInter = s.freshKey()
	)
	defer func() {
		_ = s.client.Delete(scratchUnion)
		_ = s.client.Delete(scratchInter)
	}()

	if err := translate(s.client.SetUnionStore(scratchUnion, s.key, other.key)); err != nil {
		return err
	}
	if err := translate(s.client.SetInterStore(scratchInter, s.key, other.key)); err != nil {
		return err
	}
	return translate(s.client.SetDiffStore(dst, scratchUnion, scratchInter))
}

// Copy materializes the current contents under a fresh key and returns a new
// adapter bound to it. Single server-side command (union with one operand).
func (s *Set) Copy() (*Set, error) {
	result := &Set{base: s.derive()}
	if err := translate(s.client.SetUnionStore(result.key, s.key)); err != nil {
		return nil, err
	}
	return result, nil
}

// --------------------------------------------------------------------------
// In-place algebra (result overwrites the receiver's key)
// --------------------------------------------------------------------------

// Update replaces this set with the union of itself and the operands.
// Single server-side command.
func (s *Set) Update(others ...*Set) error {
	if err := s.compatible(others...); err != nil {
		return err
	}
	return translate(s.client.SetUnionStore(s.key, s.operandKeys(others)...))
}

// IntersectionUpdate replaces this set with the intersection of itself and
// the operands. Single server-side command.
func (s *Set) IntersectionUpdate(others ...*Set) error {
	if err := s.compatible(others...); err != nil {
		return err
	}
	return translate(s.client.SetInterStore(s.key, s.operandKeys(others)...))
}

// DifferenceUpdate removes every operand member from this set. Single
// server-side command.
func (s *Set) DifferenceUpdate(others ...*Set) error {
	if err := s.compatible(others...); err != nil {
		return err
	}
	return translate(s.client.SetDiffStore(s.key, s.operandKeys(others)...))
}

// SymmetricDifferenceUpdate replaces this set with the symmetric difference
// of itself and other. NOT atomic, see SymmetricDifference.
func (s *Set) SymmetricDifferenceUpdate(other *Set) error {
	if err := s.compatible(other); err != nil {
		return err
	}
	return s.symmetricDifferenceStore(s.key, other)
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// IsSubset reports whether every member of this set is in other, computed by
// comparing the remote intersection cardinality against this set's own.
func (s *Set) IsSubset(other *Set) (bool, error) {
	if err := s.compatible(other); err != nil {
		return false, err
	}
	inter, err := s.client.SetInter(s.key, other.key)
	if err != nil {
		return false, translate(err)
	}
	card, err := s.Len()
	if err != nil {
		return false, err
	}
	return int64(len(inter)) == card, nil
}

// IsSuperset reports whether every member of other is in this set.
func (s *Set) IsSuperset(other *Set) (bool, error) {
	if err := s.compatible(other); err != nil {
		return false, err
	}
	return other.IsSubset(s)
}

// IsProperSubset reports whether this set is a subset of other and strictly
// smaller.
func (s *Set) IsProperSubset(other *Set) (bool, error) {
	ok, err := s.IsSubset(other)
	if err != nil || !ok {
		return false, err
	}
	return s.smallerThan(other)
}

// IsProperSuperset reports whether this set is a superset of other and
// strictly larger.
func (s *Set) IsProperSuperset(other *Set) (bool, error) {
	ok, err := s.IsSuperset(other)
	if err != nil || !ok {
		return false, err
	}
	return other.smallerThan(s)
}

func (s *Set) smallerThan(other *Set) (bool, error) {
	card, err := s.Len()
	if err != nil {
		return false, err
	}
	otherCard, err := other.Len()
	if err != nil {
		return false, err
	}
	return card < otherCard, nil
}

// IsDisjoint reports whether the two sets share no members.
func (s *Set) IsDisjoint(other *Set) (bool, error) {
	if err := s.compatible(other); err != nil {
		return false, err
	}
	inter, err := s.client.SetInter(s.key, other.key)
	if err != nil {
		return false, translate(err)
	}
	return len(inter) == 0, nil
}

// Equal reports whether both sets currently hold the same members. The
// cardinalities are compared first (cheap), then the remote intersection.
func (s *Set) Equal(other *Set) (bool, error) {
	if err := s.compatible(other); err != nil {
		return false, err
	}
	card, err := s.Len()
	if err != nil {
		return false, err
	}
	otherCard, err := other.Len()
	if err != nil {
		return false, err
	}
	if card != otherCard {
		return false, nil
	}
	return s.IsSubset(other)
}
