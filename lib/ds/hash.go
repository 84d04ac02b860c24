package ds

import (
	"github.com/ValentinKolb/rDS/lib/client"
)

// Hash exposes field-to-value mapping semantics over a remote hash key.
// Single-field access (Get, SetField, Delete) maps directly onto one atomic
// store command; every bulk operation (Pop, PopItem, SetDefault, Update,
// Copy) is composed from several commands and is NOT atomic across them.
type Hash struct {
	base
}

// NewHash binds a hash adapter to the given remote key.
func NewHash(c client.IStructClient, key string, opts ...Option) (*Hash, error) {
	b, err := newBase(c, key, opts...)
	if err != nil {
		return nil, err
	}
	return &Hash{base: b}, nil
}

// NewHashFromKeys binds a hash adapter to the given remote key and sets every
// listed field to value. The per-field writes are NOT atomic as a group.
func NewHashFromKeys(c client.IStructClient, key string, fields []string, value string, opts ...Option) (*Hash, error) {
	h, err := NewHash(c, key, opts...)
	if err != nil {
		return nil, err
	}
	for _, field := range fields {
		if err := h.SetField(field, value); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// --------------------------------------------------------------------------
// Atomic operations (single store command)
// --------------------------------------------------------------------------

// Get returns the value of field. Returns a KindKey error if the field is
// absent.
func (h *Hash) Get(field string) (string, error) {
	v, ok, err := h.client.HashGet(h.key, field)
	if err != nil {
		return "", translate(err)
	}
	if !ok {
		return "", newErrorf(KindKey, "field %q not in hash %q", field, h.key)
	}
	return v, nil
}

// GetDefault returns the value of field, or def if the field is absent.
func (h *Hash) GetDefault(field, def string) (string, error) {
	v, ok, err := h.client.HashGet(h.key, field)
	if err != nil {
		return "", translate(err)
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// SetField assigns value to field, overwriting any previous value.
func (h *Hash) SetField(field, value string) error {
	return translate(h.client.HashSet(h.key, field, value))
}

// Delete removes field. Returns a KindKey error if the field was absent.
func (h *Hash) Delete(field string) error {
	deleted, err := h.client.HashDel(h.key, field)
	if err != nil {
		return translate(err)
	}
	if !deleted {
		return newErrorf(KindKey, "field %q not in hash %q", field, h.key)
	}
	return nil
}

// Len returns the current number of fields, 0 if the key is absent.
func (h *Hash) Len() (int64, error) {
	n, err := h.client.HashLen(h.key)
	return n, translate(err)
}

// Contains reports whether field is currently present.
func (h *Hash) Contains(field string) (bool, error) {
	_, ok, err := h.client.HashGet(h.key, field)
	return ok, translate(err)
}

// Keys returns the current field names. Snapshot semantics: the result
// reflects the store at fetch time and is not updated afterwards.
func (h *Hash) Keys() ([]string, error) {
	fields, err := h.client.HashKeys(h.key)
	return fields, translate(err)
}

// Values returns the current field values, snapshot semantics as Keys.
func (h *Hash) Values() ([]string, error) {
	values, err := h.client.HashValues(h.key)
	return values, translate(err)
}

// Items returns a snapshot of all field-value pairs.
func (h *Hash) Items() (map[string]string, error) {
	fields, err := h.client.HashGetAll(h.key)
	return fields, translate(err)
}

// --------------------------------------------------------------------------
// Compound operations (multiple store commands, non-atomic)
// --------------------------------------------------------------------------

// Pop removes field and returns its value. Returns a KindKey error if the
// field is absent. Get and delete are two separate commands, so a concurrent
// writer can interleave between them.
func (h *Hash) Pop(field string) (string, error) {
	v, err := h.Get(field)
	if err != nil {
		return "", err
	}
	if _, err := h.client.HashDel(h.key, field); err != nil {
		return "", translate(err)
	}
	return v, nil
}

// PopDefault removes field and returns its value, or def if the field is
// absent. Same atomicity caveat as Pop.
func (h *Hash) PopDefault(field, def string) (string, error) {
	v, ok, err := h.client.HashGet(h.key, field)
	if err != nil {
		return "", translate(err)
	}
	if !ok {
		return def, nil
	}
	if _, err := h.client.HashDel(h.key, field); err != nil {
		return "", translate(err)
	}
	return v, nil
}

// PopItem removes and returns an arbitrary field-value pair. Returns a
// KindKey error if the hash is empty. Snapshot plus delete, NOT atomic.
func (h *Hash) PopItem() (string, string, error) {
	items, err := h.Items()
	if err != nil {
		return "", "", err
	}
	for field, value := range items {
		if _, err := h.client.HashDel(h.key, field); err != nil {
			return "", "", translate(err)
		}
		return field, value, nil
	}
	return "", "", newErrorf(KindKey, "pop from empty hash %q", h.key)
}

// SetDefault returns the value of field if present; otherwise it assigns def
// to field and returns def. Check and set are two commands, NOT atomic.
func (h *Hash) SetDefault(field, def string) (string, error) {
	v, ok, err := h.client.HashGet(h.key, field)
	if err != nil {
		return "", translate(err)
	}
	if ok {
		return v, nil
	}
	if err := h.SetField(field, def); err != nil {
		return "", err
	}
	return def, nil
}

// Update copies every field-value pair of other into this hash, overwriting
// existing fields. The operand is materialized first, so both hashes may
// live on different clients. One command per field, NOT atomic as a group.
func (h *Hash) Update(other *Hash) error {
	if other == nil {
		return NewError(KindType, "operand hash must not be nil")
	}
	items, err := other.Items()
	if err != nil {
		return err
	}
	return h.UpdateValues(items)
}

// UpdateValues assigns every pair of values to this hash, overwriting
// existing fields. One command per field, NOT atomic as a group.
func (h *Hash) UpdateValues(values map[string]string) error {
	for field, value := range values {
		if err := h.SetField(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Copy materializes the current contents under a fresh key and returns a new
// adapter bound to it. NOT atomic across the read and the per-field writes.
func (h *Hash) Copy() (*Hash, error) {
	items, err := h.Items()
	if err != nil {
		return nil, err
	}
	cp := &Hash{base: h.derive()}
	if err := cp.UpdateValues(items); err != nil {
		return nil, err
	}
	return cp, nil
}
