package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ValentinKolb/rDS/lib/client"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key   string `json:"key,omitempty"`   // Primary key of the addressed structure
	Dest  string `json:"dest,omitempty"`  // Destination key for set algebra store commands
	Field string `json:"field,omitempty"` // Hash field name

	Index int64 `json:"index,omitempty"` // Used for: ListIndex, ListSet
	Start int64 `json:"start,omitempty"` // Used for: ListRange, ListTrim
	Stop  int64 `json:"stop,omitempty"`  // Used for: ListRange, ListTrim

	Value  string            `json:"value,omitempty"`  // Single element or field value
	Values []string          `json:"values,omitempty"` // Element lists (push payloads, range/members results)
	Keys   []string          `json:"keys,omitempty"`   // Operand keys for set algebra
	Fields map[string]string `json:"fields,omitempty"` // Used for: HashGetAll response

	// Count is the removal count on a ListRemove request and carries lengths,
	// cardinalities and removed counts on responses.
	Count int64 `json:"count,omitempty"`

	// Response only fields
	Ok   bool           `json:"ok,omitempty"`   // Found / removed / exists flag
	Err  string         `json:"err,omitempty"`  // Empty if no error, otherwise contains the error message
	Code client.RetCode `json:"code,omitempty"` // Error category, so typed errors survive the wire

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, can be used for additional Adapters
}

// --------------------------------------------------------------------------
// Request Factory Functions (shaped by argument set, not by operation)
// --------------------------------------------------------------------------

// NewKeyRequest creates a request addressing a single key (pops, lengths,
// members, delete, exists).
func NewKeyRequest(msgType MessageType, key string) *Message {
	return &Message{MsgType: msgType, Key: key}
}

// NewValuesRequest creates a request carrying a key and an element payload
// (ListPush, SetAdd).
func NewValuesRequest(msgType MessageType, key string, values []string) *Message {
	return &Message{MsgType: msgType, Key: key, Values: values}
}

// NewValueRequest creates a request carrying a key and a single element
// (SetRemove, SetIsMember).
func NewValueRequest(msgType MessageType, key, value string) *Message {
	return &Message{MsgType: msgType, Key: key, Value: value}
}

// NewIndexRequest creates a request addressing one list position (ListIndex).
func NewIndexRequest(msgType MessageType, key string, index int64) *Message {
	return &Message{MsgType: msgType, Key: key, Index: index}
}

// NewIndexValueRequest creates a request writing one list position (ListSet).
func NewIndexValueRequest(msgType MessageType, key string, index int64, value string) *Message {
	return &Message{MsgType: msgType, Key: key, Index: index, Value: value}
}

// NewRangeRequest creates a request addressing an inclusive list range
// (ListRange, ListTrim).
func NewRangeRequest(msgType MessageType, key string, start, stop int64) *Message {
	return &Message{MsgType: msgType, Key: key, Start: start, Stop: stop}
}

// NewRemoveRequest creates a ListRemove request.
func NewRemoveRequest(key string, count int64, value string) *Message {
	return &Message{MsgType: MsgTListRemove, Key: key, Count: count, Value: value}
}

// NewStoreRequest creates a set algebra request writing its result to dest
// (SetUnionStore, SetInterStore, SetDiffStore).
func NewStoreRequest(msgType MessageType, dest string, keys []string) *Message {
	return &Message{MsgType: msgType, Dest: dest, Keys: keys}
}

// NewKeysRequest creates a read-only multi-key request (SetInter).
func NewKeysRequest(msgType MessageType, keys []string) *Message {
	return &Message{MsgType: msgType, Keys: keys}
}

// NewFieldRequest creates a request addressing one hash field (HashGet,
// HashDel).
func NewFieldRequest(msgType MessageType, key, field string) *Message {
	return &Message{MsgType: msgType, Key: key, Field: field}
}

// NewFieldValueRequest creates a HashSet request.
func NewFieldValueRequest(key, field, value string) *Message {
	return &Message{MsgType: MsgTHashSet, Key: key, Field: field, Value: value}
}

// --------------------------------------------------------------------------
// Response Factory Functions
// --------------------------------------------------------------------------

// NewAckResponse creates a response carrying only success or failure.
func NewAckResponse(msgType MessageType, err error) *Message {
	return withError(&Message{MsgType: msgType}, err)
}

// NewValueResponse creates a response carrying one element and a found flag.
func NewValueResponse(msgType MessageType, value string, ok bool, err error) *Message {
	return withError(&Message{MsgType: msgType, Value: value, Ok: ok}, err)
}

// NewValuesResponse creates a response carrying an element list.
func NewValuesResponse(msgType MessageType, values []string, err error) *Message {
	return withError(&Message{MsgType: msgType, Values: values}, err)
}

// NewCountResponse creates a response carrying a length, cardinality or
// removed count.
func NewCountResponse(msgType MessageType, count int64, err error) *Message {
	return withError(&Message{MsgType: msgType, Count: count}, err)
}

// NewOkResponse creates a response carrying a boolean result.
func NewOkResponse(msgType MessageType, ok bool, err error) *Message {
	return withError(&Message{MsgType: msgType, Ok: ok}, err)
}

// NewFieldsResponse creates a HashGetAll response.
func NewFieldsResponse(fields map[string]string, err error) *Message {
	return withError(&Message{MsgType: MsgTHashGetAll, Fields: fields}, err)
}

// NewErrorResponse creates a protocol-level error response (unknown message
// type, dispatch failure).
func NewErrorResponse(err string) *Message {
	return &Message{MsgType: MsgTError, Err: err, Code: client.RetCInternalError}
}

// withError stamps err onto msg, preserving the client error category when
// one is attached.
func withError(msg *Message, err error) *Message {
	if err == nil {
		return msg
	}
	var cErr *client.Error
	if errors.As(err, &cErr) {
		msg.Err = cErr.Msg
		msg.Code = cErr.Code
		return msg
	}
	msg.Err = err.Error()
	msg.Code = client.RetCInternalError
	return msg
}

// RemoteErr reconstructs the error a response carries, nil if none. The
// rebuilt error keeps its category so client.HasCode works across the wire.
func (m *Message) RemoteErr() error {
	if m.Err == "" {
		return nil
	}
	return client.NewError(m.Code, m.Err)
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for msgType, name := range msgTypeNames {
		if name == s {
			*t = msgType
			return nil
		}
	}
	return fmt.Errorf("unknown message type: %s", s)
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates a protocol-level error occurred

	// List operations

	MsgTListPush
	MsgTListPopHead
	MsgTListPopTail
	MsgTListIndex
	MsgTListSet
	MsgTListRange
	MsgTListRemove
	MsgTListTrim
	MsgTListLen

	// Set operations

	MsgTSetAdd
	MsgTSetRemove
	MsgTSetIsMember
	MsgTSetMembers
	MsgTSetCard
	MsgTSetUnionStore
	MsgTSetInterStore
	MsgTSetDiffStore
	MsgTSetInter
	MsgTSetPop

	// Hash operations

	MsgTHashSet
	MsgTHashGet
	MsgTHashDel
	MsgTHashGetAll
	MsgTHashKeys
	MsgTHashValues
	MsgTHashLen

	// Key operations

	MsgTKeyDelete
	MsgTKeyExists
)

var msgTypeNames = map[MessageType]string{
	MsgTSuccess:       "success",
	MsgTError:         "error",
	MsgTListPush:      "lpush",
	MsgTListPopHead:   "lpophead",
	MsgTListPopTail:   "lpoptail",
	MsgTListIndex:     "lindex",
	MsgTListSet:       "lset",
	MsgTListRange:     "lrange",
	MsgTListRemove:    "lrem",
	MsgTListTrim:      "ltrim",
	MsgTListLen:       "llen",
	MsgTSetAdd:        "sadd",
	MsgTSetRemove:     "srem",
	MsgTSetIsMember:   "sismember",
	MsgTSetMembers:    "smembers",
	MsgTSetCard:       "scard",
	MsgTSetUnionStore: "sunionstore",
	MsgTSetInterStore: "sinterstore",
	MsgTSetDiffStore:  "sdiffstore",
	MsgTSetInter:      "sinter",
	MsgTSetPop:        "spop",
	MsgTHashSet:       "hset",
	MsgTHashGet:       "hget",
	MsgTHashDel:       "hdel",
	MsgTHashGetAll:    "hgetall",
	MsgTHashKeys:      "hkeys",
	MsgTHashValues:    "hvals",
	MsgTHashLen:       "hlen",
	MsgTKeyDelete:     "del",
	MsgTKeyExists:     "exists",
}
