package serializer

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Push request
		{
			MsgType: common.MsgTListPush,
			Key:     "test-list",
			Values:  []string{"a", "b", "c"},
		},

		// Index request with a negative index
		{
			MsgType: common.MsgTListIndex,
			Key:     "test-list",
			Index:   -1,
		},

		// Range request with negative bounds
		{
			MsgType: common.MsgTListRange,
			Key:     "test-list",
			Start:   -3,
			Stop:    -1,
		},

		// Remove request with a count
		{
			MsgType: common.MsgTListRemove,
			Key:     "test-list",
			Count:   2,
			Value:   "target",
		},

		// Algebra store request
		{
			MsgType: common.MsgTSetUnionStore,
			Dest:    "result-key",
			Keys:    []string{"a", "b", "c"},
		},

		// Hash set request
		{
			MsgType: common.MsgTHashSet,
			Key:     "test-hash",
			Field:   "name",
			Value:   "alice",
		},

		// HashGetAll response
		{
			MsgType: common.MsgTHashGetAll,
			Fields:  map[string]string{"name": "alice", "age": "30"},
		},

		// Value response with found flag
		{
			MsgType: common.MsgTHashGet,
			Value:   "alice",
			Ok:      true,
		},

		// Typed error response
		{
			MsgType: common.MsgTSetCard,
			Err:     "key holds a list, not a set",
			Code:    client.RetCWrongType,
		},

		// Protocol error response
		{
			MsgType: common.MsgTError,
			Err:     "test error message",
			Code:    client.RetCInternalError,
		},

		// Message with meta payload
		{
			MsgType: common.MsgTSuccess,
			Meta:    []byte("test-meta-data"),
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			// Test each message type (don't test MsgTUnknown since this should raise an error)
			for msgType := common.MsgTSuccess; msgType <= common.MsgTKeyExists; msgType++ {
				msg := common.Message{MsgType: msgType}

				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Check type
				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestBinaryCorruptInput ensures the binary deserializer rejects truncated or
// inconsistent data instead of panicking
func TestBinaryCorruptInput(t *testing.T) {
	serializer := NewBinarySerializer()

	// A valid message to truncate
	data, err := serializer.Serialize(common.Message{
		MsgType: common.MsgTListPush,
		Key:     "test-list",
		Values:  []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	var msg common.Message
	for cut := 0; cut < len(data); cut++ {
		if err := serializer.Deserialize(data[:cut], &msg); err == nil && cut < 3 {
			t.Errorf("expected error for %d-byte input", cut)
		}
	}

	// Flags announcing fields the payload doesn't contain
	corrupt := []byte{byte(common.MsgTListPush), 0xFF, 0xFF}
	if err := serializer.Deserialize(corrupt, &msg); err == nil {
		t.Errorf("expected error for flags without payload")
	}

	// Slice count larger than the remaining data
	corrupt = append([]byte{byte(common.MsgTListPush), 0x00, 0x80}, 0xFF, 0xFF, 0xFF, 0xFF)
	if err := serializer.Deserialize(corrupt, &msg); err == nil {
		t.Errorf("expected error for oversized slice count")
	}
}

// TestBinaryReuse ensures a reused target message doesn't leak fields from a
// previous deserialization
func TestBinaryReuse(t *testing.T) {
	serializer := NewBinarySerializer()

	full := common.Message{
		MsgType: common.MsgTHashSet,
		Key:     "k",
		Field:   "f",
		Value:   "v",
	}
	empty := common.Message{MsgType: common.MsgTSuccess}

	data1, _ := serializer.Serialize(full)
	data2, _ := serializer.Serialize(empty)

	var msg common.Message
	if err := serializer.Deserialize(data1, &msg); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}
	if err := serializer.Deserialize(data2, &msg); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}
	if !reflect.DeepEqual(msg, empty) {
		t.Errorf("reused message leaks old fields: %+v", msg)
	}
}
