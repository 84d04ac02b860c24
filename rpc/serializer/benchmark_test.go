package serializer

import (
	"testing"

	"github.com/ValentinKolb/rDS/rpc/common"
)

// benchmarkMessages returns a set of messages for targeted benchmarking
func benchmarkMessages() map[string]common.Message {
	largeValues := make([]string, 128)
	for i := range largeValues {
		largeValues[i] = "element-payload-for-benchmarking"
	}
	largeFields := make(map[string]string, 64)
	for i := 0; i < 64; i++ {
		largeFields[string(rune('a'+i%26))+"-field"] = "field-value-for-benchmarking"
	}

	return map[string]common.Message{
		"Empty": {
			MsgType: common.MsgTSuccess,
		},
		"KeyOnly": {
			MsgType: common.MsgTListLen,
			Key:     "medium-length-key-for-testing",
		},
		"SmallPush": {
			MsgType: common.MsgTListPush,
			Key:     "key",
			Values:  []string{"v"},
		},
		"LargePush": {
			MsgType: common.MsgTListPush,
			Key:     "key",
			Values:  largeValues,
		},
		"AlgebraStore": {
			MsgType: common.MsgTSetUnionStore,
			Dest:    "result-key",
			Keys:    []string{"operand-a", "operand-b", "operand-c"},
		},
		"HashGetAllResponse": {
			MsgType: common.MsgTHashGetAll,
			Fields:  largeFields,
		},
		"RangeRequest": {
			MsgType: common.MsgTListRange,
			Key:     "key",
			Start:   -100,
			Stop:    -1,
		},
		"ErrorMessage": {
			MsgType: common.MsgTError,
			Err:     "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		},
	}
}

// BenchmarkSerialize measures serialization throughput per message shape
func BenchmarkSerialize(b *testing.B) {
	for name, factory := range testSerializers {
		for msgName, msg := range benchmarkMessages() {
			b.Run(name+"/"+msgName, func(b *testing.B) {
				serializer := factory()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := serializer.Serialize(msg); err != nil {
						b.Fatalf("Failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize measures deserialization throughput per message shape
func BenchmarkDeserialize(b *testing.B) {
	for name, factory := range testSerializers {
		for msgName, msg := range benchmarkMessages() {
			b.Run(name+"/"+msgName, func(b *testing.B) {
				serializer := factory()
				data, err := serializer.Serialize(msg)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}
				b.ReportAllocs()
				var result common.Message
				for i := 0; i < b.N; i++ {
					if err := serializer.Deserialize(data, &result); err != nil {
						b.Fatalf("Failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}
