package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasKey    uint16 = 1 << 0
	hasDest   uint16 = 1 << 1
	hasField  uint16 = 1 << 2
	hasIndex  uint16 = 1 << 3
	hasStart  uint16 = 1 << 4
	hasStop   uint16 = 1 << 5
	hasValue  uint16 = 1 << 6
	hasValues uint16 = 1 << 7
	hasKeys   uint16 = 1 << 8
	hasFields uint16 = 1 << 9
	hasCount  uint16 = 1 << 10
	hasOk     uint16 = 1 << 11
	hasErr    uint16 = 1 << 12
	hasCode   uint16 = 1 << 13
	hasMeta   uint16 = 1 << 14
)

// header layout: 1 byte MsgType + 2 bytes flags
const headerSize = 3

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	result := make([]byte, b.sizeBytes(msg))
	result[0] = byte(msg.MsgType)

	var flags uint16
	pos := headerSize

	if msg.Key != "" {
		flags |= hasKey
		pos = writeString(result, pos, msg.Key)
	}
	if msg.Dest != "" {
		flags |= hasDest
		pos = writeString(result, pos, msg.Dest)
	}
	if msg.Field != "" {
		flags |= hasField
		pos = writeString(result, pos, msg.Field)
	}
	if msg.Index != 0 {
		flags |= hasIndex
		pos = writeInt64(result, pos, msg.Index)
	}
	if msg.Start != 0 {
		flags |= hasStart
		pos = writeInt64(result, pos, msg.Start)
	}
	if msg.Stop != 0 {
		flags |= hasStop
		pos = writeInt64(result, pos, msg.Stop)
	}
	if msg.Value != "" {
		flags |= hasValue
		pos = writeString(result, pos, msg.Value)
	}
	if msg.Values != nil {
		flags |= hasValues
		pos = writeStringSlice(result, pos, msg.Values)
	}
	if msg.Keys != nil {
		flags |= hasKeys
		pos = writeStringSlice(result, pos, msg.Keys)
	}
	if msg.Fields != nil {
		flags |= hasFields
		pos = writeStringMap(result, pos, msg.Fields)
	}
	if msg.Count != 0 {
		flags |= hasCount
		pos = writeInt64(result, pos, msg.Count)
	}
	if msg.Ok {
		flags |= hasOk
		result[pos] = 1
		pos++
	}
	if msg.Err != "" {
		flags |= hasErr
		pos = writeString(result, pos, msg.Err)
	}
	if msg.Code != client.RetCSuccess {
		flags |= hasCode
		result[pos] = byte(msg.Code)
		pos++
	}
	if msg.Meta != nil {
		flags |= hasMeta
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Meta)))
		pos += 4
		copy(result[pos:], msg.Meta)
		pos += len(msg.Meta)
	}

	binary.BigEndian.PutUint16(result[1:3], flags)
	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	if len(data) < headerSize {
		return fmt.Errorf("data too short for message header")
	}

	// Reset all fields so a reused message never leaks previous contents
	*msg = common.Message{MsgType: common.MessageType(data[0])}

	flags := binary.BigEndian.Uint16(data[1:3])
	pos := headerSize
	var err error

	if flags&hasKey != 0 {
		if msg.Key, pos, err = readString(data, pos, "key"); err != nil {
			return err
		}
	}
	if flags&hasDest != 0 {
		if msg.Dest, pos, err = readString(data, pos, "dest"); err != nil {
			return err
		}
	}
	if flags&hasField != 0 {
		if msg.Field, pos, err = readString(data, pos, "field"); err != nil {
			return err
		}
	}
	if flags&hasIndex != 0 {
		if msg.Index, pos, err = readInt64(data, pos, "index"); err != nil {
			return err
		}
	}
	if flags&hasStart != 0 {
		if msg.Start, pos, err = readInt64(data, pos, "start"); err != nil {
			return err
		}
	}
	if flags&hasStop != 0 {
		if msg.Stop, pos, err = readInt64(data, pos, "stop"); err != nil {
			return err
		}
	}
	if flags&hasValue != 0 {
		if msg.Value, pos, err = readString(data, pos, "value"); err != nil {
			return err
		}
	}
	if flags&hasValues != 0 {
		if msg.Values, pos, err = readStringSlice(data, pos, "values"); err != nil {
			return err
		}
	}
	if flags&hasKeys != 0 {
		if msg.Keys, pos, err = readStringSlice(data, pos, "keys"); err != nil {
			return err
		}
	}
	if flags&hasFields != 0 {
		if msg.Fields, pos, err = readStringMap(data, pos, "fields"); err != nil {
			return err
		}
	}
	if flags&hasCount != 0 {
		if msg.Count, pos, err = readInt64(data, pos, "count"); err != nil {
			return err
		}
	}
	if flags&hasOk != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for ok flag")
		}
		msg.Ok = data[pos] != 0
		pos++
	}
	if flags&hasErr != 0 {
		if msg.Err, pos, err = readString(data, pos, "err"); err != nil {
			return err
		}
	}
	if flags&hasCode != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for code")
		}
		msg.Code = client.RetCode(data[pos])
		pos++
	}
	if flags&hasMeta != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for meta length")
		}
		metaLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if pos+metaLen > len(data) {
			return fmt.Errorf("data too short for meta data")
		}
		msg.Meta = make([]byte, metaLen)
		copy(msg.Meta, data[pos:pos+metaLen])
		pos += metaLen
	}

	return nil
}

// --------------------------------------------------------------------------
// Write Helpers
// --------------------------------------------------------------------------

func writeString(buf []byte, pos int, s string) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(s)))
	pos += 4
	copy(buf[pos:], s)
	return pos + len(s)
}

func writeInt64(buf []byte, pos int, v int64) int {
	binary.BigEndian.PutUint64(buf[pos:pos+8], uint64(v))
	return pos + 8
}

func writeStringSlice(buf []byte, pos int, values []string) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(values)))
	pos += 4
	for _, v := range values {
		pos = writeString(buf, pos, v)
	}
	return pos
}

func writeStringMap(buf []byte, pos int, fields map[string]string) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(fields)))
	pos += 4
	for k, v := range fields {
		pos = writeString(buf, pos, k)
		pos = writeString(buf, pos, v)
	}
	return pos
}

// --------------------------------------------------------------------------
// Read Helpers
// --------------------------------------------------------------------------

func readString(data []byte, pos int, what string) (string, int, error) {
	if pos+4 > len(data) {
		return "", pos, fmt.Errorf("data too short for %s length", what)
	}
	n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	if pos+n > len(data) {
		return "", pos, fmt.Errorf("data too short for %s data", what)
	}
	return string(data[pos : pos+n]), pos + n, nil
}

func readInt64(data []byte, pos int, what string) (int64, int, error) {
	if pos+8 > len(data) {
		return 0, pos, fmt.Errorf("data too short for %s", what)
	}
	return int64(binary.BigEndian.Uint64(data[pos : pos+8])), pos + 8, nil
}

func readStringSlice(data []byte, pos int, what string) ([]string, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s count", what)
	}
	n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	// Cap the pre-allocation: every element needs at least its length prefix
	if n > (len(data)-pos)/4+1 {
		return nil, pos, fmt.Errorf("%s count exceeds remaining data", what)
	}
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, next, err := readString(data, pos, what)
		if err != nil {
			return nil, pos, err
		}
		values = append(values, v)
		pos = next
	}
	return values, pos, nil
}

func readStringMap(data []byte, pos int, what string) (map[string]string, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s count", what)
	}
	n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	if n > (len(data)-pos)/8+1 {
		return nil, pos, fmt.Errorf("%s count exceeds remaining data", what)
	}
	fields := make(map[string]string, n)
	for i := 0; i < n; i++ {
		k, next, err := readString(data, pos, what)
		if err != nil {
			return nil, pos, err
		}
		pos = next
		v, next, err := readString(data, pos, what)
		if err != nil {
			return nil, pos, err
		}
		pos = next
		fields[k] = v
	}
	return fields, pos, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := headerSize

	if msg.Key != "" {
		size += 4 + len(msg.Key)
	}
	if msg.Dest != "" {
		size += 4 + len(msg.Dest)
	}
	if msg.Field != "" {
		size += 4 + len(msg.Field)
	}
	if msg.Index != 0 {
		size += 8
	}
	if msg.Start != 0 {
		size += 8
	}
	if msg.Stop != 0 {
		size += 8
	}
	if msg.Value != "" {
		size += 4 + len(msg.Value)
	}
	if msg.Values != nil {
		size += 4
		for _, v := range msg.Values {
			size += 4 + len(v)
		}
	}
	if msg.Keys != nil {
		size += 4
		for _, k := range msg.Keys {
			size += 4 + len(k)
		}
	}
	if msg.Fields != nil {
		size += 4
		for k, v := range msg.Fields {
			size += 4 + len(k) + 4 + len(v)
		}
	}
	if msg.Count != 0 {
		size += 8
	}
	if msg.Ok {
		size += 1
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.Code != client.RetCSuccess {
		size += 1
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}
