// pkg/mvt/wire.go - minimal protobuf wire codec for the MVT schema
//
// The Tile/Layer/Feature/Value messages are small and fixed enough that
// hand-rolling their wire encoding is clearer than generating and
// maintaining a .pb.go for them; gogo/protobuf's varint primitives are
// reused rather than reimplemented.
package mvt

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
)

// wire types used by this codec.
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

// zigzagEncode64 / zigzagDecode64 implement protobuf's sint64 zigzag
// coding, distinct from the 32-bit zigzag the geometry command stream
// uses.
func zigzagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// tag packs a field number and wire type into a protobuf field tag.
func tag(field int, wireType int) uint64 {
	return uint64(field)<<3 | uint64(wireType)
}

type wireWriter struct {
	buf []byte
}

func (w *wireWriter) bytes() []byte { return w.buf }

// putVarint appends v to the buffer using protobuf base-128 varint coding.
func (w *wireWriter) putVarint(v uint64) {
	w.buf = append(w.buf, proto.EncodeVarint(v)...)
}

func (w *wireWriter) putTag(field int, wireType int) {
	w.putVarint(tag(field, wireType))
}

func (w *wireWriter) putUint32Field(field int, v uint32) {
	w.putTag(field, wireVarint)
	w.putVarint(uint64(v))
}

func (w *wireWriter) putInt64Field(field int, v int64) {
	w.putTag(field, wireVarint)
	w.putVarint(uint64(v))
}

func (w *wireWriter) putVarintField(field int, v uint64) {
	w.putTag(field, wireVarint)
	w.putVarint(v)
}

func (w *wireWriter) putBoolField(field int, v bool) {
	w.putTag(field, wireVarint)
	if v {
		w.putVarint(1)
	} else {
		w.putVarint(0)
	}
}

func (w *wireWriter) putStringField(field int, v string) {
	w.putTag(field, wireBytes)
	w.putVarint(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *wireWriter) putBytesField(field int, v []byte) {
	w.putTag(field, wireBytes)
	w.putVarint(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *wireWriter) putFixed32Field(field int, v uint32) {
	w.putTag(field, wireFixed32)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *wireWriter) putFixed64Field(field int, v uint64) {
	w.putTag(field, wireFixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// putPackedUint32Field writes a length-delimited, packed-varint field, the
// wire representation used for both a feature's tags and its geometry
// command stream.
func (w *wireWriter) putPackedUint32Field(field int, vs []uint32) {
	w.putTag(field, wireBytes)
	inner := &wireWriter{}
	for _, v := range vs {
		inner.putVarint(uint64(v))
	}
	w.putVarint(uint64(len(inner.buf)))
	w.buf = append(w.buf, inner.buf...)
}

// putMessageField writes a length-delimited embedded message field.
func (w *wireWriter) putMessageField(field int, payload []byte) {
	w.putTag(field, wireBytes)
	w.putVarint(uint64(len(payload)))
	w.buf = append(w.buf, payload...)
}

// wireReader sequentially decodes tag/value pairs from a protobuf byte
// stream. It never mutates the input slice and holds only a read cursor.
type wireReader struct {
	buf []byte
	pos int
}

func newWireReader(buf []byte) *wireReader {
	return &wireReader{buf: buf}
}

func (r *wireReader) done() bool { return r.pos >= len(r.buf) }

func (r *wireReader) readVarint() (uint64, error) {
	v, n := proto.DecodeVarint(r.buf[r.pos:])
	if n == 0 {
		return 0, newParseError("truncated varint", nil)
	}
	r.pos += n
	return v, nil
}

func (r *wireReader) readTag() (field int, wireType int, err error) {
	v, err := r.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), int(v & 0x7), nil
}

func (r *wireReader) readBytes() ([]byte, error) {
	n, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	end := r.pos + int(n)
	if end < r.pos || end > len(r.buf) {
		return nil, newParseError("length-delimited field overruns buffer", nil)
	}
	out := r.buf[r.pos:end]
	r.pos = end
	return out, nil
}

func (r *wireReader) readFixed32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, newParseError("truncated fixed32", nil)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *wireReader) readFixed64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, newParseError("truncated fixed64", nil)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *wireReader) readPackedUint32() ([]uint32, error) {
	payload, err := r.readBytes()
	if err != nil {
		return nil, err
	}
	inner := newWireReader(payload)
	var out []uint32
	for !inner.done() {
		v, err := inner.readVarint()
		if err != nil {
			return nil, err
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

// skipField discards the value following a tag of the given wire type, for
// unknown fields the parser must tolerate per forward-compatibility.
func (r *wireReader) skipField(wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := r.readVarint()
		return err
	case wireBytes:
		_, err := r.readBytes()
		return err
	case wireFixed32:
		_, err := r.readFixed32()
		return err
	case wireFixed64:
		_, err := r.readFixed64()
		return err
	default:
		return newParseError("unsupported wire type during skip", nil)
	}
}
