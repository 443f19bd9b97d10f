// pkg/mvt/zigzag.go - zigzag integer mapping used by the MVT command stream
package mvt

// zigzagEncode maps a signed 32-bit integer onto the unsigned range so that
// small-magnitude values (positive or negative) stay small after encoding.
// This is the protobuf-standard zigzag transform.
func zigzagEncode(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// zigzagDecode is the inverse of zigzagEncode.
func zigzagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}
