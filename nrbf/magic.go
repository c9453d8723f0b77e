package nrbf

// magicHeaderLen is the number of leading bytes LooksLikeNRBF inspects:
// the SerializedStreamHeader tag byte, its four int32 fields, and the
// distinctive all-zero-but-one-field shape the standard MS-NRBF header
// exhibits for a freshly constructed stream.
const magicHeaderLen = 17

// LooksLikeNRBF reports whether buffer begins with a plausible NRBF
// stream header: at least 17 bytes, a SerializedStreamHeader tag (0x00),
// and major/minor version 1.0 in bytes 9-16. The rootId and headerId
// fields (bytes 1-8) are not inspected.
func LooksLikeNRBF(buffer []byte) bool {
	if len(buffer) < magicHeaderLen {
		return false
	}
	if buffer[0] != 0x00 {
		return false
	}
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i, b := range want {
		if buffer[9+i] != b {
			return false
		}
	}
	return true
}
