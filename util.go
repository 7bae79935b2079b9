package eccpem

// padWithZeros left-pads b with zero bytes to the given size. If b is
// already at least size bytes long, it is returned unchanged.
func padWithZeros(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}
