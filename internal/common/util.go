package common

// WipeByteArray zeroes the buffer in place. Used to scrub passwords from
// memory as soon as they have been submitted.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
