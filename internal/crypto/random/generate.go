package random

import (
	"crypto/rand"
	"fmt"
)

// Returns size bytes read from the system CSPRNG
func Bytes(size int) (out []byte, err error) {
	if size < 0 {
		err = fmt.Errorf("invalid random byte count %d", size)
		return
	}
	out = make([]byte, size)
	_, err = rand.Read(out)
	if err != nil {
		out = nil
		err = fmt.Errorf("failed to read random bytes: %w", err)
		return
	}
	return
}

// Fixes any insecure patterns found in slice input.
// Insecure can mean: empty, nil, all identical values.
// Modifies slice directly so all references are updated.
func PopulateEmptySlice(slice *[]byte, size int) (err error) {
	if len(*slice) == 0 {
		*slice = make([]byte, size)
	}

	if isAllIdentical(*slice) {
		_, err = rand.Read(*slice)
		if err != nil {
			err = fmt.Errorf("failed to populate slice with pseudo random data: %w", err)
			return
		}
	}
	return
}

// Checks if all bytes in the array are the same (all zero included)
func isAllIdentical(slice []byte) bool {
	if len(slice) == 0 {
		return true
	}
	first := slice[0]
	for _, b := range slice[1:] {
		if b != first {
			return false
		}
	}
	return true
}
