// Package common contains small helpers shared across client layers.
package common

// WipeByteArray zeroes a sensitive byte slice (passwords, keys) so the data
// does not linger in memory after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
