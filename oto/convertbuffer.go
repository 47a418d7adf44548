package oto

import (
	"encoding/binary"
	"math"
)

// FloatBufferToLE writes src into dst as 32-bit little-endian floats. dst
// must hold at least 4*len(src) bytes.
func FloatBufferToLE(dst []byte, src []float32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
