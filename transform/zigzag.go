package transform

// ZigzagIdx is the standard JPEG zig-zag table over an 8x8 block:
// ZigzagIdx[i] is the zig-zag position of row-major index i. Ported from
// compression/dwa.go's invZigzag table in the teacher repo, which carries
// the identical sequence.
var ZigzagIdx = [64]int{
	0, 1, 5, 6, 14, 15, 27, 28,
	2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43,
	9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54,
	20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61,
	35, 36, 48, 49, 57, 58, 62, 63,
}

// ZigzagPos is the inverse of ZigzagIdx: ZigzagPos[ZigzagIdx[k]] == k. The
// forward flatten of a row-major block reads through ZigzagPos, and
// scattering a zig-zag vector back to row-major order writes through it.
var ZigzagPos [64]int

func init() {
	for k, idx := range ZigzagIdx {
		ZigzagPos[idx] = k
	}
}

// ToZigzag permutes a row-major 64-element block into zig-zag order:
// out[k] = rowMajor[ZigzagPos[k]].
func ToZigzag(rowMajor [64]float64) [64]float64 {
	var out [64]float64
	for k := 0; k < 64; k++ {
		out[k] = rowMajor[ZigzagPos[k]]
	}
	return out
}

// FromZigzag scatters a zig-zag ordered 64-element vector back into
// row-major order: out[ZigzagPos[k]] = zz[k]. This is the exact inverse of
// ToZigzag.
func FromZigzag(zz [64]float64) [64]float64 {
	var out [64]float64
	for k := 0; k < 64; k++ {
		out[ZigzagPos[k]] = zz[k]
	}
	return out
}
