package transform

// BlockSize is the fixed tile edge length used throughout the codec.
const BlockSize = 8

// PaddedDims returns the smallest multiple of BlockSize at least as large
// as h and w, per spec.md §4.4.
func PaddedDims(h, w int) (hp, wp int) {
	hp = ((h + BlockSize - 1) / BlockSize) * BlockSize
	wp = ((w + BlockSize - 1) / BlockSize) * BlockSize
	return
}

// BlocksPerDim returns ceil(n / BlockSize).
func BlocksPerDim(n int) int {
	return (n + BlockSize - 1) / BlockSize
}

// Blockify tiles a row-major (h, w) plane into 8x8 blocks, zero-padding the
// right/bottom edges, and emits them in row-major (i, j) order as spec.md
// §4.4 requires. The returned blocksPerRow/blocksPerCol describe the tiling
// grid and must be reused by Unblockify for the inverse.
func Blockify(plane []float64, h, w int) (blocks []Block, blocksPerCol, blocksPerRow int) {
	hp, wp := PaddedDims(h, w)
	blocksPerCol = hp / BlockSize
	blocksPerRow = wp / BlockSize

	blocks = make([]Block, 0, blocksPerCol*blocksPerRow)
	for bi := 0; bi < blocksPerCol; bi++ {
		for bj := 0; bj < blocksPerRow; bj++ {
			var blk Block
			for y := 0; y < BlockSize; y++ {
				py := bi*BlockSize + y
				if py >= h {
					continue
				}
				rowBase := py * w
				blkBase := y * BlockSize
				for x := 0; x < BlockSize; x++ {
					px := bj*BlockSize + x
					if px >= w {
						continue
					}
					blk[blkBase+x] = plane[rowBase+px]
				}
			}
			blocks = append(blocks, blk)
		}
	}
	return blocks, blocksPerCol, blocksPerRow
}

// Unblockify recomposes blocks (emitted in the row-major order Blockify
// defines) into a padded (blocksPerCol*8, blocksPerRow*8) plane, then crops
// to the top-left (h, w) region.
func Unblockify(blocks []Block, h, w, blocksPerCol, blocksPerRow int) []float64 {
	hp := blocksPerCol * BlockSize
	wp := blocksPerRow * BlockSize
	padded := make([]float64, hp*wp)

	idx := 0
	for bi := 0; bi < blocksPerCol; bi++ {
		for bj := 0; bj < blocksPerRow; bj++ {
			blk := blocks[idx]
			idx++
			for y := 0; y < BlockSize; y++ {
				py := bi*BlockSize + y
				rowBase := py * wp
				blkBase := y * BlockSize
				for x := 0; x < BlockSize; x++ {
					px := bj*BlockSize + x
					padded[rowBase+px] = blk[blkBase+x]
				}
			}
		}
	}

	out := make([]float64, h*w)
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], padded[y*wp:y*wp+w])
	}
	return out
}
