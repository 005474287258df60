package bitset

import (
	"math/bits"
	"strconv"
	"strings"
)

// Boxes is a bit-wise set of box indices, one bit per box, up to MaxBoxes.
type Boxes uint64

const (
	// EmptyBoxes is the empty set.
	EmptyBoxes Boxes = 0
	// FullBoxes has every bit set; callers mask with (1<<n)-1 for n<64 boxes.
	FullBoxes Boxes = ^Boxes(0)
)

func (b Boxes) Has(i BoxIdx) bool {
	return b&mask(i) != 0
}

func (b Boxes) Set(i BoxIdx) Boxes {
	return b | mask(i)
}

func (b Boxes) Clear(i BoxIdx) Boxes {
	return b &^ mask(i)
}

// PopCount returns the number of set indices.
func (b Boxes) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Next returns the lowest set index. Returns (0, false) if empty.
func (b Boxes) Next() (BoxIdx, bool) {
	if b == 0 {
		return 0, false
	}
	return BoxIdx(bits.TrailingZeros64(uint64(b))), true
}

// Iterate calls fn for every set index, in ascending order.
func (b Boxes) Iterate(fn func(i BoxIdx)) {
	for b != 0 {
		i := BoxIdx(bits.TrailingZeros64(uint64(b)))
		fn(i)
		b = b.Clear(i)
	}
}

func (b Boxes) Union(o Boxes) Boxes {
	return b | o
}

func (b Boxes) Intersect(o Boxes) Boxes {
	return b & o
}

func (b Boxes) Subtract(o Boxes) Boxes {
	return b &^ o
}

func (b Boxes) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	b.Iterate(func(i BoxIdx) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(int(i)))
	})
	sb.WriteByte('}')
	return sb.String()
}

func mask(i BoxIdx) Boxes {
	return Boxes(1) << uint(i)
}
