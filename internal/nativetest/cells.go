package nativetest

import "github.com/wippyai/h3-runtime/native"

const (
	modeCell = 1
	modeEdge = 2

	modeOffset  = 59
	dirOffset   = 56
	resOffset   = 52
	baseOffset  = 45
	digitBits   = 3
	digitMask   = 7
	unusedDigit = 7
)

// MakeCell assembles a cell index at res from a base cell and the digits for
// resolutions 1..res. Missing digits are zero.
func MakeCell(res, base int, digits ...int) native.Cell {
	h := uint64(modeCell)<<modeOffset | uint64(res)<<resOffset | uint64(base)<<baseOffset
	for r := 1; r <= native.MaxResolution; r++ {
		d := unusedDigit
		if r <= res {
			d = 0
			if r-1 < len(digits) {
				d = digits[r-1]
			}
		}
		h = setDigit(h, r, d)
	}
	return native.Cell(h)
}

func digitShift(r int) uint {
	return uint((native.MaxResolution - r) * digitBits)
}

func getDigit(h uint64, r int) int {
	return int((h >> digitShift(r)) & digitMask)
}

func setDigit(h uint64, r int, d int) uint64 {
	s := digitShift(r)
	return h&^(uint64(digitMask)<<s) | uint64(d)<<s
}

func mode(h native.Cell) int {
	return int((uint64(h) >> modeOffset) & 0xf)
}

func resolution(h native.Cell) int {
	return int((uint64(h) >> resOffset) & 0xf)
}

func baseCell(h native.Cell) int {
	return int((uint64(h) >> baseOffset) & 0x7f)
}

func withRes(h native.Cell, res int) native.Cell {
	v := uint64(h)&^(uint64(0xf)<<resOffset) | uint64(res)<<resOffset
	return native.Cell(v)
}

func parent(h native.Cell, res int) native.Cell {
	v := uint64(withRes(h, res))
	for r := res + 1; r <= native.MaxResolution; r++ {
		v = setDigit(v, r, unusedDigit)
	}
	return native.Cell(v)
}

// children lists the descendants of h at res, skipping digit 1 below a
// pentagon as the real grid does.
func children(h native.Cell, res int, pentagon bool) []native.Cell {
	cur := []native.Cell{h}
	for r := resolution(h) + 1; r <= res; r++ {
		next := make([]native.Cell, 0, len(cur)*7)
		for i, c := range cur {
			for d := 0; d < 7; d++ {
				if pentagon && i == 0 && d == 1 {
					continue
				}
				next = append(next, native.Cell(setDigit(uint64(withRes(c, r)), r, d)))
			}
		}
		cur = next
	}
	return cur
}

func pow7(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 7
	}
	return out
}

func makeEdge(origin native.Cell, dir int) native.Cell {
	v := uint64(origin)&^(uint64(0xf)<<modeOffset) | uint64(modeEdge)<<modeOffset
	v = v&^(uint64(digitMask)<<dirOffset) | uint64(dir)<<dirOffset
	return native.Cell(v)
}

func edgeParts(e native.Cell) (origin native.Cell, dir int) {
	v := uint64(e)
	dir = int((v >> dirOffset) & digitMask)
	v = v&^(uint64(0xf)<<modeOffset) | uint64(modeCell)<<modeOffset
	v &^= uint64(digitMask) << dirOffset
	return native.Cell(v), dir
}
