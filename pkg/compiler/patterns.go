package compiler

import "gobf/pkg/vm"

// Each pattern predicate below inspects filtered source starting at pos
// (which always points at a '[') and reports whether its idiom matched,
// how many bytes it consumed, and the instruction to emit in its place.
// They are tried in the fixed order matchSetValue, matchSetZero,
// matchScan, matchAddToNext, matchMultiplyMove; the first match wins and
// no bracket tracking happens for the bytes it consumes.

// runLength scans a maximal run of '+'/'-' starting at pos and returns its
// length and signed sum (each '+' is +1, each '-' is -1).
func runLength(src []byte, pos int) (length int, sum int32) {
	for pos+length < len(src) {
		b := src[pos+length]
		if b == '+' {
			sum++
		} else if b == '-' {
			sum--
		} else {
			break
		}
		length++
	}
	return length, sum
}

// matchSetValue recognizes `[-]` followed by a nonempty run of `+`/`-`
// whose signed sum is nonzero: [-]+++ zeroes the cell then adds 3.
func matchSetValue(src []byte, pos int) (vm.Instruction, int, bool) {
	if pos+3 > len(src) || src[pos] != '[' || src[pos+1] != '-' || src[pos+2] != ']' {
		return vm.Instruction{}, 0, false
	}
	runLen, sum := runLength(src, pos+3)
	if runLen == 0 || sum == 0 {
		return vm.Instruction{}, 0, false
	}
	return vm.Instruction{Op: vm.SetVal, Operand: sum}, 3 + runLen, true
}

// matchSetZero recognizes bare `[-]` or `[+]`: both zero the cell given
// 8-bit wraparound.
func matchSetZero(src []byte, pos int) (vm.Instruction, int, bool) {
	if pos+3 > len(src) || src[pos] != '[' || src[pos+2] != ']' {
		return vm.Instruction{}, 0, false
	}
	if src[pos+1] != '+' && src[pos+1] != '-' {
		return vm.Instruction{}, 0, false
	}
	return vm.Instruction{Op: vm.SetZero}, 3, true
}

// matchScan recognizes `[>]`/`[<]`: move the head until the current cell
// is zero.
func matchScan(src []byte, pos int) (vm.Instruction, int, bool) {
	if pos+3 > len(src) || src[pos] != '[' || src[pos+2] != ']' {
		return vm.Instruction{}, 0, false
	}
	switch src[pos+1] {
	case '>':
		return vm.Instruction{Op: vm.ScanRight}, 3, true
	case '<':
		return vm.Instruction{Op: vm.ScanLeft}, 3, true
	}
	return vm.Instruction{}, 0, false
}

// matchAddToNext recognizes the literal idiom `[->+<]`.
func matchAddToNext(src []byte, pos int) (vm.Instruction, int, bool) {
	const span = "[->+<]"
	if pos+len(span) > len(src) {
		return vm.Instruction{}, 0, false
	}
	if string(src[pos:pos+len(span)]) != span {
		return vm.Instruction{}, 0, false
	}
	return vm.Instruction{Op: vm.AddToNext}, len(span), true
}

// matchMultiplyMove recognizes `[->` + a nonempty +/- run + `<]`.
func matchMultiplyMove(src []byte, pos int) (vm.Instruction, int, bool) {
	if pos+3 > len(src) || src[pos] != '[' || src[pos+1] != '-' || src[pos+2] != '>' {
		return vm.Instruction{}, 0, false
	}
	runLen, sum := runLength(src, pos+3)
	if runLen == 0 {
		return vm.Instruction{}, 0, false
	}
	tail := pos + 3 + runLen
	if tail+2 > len(src) || src[tail] != '<' || src[tail+1] != ']' {
		return vm.Instruction{}, 0, false
	}
	return vm.Instruction{Op: vm.MultiplyMove, Operand: sum}, 5 + runLen, true
}

var patterns = [...]func([]byte, int) (vm.Instruction, int, bool){
	matchSetValue,
	matchSetZero,
	matchScan,
	matchAddToNext,
	matchMultiplyMove,
}

// tryPatterns runs every loop-pattern predicate in order at pos (which must
// point at '[') and returns the first match.
func tryPatterns(src []byte, pos int) (vm.Instruction, int, bool) {
	for _, match := range patterns {
		if instr, consumed, ok := match(src, pos); ok {
			return instr, consumed, true
		}
	}
	return vm.Instruction{}, 0, false
}
