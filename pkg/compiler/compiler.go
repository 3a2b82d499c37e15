package compiler

import (
	"errors"
	"fmt"

	"gobf/pkg/vm"
)

// ErrUnmatchedBracket is returned when a '[' is never closed. The source is
// a closed, tagged sum of eight command bytes with no scoping beyond
// brackets, so an unclosed '[' is the only structurally malformed input
// this compiler needs to diagnose (a stray ']' is a deliberate no-op, not
// an error — see Compile).
var ErrUnmatchedBracket = errors.New("compiler: unmatched '['")

// Compile translates a buffer of raw Brainfuck source into a dense
// instruction sequence, ready for vm.Interpreter. Any byte other than
// '> < + - . , [ ]' is treated as a comment and ignored. Consecutive runs
// of '>', '<', '+', '-' are folded into a single MovePos/AddVal
// instruction; loop bodies matching one of the five idioms in patterns.go
// are lowered to a single superinstruction instead of a generic loop.
func Compile(src []byte) ([]vm.Instruction, error) {
	filtered := Filter(src)
	var code []vm.Instruction
	var loopStack []int     // indices, into code, of unmatched JumpForward instructions
	var loopStackPos []int  // parallel stack: filtered-source offset of each '['

	for i := 0; i < len(filtered); {
		switch b := filtered[i]; b {
		case '>':
			n := runLenOf(filtered, i, '>')
			code = append(code, vm.Instruction{Op: vm.MovePos, Operand: int32(n)})
			i += n

		case '<':
			n := runLenOf(filtered, i, '<')
			code = append(code, vm.Instruction{Op: vm.MovePos, Operand: -int32(n)})
			i += n

		case '+':
			n := runLenOf(filtered, i, '+')
			code = append(code, vm.Instruction{Op: vm.AddVal, Operand: int32(n)})
			i += n

		case '-':
			n := runLenOf(filtered, i, '-')
			code = append(code, vm.Instruction{Op: vm.AddVal, Operand: -int32(n)})
			i += n

		case '.':
			code = append(code, vm.Instruction{Op: vm.Output})
			i++

		case ',':
			code = append(code, vm.Instruction{Op: vm.Input})
			i++

		case '[':
			if instr, consumed, ok := tryPatterns(filtered, i); ok {
				code = append(code, instr)
				i += consumed
				continue
			}
			code = append(code, vm.Instruction{Op: vm.JumpForward})
			loopStack = append(loopStack, len(code)-1)
			loopStackPos = append(loopStackPos, i)
			i++

		case ']':
			if len(loopStack) == 0 {
				// A stray closer is a deliberate no-op.
				i++
				continue
			}
			open := loopStack[len(loopStack)-1]
			loopStack = loopStack[:len(loopStack)-1]
			loopStackPos = loopStackPos[:len(loopStackPos)-1]
			code[open].Target = len(code)
			code = append(code, vm.Instruction{Op: vm.JumpBackward, Target: open})
			i++
		}
	}

	if len(loopStackPos) > 0 {
		return nil, fmt.Errorf("%w: opening bracket at position %d in filtered source has no match",
			ErrUnmatchedBracket, loopStackPos[len(loopStackPos)-1])
	}

	return code, nil
}

// runLenOf returns the length of the maximal run of b starting at pos.
func runLenOf(src []byte, pos int, b byte) int {
	n := 0
	for pos+n < len(src) && src[pos+n] == b {
		n++
	}
	return n
}
