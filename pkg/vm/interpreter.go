package vm

import (
	"bufio"
	"io"
	"os"

	"gobf/pkg/tape"
)

// Interpreter executes one instruction sequence against one tape. It is not
// safe for concurrent use; each Interpreter owns exactly one Tape.
type Interpreter struct {
	Tape tape.Tape
	Code []Instruction

	// Out is where Output instructions write. If nil, os.Stdout is used.
	Out io.Writer
	// In is where Input instructions read from. If nil, os.Stdin is used.
	In io.Reader

	pc int
}

// NewInterpreter returns an Interpreter ready to execute code against a
// fresh, all-zero tape.
func NewInterpreter(code []Instruction) *Interpreter {
	return &Interpreter{Code: code}
}

func (vm *Interpreter) outputSink() io.Writer {
	if vm.Out != nil {
		return vm.Out
	}
	return os.Stdout
}

func (vm *Interpreter) inputSource() io.Reader {
	if vm.In != nil {
		return vm.In
	}
	return os.Stdin
}

// Run executes Code from the beginning until the program counter reaches
// the end of the sequence, or a tape motion fault occurs, whichever first.
// A tape fault is returned to the caller; all other opcodes are total.
func (vm *Interpreter) Run() error {
	var out io.Writer = vm.outputSink()
	bw, buffered := out.(*os.File)
	var flusher *bufio.Writer
	if buffered {
		flusher = bufio.NewWriter(bw)
		out = flusher
	}

	for vm.pc < len(vm.Code) {
		if err := vm.step(out); err != nil {
			if flusher != nil {
				_ = flusher.Flush()
			}
			return err
		}
		if flusher != nil && vm.Code[vm.pc-1].Op == Output {
			// Eagerly flush so a program that outputs then loops forever
			// still produces its output.
			_ = flusher.Flush()
		}
	}

	if flusher != nil {
		return flusher.Flush()
	}
	return nil
}

// Step executes exactly one instruction at the current program counter
// against os.Stdout/os.Stdin (or vm.Out/vm.In, if set), advancing pc. It
// is exported for callers — such as cmd/bfview — that want to drive
// execution one instruction at a time. Step is a no-op once pc has reached
// the end of Code.
func (vm *Interpreter) Step() error {
	if vm.pc >= len(vm.Code) {
		return nil
	}
	return vm.step(vm.outputSink())
}

// Done reports whether the program counter has reached the end of Code.
func (vm *Interpreter) Done() bool {
	return vm.pc >= len(vm.Code)
}

func (vm *Interpreter) step(out io.Writer) error {
	instr := vm.Code[vm.pc]

	switch instr.Op {
	case Output:
		_, err := out.Write([]byte{vm.Tape.Get()})
		if err != nil {
			return err
		}

	case Input:
		var b [1]byte
		_, err := vm.inputSource().Read(b[:])
		if err == nil {
			vm.Tape.Set(b[0])
		}
		// End-of-stream (or any other read error): leave the cell unchanged.

	case AddVal:
		vm.Tape.Add(instr.Operand)

	case MovePos:
		if instr.Operand >= 0 {
			if err := vm.Tape.MoveRight(int(instr.Operand)); err != nil {
				return err
			}
		} else {
			if err := vm.Tape.MoveLeft(int(-instr.Operand)); err != nil {
				return err
			}
		}

	case SetVal:
		vm.Tape.Set(byte(instr.Operand))

	case SetZero:
		vm.Tape.Set(0)

	case AddToNext:
		cur := vm.Tape.Get()
		vm.Tape.Set(0)
		if err := vm.Tape.MoveRight(1); err != nil {
			return err
		}
		vm.Tape.Add(int32(cur))
		if err := vm.Tape.MoveLeft(1); err != nil {
			return err
		}

	case MultiplyMove:
		cur := vm.Tape.Get()
		vm.Tape.Set(0)
		if err := vm.Tape.MoveRight(1); err != nil {
			return err
		}
		vm.Tape.Add(int32(cur) * instr.Operand)
		if err := vm.Tape.MoveLeft(1); err != nil {
			return err
		}

	case ScanRight:
		for vm.Tape.Get() != 0 {
			if err := vm.Tape.MoveRight(1); err != nil {
				return err
			}
		}

	case ScanLeft:
		for vm.Tape.Get() != 0 {
			if err := vm.Tape.MoveLeft(1); err != nil {
				return err
			}
		}

	case JumpForward:
		if vm.Tape.Get() == 0 {
			vm.pc = instr.Target
		}

	case JumpBackward:
		if vm.Tape.Get() != 0 {
			vm.pc = instr.Target
		}
	}

	vm.pc++
	return nil
}
