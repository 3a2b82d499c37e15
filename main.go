// Command gobf compiles and runs Brainfuck programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gobf/pkg/compiler"
	"gobf/pkg/vm"
)

func main() {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // we print our own usage banner below
	dump := fs.Bool("c", false, "emit the compiled instruction stream and exit without running it")
	debug := fs.Bool("debug", false, "print the compiled instruction listing to stderr before running")
	usage := func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-c] program_file\n", fs.Name())
	}

	if err := fs.Parse(os.Args[1:]); err != nil || fs.NArg() > 1 {
		usage()
		os.Exit(1)
	}

	source, err := readSource(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Unable to open file %s\n", fs.Arg(0))
		os.Exit(1)
	}

	code, err := compiler.Compile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		printListing(os.Stderr, code)
	}

	if *dump {
		if err := emitTags(os.Stdout, code); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	interp := vm.NewInterpreter(code)
	if err := interp.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readSource reads the program bytes from path, or from stdin if path is
// empty. Thin external collaborator: not part of the core pipeline.
func readSource(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// emitTags writes one byte per instruction, the instruction's opcode tag.
// This is a debug-only dump format, never fed back into the interpreter.
func emitTags(w io.Writer, code []vm.Instruction) error {
	tags := make([]byte, len(code))
	for i, instr := range code {
		tags[i] = byte(instr.Op)
	}
	_, err := w.Write(tags)
	return err
}

// printListing prints a human-readable mnemonic + operand + target for
// every compiled instruction, gated behind -debug.
func printListing(w io.Writer, code []vm.Instruction) {
	fmt.Fprintf(w, "compiled %d instructions:\n", len(code))
	for i, instr := range code {
		switch instr.Op {
		case vm.JumpForward, vm.JumpBackward:
			fmt.Fprintf(w, "  %04d: %-8s -> %d\n", i, instr.Op, instr.Target)
		case vm.AddVal, vm.MovePos, vm.SetVal, vm.MultiplyMove:
			fmt.Fprintf(w, "  %04d: %-8s %d\n", i, instr.Op, instr.Operand)
		default:
			fmt.Fprintf(w, "  %04d: %-8s\n", i, instr.Op)
		}
	}
}
