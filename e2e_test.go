package main

import (
	"bytes"
	"strings"
	"testing"

	"gobf/pkg/compiler"
	"gobf/pkg/vm"
)

func runSource(t *testing.T, src, stdin string) string {
	t.Helper()
	code, err := compiler.Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	var out bytes.Buffer
	interp := vm.NewInterpreter(code)
	interp.Out = &out
	interp.In = strings.NewReader(stdin)
	if err := interp.Run(); err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return out.String()
}

func TestHelloWorld(t *testing.T) {
	const src = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
	got := runSource(t, src, "")
	want := "Hello World!\n"
	if got != want {
		t.Errorf("Hello World program: got %q, want %q", got, want)
	}
}

func TestEchoUntilZero(t *testing.T) {
	const src = ",[.,]"
	got := runSource(t, src, "abc\x00xyz")
	want := "abc"
	if got != want {
		t.Errorf("echo-until-zero: got %q, want %q", got, want)
	}
}

func TestCellWrap(t *testing.T) {
	const src = "-."
	got := runSource(t, src, "")
	want := "\xFF"
	if got != want {
		t.Errorf("cell wrap: got %q, want %q", got, want)
	}
}

func TestMultiplyMoveRecognition(t *testing.T) {
	const src = "++++[->+++<]>."
	code, err := compiler.Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	foundMultiplyMove := false
	for _, instr := range code {
		if instr.Op == vm.MultiplyMove {
			foundMultiplyMove = true
		}
	}
	if !foundMultiplyMove {
		t.Errorf("expected a MultiplyMove instruction in compiled sequence %v", code)
	}

	got := runSource(t, src, "")
	if want := "\x0C"; got != want {
		t.Errorf("multiply-move program: got %q (0x%02X), want 0x0C", got, []byte(got))
	}
}

func TestDumpModeEmitsOpcodeTagsOnly(t *testing.T) {
	const src = "+++[-]."
	code, err := compiler.Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var buf bytes.Buffer
	if err := emitTags(&buf, code); err != nil {
		t.Fatalf("emitTags: %v", err)
	}

	want := []byte{byte(vm.AddVal), byte(vm.SetZero), byte(vm.Output)}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("dump bytes = %v, want %v", buf.Bytes(), want)
	}
}
