// Command bfview is an optional graphical front end for gobf: it compiles
// and single-steps a Brainfuck program, rendering the tape as a scrolling
// strip of cells so the head's motion and cell contents can be watched
// live. It is a development aid layered on top of the core interpreter; it
// never changes the program's observable stdout/stdin behavior.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"gobf/pkg/compiler"
	"gobf/pkg/grid"
	"gobf/pkg/tape"
	"gobf/pkg/vm"
)

const (
	cellSize     = 12
	gridCols     = 64
	gridRows     = 24
	windowCells  = gridCols * gridRows // cells visible on screen at once
	stepsPerTick = 2000
)

type Game struct {
	interp *vm.Interpreter
	done   bool
}

func (g *Game) Update() error {
	if g.done || g.interp.Done() {
		g.done = true
		return nil
	}
	for i := 0; i < stepsPerTick; i++ {
		if g.interp.Done() {
			break
		}
		if err := g.interp.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			g.done = true
			break
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	head := g.interp.Tape.Head()
	base := head - windowCells/2
	if base < -tape.Capacity {
		base = -tape.Capacity
	}
	if base > tape.Capacity-windowCells {
		base = tape.Capacity - windowCells
	}

	// Walk a throwaway copy of the tape across the visible window,
	// cell by cell, so Draw never disturbs the real interpreter state.
	snapshot := g.interp.Tape
	if err := seekTo(&snapshot, base); err != nil {
		return
	}

	for i := 0; i < windowCells; i++ {
		offset := base + i
		x, y := grid.GetGridCoords(i, gridCols)
		px, py := x*cellSize, y*cellSize

		v := snapshot.Get()
		shade := uint8(v)
		col := color.RGBA{R: shade, G: shade, B: shade, A: 0xFF}
		ebitenutil.DrawRect(screen, float64(px), float64(py), cellSize-1, cellSize-1, col)

		if offset == head {
			ebitenutil.DrawRect(screen, float64(px), float64(py), cellSize-1, 2, color.RGBA{R: 0xFF, A: 0xFF})
		}
		if i+1 < windowCells {
			_ = snapshot.MoveRight(1)
		}
	}

	if g.done {
		ebitenutil.DebugPrint(screen, "program finished")
	}
}

// seekTo moves t's head from its current offset to the given absolute offset.
func seekTo(t *tape.Tape, offset int) error {
	delta := offset - t.Head()
	if delta >= 0 {
		return t.MoveRight(delta)
	}
	return t.MoveLeft(-delta)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gridCols * cellSize, gridRows * cellSize
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s program_file\n", os.Args[0])
		os.Exit(1)
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Unable to open file %s\n", os.Args[1])
		os.Exit(1)
	}

	code, err := compiler.Compile(source)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ebiten.SetWindowSize(gridCols*cellSize, gridRows*cellSize)
	ebiten.SetWindowTitle("gobf tape viewer")

	game := &Game{interp: vm.NewInterpreter(code)}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
