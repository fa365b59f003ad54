package vm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/quiltlang/quiltvm/grid"
	"github.com/quiltlang/quiltvm/pixel"
)

// pushHue returns a hue in the Push band (36-44) distinct from its
// neighbors only in that it's always classified as Push; the exact
// value within the band doesn't matter to the interpreter.
const pushHue = 40
const outputUntilHue = 330
const addHue = 108 // trailing sentinel: pops an already-empty stack so Run terminates deterministically

// buildHelloWorldRow lays out a single-row program: Start, then one
// Push <charcode> pair per character of msg (pushed so that msg's
// first character ends up on top of the stack), then OutputUntil.
// Because every cell has an East neighbor except the last, the
// navigator goes straight through with no roads required - this is
// the "canonical" hello-world layout (S6).
func buildHelloWorldRow(msg string) *grid.Matrix[pixel.Cell] {
	hues := []int{300} // Start
	hues = append(hues, pushHue, 0) // terminator for OutputUntil
	for i := len(msg) - 1; i >= 0; i-- {
		hues = append(hues, pushHue, int(msg[i]))
	}
	hues = append(hues, outputUntilHue, addHue)

	row := make([]pixel.Cell, len(hues))
	for x, h := range hues {
		row[x] = pixel.Cell{Hue: h, Point: grid.Point{X: x, Y: 0}}
	}
	return grid.New([][]pixel.Cell{row})
}

// S6: canonical hello-world image.
func TestRunHelloWorldCanonical(t *testing.T) {
	m := buildHelloWorldRow("Hello world!")

	var out bytes.Buffer
	v := New(&out)
	err := v.Run(m)

	var underflow *StackUnderflow
	if !errors.As(err, &underflow) {
		t.Fatalf("Run() error = %v, want *StackUnderflow", err)
	}
	if got, want := out.String(), "Hello world!"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// S7: "elaborate" hello-world - the same message plus a trailing
// newline, and the first character is round-tripped through the tape
// via MovA/Save/PushA before being pushed onto the output stack, to
// exercise the tape path in an end-to-end run rather than just Push.
func buildElaborateHelloWorldRow(msg string) *grid.Matrix[pixel.Cell] {
	hues := []int{300} // Start
	hues = append(hues, pushHue, 0)
	for i := len(msg) - 1; i >= 1; i-- {
		hues = append(hues, pushHue, int(msg[i]))
	}
	// Round-trip msg[0] through tape[7]: MovA 7; Save <msg[0]>; MovA 7; PushA.
	const movAHue = 76
	const saveHue = 58
	const pushAHue = 4
	hues = append(hues, movAHue, 7, saveHue, int(msg[0]), movAHue, 7, pushAHue)
	hues = append(hues, outputUntilHue, addHue)

	row := make([]pixel.Cell, len(hues))
	for x, h := range hues {
		row[x] = pixel.Cell{Hue: h, Point: grid.Point{X: x, Y: 0}}
	}
	return grid.New([][]pixel.Cell{row})
}

func TestRunHelloWorldElaborateWithNewline(t *testing.T) {
	m := buildElaborateHelloWorldRow("Hello world!\n")

	var out bytes.Buffer
	v := New(&out)
	err := v.Run(m)

	var underflow *StackUnderflow
	if !errors.As(err, &underflow) {
		t.Fatalf("Run() error = %v, want *StackUnderflow", err)
	}
	if got, want := out.String(), "Hello world!\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
