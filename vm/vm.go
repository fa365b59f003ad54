// Package vm implements the Quilt interpreter core: the
// fetch-decode-execute loop over a program matrix, the operand stack,
// the 360-entry tape, and register A.
package vm

import (
	"fmt"
	"io"

	"github.com/quiltlang/quiltvm/grid"
	"github.com/quiltlang/quiltvm/navigator"
	"github.com/quiltlang/quiltvm/pixel"
)

// tapeSize is the number of addressable tape entries. Register A is a
// full 16-bit value but the tape is only ever this big; using A as an
// index beyond tapeSize-1 is a TapeOutOfRange fault, never a wrap.
const tapeSize = 360

// VM is one Quilt interpreter instance: a stack, a tape, register A,
// and the cursor (program counter + heading). It is constructed with
// a byte sink, loaded with one program matrix via Run, and discarded
// afterwards - it is not reusable across programs.
type VM struct {
	sink io.Writer
	s    *stack
	tape [tapeSize]uint16
	a    uint16
}

// New constructs a VM that writes Output/OutputUntil bytes to sink.
func New(sink io.Writer) *VM {
	return &VM{sink: sink, s: newStack()}
}

// findStart scans m in row-major order for the first Start cell
// (hue exactly 300). If none exists, the entry point is (0,0).
func findStart(m *grid.Matrix[pixel.Cell]) grid.Point {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cell, _ := m.Get(grid.Point{X: x, Y: y})
			if cell.Op() == pixel.Start {
				return cell.Point
			}
		}
	}
	return grid.Point{X: 0, Y: 0}
}

// Run executes m to completion: a fault, a navigator dead end (only
// possible on a 1-cell matrix), or - in principle - forever, since
// this core has no explicit halt opcode. It returns the fault that
// ended execution, or nil on a clean (faultless) stop.
func (v *VM) Run(m *grid.Matrix[pixel.Cell]) error {
	pc := findStart(m)
	heading := grid.East

	for {
		next, newHeading, ok := navigator.Step(m, pc, heading)
		if !ok {
			return nil
		}
		pc, heading = next, newHeading

		cell, _ := m.Get(pc)
		op := cell.Op()

		var operand uint16
		if op.OperandConsuming() {
			opPos, opHeading, ok := navigator.Step(m, pc, heading)
			if !ok {
				return &InvalidOperand{Reason: "navigator could not advance to fetch an operand"}
			}
			pc, heading = opPos, opHeading
			opCell, _ := m.Get(pc)
			operand = opCell.Literal()
		}

		if err := v.execute(op, operand); err != nil {
			return err
		}
	}
}

func (v *VM) execute(op pixel.Op, operand uint16) error {
	switch op {
	case pixel.Road, pixel.Start, pixel.None:
		// no effect on stack, tape or register A

	case pixel.Push:
		return v.s.push(operand)

	case pixel.Save:
		if v.a >= tapeSize {
			return &TapeOutOfRange{A: v.a}
		}
		v.tape[v.a] = operand

	case pixel.MovA:
		v.a = operand

	case pixel.PushA:
		if v.a >= tapeSize {
			return &TapeOutOfRange{A: v.a}
		}
		return v.s.push(v.tape[v.a])

	case pixel.PopA:
		val, err := v.s.pop("PopA")
		if err != nil {
			return err
		}
		v.a = val

	case pixel.Pop:
		_, err := v.s.pop("Pop")
		return err

	case pixel.PopUntil:
		for {
			val, err := v.s.pop("PopUntil")
			if err != nil {
				return err
			}
			if val == 0 {
				return nil
			}
		}

	case pixel.Add:
		return v.binary("Add", func(a, b uint16) uint16 { return a + b })
	case pixel.Sub:
		return v.binary("Sub", func(a, b uint16) uint16 { return a - b })
	case pixel.Mult:
		return v.binary("Mult", func(a, b uint16) uint16 { return a * b })
	case pixel.And:
		return v.binary("And", func(a, b uint16) uint16 { return a & b })
	case pixel.Or:
		return v.binary("Or", func(a, b uint16) uint16 { return a | b })
	case pixel.Xor:
		return v.binary("Xor", func(a, b uint16) uint16 { return a ^ b })

	case pixel.Div:
		b, err := v.s.pop("Div")
		if err != nil {
			return err
		}
		a, err := v.s.pop("Div")
		if err != nil {
			return err
		}
		if b == 0 {
			return &DivideByZero{Op: "Div"}
		}
		return v.s.push(a / b)

	case pixel.Modulo:
		b, err := v.s.pop("Modulo")
		if err != nil {
			return err
		}
		a, err := v.s.pop("Modulo")
		if err != nil {
			return err
		}
		if b == 0 {
			return &DivideByZero{Op: "Modulo"}
		}
		return v.s.push(a % b)

	case pixel.Not:
		a, err := v.s.pop("Not")
		if err != nil {
			return err
		}
		return v.s.push(^a)

	case pixel.LeftShift:
		a, err := v.s.pop("LeftShift")
		if err != nil {
			return err
		}
		return v.s.push(a << 1)

	case pixel.RightShift:
		a, err := v.s.pop("RightShift")
		if err != nil {
			return err
		}
		return v.s.push(a >> 1)

	case pixel.Output:
		c, err := v.s.pop("Output")
		if err != nil {
			return err
		}
		return v.writeByte(c)

	case pixel.OutputUntil:
		for {
			c, err := v.s.pop("OutputUntil")
			if err != nil {
				return err
			}
			if c == 0 {
				return nil
			}
			if err := v.writeByte(c); err != nil {
				return err
			}
		}

	default:
		// Unknown hues classify as None above; nothing else to do.
	}

	return nil
}

// binary pops b (shallower) then a (deeper), pushes f(a, b).
func (v *VM) binary(op string, f func(a, b uint16) uint16) error {
	b, err := v.s.pop(op)
	if err != nil {
		return err
	}
	a, err := v.s.pop(op)
	if err != nil {
		return err
	}
	return v.s.push(f(a, b))
}

func (v *VM) writeByte(c uint16) error {
	if _, err := v.sink.Write([]byte{byte(c)}); err != nil {
		return &OutputError{Err: err}
	}
	return nil
}

// FaultMessage renders a runtime fault the way the interpreter writes
// it to standard error: a single human-readable line, no trailing
// newline added by the caller's log line.
func FaultMessage(err error) string {
	return fmt.Sprintf("quilt: runtime fault: %v", err)
}
