// Package imgsrc implements support for loading a Quilt program image
// off disk and turning it into a pixel.Cell matrix: decode, then
// downsample by the configured pixel size.
package imgsrc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"

	"github.com/quiltlang/quiltvm/grid"
	"github.com/quiltlang/quiltvm/hsl"
	"github.com/quiltlang/quiltvm/pixel"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// ParseError is returned for any failure to turn path into a program
// matrix: the file couldn't be opened or decoded, its dimensions
// aren't a multiple of pixelSize, or the resulting matrix is empty.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("imgsrc: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes the image at path and downsamples it into a program
// matrix, sampling one pixel out of every pixelSize x pixelSize block
// (the block's top-left pixel; Quilt images are expected to use flat
// blocks of color, so any in-block sample gives the same hue).
func Parse(path string, pixelSize int) (*grid.Matrix[pixel.Cell], error) {
	if pixelSize < 1 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("pixel size must be >= 1, got %d", pixelSize)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("opening image: %w", err)}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("decoding image: %w", err)}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width%pixelSize != 0 || height%pixelSize != 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("image size %dx%d is not a multiple of pixel size %d (decoded as %s)", width, height, pixelSize, format)}
	}

	cols, rows := width/pixelSize, height/pixelSize
	if cols == 0 || rows == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("image downsamples to an empty matrix")}
	}

	rowsOfCells := make([][]pixel.Cell, rows)
	var eg errgroup.Group
	for y := 0; y < rows; y++ {
		y := y
		eg.Go(func() error {
			rowsOfCells[y] = sampleRow(img, bounds, y, cols, pixelSize)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return grid.New(rowsOfCells), nil
}

func sampleRow(img image.Image, bounds image.Rectangle, row, cols, pixelSize int) []pixel.Cell {
	cells := make([]pixel.Cell, cols)
	srcY := bounds.Min.Y + row*pixelSize
	for x := 0; x < cols; x++ {
		srcX := bounds.Min.X + x*pixelSize
		r, g, b, _ := img.At(srcX, srcY).RGBA()
		hue := hsl.FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)).Hue
		cells[x] = pixel.Cell{Hue: hue, Point: grid.Point{X: x, Y: row}}
	}
	return cells
}
