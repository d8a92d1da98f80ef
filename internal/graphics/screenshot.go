package graphics

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Screenshot scales frame by scale with nearest-neighbour sampling.
func Screenshot(frame []uint8, palette *Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := palette.Image(frame, FrameWidth, FrameHeight)
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, FrameWidth*scale, FrameHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveScreenshot writes frame as a PNG file, creating its directory.
func SaveScreenshot(path string, frame []uint8, palette *Palette, scale int) error {
	if len(frame) < FrameWidth*FrameHeight {
		return errors.Errorf("frame has %d pixels", len(frame))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create screenshot directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	if err := png.Encode(f, Screenshot(frame, palette, scale)); err != nil {
		f.Close()
		return errors.Wrap(err, "encode screenshot")
	}
	return errors.Wrap(f.Close(), "close screenshot")
}
