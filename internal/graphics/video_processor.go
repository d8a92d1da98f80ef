package graphics

import "image/color"

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// VideoProcessor applies picture adjustments to palette colors. Because
// frames are palette indices, adjusting the 64 entries once adjusts every
// pixel.
type VideoProcessor struct {
	brightness float32
	contrast   float32
	saturation float32
}

// NewVideoProcessor creates a new video processor. 1 is neutral for every
// setting.
func NewVideoProcessor(brightness, contrast, saturation float32) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
	}
}

// ProcessPalette returns p with the adjustments applied to every entry.
func (vp *VideoProcessor) ProcessPalette(p Palette) Palette {
	if vp.neutral() {
		return p
	}
	for i, c := range p {
		p[i] = vp.processColor(c)
	}
	return p
}

func (vp *VideoProcessor) neutral() bool {
	return vp.brightness == 1 && vp.contrast == 1 && vp.saturation == 1
}

// processColor scales by brightness, stretches around mid grey by
// contrast, then mixes toward luma by saturation.
func (vp *VideoProcessor) processColor(c color.RGBA) color.RGBA {
	ch := [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	for i := range ch {
		v := ch[i] * vp.brightness
		ch[i] = ((v/255-0.5)*vp.contrast + 0.5) * 255
	}

	if vp.saturation != 1 {
		y := lumaR*clamp(ch[0]) + lumaG*clamp(ch[1]) + lumaB*clamp(ch[2])
		for i := range ch {
			ch[i] = y + (clamp(ch[i])-y)*vp.saturation
		}
	}

	return color.RGBA{
		R: uint8(clamp(ch[0]) + 0.5),
		G: uint8(clamp(ch[1]) + 0.5),
		B: uint8(clamp(ch[2]) + 0.5),
		A: c.A,
	}
}

// clamp limits v to a channel's range.
func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// SetBrightness updates the brightness value
func (vp *VideoProcessor) SetBrightness(brightness float32) {
	vp.brightness = brightness
}

// SetContrast updates the contrast value
func (vp *VideoProcessor) SetContrast(contrast float32) {
	vp.contrast = contrast
}

// SetSaturation updates the saturation value
func (vp *VideoProcessor) SetSaturation(saturation float32) {
	vp.saturation = saturation
}
