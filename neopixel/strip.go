package neopixel

import (
	"fmt"
	"math"
)

// Serializer is the hardware collaborator that shifts a prepared frame out
// to the strip. WriteFrame must not return before the transmission has
// completed and the strip's reset delay has been observed, so that two
// back-to-back calls never violate the minimum reset interval.
type Serializer interface {
	WriteFrame(frame []uint32) error
}

const (
	headerWords  = 1
	trailerWords = 1

	// SerializerHz is the bit clock the reset-delay trailer is expressed in.
	SerializerHz = 8000000

	// ResetDelayCycles is the strip reset time in serializer clock cycles,
	// 100us at 8MHz.
	ResetDelayCycles = 800
)

// End marks a Range that extends to the end of the strip.
const End = -1

// Range selects the pixels Start, Start+Step, ... below Stop. A Stop of End
// resolves to the strip length; a Step below 1 is treated as 1.
type Range struct {
	Start int
	Stop  int
	Step  int
}

// Strip owns the packed frame for one LED strip: a bit-count header word,
// one word per pixel and a reset-delay trailer, in transmission order. All
// mutation goes through its methods; the serializer only reads the frame
// during Show. Strip is not safe for concurrent use.
type Strip struct {
	numPixels  int
	layout     ChannelLayout
	brightness int
	frame      []uint32
	out        Serializer
}

// NewStrip allocates a zeroed strip of numPixels LEDs with the channel order
// given by mode. out may be nil for offline buffer work, in which case Show
// fails.
func NewStrip(numPixels int, mode string, out Serializer) (*Strip, error) {
	if numPixels <= 0 {
		return nil, &ConfigError{fmt.Sprintf("strip needs at least one pixel, got %d", numPixels)}
	}
	layout, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	s := &Strip{
		numPixels:  numPixels,
		layout:     layout,
		brightness: 255,
		frame:      make([]uint32, headerWords+numPixels+trailerWords),
		out:        out,
	}
	s.frame[0] = uint32(numPixels*layout.bytesPerPixel*8 - 1)
	s.frame[len(s.frame)-1] = ResetDelayCycles
	return s, nil
}

// pixels is the live pixel-word window of the frame, framing words excluded.
func (s *Strip) pixels() []uint32 {
	return s.frame[headerWords : headerWords+s.numPixels]
}

// NumPixels returns the strip length.
func (s *Strip) NumPixels() int {
	return s.numPixels
}

// Layout returns the resolved channel layout.
func (s *Strip) Layout() ChannelLayout {
	return s.layout
}

// Frame returns a copy of the full frame in transmission order: bit-count
// header, pixel words, reset-delay trailer.
func (s *Strip) Frame() []uint32 {
	f := make([]uint32, len(s.frame))
	copy(f, s.frame)
	return f
}

// Brightness returns the stored brightness scale factor, 1..255.
func (s *Strip) Brightness() int {
	return s.brightness
}

// SetBrightness stores the brightness applied by subsequent pixel writes,
// clamped to [1,255]. Pixels already in the buffer keep their old scaling.
func (s *Strip) SetBrightness(b int) {
	if b < 1 {
		b = 1
	}
	if b > 255 {
		b = 255
	}
	s.brightness = b
}

// effective resolves the optional per-call brightness override, clamped to
// [1,255] like the stored value.
func (s *Strip) effective(bright []int) int {
	if len(bright) == 0 {
		return s.brightness
	}
	b := bright[0]
	if b < 1 {
		b = 1
	}
	if b > 255 {
		b = 255
	}
	return b
}

// scale applies brightness to one component, rounding half up. Components
// are scaled independently per channel so the hue survives dimming.
func scale(c, bright int) uint32 {
	return uint32((c*bright + 127) / 255)
}

// pack builds the pixel word for c under the strip's layout. Components
// outside [0,255] are not validated and can bleed into the neighboring
// channel's byte.
func (s *Strip) pack(c Color, bright int) uint32 {
	w := scale(c.R, bright)<<s.layout.shift[ChanR] |
		scale(c.G, bright)<<s.layout.shift[ChanG] |
		scale(c.B, bright)<<s.layout.shift[ChanB]
	if s.layout.hasWhite && c.HasWhite() {
		w |= scale(c.W, bright) << s.layout.shift[ChanW]
	}
	return w
}

// SetPixel sets the pixel at index i, scaled by the stored brightness or by
// an explicit override. A white component is ignored on three-channel
// layouts; a color without one writes zero white on four-channel layouts.
func (s *Strip) SetPixel(i int, c Color, bright ...int) error {
	if i < 0 || i >= s.numPixels {
		return &IndexError{i, s.numPixels}
	}
	s.pixels()[i] = s.pack(c, s.effective(bright))
	return nil
}

// SetPixelRange sets every pixel selected by r to the same color. The word
// is packed once and bounds are checked before anything is written, so a bad
// range leaves the buffer untouched.
func (s *Strip) SetPixelRange(r Range, c Color, bright ...int) error {
	start, stop, step := r.Start, r.Stop, r.Step
	if stop == End {
		stop = s.numPixels
	}
	if step < 1 {
		step = 1
	}
	if start >= stop {
		return nil
	}
	if start < 0 {
		return &IndexError{start, s.numPixels}
	}
	if last := start + (stop-1-start)/step*step; last >= s.numPixels {
		return &IndexError{last, s.numPixels}
	}
	w := s.pack(c, s.effective(bright))
	px := s.pixels()
	for i := start; i < stop; i += step {
		px[i] = w
	}
	return nil
}

// SetPixelLine sets the inclusive run [p1,p2]. A line with p2 < p1 changes
// nothing.
func (s *Strip) SetPixelLine(p1, p2 int, c Color, bright ...int) error {
	if p2 < p1 {
		return nil
	}
	return s.SetPixelRange(Range{Start: p1, Stop: p2 + 1, Step: 1}, c, bright...)
}

// SetPixelLineGradient fades from left at p1 to right at p2, inclusive,
// interpolating each channel linearly. The white channel joins in only when
// both colors carry one and the layout has one. Equal endpoints change
// nothing.
func (s *Strip) SetPixelLineGradient(p1, p2 int, left, right Color, bright ...int) error {
	if p1 == p2 {
		return nil
	}
	lo, hi := p1, p2
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		return &IndexError{lo, s.numPixels}
	}
	if hi >= s.numPixels {
		return &IndexError{hi, s.numPixels}
	}
	withW := left.HasWhite() && right.HasWhite() && s.layout.hasWhite
	b := s.effective(bright)
	px := s.pixels()
	span := hi - lo
	for i := 0; i <= span; i++ {
		f := float64(i) / float64(span)
		c := RGB(lerp(left.R, right.R, f), lerp(left.G, right.G, f), lerp(left.B, right.B, f))
		if withW {
			c.W = lerp(left.W, right.W, f)
		}
		px[lo+i] = s.pack(c, b)
	}
	return nil
}

func lerp(a, b int, f float64) int {
	return int(math.Round(float64(a) + float64(b-a)*f))
}

// GetPixel returns the color at index i with the stored brightness scaling
// reversed. The inversion is approximate: rounding, or a brightness change
// since the pixel was set, can move components by a step. W is -1 on
// three-channel layouts.
func (s *Strip) GetPixel(i int) (Color, error) {
	if i < 0 || i >= s.numPixels {
		return Color{}, &IndexError{i, s.numPixels}
	}
	w := s.pixels()[i]
	b := s.brightness
	unscale := func(sh uint) int {
		return (int(w>>sh&0xff)*255 + b/2) / b
	}
	c := RGB(unscale(s.layout.shift[ChanR]), unscale(s.layout.shift[ChanG]), unscale(s.layout.shift[ChanB]))
	if s.layout.hasWhite {
		c.W = unscale(s.layout.shift[ChanW])
	}
	return c, nil
}

// Fill sets the whole strip to one color.
func (s *Strip) Fill(c Color, bright ...int) {
	_ = s.SetPixelRange(Range{Start: 0, Stop: End, Step: 1}, c, bright...)
}

// Clear zeroes every pixel word outright, bypassing brightness scaling. The
// stored words are guaranteed literal zeroes afterwards.
func (s *Strip) Clear() {
	px := s.pixels()
	for i := range px {
		px[i] = 0
	}
}

// RotateLeft moves every pixel n positions toward index 0, wrapping around.
// n is taken modulo the strip length and negative n rotates right. Framing
// words stay put.
func (s *Strip) RotateLeft(n int) {
	n %= s.numPixels
	if n < 0 {
		n += s.numPixels
	}
	if n == 0 {
		return
	}
	px := s.pixels()
	head := make([]uint32, n)
	copy(head, px[:n])
	copy(px, px[n:])
	copy(px[s.numPixels-n:], head)
}

// RotateRight moves every pixel n positions away from index 0, wrapping.
func (s *Strip) RotateRight(n int) {
	s.RotateLeft(-n)
}

// Show hands the frame to the serializer, making the buffered state visible
// on the strip. It blocks until the transmission and the trailing reset
// delay are done.
func (s *Strip) Show() error {
	if s.out == nil {
		return &ConfigError{"strip has no serializer"}
	}
	return s.out.WriteFrame(s.frame)
}
