// Package serial puts prepared neopixel frames on the wire through periph.io,
// driving the strip as an NRZ device over SPI or a streamed GPIO pin. When no
// usable hardware is present it degrades to periph's console screen device so
// animations stay visible during development.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiostream"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/blaz-r/go-neopixel/neopixel"
)

// 3 SPI bits per 800kHz NRZ bit, rounded up.
const dfltFreq = 2500 * physic.KiloHertz

// Options configure the output path. Port and Pin are periph.io names passed
// through unexamined; a non-empty Pin selects the bit-banged stream driver,
// otherwise Port selects an SPI port ("" means the first one registered).
type Options struct {
	Port      string
	Pin       string
	NumPixels int
	Channels  int // 3 or 4, must match the strip's mode
	Freq      physic.Frequency
}

// frameWriter is what the renderer needs from a periph device; nrzled.Dev
// and screen.Dev both satisfy it.
type frameWriter interface {
	io.Writer
	Halt() error
}

// Renderer converts packed frames to the wire byte stream and owns the
// periph device. It implements neopixel.Serializer.
type Renderer struct {
	numPixels int
	channels  int
	rgbOnly   bool // the console fallback takes RGB triplets only
	out       frameWriter
	wire      []byte
}

// Open initializes periph and attaches to the configured output device.
func Open(o Options) (*Renderer, error) {
	if o.Channels != 3 && o.Channels != 4 {
		return nil, fmt.Errorf("serial: channels must be 3 or 4, got %d", o.Channels)
	}
	if o.NumPixels <= 0 {
		return nil, fmt.Errorf("serial: need at least one pixel, got %d", o.NumPixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("serial: periph init failed: %v", err)
	}
	freq := o.Freq
	if freq == 0 {
		freq = dfltFreq
	}
	opts := nrzled.Opts{NumPixels: o.NumPixels, Channels: o.Channels, Freq: freq}

	r := &Renderer{
		numPixels: o.NumPixels,
		channels:  o.Channels,
		wire:      make([]byte, 0, o.NumPixels*o.Channels),
	}

	if o.Pin != "" {
		p := gpioreg.ByName(o.Pin)
		if p == nil {
			return nil, fmt.Errorf("serial: no GPIO pin %q", o.Pin)
		}
		s, ok := p.(gpiostream.PinOut)
		if !ok {
			return nil, fmt.Errorf("serial: pin %q can't stream bits", o.Pin)
		}
		d, err := nrzled.NewStream(s, &opts)
		if err != nil {
			return nil, fmt.Errorf("serial: opening NRZ stream on %q: %v", o.Pin, err)
		}
		r.out = d
		return r, nil
	}

	port, err := spireg.Open(o.Port)
	if err != nil {
		log.Warn().Err(err).Msg("no SPI port, rendering to the console")
		r.out = screen.New(o.NumPixels)
		r.rgbOnly = true
		return r, nil
	}
	d, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("serial: opening NRZ device on %q: %v", o.Port, err)
	}
	r.out = d
	return r, nil
}

// WriteFrame implements neopixel.Serializer. It checks the framing words,
// unpacks each pixel word into its channel bytes in wire order (a
// three-channel word occupies the low 24 bits; its unused top byte never
// reaches the wire), writes the stream and then observes the reset delay
// carried in the trailer word.
func (r *Renderer) WriteFrame(frame []uint32) error {
	if len(frame) != r.numPixels+2 {
		return fmt.Errorf("serial: frame has %d words, want %d", len(frame), r.numPixels+2)
	}
	if want := uint32(r.numPixels*r.channels*8 - 1); frame[0] != want {
		return fmt.Errorf("serial: bit count %d doesn't match %d pixels of %d channels", frame[0], r.numPixels, r.channels)
	}

	r.wire = r.wire[:0]
	for _, w := range frame[1 : 1+r.numPixels] {
		if r.channels == 4 {
			r.wire = append(r.wire, byte(w>>24), byte(w>>16), byte(w>>8))
			if !r.rgbOnly {
				r.wire = append(r.wire, byte(w))
			}
		} else {
			r.wire = append(r.wire, byte(w>>16), byte(w>>8), byte(w))
		}
	}
	if _, err := r.out.Write(r.wire); err != nil {
		return fmt.Errorf("serial: writing %d bytes: %v", len(r.wire), err)
	}

	reset := time.Duration(frame[len(frame)-1]) * time.Second / neopixel.SerializerHz
	time.Sleep(reset)
	return nil
}

// Halt blanks the output device.
func (r *Renderer) Halt() error {
	return r.out.Halt()
}
