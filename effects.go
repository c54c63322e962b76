package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/blaz-r/go-neopixel/neopixel"
	"github.com/blaz-r/go-neopixel/serial"
)

func effect(name string) (serial.FrameFunc, error) {
	switch name {
	case "rainbow":
		return rainbow(), nil
	case "colorwave":
		return colorwave(), nil
	case "fireflies":
		return fireflies(), nil
	}
	return nil, fmt.Errorf("unknown effect %q", name)
}

// rainbow cycles the whole strip through the hue wheel.
func rainbow() serial.FrameFunc {
	hue := 0
	return func(s *neopixel.Strip, _ time.Duration) error {
		s.Fill(neopixel.ColorHSV(hue, 255, 150))
		hue += 150
		return nil
	}
}

// colorwave lays a gradient color wheel over the strip once, then spins it.
func colorwave() serial.FrameFunc {
	colors := []neopixel.Color{
		neopixel.RGB(255, 0, 0),
		neopixel.RGB(255, 50, 0),
		neopixel.RGB(255, 100, 0),
		neopixel.RGB(0, 255, 0),
		neopixel.RGB(0, 0, 255),
		neopixel.RGB(100, 0, 90),
		neopixel.RGB(200, 0, 100),
	}
	laid := false
	return func(s *neopixel.Strip, _ time.Duration) error {
		if !laid {
			step := s.NumPixels() / len(colors)
			px := 0
			for i := 0; i+1 < len(colors); i++ {
				if err := s.SetPixelLineGradient(px, px+step, colors[i], colors[i+1]); err != nil {
					return err
				}
				px += step
			}
			if err := s.SetPixelLineGradient(px, s.NumPixels()-1, colors[len(colors)-1], colors[0]); err != nil {
				return err
			}
			laid = true
		}
		s.RotateRight(1)
		return nil
	}
}

type flash struct {
	pix    int
	col    neopixel.Color
	length int
	pos    int
	dir    int
}

func newFlash(numPixels int, colors []neopixel.Color) flash {
	return flash{
		pix:    rand.Intn(numPixels),
		col:    colors[rand.Intn(len(colors))],
		length: 5 + rand.Intn(16),
		pos:    0,
		dir:    1,
	}
}

// fireflies keeps a handful of random pixels flashing up and back down,
// reseeding each one at a new spot once it has faded out.
func fireflies() serial.FrameFunc {
	colors := []neopixel.Color{
		neopixel.RGB(232, 100, 255),
		neopixel.RGB(200, 200, 20),
		neopixel.RGB(30, 200, 200),
		neopixel.RGB(150, 50, 10),
		neopixel.RGB(50, 200, 10),
	}
	var flashes []flash
	return func(s *neopixel.Strip, _ time.Duration) error {
		if flashes == nil {
			s.Fill(neopixel.RGB(0, 0, 0))
			flashes = make([]flash, 10)
			for i := range flashes {
				flashes[i] = newFlash(s.NumPixels(), colors)
			}
		}
		for i := range flashes {
			f := &flashes[i]
			fade := float64(f.pos) / float64(f.length)
			c := neopixel.RGB(
				int(float64(f.col.R)*fade),
				int(float64(f.col.G)*fade),
				int(float64(f.col.B)*fade),
			)
			if err := s.SetPixel(f.pix, c); err != nil {
				return err
			}
			if f.pos == f.length {
				f.dir = -1
			}
			if f.pos == 0 && f.dir == -1 {
				*f = newFlash(s.NumPixels(), colors)
				continue
			}
			f.pos += f.dir
		}
		return nil
	}
}
