// Package neopixel manages the packed pixel frame for one addressable
// WS2812/SK6812-style LED strip: colors go in as logical (R,G,B[,W]) values
// and come out as hardware words laid out per a runtime channel order, ready
// for a fixed-rate one-wire serializer.
package neopixel

import "fmt"

// Channel identifies one logical color channel of a strip.
type Channel int

const (
	ChanR Channel = iota
	ChanG
	ChanB
	ChanW
	numChannels
)

var channelNames = map[rune]Channel{
	'R': ChanR,
	'G': ChanG,
	'B': ChanB,
	'W': ChanW,
}

// ChannelLayout maps logical channels to bit offsets within a packed pixel
// word. It is derived once from a mode string such as "GRB" or "RGBW" and
// never changes afterwards.
type ChannelLayout struct {
	bytesPerPixel int
	hasWhite      bool
	shift         [numChannels]uint
}

// ParseMode resolves a channel-order mode string into a ChannelLayout. The
// mode must name R, G and B exactly once, plus W for four-channel strips
// ("RGB", "GRB", "GRBW", "WRGB", ...).
func ParseMode(mode string) (ChannelLayout, error) {
	if len(mode) != 3 && len(mode) != 4 {
		return ChannelLayout{}, &ConfigError{fmt.Sprintf("mode %q must name 3 or 4 channels", mode)}
	}
	l := ChannelLayout{bytesPerPixel: len(mode)}
	var seen [numChannels]bool
	for i, r := range mode {
		ch, ok := channelNames[r]
		if !ok {
			return ChannelLayout{}, &ConfigError{fmt.Sprintf("mode %q contains unknown channel %q", mode, r)}
		}
		if seen[ch] {
			return ChannelLayout{}, &ConfigError{fmt.Sprintf("mode %q repeats channel %q", mode, r)}
		}
		seen[ch] = true
		// The first channel of the mode is the first one on the wire, so it
		// lands in the most significant used byte of the word.
		l.shift[ch] = uint(len(mode)-1-i) * 8
	}
	if !seen[ChanR] || !seen[ChanG] || !seen[ChanB] {
		return ChannelLayout{}, &ConfigError{fmt.Sprintf("mode %q is missing a color channel", mode)}
	}
	l.hasWhite = seen[ChanW]
	return l, nil
}

// BytesPerPixel returns 3 for RGB layouts and 4 for layouts with a white
// channel.
func (l ChannelLayout) BytesPerPixel() int {
	return l.bytesPerPixel
}

// HasWhite reports whether the layout carries a white channel.
func (l ChannelLayout) HasWhite() bool {
	return l.hasWhite
}

// Shift returns the bit offset of ch within a packed pixel word. The result
// is undefined for ChanW on a three-channel layout.
func (l ChannelLayout) Shift(ch Channel) uint {
	return l.shift[ch]
}
