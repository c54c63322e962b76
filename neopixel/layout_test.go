package neopixel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaz-r/go-neopixel/neopixel"
)

var TestModeHasExpectedShifts = []struct {
	Mode       string
	R, G, B, W uint
	White      bool
}{
	{"RGB", 16, 8, 0, 0, false},
	{"GRB", 8, 16, 0, 0, false},
	{"BGR", 0, 8, 16, 0, false},
	{"RBG", 16, 0, 8, 0, false},
	{"RGBW", 24, 16, 8, 0, true},
	{"GRBW", 16, 24, 8, 0, true},
	{"WRGB", 16, 8, 0, 24, true},
	{"GWRB", 8, 24, 0, 16, true},
}

func TestParseMode(t *testing.T) {
	for _, v := range TestModeHasExpectedShifts {
		t.Run(v.Mode, func(t *testing.T) {
			l, err := neopixel.ParseMode(v.Mode)
			require.NoError(t, err)
			assert.Equal(t, v.R, l.Shift(neopixel.ChanR))
			assert.Equal(t, v.G, l.Shift(neopixel.ChanG))
			assert.Equal(t, v.B, l.Shift(neopixel.ChanB))
			assert.Equal(t, v.White, l.HasWhite())
			if v.White {
				assert.Equal(t, v.W, l.Shift(neopixel.ChanW))
				assert.Equal(t, 4, l.BytesPerPixel())
			} else {
				assert.Equal(t, 3, l.BytesPerPixel())
			}
		})
	}
}

func TestParseModeShiftsAreDistinctByteOffsets(t *testing.T) {
	for _, v := range TestModeHasExpectedShifts {
		t.Run(v.Mode, func(t *testing.T) {
			l, err := neopixel.ParseMode(v.Mode)
			require.NoError(t, err)
			used := []neopixel.Channel{neopixel.ChanR, neopixel.ChanG, neopixel.ChanB}
			if l.HasWhite() {
				used = append(used, neopixel.ChanW)
			}
			seen := map[uint]bool{}
			for _, ch := range used {
				sh := l.Shift(ch)
				assert.Zero(t, sh%8, "shift %d of channel %d is not byte aligned", sh, ch)
				assert.Less(t, int(sh), l.BytesPerPixel()*8)
				assert.False(t, seen[sh], "shift %d used twice", sh)
				seen[sh] = true
			}
		})
	}
}

func TestParseModeRejectsBadModes(t *testing.T) {
	for _, mode := range []string{"", "RG", "RGBWX", "RGG", "RGBB", "XGB", "RGW", "WRGW", "rgb"} {
		t.Run("mode "+mode, func(t *testing.T) {
			_, err := neopixel.ParseMode(mode)
			require.Error(t, err)
			var cfgErr *neopixel.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
