package neopixel

import "fmt"

// ConfigError reports an invalid strip configuration. It is returned at
// construction time and the strip can't recover from it.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "neopixel: " + e.Reason
}

// IndexError reports a pixel index, or an index implied by a range, outside
// the strip. The caller decides whether to retry with corrected bounds.
type IndexError struct {
	Index     int
	NumPixels int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("neopixel: pixel %d out of range [0,%d)", e.Index, e.NumPixels)
}
