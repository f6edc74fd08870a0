package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// parseHexColor parses "#rgb", "rgb", "#rrggbb" or "rrggbb". Shorthand is
// expanded by doubling each digit.
func parseHexColor(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	// Sscanf inside colorful.Hex stops quietly at the first non-hex digit.
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}
