package marker

import (
	"strconv"
	"strings"

	"github.com/oshokin/paper-updater/internal/config"
)

// Matches reports whether the raw marker content names build.
//
// In string mode the raw text must equal the decimal build number exactly, so
// "042" or a trailing newline count as a different build. Numeric mode trims
// and parses the marker first; content that is not an integer never matches.
func Matches(raw string, build int, mode string) bool {
	if mode == config.ComparisonNumeric {
		recorded, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return false
		}

		return recorded == build
	}

	return raw == strconv.Itoa(build)
}
