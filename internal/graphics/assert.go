package graphics

import (
	"fmt"
	"log/slog"

	"github.com/GurayOrg/voxigen/internal/buildflags"
)

// assertf panics in debug builds when cond is false. Release builds log the
// violation and carry on so a bad call never takes the frame loop down.
func assertf(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if buildflags.Debug {
		panic("graphics: " + msg)
	}
	slog.Warn("graphics assertion failed", "msg", msg)
	return false
}
