package update

import (
	"time"

	"github.com/sandeepkv93/todotree/internal/commands"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return "due " + t.Local().Format(commands.DueLayout)
}

// wrapIndex steps i by delta around a list of n entries.
func wrapIndex(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
