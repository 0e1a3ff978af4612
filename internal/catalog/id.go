package catalog

import (
	"hash/fnv"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// EntryID derives a stable identifier for a catalog row. The numeric part of the
// code is perturbed by a hash of the whole code so "K001" and "B001" do not collide.
func EntryID(code string, line int) int {
	if code == "" {
		return line + 10000
	}

	h := hashCode(code)
	if m := digitsRe.FindString(code); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n + int(h%1000)
		}
	}

	return int(h%10000) + 1000
}

func hashCode(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
