package helpers

import (
	"fmt"
	"strconv"
)

func StringToUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// ParseID parses a path identifier. Identifiers start at 1.
func ParseID(s string) (uint64, error) {
	id, err := StringToUint64(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
