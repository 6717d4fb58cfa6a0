package util

import (
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("invalid id")

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ParseID parses a positive decimal row id.
func ParseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil || v == 0 {
		return 0, ErrInvalidID
	}
	return uint(v), nil
}
