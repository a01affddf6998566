package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault 解析失败或为空时返回 def
func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
