package utils

import (
	"math/rand"
	"strings"
)

// RandomName generates a random name with the given prefix
func RandomName(prefix string) string {
	randomString := func(length int) string {
		letterBytes := "abcdefghijklmnopqrstuvwxyz"
		b := make([]byte, length)
		for i := range b {
			b[i] = letterBytes[rand.Intn(len(letterBytes))]
		}
		return string(b)
	}

	return prefix + "-" + randomString(5)
}

// FirstAddr returns the first address of a comma-separated address list
func FirstAddr(addrs string) string {
	if i := strings.Index(addrs, ","); i >= 0 {
		return strings.TrimSpace(addrs[:i])
	}
	return strings.TrimSpace(addrs)
}
