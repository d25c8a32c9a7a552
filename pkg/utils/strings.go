// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"fmt"
	"strings"
)

// SplitComaSeparatedString splits and trims a comma-separated string into a
// slice of strings, dropping empty items.
func SplitComaSeparatedString(s string) []string {
	return Filter(Map(strings.Split(s, ","), strings.TrimSpace), func(item string) bool {
		return item != ""
	})
}

// SplitKeyValueStringToMap parses "a=1,b=2" style lists.
func SplitKeyValueStringToMap(str string) (map[string]string, error) {
	kvMap := make(map[string]string)
	for _, entry := range SplitComaSeparatedString(str) {
		k, v, ok := strings.Cut(entry, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", entry)
		}
		kvMap[k] = v
	}
	return kvMap, nil
}

// Cleans up a string by trimming \r and \n characters.
func CleanupString(s string) string {
	return strings.Trim(s, "\r\n")
}
