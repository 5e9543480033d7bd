package utils

import "strings"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// SplitList splits a comma separated flag value, trimming blanks and
// dropping empty items and duplicates.
func SplitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || FindIndex(items, item) >= 0 {
			continue
		}
		items = append(items, item)
	}
	return items
}
