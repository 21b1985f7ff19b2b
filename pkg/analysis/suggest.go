package analysis

import (
	"fmt"
	"strings"
)

// suggestName suggests the closest existing name when an unknown name is
// referenced. It uses Levenshtein distance and only suggests when the
// distance is small enough to look like a typo.
func suggestName(unknown string, names []string) string {
	if len(names) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, name := range names {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	if minDistance < 5 {
		return fmt.Sprintf("Did you mean %q?", bestMatch)
	}

	if len(names) > 5 {
		return fmt.Sprintf("Known names include: %s, ...", strings.Join(names[:5], ", "))
	}
	return fmt.Sprintf("Known names: %s", strings.Join(names, ", "))
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
