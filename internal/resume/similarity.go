package resume

// Ratio returns a similarity score in [0, 1] between two strings, computed as
// 2*LCS(a,b) / (len(a)+len(b)) over runes. Comparison is case-sensitive.
// Anchor resolution uses a 0.6 cutoff; highlight rewrite matching uses 0.55.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// Single-row LCS dynamic program.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// Closest returns the candidate most similar to target with a ratio of at
// least cutoff. The second return is false when no candidate qualifies.
func Closest(target string, candidates []string, cutoff float64) (string, bool) {
	best := ""
	bestScore := 0.0
	found := false
	for _, c := range candidates {
		score := Ratio(target, c)
		if score >= cutoff && (!found || score > bestScore) {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, found
}
