// Package analysis aligns the required control sequence of a course
// against an unordered, possibly noisy stream of actual punches: a classic
// LCS dp table over required codes vs. punch codes, backtracked to recover
// the match set.
package analysis

// Punch is one (code, time) pair from a readout, already relative to the
// run's start time.
type Punch struct {
	Code string
	Time int
}

// Visit pairs a required control code with the time it was matched at, or
// nil if that control was never punched.
type Visit struct {
	Code string
	Time *int
}

// Match pairs a required-control index with the punch index it was matched
// to.
type Match struct {
	RequiredIndex int
	PunchIndex    int
}

// Result is the outcome of aligning a required control list against an
// actual punch stream.
type Result struct {
	Visited      []Visit
	Missing      []string
	Extra        []Punch
	AllVisited   bool
	OrderCorrect bool
	Matches      []Match
}

// Analyze aligns required (ordered control codes) against punches (ordered
// by time) using longest-common-subsequence matching. Where several
// alignments reach the same length, ties are broken toward earlier
// punches: when a code is punched more than once, the earliest punch that
// keeps the alignment maximal is the visit and later repeats land in Extra.
func Analyze(required []string, punches []Punch) Result {
	n := len(required)
	m := len(punches)

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := dp[i][j-1] // skip punch
			if dp[i-1][j] > best {
				best = dp[i-1][j] // skip required
			}
			if required[i-1] == punches[j-1].Code && dp[i-1][j-1]+1 > best {
				best = dp[i-1][j-1] + 1 // match
			}
			dp[i][j] = best
		}
	}

	matches := backtrack(required, punches, dp)

	matchedReq := make(map[int]int, len(matches)) // required index -> punch index
	matchedPunch := make(map[int]bool, len(matches))
	for _, mt := range matches {
		matchedReq[mt.RequiredIndex] = mt.PunchIndex
		matchedPunch[mt.PunchIndex] = true
	}

	visited := make([]Visit, n)
	var missing []string
	for i, code := range required {
		if pj, ok := matchedReq[i]; ok {
			t := punches[pj].Time
			visited[i] = Visit{Code: code, Time: &t}
		} else {
			visited[i] = Visit{Code: code, Time: nil}
			missing = append(missing, code)
		}
	}

	var extra []Punch
	for j, p := range punches {
		if !matchedPunch[j] {
			extra = append(extra, p)
		}
	}

	allVisited := len(matches) == n

	return Result{
		Visited:      visited,
		Missing:      missing,
		Extra:        extra,
		AllVisited:   allVisited,
		OrderCorrect: allVisited, // LCS monotonicity guarantees order whenever complete
		Matches:      matches,
	}
}

// backtrack walks the dp table from (n,m) back to (0,0). At each cell it
// first drops the latest punch whenever the score holds without it, then
// takes a direct match, then skips the required control, so every match
// lands on the earliest punch that keeps the alignment maximal.
func backtrack(required []string, punches []Punch, dp [][]int) []Match {
	n := len(required)
	m := len(punches)

	var matches []Match
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case dp[i][j-1] == dp[i][j]:
			j--
		case required[i-1] == punches[j-1].Code && dp[i-1][j-1]+1 == dp[i][j]:
			matches = append(matches, Match{RequiredIndex: i - 1, PunchIndex: j - 1})
			i--
			j--
		default:
			i--
		}
	}

	// reverse into required order
	for l, r := 0, len(matches)-1; l < r; l, r = l+1, r-1 {
		matches[l], matches[r] = matches[r], matches[l]
	}
	return matches
}

// StripIgnored removes codes from required that appear in the event-wide
// ignore set.
func StripIgnored(required []string, ignore map[string]bool) []string {
	if len(ignore) == 0 {
		return required
	}
	out := make([]string, 0, len(required))
	for _, code := range required {
		if !ignore[code] {
			out = append(out, code)
		}
	}
	return out
}
