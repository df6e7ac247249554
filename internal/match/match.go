package match

import (
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Confidence grades a match score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // score < 0.70
	ConfidenceLow                      // score >= 0.70
	ConfidenceMedium                   // score >= 0.85
	ConfidenceHigh                     // score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Candidate is one lookup result. A zero Year means unknown.
type Candidate struct {
	Title string
	Year  int
}

// Result is the best candidate found by Best.
type Result struct {
	Index      int // position in the candidate slice
	Candidate  Candidate
	Score      float64
	Confidence Confidence
}

// Best returns the candidate most similar to query. Scores are Jaro-Winkler
// similarity over cleaned titles, nudged by sequel numbers and release year
// when year is non-zero. ok is false when nothing reaches low confidence.
// Ties keep the earlier candidate, which preserves the service's own ranking.
func Best(query string, year int, candidates []Candidate) (Result, bool) {
	cleanQuery := CleanTitle(query)
	queryNums := numbers(cleanQuery)

	best := Result{Index: -1}
	for i, cand := range candidates {
		cleanCand := CleanTitle(cand.Title)
		score := float64(edlib.JaroWinklerSimilarity(cleanQuery, cleanCand))
		score = adjustForNumbers(score, queryNums, numbers(cleanCand))
		score = adjustForYear(score, year, cand.Year)

		if best.Index < 0 || score > best.Score {
			best = Result{Index: i, Candidate: cand, Score: score}
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Index < 0 || best.Confidence == ConfidenceNone {
		return Result{Index: -1}, false
	}
	return best, true
}

func numbers(clean string) map[string]bool {
	var set map[string]bool
	for _, w := range strings.Fields(clean) {
		if _, err := strconv.Atoi(w); err == nil {
			if set == nil {
				set = make(map[string]bool)
			}
			set[w] = true
		}
	}
	return set
}

// adjustForNumbers keeps "Alien 3" from matching "Alien" or "Aliens 2".
func adjustForNumbers(score float64, query, cand map[string]bool) float64 {
	if len(query) == 0 {
		return score
	}
	if len(cand) == 0 {
		return score * 0.85
	}
	for n := range query {
		if cand[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// adjustForYear rewards an exact year and tolerates an off-by-one (festival
// versus theatrical release). Other mismatches are penalized.
func adjustForYear(score float64, want, got int) float64 {
	if want == 0 || got == 0 {
		return score
	}
	switch diff := want - got; {
	case diff == 0:
		return min(score*1.05, 1.0)
	case diff == 1 || diff == -1:
		return score
	default:
		return score * 0.85
	}
}
