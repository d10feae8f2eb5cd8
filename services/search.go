package services

import (
	"sort"
	"strings"
	"unicode"

	"abchotels/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

const (
	closestMatchScore = 13
	substringScore    = 10
	similarityWeight  = 10
	minSimilarity     = 0.5
)

// ScoredCity is a city search hit
type ScoredCity struct {
	City  models.City `json:"city"`
	Score int         `json:"score"`
}

// removeDiacritics strips combining marks after NFD decomposition
func removeDiacritics(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeInput folds accents, then transliterates whatever is still non-ASCII
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(removeDiacritics(input)))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity is 1 minus the edit distance over the longer length
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// scoreCity rates one normalized name against the normalized query.
// The closest-match bonus only counts on top of a textual hit.
func scoreCity(query, name string, cm *closestmatch.ClosestMatch) int {
	score := 0
	if strings.Contains(name, query) {
		score += substringScore
	}
	if sim := calculateSimilarity(query, name); sim >= minSimilarity {
		score += int(sim * similarityWeight)
	}
	if score > 0 && cm != nil && cm.Closest(query) == name {
		score += closestMatchScore
	}
	return score
}

// rankCities returns the cities matching query, best first
func rankCities(query string, cities []models.City) []ScoredCity {
	q := normalizeInput(query)
	if q == "" || len(cities) == 0 {
		return []ScoredCity{}
	}

	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = normalizeInput(c.Name)
	}
	cm := createMatcher(names)

	hits := make([]ScoredCity, 0)
	for i, c := range cities {
		if score := scoreCity(q, names[i], cm); score > 0 {
			hits = append(hits, ScoredCity{City: c, Score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].City.Name < hits[j].City.Name
	})
	return hits
}
