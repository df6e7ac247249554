package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Matrix", "matrix"},
		{"Léon: The Professional", "leon professional"},
		{"Amélie", "amelie"},
		{"Rocky IV", "rocky 4"},
		{"VII Days", "vii days"},
		{"I, Robot", "i robot"},
		{"American History X", "american history x"},
		{"Fast & Furious", "fast and furious"},
		{"Schindler's List", "schindlers list"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"Mr. Robot", "mr robot"},
		{"A", "a"},
		{"  An   Officer and a Gentleman ", "officer and a gentleman"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.in))
		})
	}
}

func TestConfidenceString(t *testing.T) {
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "medium", ConfidenceMedium.String())
	assert.Equal(t, "low", ConfidenceLow.String())
	assert.Equal(t, "none", ConfidenceNone.String())
}

func TestBest_PrefersMatchingYear(t *testing.T) {
	candidates := []Candidate{
		{Title: "Dune", Year: 1984},
		{Title: "Dune", Year: 2021},
		{Title: "Dune: Part Two", Year: 2024},
	}

	res, ok := Best("dune", 2021, candidates)
	require.True(t, ok)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, 2021, res.Candidate.Year)
	assert.Equal(t, ConfidenceHigh, res.Confidence)
}

func TestBest_WithoutYearKeepsServiceOrder(t *testing.T) {
	candidates := []Candidate{
		{Title: "Dune", Year: 2021},
		{Title: "Dune", Year: 1984},
	}

	res, ok := Best("Dune", 0, candidates)
	require.True(t, ok)
	assert.Equal(t, 0, res.Index)
	assert.InDelta(t, 1.0, res.Score, 0.0001)
}

func TestBest_SequelNumbers(t *testing.T) {
	candidates := []Candidate{
		{Title: "Alien"},
		{Title: "Aliens"},
		{Title: "Alien 3"},
	}

	res, ok := Best("Alien 3", 0, candidates)
	require.True(t, ok)
	assert.Equal(t, "Alien 3", res.Candidate.Title)

	res, ok = Best("Rocky IV", 0, []Candidate{{Title: "Rocky"}, {Title: "Rocky 4"}})
	require.True(t, ok)
	assert.Equal(t, 1, res.Index)
}

func TestBest_NoMatch(t *testing.T) {
	_, ok := Best("anything", 0, nil)
	assert.False(t, ok)

	res, ok := Best("zzzz", 0, []Candidate{{Title: "Dune"}})
	assert.False(t, ok)
	assert.Equal(t, -1, res.Index)
}

func TestAdjustForYear(t *testing.T) {
	assert.InDelta(t, 0.9, adjustForYear(0.9, 0, 2020), 0.0001)
	assert.InDelta(t, 0.9, adjustForYear(0.9, 2020, 0), 0.0001)
	assert.InDelta(t, 0.945, adjustForYear(0.9, 2020, 2020), 0.0001)
	assert.InDelta(t, 1.0, adjustForYear(0.99, 2020, 2020), 0.0001)
	assert.InDelta(t, 0.9, adjustForYear(0.9, 2020, 2019), 0.0001)
	assert.InDelta(t, 0.765, adjustForYear(0.9, 2020, 2010), 0.0001)
}
