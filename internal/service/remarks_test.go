package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestRemarksTotalAndDeterministic(t *testing.T) {
	for o := 1; o <= 5; o++ {
		for tr := 1; tr <= 5; tr++ {
			for n := 1; n <= 5; n++ {
				r := Ratings{Overall: o, Technical: tr, NonTechnical: n}
				first := SuggestRemarks(r)
				require.NotEmpty(t, first)
				assert.Equal(t, first, SuggestRemarks(r))
				assert.True(t, strings.HasPrefix(first, "The individual "))
				assert.Contains(t, first, ". Additionally, ")
			}
		}
	}
}

func TestSuggestRemarksClauseThresholds(t *testing.T) {
	cases := []struct {
		rating       int
		technical    string
		nonTechnical string
	}{
		{5, technicalStrong, nonTechnicalStrong},
		{4, technicalStrong, nonTechnicalStrong},
		{3, technicalAdequate, nonTechnicalAdequate},
		{2, technicalWeak, nonTechnicalWeak},
		{1, technicalWeak, nonTechnicalWeak},
	}
	for _, tc := range cases {
		got := SuggestRemarks(Ratings{Overall: 3, Technical: tc.rating, NonTechnical: tc.rating})
		assert.Contains(t, got, tc.technical, "technical rating %d", tc.rating)
		assert.Contains(t, got, tc.nonTechnical, "non-technical rating %d", tc.rating)
	}
}

func TestSuggestRemarksClosingBoundaries(t *testing.T) {
	// average exactly 4.0
	assert.True(t, strings.HasSuffix(SuggestRemarks(Ratings{Overall: 4, Technical: 4, NonTechnical: 4}), closingCommendable))
	assert.True(t, strings.HasSuffix(SuggestRemarks(Ratings{Overall: 5, Technical: 4, NonTechnical: 3}), closingCommendable))
	// average 3.67
	assert.True(t, strings.HasSuffix(SuggestRemarks(Ratings{Overall: 4, Technical: 4, NonTechnical: 3}), closingSatisfactory))
	// average exactly 3.0
	assert.True(t, strings.HasSuffix(SuggestRemarks(Ratings{Overall: 3, Technical: 3, NonTechnical: 3}), closingSatisfactory))
	// average 2.67
	assert.True(t, strings.HasSuffix(SuggestRemarks(Ratings{Overall: 3, Technical: 3, NonTechnical: 2}), closingBelow))
}

func TestSuggestRemarksExactShape(t *testing.T) {
	got := SuggestRemarks(Ratings{Overall: 2, Technical: 4, NonTechnical: 3})
	want := "The individual " + technicalStrong + ". Additionally, " + nonTechnicalAdequate + ". " + closingSatisfactory
	assert.Equal(t, want, got)
}
