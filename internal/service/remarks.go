package service

import "fmt"

// Ratings are the three already-validated scores of an evaluation.
type Ratings struct {
	Overall      int
	Technical    int
	NonTechnical int
}

// Average is the arithmetic mean of the three ratings.
func (r Ratings) Average() float64 {
	return float64(r.Overall+r.Technical+r.NonTechnical) / 3
}

const (
	technicalStrong   = "demonstrates strong technical fundamentals including aircraft systems knowledge and flight procedures"
	technicalAdequate = "shows adequate technical knowledge but should dedicate more time to reviewing aircraft systems and standard operating procedures"
	technicalWeak     = "needs significant improvement in technical areas, particularly aircraft systems knowledge and flight procedures"

	nonTechnicalStrong   = "excels in crew resource management, communication, and checklist discipline"
	nonTechnicalAdequate = "demonstrates satisfactory crew resource management and communication skills, but should focus on improving checklist discipline and situational awareness"
	nonTechnicalWeak     = "requires improvement in non-technical skills such as crew resource management, communication, and checklist discipline"

	closingCommendable  = "Overall, this is a commendable performance and continued dedication at this level is encouraged."
	closingSatisfactory = "Overall, performance is satisfactory. Continued effort and focused practice in identified areas will support further progress."
	closingBelow        = "Overall, performance is below expectations. A structured improvement plan and closer mentoring are recommended."
)

func pick(rating int, strong, adequate, weak string) string {
	switch {
	case rating >= 4:
		return strong
	case rating == 3:
		return adequate
	default:
		return weak
	}
}

// SuggestRemarks composes a remarks paragraph from the ratings. It is pure:
// the same ratings always give the same text. Range checks belong to the caller.
func SuggestRemarks(r Ratings) string {
	technical := pick(r.Technical, technicalStrong, technicalAdequate, technicalWeak)
	nonTechnical := pick(r.NonTechnical, nonTechnicalStrong, nonTechnicalAdequate, nonTechnicalWeak)

	var closing string
	switch avg := r.Average(); {
	case avg >= 4:
		closing = closingCommendable
	case avg >= 3:
		closing = closingSatisfactory
	default:
		closing = closingBelow
	}

	return fmt.Sprintf("The individual %s. Additionally, %s. %s", technical, nonTechnical, closing)
}
