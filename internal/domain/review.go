package domain

import "time"

type Review struct {
	ID        string
	JobID     string
	AuthorID  string
	SubjectID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// AverageRating returns the mean rating of reviews, or 0 when there are none.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
