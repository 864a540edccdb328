package review

import "time"

// Review is a customer review of a single product. Reviews come from two
// sources: seeded reviews shipped with the catalog (read-only template data)
// and reviews submitted at runtime, which are persisted locally.
type Review struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"product_id"`
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Body               string    `json:"body"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	HelpfulCount       int       `json:"helpful_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// Summary holds the aggregate rating statistics for a set of reviews.
// Distribution counts reviews per star value: Distribution[0] is the number
// of 1-star reviews, Distribution[4] the number of 5-star reviews.
type Summary struct {
	Average      float64 `json:"average"`
	Total        int     `json:"total"`
	Distribution [5]int  `json:"distribution"`
}

// Summarize computes the mean rating and the per-star distribution for the
// given reviews. Pure function; reviews with out-of-range ratings are
// ignored (they cannot be created through Submit).
func Summarize(reviews []Review) Summary {
	var s Summary
	sum := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		s.Distribution[r.Rating-1]++
		s.Total++
		sum += r.Rating
	}
	if s.Total > 0 {
		s.Average = float64(sum) / float64(s.Total)
	}
	return s
}
