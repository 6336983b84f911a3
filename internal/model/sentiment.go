package model

// Verdict is the JSON shape the AI service is asked to return for a rating.
// IsNegative is a pointer so that a missing field can be told apart from false.
type Verdict struct {
	IsNegative     *bool   `json:"is_negative"`
	SuggestedReply *string `json:"suggested_reply"`
}

// NegativeRatingEvent is published to the negative ratings topic.
type NegativeRatingEvent struct {
	RatingID       int64   `json:"rating_id"`
	UserID         int64   `json:"user_id"`
	Value          int     `json:"value"`
	Comments       *string `json:"comments"`
	SuggestedReply *string `json:"suggested_reply"`
	Timestamp      string  `json:"timestamp"`
}
