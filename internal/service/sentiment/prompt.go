package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alloydb-shop/api/internal/model"
)

var errMissingVerdict = errors.New("verdict is missing is_negative")

func buildPrompt(rating model.Rating) string {
	comments := "(no comment provided)"
	if rating.Comments != nil && strings.TrimSpace(*rating.Comments) != "" {
		comments = *rating.Comments
	}

	var sb strings.Builder
	sb.WriteString("You review customer ratings for an online shop.\n")
	sb.WriteString("Decide whether the following rating expresses negative sentiment that customer support should follow up on.\n\n")
	fmt.Fprintf(&sb, "Rating value (1 = worst, 5 = best): %d\n", rating.Value)
	fmt.Fprintf(&sb, "Customer comments: %s\n\n", comments)
	sb.WriteString("Respond with a single JSON object and nothing else, using exactly this shape:\n")
	sb.WriteString(`{"is_negative": true or false, "suggested_reply": "a short, polite reply to the customer, or null when not negative"}`)
	return sb.String()
}

// parseVerdict decodes the model output. Anything that is not one JSON object
// carrying is_negative is rejected.
func parseVerdict(raw string) (model.Verdict, error) {
	var v model.Verdict
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	if err := dec.Decode(&v); err != nil {
		return model.Verdict{}, fmt.Errorf("invalid verdict json: %w", err)
	}
	if dec.More() {
		return model.Verdict{}, errors.New("invalid verdict json: trailing data")
	}
	if v.IsNegative == nil {
		return model.Verdict{}, errMissingVerdict
	}
	return v, nil
}
