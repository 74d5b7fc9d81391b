package entity

import (
	"encoding/json"
	"fmt"
)

// RetrieveObject is the result of the retrieval step: the scored points found
// in the vector store together with the query parameters that produced them.
// Points stays nil when no search has run; a producer may also send an
// explicitly empty list after a search with zero matches.
type RetrieveObject struct {
	Points []RagScoredPoint `json:"points,omitzero"`

	// The requested maximum number of points, not necessarily the count
	// actually returned.
	Limit uint `json:"limit"`

	// The minimum similarity score accepted.
	ScoreThreshold float32 `json:"score_threshold"`
}

func (r *RetrieveObject) UnmarshalJSON(data []byte) error {
	type plain RetrieveObject
	aux := struct {
		Limit          *uint    `json:"limit"`
		ScoreThreshold *float32 `json:"score_threshold"`
		*plain
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Limit == nil {
		return fmt.Errorf("%w: limit", ErrMissingField)
	}
	if aux.ScoreThreshold == nil {
		return fmt.Errorf("%w: score_threshold", ErrMissingField)
	}
	r.Limit = *aux.Limit
	r.ScoreThreshold = *aux.ScoreThreshold
	return nil
}

// RagScoredPoint pairs the source of a retrieved chunk with its similarity
// score. Higher scores are more similar; the range is defined by the vector
// store, not fixed here.
type RagScoredPoint struct {
	Source string  `json:"source"`
	Score  float32 `json:"score"`
}

func (p *RagScoredPoint) UnmarshalJSON(data []byte) error {
	aux := struct {
		Source *string  `json:"source"`
		Score  *float32 `json:"score"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Source == nil {
		return fmt.Errorf("%w: source", ErrMissingField)
	}
	if aux.Score == nil {
		return fmt.Errorf("%w: score", ErrMissingField)
	}
	p.Source = *aux.Source
	p.Score = *aux.Score
	return nil
}
