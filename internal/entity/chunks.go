package entity

import (
	"encoding/json"
	"fmt"
)

// ChunksRequest asks the chunking service to split a previously uploaded
// document into chunks of at most ChunkCapacity characters.
type ChunksRequest struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	ChunkCapacity uint   `json:"chunk_capacity"`
}

func (r *ChunksRequest) UnmarshalJSON(data []byte) error {
	aux := struct {
		ID            *string `json:"id"`
		Filename      *string `json:"filename"`
		ChunkCapacity *uint   `json:"chunk_capacity"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.ID == nil:
		return fmt.Errorf("%w: id", ErrMissingField)
	case aux.Filename == nil:
		return fmt.Errorf("%w: filename", ErrMissingField)
	case aux.ChunkCapacity == nil:
		return fmt.Errorf("%w: chunk_capacity", ErrMissingField)
	}
	r.ID = *aux.ID
	r.Filename = *aux.Filename
	r.ChunkCapacity = *aux.ChunkCapacity
	return nil
}

// ChunksResponse echoes the request identifiers with the produced chunks in
// document order.
type ChunksResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Chunks   []string `json:"chunks"`
}
