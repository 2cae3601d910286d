package wavcue

import (
	"fmt"

	"github.com/go-audio/riff"
)

// ChunkHandler is a typed handler for RIFF/WAV chunks.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Decode(d *Decoder, ch *riff.Chunk) error
}

// ChunkRegistry resolves chunks to handlers. Chunks no handler claims are
// skipped by the walker.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&cueChunkHandler{},
			&bextChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to the first matching handler.
func (r *ChunkRegistry) Decode(dec *Decoder, chnk *riff.Chunk) (bool, error) {
	if r == nil || chnk == nil {
		return false, nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(chnk.ID) {
			err := handler.Decode(dec, chnk)
			if err != nil {
				return true, fmt.Errorf("chunk handler decode failed: %w", err)
			}

			return true, nil
		}
	}

	return false, nil
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.FmtID
}

func (h *fmtChunkHandler) Decode(d *Decoder, ch *riff.Chunk) error {
	return DecodeFmtChunk(d, ch)
}

type cueChunkHandler struct{}

func (h *cueChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDCue
}

func (h *cueChunkHandler) Decode(d *Decoder, ch *riff.Chunk) error {
	return DecodeCueChunk(d, ch)
}

type bextChunkHandler struct{}

func (h *bextChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDBext
}

func (h *bextChunkHandler) Decode(d *Decoder, ch *riff.Chunk) error {
	return DecodeBroadcastChunk(d, ch)
}
