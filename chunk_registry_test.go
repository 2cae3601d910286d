package wavcue

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-audio/riff"
)

type testLablHandler struct {
	called bool
}

func (h *testLablHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == [4]byte{'l', 'a', 'b', 'l'}
}

func (h *testLablHandler) Decode(_ *Decoder, ch *riff.Chunk) error {
	h.called = true

	_, err := io.ReadAll(ch.R)

	return err
}

func TestChunkRegistrySupportsCustomHandler(t *testing.T) {
	h := &testLablHandler{}
	registry := &ChunkRegistry{}
	registry.Register(h)

	d := NewDecoder(bytes.NewReader(nil))
	d.chunks = registry

	ch := &riff.Chunk{ID: [4]byte{'l', 'a', 'b', 'l'}, Size: 4, R: bytes.NewReader([]byte{1, 2, 3, 4})}

	handled, err := registry.Decode(d, ch)
	if err != nil {
		t.Fatalf("decode chunk via registry: %v", err)
	}

	if !handled {
		t.Fatal("expected custom labl handler to be selected")
	}

	if !h.called {
		t.Fatal("expected custom labl handler to be called")
	}
}

func TestChunkRegistryUnknownChunkFallback(t *testing.T) {
	d := NewDecoder(bytes.NewReader(nil))

	ch := &riff.Chunk{ID: [4]byte{'t', 'e', 's', 't'}, Size: 3, R: bytes.NewReader([]byte{1, 2, 3})}

	handled, err := d.chunks.Decode(d, ch)
	if err != nil {
		t.Fatalf("decode chunk via registry: %v", err)
	}

	if handled {
		t.Fatal("expected unknown chunk to be unhandled")
	}
}

func TestChunkRegistryDispatchesKnownChunks(t *testing.T) {
	d := NewDecoder(bytes.NewReader(nil))

	payload := cuePayload(testCuePoint{id: 1, tag: "data", sampleStart: 100})
	ch := &riff.Chunk{ID: CIDCue, Size: len(payload), R: bytes.NewReader(payload)}

	handled, err := d.chunks.Decode(d, ch)
	if err != nil {
		t.Fatalf("decode chunk via registry: %v", err)
	}

	if !handled {
		t.Fatal("expected the cue chunk to be handled")
	}

	if len(d.CuePoints) != 1 || d.CuePoints[0].SampleStart != 100 {
		t.Fatalf("cue points mismatch: %+v", d.CuePoints)
	}
}
