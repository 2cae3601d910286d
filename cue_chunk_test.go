package wavcue

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestDecodeCueChunkKeepsOnDiskOrder(t *testing.T) {
	points := []testCuePoint{
		{id: 3, position: 0, tag: "data", chunkStart: 0, blockStart: 0, sampleStart: 44100},
		{id: 1, position: 1, tag: "sint", chunkStart: 8, blockStart: 16, sampleStart: 88200},
		{id: 3, position: 2, tag: "data", chunkStart: 0, blockStart: 0, sampleStart: 22050},
	}
	input := buildWave(
		testChunk{id: "fmt ", data: fmtPayload(testFmt())},
		testChunk{id: "cue ", data: cuePayload(points...)},
	)

	info, err := NewDecoder(bytes.NewReader(input)).Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []CuePoint{
		{ID: 3, Position: 0, DataChunkID: DataChunkData, SampleStart: 44100},
		{ID: 1, Position: 1, DataChunkID: DataChunkSint, ChunkStart: 8, BlockStart: 16, SampleStart: 88200},
		{ID: 3, Position: 2, DataChunkID: DataChunkData, SampleStart: 22050},
	}
	if !reflect.DeepEqual(info.CuePoints, want) {
		t.Fatalf("cue points mismatch:\ngot  %+v\nwant %+v", info.CuePoints, want)
	}
}

func TestDecodeCueChunkSizeMismatch(t *testing.T) {
	payload := cuePayload(testCuePoint{id: 1, tag: "data", sampleStart: 100})

	for name, declared := range map[string]uint32{
		"declared too large": uint32(len(payload)) + cueRecordSize,
		"declared too small": uint32(len(payload)) - 1,
	} {
		t.Run(name, func(t *testing.T) {
			input := buildWave(
				testChunk{id: "fmt ", data: fmtPayload(testFmt())},
				testChunk{id: "cue ", data: payload, declaredSize: declared},
			)

			_, err := NewDecoder(bytes.NewReader(input)).Decode()
			if !errors.Is(err, ErrCueSizeMismatch) {
				t.Fatalf("expected ErrCueSizeMismatch, got %v", err)
			}
		})
	}
}

func TestDecodeCueChunkUnknownDataChunkID(t *testing.T) {
	input := buildWave(
		testChunk{id: "fmt ", data: fmtPayload(testFmt())},
		testChunk{id: "cue ", data: cuePayload(testCuePoint{id: 1, tag: "wavl", sampleStart: 100})},
	)

	_, err := NewDecoder(bytes.NewReader(input)).Decode()
	if !errors.Is(err, ErrUnknownDataChunkID) {
		t.Fatalf("expected ErrUnknownDataChunkID, got %v", err)
	}
}

func TestCueChunkRoundTrip(t *testing.T) {
	want := []CuePoint{
		{ID: 42, Position: 0, DataChunkID: DataChunkData, ChunkStart: 12, BlockStart: 34, SampleStart: 56},
		{ID: 43, Position: 1, DataChunkID: DataChunkSint, ChunkStart: 78, BlockStart: 90, SampleStart: 12345},
	}
	input := buildWave(
		testChunk{id: "fmt ", data: fmtPayload(testFmt())},
		testChunk{id: "cue ", data: cuePayloadFromPoints(want)},
	)

	info, err := NewDecoder(bytes.NewReader(input)).Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(info.CuePoints, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", info.CuePoints, want)
	}
}

func TestDataChunkIDString(t *testing.T) {
	if got := DataChunkData.String(); got != "data" {
		t.Fatalf("data chunk id string mismatch: %q", got)
	}

	if got := DataChunkSint.String(); got != "sint" {
		t.Fatalf("sint chunk id string mismatch: %q", got)
	}

	if got := DataChunkID(9).String(); got != "DataChunkID(9)" {
		t.Fatalf("unknown chunk id string mismatch: %q", got)
	}
}
