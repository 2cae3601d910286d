package wavcue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// cue chunk is documented here:
// https://www.recordingblogs.com/wiki/cue-chunk-of-a-wave-file

// Field layout of one cue point record, offsets from the record start.
const (
	cueIDOff          = 0
	cuePositionOff    = 4
	cueDataChunkIDOff = 8
	cueChunkStartOff  = 12
	cueBlockStartOff  = 16
	cueSampleStartOff = 20
	cueRecordSize     = 24
	cueCountSize      = 4
)

var (
	errCueNilChunk   = errors.New("can't decode a nil chunk")
	errCueNilDecoder = errors.New("nil decoder")

	// ErrCueSizeMismatch is returned when the declared cue chunk size does
	// not match its cue point count.
	ErrCueSizeMismatch = errors.New("cue chunk size does not match its cue point count")
	// ErrUnknownDataChunkID is returned when a cue point references a chunk
	// other than data or sint.
	ErrUnknownDataChunkID = errors.New("unknown cue data chunk ID")
)

var (
	dataChunkTagData = [4]byte{'d', 'a', 't', 'a'}
	dataChunkTagSint = [4]byte{'s', 'i', 'n', 't'}
)

// DataChunkID names the kind of chunk a cue point indexes into.
// The format only allows data and sint.
type DataChunkID uint8

const (
	// DataChunkData marks a cue point into a data chunk.
	DataChunkData DataChunkID = iota
	// DataChunkSint marks a cue point into a sint chunk.
	DataChunkSint
)

// String implements the Stringer interface.
func (id DataChunkID) String() string {
	switch id {
	case DataChunkData:
		return "data"
	case DataChunkSint:
		return "sint"
	default:
		return fmt.Sprintf("DataChunkID(%d)", uint8(id))
	}
}

func dataChunkIDFromTag(tag [4]byte) (DataChunkID, error) {
	switch tag {
	case dataChunkTagData:
		return DataChunkData, nil
	case dataChunkTagSint:
		return DataChunkSint, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDataChunkID, string(tag[:]))
	}
}

// CuePoint is a single cue chunk record. SampleStart is the sample index
// within the referenced chunk; IDs are opaque labels, not guaranteed unique.
type CuePoint struct {
	ID          uint32
	Position    uint32
	DataChunkID DataChunkID
	ChunkStart  uint32
	BlockStart  uint32
	SampleStart uint32
}

// DecodeCueChunk decodes a cue chunk and appends its cue points to the
// decoder in on-disk order. The declared chunk size must equal
// 4 + 24*count exactly.
func DecodeCueChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errCueNilChunk
	}

	if d == nil {
		return errCueNilDecoder
	}

	if ch.ID != CIDCue {
		ch.Drain()
		return nil
	}

	var count uint32

	err := ch.ReadLE(&count)
	if err != nil {
		return fmt.Errorf("failed to read the cue point count - %w", err)
	}

	if uint64(ch.Size) != cueCountSize+cueRecordSize*uint64(count) {
		return fmt.Errorf("%w: %d bytes for %d cue points", ErrCueSizeMismatch, ch.Size, count)
	}

	buf := make([]byte, cueRecordSize)

	for i := uint32(0); i < count; i++ {
		_, err := io.ReadFull(ch, buf)
		if err != nil {
			return fmt.Errorf("%w: cue point %d - %s", ErrTruncatedChunk, i, err)
		}

		var tag [4]byte
		copy(tag[:], buf[cueDataChunkIDOff:cueChunkStartOff])

		dataChunkID, err := dataChunkIDFromTag(tag)
		if err != nil {
			return err
		}

		point := CuePoint{
			ID:          binary.LittleEndian.Uint32(buf[cueIDOff:]),
			Position:    binary.LittleEndian.Uint32(buf[cuePositionOff:]),
			DataChunkID: dataChunkID,
			ChunkStart:  binary.LittleEndian.Uint32(buf[cueChunkStartOff:]),
			BlockStart:  binary.LittleEndian.Uint32(buf[cueBlockStartOff:]),
			SampleStart: binary.LittleEndian.Uint32(buf[cueSampleStartOff:]),
		}

		d.CuePoints = append(d.CuePoints, point)
		d.diagf("%+v", point)
	}

	ch.Drain()

	return nil
}
