package wavcue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-audio/riff"
)

// Field lengths of the fixed bext layout, in order of appearance.
// The fixed prefix runs through the version field; the coding history text
// that may follow it is skipped, not retained.
const (
	bextDescriptionLen         = 256
	bextOriginatorLen          = 32
	bextOriginatorReferenceLen = 32
	bextOriginationDateLen     = 10
	bextOriginationTimeLen     = 8
	bextTimeReferenceLen       = 8
	bextVersionLen             = 2
	bextFixedSize              = bextDescriptionLen + bextOriginatorLen +
		bextOriginatorReferenceLen + bextOriginationDateLen +
		bextOriginationTimeLen + bextTimeReferenceLen + bextVersionLen
)

var (
	errBextNilChunk   = errors.New("can't decode a nil chunk")
	errBextNilDecoder = errors.New("nil decoder")
)

// BroadcastExtension holds the Broadcast Wave Format origination metadata.
// TimeReference is the sample count of the first sample since local midnight.
type BroadcastExtension struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string // yyyy-mm-dd, kept verbatim
	OriginationTime     string // hh-mm-ss, kept verbatim
	TimeReference       uint64
	Version             uint16
}

// DecodeBroadcastChunk decodes a bext chunk into the decoder. The chunk must
// declare at least the 348-byte fixed layout; a second bext chunk fails the
// decode like a duplicate fmt chunk does.
func DecodeBroadcastChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errBextNilChunk
	}

	if d == nil {
		return errBextNilDecoder
	}

	if ch.ID != CIDBext {
		ch.Drain()
		return nil
	}

	if d.BroadcastExtension != nil {
		return fmt.Errorf("%w: bext", ErrDuplicateChunk)
	}

	if ch.Size < bextFixedSize {
		return fmt.Errorf("%w: bext chunk declares %d bytes, need %d", ErrChunkTooSmall, ch.Size, bextFixedSize)
	}

	buf := make([]byte, bextFixedSize)

	_, err := io.ReadFull(ch, buf)
	if err != nil {
		return fmt.Errorf("%w: bext payload - %s", ErrTruncatedChunk, err)
	}

	bext := &BroadcastExtension{}
	offset := 0

	take := func(n int) []byte {
		out := buf[offset : offset+n]
		offset += n

		return out
	}

	// Free-text fields lose their NUL padding; invalid byte sequences are
	// replaced rather than failing the decode.
	readFixedText := func(n int) string {
		return strings.ToValidUTF8(nullTermStr(take(n)), "\uFFFD")
	}

	bext.Description = readFixedText(bextDescriptionLen)
	bext.Originator = readFixedText(bextOriginatorLen)
	bext.OriginatorReference = readFixedText(bextOriginatorReferenceLen)

	// Date and time are fixed-width, kept as stored.
	bext.OriginationDate = strings.ToValidUTF8(string(take(bextOriginationDateLen)), "\uFFFD")
	bext.OriginationTime = strings.ToValidUTF8(string(take(bextOriginationTimeLen)), "\uFFFD")

	timeRefLow := binary.LittleEndian.Uint32(take(4))
	timeRefHigh := binary.LittleEndian.Uint32(take(4))
	bext.TimeReference = uint64(timeRefHigh)<<32 | uint64(timeRefLow)
	bext.Version = binary.LittleEndian.Uint16(take(bextVersionLen))

	// Anything past the fixed layout is coding history, skipped here.
	ch.Drain()

	d.BroadcastExtension = bext

	d.diagf("%+v", bext)

	return nil
}
