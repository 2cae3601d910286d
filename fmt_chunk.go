package wavcue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// fmt chunk is documented here:
// https://www.recordingblogs.com/wiki/format-chunk-of-a-wave-file

// Field layout of the fixed fmt payload, offsets from the payload start.
const (
	fmtFormatTagOff      = 0
	fmtNumChannelsOff    = 2
	fmtSampleRateOff     = 4
	fmtAvgBytesPerSecOff = 8
	fmtBlockAlignOff     = 12
	fmtBitsPerSampleOff  = 14
	fmtChunkMinSize      = 16
)

var (
	errFmtNilChunk   = errors.New("can't decode a nil chunk")
	errFmtNilDecoder = errors.New("nil decoder")
)

// FmtChunk stores the parsed WAV fmt chunk fields. Extended format bytes
// beyond the fixed 16-byte layout are skipped, not interpreted.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// DecodeFmtChunk decodes the fmt chunk into the decoder. A second fmt chunk
// or one declaring fewer than 16 bytes fails the decode.
func DecodeFmtChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errFmtNilChunk
	}

	if d == nil {
		return errFmtNilDecoder
	}

	if ch.ID != riff.FmtID {
		ch.Drain()
		return nil
	}

	if d.FmtChunk != nil {
		return fmt.Errorf("%w: fmt", ErrDuplicateChunk)
	}

	if ch.Size < fmtChunkMinSize {
		return fmt.Errorf("%w: fmt chunk declares %d bytes, need %d", ErrChunkTooSmall, ch.Size, fmtChunkMinSize)
	}

	buf := make([]byte, fmtChunkMinSize)

	_, err := io.ReadFull(ch, buf)
	if err != nil {
		return fmt.Errorf("%w: fmt payload - %s", ErrTruncatedChunk, err)
	}

	fmtChunk := &FmtChunk{
		FormatTag:      binary.LittleEndian.Uint16(buf[fmtFormatTagOff:]),
		NumChannels:    binary.LittleEndian.Uint16(buf[fmtNumChannelsOff:]),
		SampleRate:     binary.LittleEndian.Uint32(buf[fmtSampleRateOff:]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(buf[fmtAvgBytesPerSecOff:]),
		BlockAlign:     binary.LittleEndian.Uint16(buf[fmtBlockAlignOff:]),
		BitsPerSample:  binary.LittleEndian.Uint16(buf[fmtBitsPerSampleOff:]),
	}

	d.FmtChunk = fmtChunk
	d.NumChans = fmtChunk.NumChannels
	d.BitDepth = fmtChunk.BitsPerSample
	d.SampleRate = fmtChunk.SampleRate
	d.AvgBytesPerSec = fmtChunk.AvgBytesPerSec
	d.WavAudioFormat = fmtChunk.FormatTag

	ch.Drain()

	d.diagf("%+v", fmtChunk)

	return nil
}
