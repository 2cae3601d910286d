package wavcue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// CIDCue is the chunk ID for the cue chunk.
	CIDCue = [4]byte{'c', 'u', 'e', 0x20}
	// CIDBext is the chunk ID for the broadcast extension chunk.
	CIDBext = [4]byte{'b', 'e', 'x', 't'}

	// ErrNotWaveFile is returned when the RIFF/WAVE container envelope is missing.
	ErrNotWaveFile = errors.New("not a wave file")
	// ErrZeroSizeChunk is returned when a chunk header declares a size of zero.
	ErrZeroSizeChunk = errors.New("zero-size chunk")
	// ErrTruncatedChunk is returned when the stream ends before a declared
	// chunk header or payload is complete.
	ErrTruncatedChunk = errors.New("truncated chunk")
	// ErrChunkTooSmall is returned when a chunk declares fewer bytes than its
	// fixed layout requires.
	ErrChunkTooSmall = errors.New("chunk smaller than its fixed layout")
	// ErrDuplicateChunk is returned when a chunk that may appear at most once
	// shows up a second time.
	ErrDuplicateChunk = errors.New("duplicate chunk")
	// ErrMissingFmtChunk is returned when the file contains no fmt chunk.
	ErrMissingFmtChunk = errors.New("no fmt chunk found")
	// ErrDurationUnavailable is returned when the duration can't be derived
	// from the decoded chunks.
	ErrDurationUnavailable = errors.New("duration unavailable")
)

// FileInfo is the aggregate result of decoding one wav file.
type FileInfo struct {
	Format             *FmtChunk
	CuePoints          []CuePoint
	BroadcastExtension *BroadcastExtension
}

// Decoder handles the decoding of wav cue and broadcast metadata.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser
	chunks *ChunkRegistry

	NumChans       uint16
	BitDepth       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	WavAudioFormat uint16

	// FmtChunk is the decoded fmt chunk, nil until one is seen.
	FmtChunk *FmtChunk
	// CuePoints holds the decoded cue points in on-disk order.
	CuePoints []CuePoint
	// BroadcastExtension is the decoded bext chunk, nil when absent.
	BroadcastExtension *BroadcastExtension
	// PCMSize is the declared size of the data chunk, captured while
	// skipping it (informational only, the samples are not decoded).
	PCMSize int

	// Diag receives human readable progress notes while decoding
	// (skipped chunks, decoded records, byte accounting). Nil disables them.
	Diag io.Writer

	envelopeParsed bool
	bytesProcessed int64
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
		chunks: newDefaultChunkRegistry(),
	}
}

// ReadFile decodes the wav file at the given path.
func ReadFile(path string) (*FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s - %w", path, err)
	}
	defer file.Close()

	return NewDecoder(file).Decode()
}

// Decode walks the chunk stream once and returns the decoded result.
// The walk ends when the reader runs out of chunks; a missing fmt chunk,
// a malformed container or a short read all abort with a typed error.
func (d *Decoder) Decode() (*FileInfo, error) {
	err := d.readHeaders()
	if err != nil {
		return nil, err
	}

	for {
		chunk, err := d.nextChunk()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		handled, err := d.chunks.Decode(d, chunk)
		if err != nil {
			return nil, err
		}

		if !handled {
			if chunk.ID == riff.DataFormatID {
				d.PCMSize = chunk.Size
			}

			d.diagf("skipping %s", string(chunk.ID[:]))
		}

		// Skip to the chunk boundary, covering both unknown chunks and
		// trailing bytes a handler left unread.
		chunk.Drain()
		d.bytesProcessed += int64(chunk.Size)

		err = d.skipPadByte(chunk.Size)
		if err != nil {
			return nil, err
		}
	}

	d.diagf("bytes left: %d", int64(d.parser.Size)-d.bytesProcessed)

	if d.FmtChunk == nil {
		return nil, ErrMissingFmtChunk
	}

	return &FileInfo{
		Format:             d.FmtChunk,
		CuePoints:          d.CuePoints,
		BroadcastExtension: d.BroadcastExtension,
	}, nil
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil || d.FmtChunk == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// Duration estimates the audio duration from the data chunk size and the
// average byte rate declared by the fmt chunk.
func (d *Decoder) Duration() (time.Duration, error) {
	if d == nil || d.FmtChunk == nil || d.AvgBytesPerSec == 0 || d.PCMSize == 0 {
		return 0, ErrDurationUnavailable
	}

	seconds := float64(d.PCMSize) / float64(d.AvgBytesPerSec)

	return time.Duration(seconds * float64(time.Second)), nil
}

// readHeaders validates the RIFF/WAVE container envelope.
// It is safe to call multiple times.
func (d *Decoder) readHeaders() error {
	if d.envelopeParsed {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: missing RIFF header", ErrNotWaveFile)
		}

		return fmt.Errorf("failed to read the RIFF header: %w", err)
	}

	if id != riff.RiffID {
		return fmt.Errorf("%w: %q - %s", ErrNotWaveFile, string(id[:]), riff.ErrFmtNotSupported)
	}

	d.parser.ID = id
	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("%w: missing form type", ErrNotWaveFile)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%w: form type %q", ErrNotWaveFile, string(d.parser.Format[:]))
	}

	d.envelopeParsed = true
	d.diagf("Audio data size: %d", size)

	return nil
}

// nextChunk reads the next chunk header and wraps the payload in a limited
// reader. Running out of bytes on the chunk ID is the normal end of the walk
// and surfaces as io.EOF.
func (d *Decoder) nextChunk() (*riff.Chunk, error) {
	var id [4]byte

	_, err := io.ReadFull(d.r, id[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("failed to read chunk ID: %w", err)
	}

	var size uint32

	err = binary.Read(d.r, binary.LittleEndian, &size)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %q header cut short", ErrTruncatedChunk, string(id[:]))
		}

		return nil, fmt.Errorf("failed to read %q chunk size: %w", string(id[:]), err)
	}

	if size == 0 {
		return nil, fmt.Errorf("%w: %q", ErrZeroSizeChunk, string(id[:]))
	}

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(d.r, int64(size)),
	}, nil
}

// skipPadByte consumes the word alignment byte following an odd-sized chunk.
// A missing pad byte at the end of the stream is tolerated.
func (d *Decoder) skipPadByte(chunkSize int) error {
	if chunkSize%2 == 0 {
		return nil
	}

	var pad [1]byte

	_, err := io.ReadFull(d.r, pad[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to skip chunk pad byte: %w", err)
	}

	if err == nil {
		d.bytesProcessed++
	}

	return nil
}

func (d *Decoder) diagf(format string, args ...any) {
	if d == nil || d.Diag == nil {
		return
	}

	fmt.Fprintf(d.Diag, format+"\n", args...)
}
