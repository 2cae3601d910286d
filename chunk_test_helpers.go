package wavcue

import (
	"bytes"
	"encoding/binary"
)

type testChunk struct {
	id   string
	data []byte
	// declaredSize overrides len(data) in the chunk header when non-zero.
	declaredSize uint32
}

// buildWave assembles a RIFF/WAVE byte stream from the passed chunks,
// padding odd-sized chunk bodies to a word boundary.
func buildWave(chunks ...testChunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	for _, ch := range chunks {
		size := uint32(len(ch.data))
		if ch.declaredSize != 0 {
			size = ch.declaredSize
		}

		body.WriteString(ch.id)
		binary.Write(body, binary.LittleEndian, size)
		body.Write(ch.data)

		if len(ch.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func fmtPayload(fc FmtChunk) []byte {
	buf := make([]byte, fmtChunkMinSize)
	binary.LittleEndian.PutUint16(buf[fmtFormatTagOff:], fc.FormatTag)
	binary.LittleEndian.PutUint16(buf[fmtNumChannelsOff:], fc.NumChannels)
	binary.LittleEndian.PutUint32(buf[fmtSampleRateOff:], fc.SampleRate)
	binary.LittleEndian.PutUint32(buf[fmtAvgBytesPerSecOff:], fc.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(buf[fmtBlockAlignOff:], fc.BlockAlign)
	binary.LittleEndian.PutUint16(buf[fmtBitsPerSampleOff:], fc.BitsPerSample)

	return buf
}

type testCuePoint struct {
	id          uint32
	position    uint32
	tag         string
	chunkStart  uint32
	blockStart  uint32
	sampleStart uint32
}

func cuePayload(points ...testCuePoint) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(len(points)))

	for _, p := range points {
		binary.Write(buf, binary.LittleEndian, p.id)
		binary.Write(buf, binary.LittleEndian, p.position)

		tag := make([]byte, 4)
		copy(tag, p.tag)
		buf.Write(tag)

		binary.Write(buf, binary.LittleEndian, p.chunkStart)
		binary.Write(buf, binary.LittleEndian, p.blockStart)
		binary.Write(buf, binary.LittleEndian, p.sampleStart)
	}

	return buf.Bytes()
}

func cuePayloadFromPoints(points []CuePoint) []byte {
	raw := make([]testCuePoint, 0, len(points))
	for _, p := range points {
		raw = append(raw, testCuePoint{
			id:          p.ID,
			position:    p.Position,
			tag:         p.DataChunkID.String(),
			chunkStart:  p.ChunkStart,
			blockStart:  p.BlockStart,
			sampleStart: p.SampleStart,
		})
	}

	return cuePayload(raw...)
}

func bextPayload(bext BroadcastExtension, codingHistory string) []byte {
	payload := bytes.NewBuffer(make([]byte, 0, bextFixedSize+len(codingHistory)))

	writeFixedString := func(s string, n int) {
		raw := make([]byte, n)
		copy(raw, s)
		payload.Write(raw)
	}

	writeFixedString(bext.Description, bextDescriptionLen)
	writeFixedString(bext.Originator, bextOriginatorLen)
	writeFixedString(bext.OriginatorReference, bextOriginatorReferenceLen)
	writeFixedString(bext.OriginationDate, bextOriginationDateLen)
	writeFixedString(bext.OriginationTime, bextOriginationTimeLen)

	binary.Write(payload, binary.LittleEndian, uint32(bext.TimeReference&0xffffffff))
	binary.Write(payload, binary.LittleEndian, uint32(bext.TimeReference>>32))
	binary.Write(payload, binary.LittleEndian, bext.Version)

	payload.WriteString(codingHistory)

	return payload.Bytes()
}
