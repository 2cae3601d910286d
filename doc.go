// Package wavcue extracts cue point markers from RIFF/WAVE files.
//
// The package walks the chunk stream of a wav file and decodes the fmt ,
// cue  and bext chunks. Every other chunk is skipped. The decoded result
// pairs each cue point with a timestamp relative to the start of the file
// and, when the file carries a Broadcast Wave Format (bext) chunk, with a
// wall-clock time-of-day derived from the bext time reference.
//
// Typical use:
//
//	info, err := wavcue.ReadFile("session.wav")
//	if err != nil {
//		// handle
//	}
//	for _, mark := range info.Marks() {
//		fmt.Println(mark)
//	}
//
// Decoding audio sample data and writing wav files are out of scope.
package wavcue
