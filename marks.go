package wavcue

import "fmt"

// Mark is a cue point resolved against the file's sample rate.
type Mark struct {
	// CueID is the label of the originating cue point.
	CueID uint32
	// Seconds is the offset of the marker from the start of the audio.
	Seconds float64
	// TimeOfDay is the wall-clock position of the marker, present only when
	// the file carried a bext chunk.
	TimeOfDay *TimeOfDay
}

// TimeOfDay is a clock position since local midnight.
// Hour is not wrapped to 24 so day overflows stay visible.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String implements the Stringer interface.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// String renders the mark as a CSV line in the form
// "<seconds>,Mark <id>" with an optional time-of-day suffix.
func (m Mark) String() string {
	if m.TimeOfDay == nil {
		return fmt.Sprintf("%.3f,Mark %d", m.Seconds, m.CueID)
	}

	return fmt.Sprintf("%.3f,Mark %d %s", m.Seconds, m.CueID, m.TimeOfDay)
}

// Marks resolves every decoded cue point into a Mark, preserving order.
// When a bext chunk was decoded, each mark also carries the time-of-day
// derived from the bext time reference.
func (info *FileInfo) Marks() []Mark {
	if info == nil || info.Format == nil || info.Format.SampleRate == 0 {
		return nil
	}

	rate := float64(info.Format.SampleRate)
	marks := make([]Mark, 0, len(info.CuePoints))

	for _, cue := range info.CuePoints {
		mark := Mark{
			CueID:   cue.ID,
			Seconds: float64(cue.SampleStart) / rate,
		}

		if bext := info.BroadcastExtension; bext != nil {
			total := (float64(bext.TimeReference) + float64(cue.SampleStart)) / rate
			mark.TimeOfDay = &TimeOfDay{
				Hour:   int(total / 3600),
				Minute: int(total/60) % 60,
				Second: int(total) % 60,
			}
		}

		marks = append(marks, mark)
	}

	return marks
}
