package transcribe

// Segment is one time-aligned fragment of a transcript, as reported by the
// speech service.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the outcome of a transcription operation. Text is always
// present (possibly empty); Language falls back to the configured source
// language when the service does not report one; Segments may be empty.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Options configures a transcription request.
type Options struct {
	// TranslateToEnglish asks the speech service for an English translation
	// directly instead of a source-language transcript.
	TranslateToEnglish bool
}
