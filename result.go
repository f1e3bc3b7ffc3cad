package transcodecheck

import "github.com/sonicaudit/transcodecheck/internal/scoring"

// Verdict classifies a single analyzed file.
type Verdict = scoring.Verdict

const (
	VerdictOK        = scoring.VerdictOK
	VerdictSuspect   = scoring.VerdictSuspect
	VerdictTranscode = scoring.VerdictTranscode
	VerdictError     = scoring.VerdictError
)

// AnalysisResult is the final record produced by Analyze for one file.
// Field names and JSON tags match the output record named in spec.md §6
// exactly, since report renderers depend on that naming for stability.
type AnalysisResult struct {
	FilePath     string  `json:"file_path"`
	FileName     string  `json:"file_name"`
	BitrateKbps  int     `json:"bitrate"`
	SampleRateHz int     `json:"sample_rate"`
	DurationSecs float64 `json:"duration_secs"`

	Verdict       Verdict `json:"verdict"`
	CombinedScore int     `json:"combined_score"`
	SpectralScore int     `json:"spectral_score"`
	BinaryScore   int     `json:"binary_score"`

	Flags      []string `json:"flags"`
	Encoder    string   `json:"encoder"`
	LowpassHz  *int     `json:"lowpass"`

	SpectralDetails map[string]string `json:"spectral_details,omitempty"`
	BinaryDetails   map[string]string `json:"binary_details,omitempty"`

	Error *string `json:"error"`
}
