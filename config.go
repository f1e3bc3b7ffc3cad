package transcodecheck

// Config is the tunable surface of the analysis pipeline (spec.md §6).
// There is no file or environment-variable parsing in scope; a caller
// (typically cmd/transcodecheck) binds CLI flags directly onto these
// fields.
type Config struct {
	// SkipSpectral, when true, bypasses the spectral analyzer entirely
	// and scores the file on binary evidence alone.
	SkipSpectral bool
	// SuspectThreshold is the minimum combined_score that yields SUSPECT.
	SuspectThreshold int
	// TranscodeThreshold is the minimum combined_score that yields
	// TRANSCODE. Callers are responsible for SuspectThreshold <
	// TranscodeThreshold; Analyze does not enforce it (spec.md §4.6).
	TranscodeThreshold int
	// MaxScanFrames caps how many frames FrameScanner inspects per file.
	MaxScanFrames int
}

// DefaultConfig returns the configuration defaults named in spec.md §6.
func DefaultConfig() Config {
	return Config{
		SkipSpectral:       false,
		SuspectThreshold:   35,
		TranscodeThreshold: 65,
		MaxScanFrames:      200,
	}
}
