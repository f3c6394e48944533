package core

// SoundType represents the audio cues emitted by interaction feedback
type SoundType int

const (
	SoundSelect  SoundType = iota // Node selection click
	SoundCreate                   // Node or edge spawned
	SoundDelete                   // Node or edge despawned
	SoundError                    // Rejected command buzz
	SoundTypeCount
)

// String returns the cue name used in logs
func (s SoundType) String() string {
	switch s {
	case SoundSelect:
		return "select"
	case SoundCreate:
		return "create"
	case SoundDelete:
		return "delete"
	case SoundError:
		return "error"
	default:
		return "unknown"
	}
}
