package core

// SoundID names a sound asset resolvable by the audio library
// Empty value means no sound is configured
type SoundID string

// Set reports whether a sound is configured
func (s SoundID) Set() bool {
	return s != ""
}

// StreamHandle identifies a live audio stream owned by its requester
// Zero is the released/absent handle
type StreamHandle uint64

// NoStream is the released stream handle
const NoStream StreamHandle = 0
