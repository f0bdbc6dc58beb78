package player

import "slices"

// SetStandardMediaOptions replaces the options applied to every item played from now on.
// The item currently playing is not affected.
func (p *MediaPlayer) SetStandardMediaOptions(options ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.standardOptions = slices.Clone(options)
}

// StandardMediaOptions returns a copy of the current standard options.
func (p *MediaPlayer) StandardMediaOptions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.standardOptions)
}

// mediaOptions returns the standard options followed by perPlay. p.mu must be held.
func (p *MediaPlayer) mediaOptions(perPlay []string) []string {
	merged := make([]string, 0, len(p.standardOptions)+len(perPlay))
	merged = append(merged, p.standardOptions...)
	return append(merged, perPlay...)
}
