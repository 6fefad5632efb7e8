package tui

import "go-midiscene/scene"

// UploadStats stands in for the GPU: it receives the note buffer uploads of
// the scene and keeps counters for the status line.
type UploadStats struct {
	Full     int // whole-buffer uploads
	Partial  int // range uploads
	Slots    int // slots sent through range uploads
	Min, Max int // last range
}

// Upload records a full replace
func (u *UploadStats) Upload(notes []scene.Note) {
	u.Full++
	u.Min, u.Max = 0, len(notes)-1
}

// UploadRange records a partial replace of notes[min..max]
func (u *UploadStats) UploadRange(notes []scene.Note, min, max int) {
	u.Partial++
	u.Slots += max - min + 1
	u.Min, u.Max = min, max
}
