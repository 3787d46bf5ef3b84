// Package audio acquires and validates audio tracks for transcription.
//
// Acquisition shells out to yt-dlp to download and extract a mono
// 16 kHz WAV track. Every download lives in its own temporary
// directory; removing the Artifact removes the whole directory, so no
// partial output survives a failed run.
package audio

import (
	"errors"
	"os"
)

// ErrExtractionFailed indicates the downloaded artifact failed
// validation and was discarded before transcription.
var ErrExtractionFailed = errors.New("audio: extracted artifact is not usable")

// Artifact is a request-scoped reference to downloaded audio. It is
// produced by a Downloader, consumed exactly once by transcription, and
// must be released with Remove on every exit path.
type Artifact struct {
	// Path is the location of the decoded audio file.
	Path string
	// Size is the file size in bytes at validation time.
	Size int64

	dir string
}

// NewArtifact wraps an existing audio file. When dir is non-empty the
// artifact owns that directory and Remove deletes it wholesale.
func NewArtifact(path, dir string) *Artifact {
	a := &Artifact{Path: path, dir: dir}
	if info, err := os.Stat(path); err == nil {
		a.Size = info.Size()
	}
	return a
}

// Remove deletes the artifact's backing storage. It is idempotent;
// removing an already-removed artifact is not an error.
func (a *Artifact) Remove() error {
	if a == nil || a.dir == "" {
		return nil
	}
	err := os.RemoveAll(a.dir)
	a.dir = ""
	return err
}

// Exists reports whether the artifact's backing file is still present.
func (a *Artifact) Exists() bool {
	if a == nil {
		return false
	}
	_, err := os.Stat(a.Path)
	return err == nil
}
