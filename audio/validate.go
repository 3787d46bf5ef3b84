package audio

import (
	"encoding/binary"
	"fmt"
	"os"
)

// MinValidSize is the smallest plausible audio file. Anything below
// this is treated as a corrupt or truncated download.
const MinValidSize = 10 * 1024

// Validate checks that the file at path is plausible audio: it exists,
// exceeds MinValidSize, and either parses as a WAV container with at
// least one frame or carries a readable header for an opaque format.
// All failures wrap ErrExtractionFailed.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if info.Size() < MinValidSize {
		return fmt.Errorf("%w: file is %d bytes, below the %d byte minimum",
			ErrExtractionFailed, info.Size(), MinValidSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := f.ReadAt(header, 0); err != nil {
		return fmt.Errorf("%w: unreadable header: %v", ErrExtractionFailed, err)
	}

	if string(header[0:4]) == "RIFF" && string(header[8:12]) == "WAVE" {
		frames, err := wavFrameCount(f)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		if frames == 0 {
			return fmt.Errorf("%w: wav contains no audio frames", ErrExtractionFailed)
		}
		return nil
	}

	// Opaque container: a readable header above the size threshold is
	// the best check available without decoding.
	return nil
}

// wavFrameCount walks the RIFF chunk list and computes the frame count
// from the fmt block alignment and the data chunk size.
func wavFrameCount(f *os.File) (int64, error) {
	var blockAlign uint16
	var dataSize int64

	offset := int64(12) // past RIFF header
	chunk := make([]byte, 8)
	for {
		if _, err := f.ReadAt(chunk, offset); err != nil {
			break
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			fmtData := make([]byte, 16)
			if _, err := f.ReadAt(fmtData, offset+8); err != nil {
				return 0, fmt.Errorf("short fmt chunk: %v", err)
			}
			blockAlign = binary.LittleEndian.Uint16(fmtData[12:14])
		case "data":
			dataSize = size
		}

		// Chunks are word-aligned.
		offset += 8 + size
		if size%2 == 1 {
			offset++
		}
	}

	if blockAlign == 0 {
		return 0, fmt.Errorf("missing or invalid fmt chunk")
	}
	return dataSize / int64(blockAlign), nil
}
