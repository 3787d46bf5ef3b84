package report

// DefaultChunkSize is the transcript block size used when laying out
// the report. Bounding block size keeps layout cost flat for
// arbitrarily long transcripts.
const DefaultChunkSize = 1000

// Chunks splits s into consecutive blocks of at most size characters.
// Concatenating the result reproduces s exactly. A non-positive size
// falls back to DefaultChunkSize.
func Chunks(s string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if s == "" {
		return nil
	}

	out := make([]string, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := start + size
		if end > len(s) {
			end = len(s)
		}
		out = append(out, s[start:end])
	}
	return out
}
