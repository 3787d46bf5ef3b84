package youtube

import "regexp"

// videoIDPattern matches the first 11-character video identifier that
// follows a v= query marker or a path separator. Anything after the
// identifier (extra query parameters, timestamps) is ignored.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the video identifier out of a watch URL, a
// youtu.be short link, or an embed URL. It returns ErrInvalidURL when
// no identifier is present, so callers can halt before any network call.
func ExtractVideoID(input string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(input)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}
