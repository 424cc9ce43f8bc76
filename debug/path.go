package debug

import "strings"

// NormalizePath canonicalizes a debug path spec before matching: backslashes
// become forward slashes, "." segments are dropped, ".." segments collapse
// the preceding component where possible, and an empty input becomes ".".
func NormalizePath(p string) string {
	if p == "" {
		return "."
	}
	slashed := strings.ReplaceAll(p, "\\", "/")
	absolute := strings.HasPrefix(slashed, "/")

	var out []string
	for _, part := range strings.Split(slashed, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else if !absolute {
				out = append(out, "..")
			}
		default:
			out = append(out, part)
		}
	}

	joined := strings.Join(out, "/")
	if absolute {
		joined = "/" + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}
