package apply

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Extensions the tool accepts as media inputs.
var mediaExts = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
	".opus": true,
	".aac":  true,
	".webm": true,
}

// IsMediaFile reports whether path has a recognized media extension.
func IsMediaFile(path string) bool {
	return mediaExts[strings.ToLower(filepath.Ext(path))]
}

// MediaFiles lists the media files in dir in natural name order.
func MediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsMediaFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(filepath.Base(files[i]), filepath.Base(files[j]))
	})
	return files, nil
}

// naturalLess orders names chunk by chunk, where a chunk is a run of
// digits or a run of non-digits. Digit runs compare numerically and
// the rest case-insensitively, so "track2" sorts before "track10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, restA := chunk(a)
		cb, restB := chunk(b)
		if ca != cb {
			na, errA := strconv.Atoi(ca)
			nb, errB := strconv.Atoi(cb)
			if errA == nil && errB == nil {
				if na != nb {
					return na < nb
				}
			} else {
				la, lb := strings.ToLower(ca), strings.ToLower(cb)
				if la != lb {
					return la < lb
				}
			}
		}
		a, b = restA, restB
	}
	return len(a) < len(b)
}

func chunk(s string) (head, tail string) {
	isDigit := s[0] >= '0' && s[0] <= '9'
	i := 1
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') == isDigit {
		i++
	}
	return s[:i], s[i:]
}
