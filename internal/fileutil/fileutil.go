package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mediaExtensions lists the container formats the pipelines accept.
var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".m4v":  {},
	".flv":  {},
	".wmv":  {},
	".webm": {},
}

// IsMediaFile reports whether the path has a supported media extension.
// The check is case-insensitive.
func IsMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := mediaExtensions[ext]
	return ok
}

// Stem returns the base name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ScanMedia lists the supported media files directly under dir, sorted by
// name. Subdirectories are not descended into.
func ScanMedia(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan media: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsMediaFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Pair is a raw recording matched with its edited counterpart.
type Pair struct {
	Raw    string
	Edited string
}

// PairByStem matches each raw file with an edited file sharing its stem.
// An exact stem match wins; otherwise the first edited file whose stem
// extends the raw stem is taken. Each edited file is used at most once,
// and unmatched raw files are returned separately.
func PairByStem(rawFiles, editedFiles []string) (pairs []Pair, unmatched []string) {
	used := make(map[int]bool, len(editedFiles))
	for _, raw := range rawFiles {
		idx := matchEdited(Stem(raw), editedFiles, used)
		if idx < 0 {
			unmatched = append(unmatched, raw)
			continue
		}
		used[idx] = true
		pairs = append(pairs, Pair{Raw: raw, Edited: editedFiles[idx]})
	}
	return pairs, unmatched
}

func matchEdited(rawStem string, editedFiles []string, used map[int]bool) int {
	for i, edited := range editedFiles {
		if !used[i] && Stem(edited) == rawStem {
			return i
		}
	}
	for i, edited := range editedFiles {
		if !used[i] && strings.HasPrefix(Stem(edited), rawStem) {
			return i
		}
	}
	return -1
}

// CopyFileVerified streams src to dst with SHA256 + size integrity
// verification. Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}
