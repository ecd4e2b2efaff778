package corpus

import (
	"path/filepath"
	"strings"
)

// Suffixes inserted between the stem and the extension of the input file.
const (
	CleanSuffix  = "_clean"
	TaggedSuffix = "_tagged"
)

// OutputPaths derives the clean and tagged artifact paths for an input file.
//
// Only the extension of the final path element is replaced, so
// "/data/x.txt/booksUN.txt" becomes "/data/x.txt/booksUN_clean.txt". A file
// without an extension (or a dot file such as ".reviews") gets the suffix
// appended to its name.
func OutputPaths(path string) (cleanPath, taggedPath string) {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	stem := strings.TrimSuffix(path, ext)
	return stem + CleanSuffix + ext, stem + TaggedSuffix + ext
}
