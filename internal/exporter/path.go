package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is appended to the input base name ("matrix")
const DefaultSuffix = "_矩阵"

// PathOptions controls where outputs go
type PathOptions struct {
	Dir    string // Output directory; "" means the input's directory
	Suffix string // Appended to the input base name
	Output string // Explicit output path; its extension is replaced per format
}

// OutputPath returns the collision-free path an exporter with extension ext should write to.
// Default: <dir>/<input base><suffix><ext>; existing files get _1, _2, ... before the extension.
func OutputPath(input string, opts PathOptions, ext string) string {
	var target string
	if opts.Output != "" {
		target = strings.TrimSuffix(opts.Output, filepath.Ext(opts.Output)) + ext
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		target = filepath.Join(dir, base+opts.Suffix+ext)
	}
	return UniquePath(target)
}

// UniquePath returns path if nothing exists there, otherwise the first free <base>_N<ext>
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
