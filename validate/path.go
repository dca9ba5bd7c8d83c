package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/kagglemcp/fault"
)

// unsafeFilenameChars are replaced with underscores when sanitizing a
// remote file name for local storage.
const unsafeFilenameChars = `<>:"/\|?*`

// Filename sanitizes a remote file name into a single safe path
// component. Path separators, parent references and characters that are
// unsafe on common file systems are all rejected or replaced.
func Filename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fault.Validation("file name is required")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fault.Validation("file name must not contain path separators")
	}
	if strings.Contains(name, "..") {
		return "", fault.Validation("file name must not contain parent directory references")
	}

	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
	cleaned = strings.Trim(cleaned, " .")

	if cleaned == "" {
		return "", fault.Validation(fmt.Sprintf("file name %q contains no usable characters", name))
	}
	return cleaned, nil
}

// DownloadPath resolves a candidate relative path against the download
// root and guarantees the result stays inside it.
//
// Contract:
//   - Absolute candidates and any candidate escaping the root are
//     rejected, including escapes through "a/../../b" style mixing.
//   - Symlinks inside the root are resolved; a link pointing outside
//     the root is treated as an escape.
//   - The returned path is absolute and lexically clean.
func DownloadPath(root, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", fault.Validation("download path is required")
	}
	if filepath.IsAbs(candidate) {
		return "", fault.Validation("download path must be relative to the download directory")
	}
	if !filepath.IsLocal(candidate) {
		return "", fault.Validation("download path must stay inside the download directory")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fault.Validation("download directory could not be resolved")
	}
	resolved := filepath.Join(absRoot, filepath.Clean(candidate))

	// Walk symlinks for the nearest existing ancestor; a link out of the
	// root would otherwise defeat the lexical checks above.
	if real, err := resolveExisting(resolved); err == nil {
		realRoot, rootErr := filepath.EvalSymlinks(absRoot)
		if rootErr != nil {
			realRoot = absRoot
		}
		if real != realRoot && !strings.HasPrefix(real, realRoot+string(filepath.Separator)) {
			return "", fault.Validation("download path must stay inside the download directory")
		}
	}

	return resolved, nil
}

// resolveExisting evaluates symlinks for path, falling back to the
// closest existing ancestor joined with the remaining suffix.
func resolveExisting(path string) (string, error) {
	suffix := ""
	for current := path; ; current = filepath.Dir(current) {
		real, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(real, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		if current == filepath.Dir(current) {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(current), suffix)
	}
}
