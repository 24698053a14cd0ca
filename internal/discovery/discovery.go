package discovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultPatterns are the glob patterns searched under the root.
var DefaultPatterns = []string{"**/*.{json,yaml,yml}"}

// File represents a discovered file with its metadata
type File struct {
	Path     string
	RelPath  string
	Size     int64
	Type     FileType
	Contents []byte
}

// FileType categorizes discovered files
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeAssessment
	FileTypeCatalog
	FileTypeBaseline
	FileTypeConfig
)

// String returns the human-readable name of the file type.
func (ft FileType) String() string {
	switch ft {
	case FileTypeAssessment:
		return "assessment"
	case FileTypeCatalog:
		return "catalog"
	case FileTypeBaseline:
		return "baseline"
	case FileTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ParseFileType converts a string to a FileType.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assessment", "assessments":
		return FileTypeAssessment, nil
	case "catalog", "questions":
		return FileTypeCatalog, nil
	case "baseline":
		return FileTypeBaseline, nil
	case "config":
		return FileTypeConfig, nil
	default:
		return FileTypeUnknown, fmt.Errorf("invalid type %q: valid types are assessment, catalog, baseline, config", s)
	}
}

// DetectFileType classifies a file by name first and then by its top-level shape:
// a list is a catalog, a mapping with answers is an assessment, a mapping with
// fingerprints is a baseline.
func DetectFileType(path string, contents []byte) FileType {
	if strings.HasPrefix(filepath.Base(path), ".tmmirc.") {
		return FileTypeConfig
	}

	var top any
	if err := yaml.Unmarshal(contents, &top); err != nil {
		return FileTypeUnknown
	}

	switch v := top.(type) {
	case []any:
		return FileTypeCatalog
	case map[string]any:
		if _, ok := v["answers"]; ok {
			return FileTypeAssessment
		}
		if _, ok := v["fingerprints"]; ok {
			return FileTypeBaseline
		}
	}
	return FileTypeUnknown
}

// ValidateFilePath checks that path is a readable, non-empty text file and returns
// its absolute path. Symlinks are resolved.
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		info, err = os.Stat(absPath)
		if err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	if bytes.Contains(buf[:n], []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}

// FileDiscovery manages file discovery operations
type FileDiscovery struct {
	rootPath       string
	followSymlinks bool
	exclude        []string
}

// NewFileDiscovery creates a new FileDiscovery instance. exclude holds doublestar
// patterns matched against paths relative to rootPath.
func NewFileDiscovery(rootPath string, followSymlinks bool, exclude ...string) *FileDiscovery {
	return &FileDiscovery{
		rootPath:       rootPath,
		followSymlinks: followSymlinks,
		exclude:        exclude,
	}
}

// DiscoverFiles finds every file matching DefaultPatterns, sorted by relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	return fd.findFilesByPattern(DefaultPatterns)
}

// DiscoverAssessments returns only the discovered files that look like assessments.
func (fd *FileDiscovery) DiscoverAssessments() ([]File, error) {
	files, err := fd.DiscoverFiles()
	if err != nil {
		return nil, err
	}

	var out []File
	for _, f := range files {
		if f.Type == FileTypeAssessment {
			out = append(out, f)
		}
	}
	return out, nil
}

// findFilesByPattern finds files matching the given glob patterns
func (fd *FileDiscovery) findFilesByPattern(patterns []string) ([]File, error) {
	var files []File
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] || fd.excluded(match) {
				continue
			}
			seen[match] = true
			if f, ok := fd.processMatch(match); ok {
				files = append(files, f)
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func (fd *FileDiscovery) excluded(relPath string) bool {
	for _, pattern := range fd.exclude {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, match)

	info, err := os.Lstat(fullPath)
	if err != nil || info.IsDir() {
		return File{}, false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolved, resolvedInfo, ok := fd.resolveSymlink(fullPath)
		if !ok {
			return File{}, false
		}
		fullPath = resolved
		info = resolvedInfo
	}

	contents, err := os.ReadFile(fullPath)
	if err != nil {
		return File{}, false
	}

	return File{
		Path:     fullPath,
		RelPath:  filepath.ToSlash(match),
		Size:     info.Size(),
		Type:     DetectFileType(match, contents),
		Contents: contents,
	}, true
}

// resolveSymlink follows a symlink if configured, returning the resolved path and info.
// Returns false if the symlink should be skipped.
func (fd *FileDiscovery) resolveSymlink(fullPath string) (string, os.FileInfo, bool) {
	if !fd.followSymlinks {
		return "", nil, false
	}

	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return "", nil, false
	}

	root, err := filepath.EvalSymlinks(fd.rootPath)
	if err != nil || !strings.HasPrefix(realPath, root) {
		return "", nil, false
	}

	info, err := os.Stat(realPath)
	if err != nil || info.IsDir() {
		return "", nil, false
	}

	return realPath, info, true
}
