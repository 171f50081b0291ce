package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

// appFolderName is the directory created under the downloads root
const appFolderName = "VideoDownloader"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileStore derives output paths for new downloads and lists
// completed files on disk
type FileStore struct {
	root   string
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at the downloads directory
func NewFileStore(downloadDir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		root:   filepath.Join(downloadDir, appFolderName),
		logger: logger,
	}
}

// Root returns the app download directory
func (f *FileStore) Root() string {
	return f.root
}

// SanitizeTitle replaces every unsafe character with an underscore
// and truncates to 50 characters
func SanitizeTitle(title string) string {
	clean := unsafeFilenameChars.ReplaceAllString(title, "_")
	if len(clean) > 50 {
		clean = clean[:50]
	}
	return clean
}

// GenerateFilename builds a filesystem-safe name. With a video id the
// layout is <platform>_<title>_<id>_<yyyyMMdd_HHmmss>.mp4, without
// one it is <platform>_<title>_<epoch-ms>.mp4.
func GenerateFilename(platform domain.Platform, title, videoID string, now time.Time) string {
	clean := SanitizeTitle(title)
	if videoID != "" {
		return fmt.Sprintf("%s_%s_%s_%s.mp4", platform, clean, videoID, now.Format("20060102_150405"))
	}
	return fmt.Sprintf("%s_%s_%d.mp4", platform, clean, now.UnixMilli())
}

// OutputPath computes the destination for a resolved video and
// creates the platform directory. The timestamp is captured once so
// one job never produces two names.
func (f *FileStore) OutputPath(info *domain.VideoInfo) (string, error) {
	dir := filepath.Join(f.root, string(info.Platform))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create platform directory: %w", err)
	}
	return filepath.Join(dir, GenerateFilename(info.Platform, info.Title, info.VideoID, time.Now())), nil
}

// ListDownloads walks the per-platform directories and returns every
// completed mp4, newest first
func (f *FileStore) ListDownloads() ([]*domain.DownloadedFile, error) {
	var files []*domain.DownloadedFile

	platforms := []domain.Platform{
		domain.PlatformYouTube,
		domain.PlatformTikTok,
		domain.PlatformInstagram,
		domain.PlatformFacebook,
		domain.PlatformGeneric,
	}

	for _, platform := range platforms {
		dir := filepath.Join(f.root, string(platform))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read platform directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp4") {
				continue
			}
			fi, err := entry.Info()
			if err != nil {
				f.logger.Warn("skipping unreadable download",
					zap.String("file", entry.Name()),
					zap.Error(err))
				continue
			}
			files = append(files, &domain.DownloadedFile{
				Filename:   entry.Name(),
				Path:       filepath.Join(dir, entry.Name()),
				Platform:   platform,
				Title:      parseTitle(entry.Name()),
				Size:       fi.Size(),
				SizeHuman:  FormatFileSize(fi.Size()),
				ModifiedAt: fi.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})

	return files, nil
}

// Delete removes a completed download by absolute path, refusing
// anything outside the store root
func (f *FileStore) Delete(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(filepath.Separator)) {
		return fmt.Errorf("path %s is outside the download root", path)
	}
	return os.Remove(abs)
}

// CleanupOldest removes downloads beyond the newest maxFiles and
// returns how many were deleted
func (f *FileStore) CleanupOldest(maxFiles int) (int, error) {
	if maxFiles < 0 {
		maxFiles = 0
	}
	files, err := f.ListDownloads()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, file := range files[min(maxFiles, len(files)):] {
		if err := f.Delete(file.Path); err != nil {
			f.logger.Warn("Failed to delete old download",
				zap.String("path", file.Path),
				zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}

// TotalStorageUsed sums the sizes of every listed download
func (f *FileStore) TotalStorageUsed() (int64, error) {
	files, err := f.ListDownloads()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, file := range files {
		total += file.Size
	}
	return total, nil
}

// parseTitle pulls the title component back out of a generated
// filename. Filenames without an id shift the fields, so this stays
// deliberately loose and returns the middle chunk either way.
func parseTitle(filename string) string {
	parts := strings.Split(strings.TrimSuffix(filename, ".mp4"), "_")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-2], "_")
}

// FormatFileSize renders a byte count in human units
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
