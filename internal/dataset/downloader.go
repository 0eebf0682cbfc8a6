// file: internal/dataset/downloader.go
// version: 1.2.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

package dataset

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Download source URLs — try direct first, then Internet Archive mirror.
var DumpSources = []string{
	"https://openlibrary.org/data",
	"https://archive.org/download/ol_exports",
}

// DumpFilename is the expected filename for the title dump.
const DumpFilename = "ol_dump_titles_latest.txt.gz"

// DumpURL returns the primary download URL for the title dump.
func DumpURL() string {
	return fmt.Sprintf("%s/%s", DumpSources[0], DumpFilename)
}

// DownloadProgress tracks live download state.
type DownloadProgress struct {
	Status     string    `json:"status"` // "idle", "downloading", "complete", "error"
	Downloaded int64     `json:"downloaded"`
	TotalSize  int64     `json:"total_size"` // -1 if unknown
	Error      string    `json:"error,omitempty"`
	Source     string    `json:"source,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
}

// DownloadTracker holds live progress for the dataset download.
type DownloadTracker struct {
	mu       sync.RWMutex
	progress *DownloadProgress
	bar      *progressbar.ProgressBar
}

// NewDownloadTracker creates a new tracker. When showBar is true a
// terminal progress bar mirrors the tracked state.
func NewDownloadTracker(showBar bool) *DownloadTracker {
	dt := &DownloadTracker{}
	if showBar {
		dt.bar = progressbar.DefaultBytes(-1, "downloading titles")
	}
	return dt
}

// Get returns a copy of the current progress.
func (dt *DownloadTracker) Get() *DownloadProgress {
	dt.mu.RLock()
	defer dt.mu.RUnlock()
	if dt.progress != nil {
		cp := *dt.progress
		return &cp
	}
	return &DownloadProgress{Status: "idle", TotalSize: -1}
}

func (dt *DownloadTracker) set(p *DownloadProgress) {
	dt.mu.Lock()
	defer dt.mu.Unlock()
	dt.progress = p
	if dt.bar != nil && p.Status == "downloading" {
		if p.TotalSize > 0 {
			dt.bar.ChangeMax64(p.TotalSize)
		}
		_ = dt.bar.Set64(p.Downloaded)
	}
	if dt.bar != nil && p.Status == "complete" {
		_ = dt.bar.Finish()
	}
}

// DownloadDump downloads the title dump to the target directory and
// returns the local file path. Tries each source URL in order, falling
// back on failure. Progress is tracked in the provided tracker (may be
// nil).
func DownloadDump(targetDir string, tracker *DownloadTracker) (string, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create target dir: %w", err)
	}

	targetPath := filepath.Join(targetDir, DumpFilename)

	var lastErr error
	for _, baseURL := range DumpSources {
		sourceURL := fmt.Sprintf("%s/%s", baseURL, DumpFilename)
		log.Printf("[INFO] Trying title dump download from: %s", sourceURL)

		err := downloadFromURL(sourceURL, targetPath, tracker)
		if err == nil {
			return targetPath, nil
		}
		log.Printf("[WARN] Download from %s failed: %v, trying next source", sourceURL, err)
		lastErr = err
	}

	errMsg := fmt.Sprintf("all download sources failed: %v", lastErr)
	if tracker != nil {
		tracker.set(&DownloadProgress{Status: "error", Error: errMsg, TotalSize: -1})
	}
	return "", fmt.Errorf("%s", errMsg)
}

func downloadFromURL(sourceURL, targetPath string, tracker *DownloadTracker) error {
	// Check if partial file exists for resume
	var existingSize int64
	if info, err := os.Stat(targetPath); err == nil {
		existingSize = info.Size()
	}

	req, err := http.NewRequest("GET", sourceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if existingSize > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", existingSize))
	}

	client := &http.Client{Timeout: 0} // no timeout for large downloads
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		existingSize = 0
	case http.StatusPartialContent:
		// resume OK
	case http.StatusRequestedRangeNotSatisfiable:
		if tracker != nil {
			tracker.set(&DownloadProgress{
				Status:     "complete",
				Downloaded: existingSize, TotalSize: existingSize, Source: sourceURL,
			})
		}
		return nil
	default:
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, sourceURL)
	}

	var totalSize int64 = -1
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			totalSize = n + existingSize
		}
	}

	started := time.Now()
	if tracker != nil {
		tracker.set(&DownloadProgress{
			Status:     "downloading",
			Downloaded: existingSize, TotalSize: totalSize,
			Source: sourceURL, StartedAt: started,
		})
	}

	flags := os.O_CREATE | os.O_WRONLY
	if existingSize > 0 {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(targetPath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 256*1024)
	downloaded := existingSize
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("failed to write: %w", writeErr)
			}
			downloaded += int64(n)
			if tracker != nil {
				tracker.set(&DownloadProgress{
					Status:     "downloading",
					Downloaded: downloaded, TotalSize: totalSize,
					Source: sourceURL, StartedAt: started,
				})
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return fmt.Errorf("download interrupted: %w", readErr)
		}
	}

	if tracker != nil {
		tracker.set(&DownloadProgress{
			Status:     "complete",
			Downloaded: downloaded, TotalSize: downloaded, Source: sourceURL,
		})
	}

	return nil
}
