package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// Downloader fetches files and verifies them against their expected hash
type Downloader struct {
	Getter FileGetter
	// Progress receives progress bars; nil disables them
	Progress io.Writer
	Log      *log.Logger
}

func NewDownloader(getter FileGetter) *Downloader {
	return &Downloader{Getter: getter}
}

// FetchVerified downloads the file into destDir and returns its path.
// The bytes are written to a temporary file and only moved to destDir/filename once the digest
// matches, so a corrupt download never appears under the final name. An existing file with the
// same name is always replaced by a fresh download.
func (d *Downloader) FetchVerified(file FileRef, destDir string) (string, error) {
	if file.Filename == "" || strings.ContainsAny(file.Filename, `/\`) || file.Filename == "." || file.Filename == ".." {
		return "", fmt.Errorf("invalid file name %q", file.Filename)
	}
	if file.Hash == "" {
		return "", errors.New("file " + file.Filename + " doesn't have a hash")
	}
	hasher, err := GetHashImpl(file.HashFormat)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %w", ErrIO, destDir, err)
	}

	body, size, err := d.Getter.GetFile(file.URL)
	if err != nil {
		return "", fmt.Errorf("%w: failed to download %s: %w", ErrIO, file.Filename, err)
	}
	defer body.Close()

	tempFile, err := os.CreateTemp(destDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temporary file for download: %w", ErrIO, err)
	}
	tempPath := tempFile.Name()
	keep := false
	defer func() {
		if !keep {
			if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
				loggerOr(d.Log).Warn("failed to remove temporary file", "path", tempPath, "err", err)
			}
		}
	}()

	if size < 0 {
		size = file.Size
	}
	src, done := d.track(file.Filename, size, body)
	written, err := io.Copy(io.MultiWriter(tempFile, hasher), src)
	done(written)
	closeErr := tempFile.Close()
	if err != nil {
		return "", fmt.Errorf("%w: failed to download %s: %w", ErrIO, file.Filename, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: failed to write %s: %w", ErrIO, file.Filename, closeErr)
	}

	sum := hasher.Sum(nil)
	if !HashMatches(file.Hash, sum) {
		return "", fmt.Errorf("%w for %s: expected %s %s, got %s", ErrHashMismatch, file.Filename,
			file.HashFormat, file.Hash, EncodeHash(sum))
	}

	destPath := filepath.Join(destDir, file.Filename)
	if err := os.Rename(tempPath, destPath); err != nil {
		return "", fmt.Errorf("%w: failed to move %s into place: %w", ErrIO, file.Filename, err)
	}
	keep = true
	return destPath, nil
}

// track wraps r with a progress bar, if enabled; done must be called once the copy has finished
func (d *Downloader) track(name string, size int64, r io.Reader) (io.Reader, func(written int64)) {
	if d.Progress == nil {
		return r, func(int64) {}
	}
	p := mpb.New(mpb.WithOutput(d.Progress), mpb.WithWidth(40))
	bar := p.AddBar(size,
		mpb.PrependDecorators(decor.Name(name)),
		mpb.AppendDecorators(decor.CountersKibiByte("% .2f / % .2f")),
	)
	return bar.ProxyReader(r), func(written int64) {
		// Completes the bar even when the size was unknown or the copy failed
		bar.SetTotal(written, true)
		p.Wait()
	}
}
