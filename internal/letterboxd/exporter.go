package letterboxd

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"lbx/internal/shared"
)

const exportPath = "/data/export/"

// Exporter downloads the account data export archive and unpacks the
// CSV files into the data directory.
type Exporter struct {
	auth       *Auth
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewExporter creates an Exporter on the authenticated session.
func NewExporter(auth *Auth, baseURL string, httpClient *http.Client, logger *log.Logger) *Exporter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Exporter{
		auth:       auth,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Download fetches the export zip and unpacks its CSV files into
// destDir. Returns the list of extracted file paths.
func (e *Exporter) Download(ctx context.Context, destDir string) ([]string, error) {
	if !e.auth.LoggedIn() {
		return nil, fmt.Errorf("%w: cannot download account data", shared.ErrNotLoggedIn)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+exportPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: export status %d", shared.ErrRequestFailed, resp.StatusCode)
	}

	archivePath := filepath.Join(os.TempDir(), fmt.Sprintf("lbx-export-%s.zip", shared.GenerateID()))
	archive, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer os.Remove(archivePath)

	if _, err := io.Copy(archive, resp.Body); err != nil {
		archive.Close()
		return nil, fmt.Errorf("failed to save export archive: %w", err)
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive file: %w", err)
	}

	files, err := unpackArchive(archivePath, destDir)
	if err != nil {
		return nil, err
	}

	e.logger.Info("downloaded account export", "files", len(files), "dir", destDir)
	return files, nil
}

// unpackArchive extracts the CSV files of an export zip into destDir,
// preserving the lists/ subdirectory.
func unpackArchive(archivePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open export archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var extracted []string
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || !strings.HasSuffix(file.Name, ".csv") {
			continue
		}

		target := filepath.Join(destDir, filepath.Clean(file.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("%w: archive entry escapes data directory: %s", shared.ErrInvalidInput, file.Name)
		}

		if err := extractFile(file, target); err != nil {
			return nil, err
		}
		extracted = append(extracted, target)
	}

	if len(extracted) == 0 {
		return nil, fmt.Errorf("%w: archive contained no CSV files", shared.ErrNoExportData)
	}

	return extracted, nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", file.Name, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}

	return nil
}
