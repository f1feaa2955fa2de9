package service

import (
	"fmt"

	"stitchquote/logging"
)

// LogoService fetches customer logos from Google Drive, optimizes them and
// serves them through a disk cache so repeat quote renders never re-download.
type LogoService struct {
	driveService DriveServiceInterface
}

// NewLogoService creates a new LogoService instance
func NewLogoService(driveService DriveServiceInterface) *LogoService {
	return &LogoService{
		driveService: driveService,
	}
}

// FetchLogo returns the optimized logo for a Drive file ID, downloading and
// caching it on first use. size is "preview" or "stitch".
func (ls *LogoService) FetchLogo(fileID, size string) ([]byte, error) {
	if fileID == "" {
		return nil, fmt.Errorf("logo file ID is required")
	}

	cachePath := GetCachePath(fileID, size)
	if CacheExists(cachePath) {
		return ReadFromCache(cachePath)
	}

	raw, err := ls.driveService.DownloadLogo(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download logo %s: %w", fileID, err)
	}

	optimized, err := OptimizeLogo(raw, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize logo %s: %w", fileID, err)
	}

	if err := SaveToCache(cachePath, optimized); err != nil {
		// Serve the image anyway; only the cache write failed.
		logging.Warnf("failed to cache logo %s: %v", fileID, err)
	}
	return optimized, nil
}
