package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"stitchquote/logging"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// UploadQuotePDF uploads a generated quote PDF into the shared quotes folder
// and returns the Drive file ID.
func (ds *DriveService) UploadQuotePDF(folderID, filename string, pdf []byte) (string, error) {
	meta := &drive.File{
		Name:     filename,
		MimeType: "application/pdf",
		Parents:  []string{folderID},
	}

	file, err := ds.client.Files.Create(meta).
		Media(bytes.NewReader(pdf)).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload quote PDF: %w", err)
	}

	logging.Infof("✓ Quote PDF uploaded to Drive: %s (%s)", filename, file.Id)
	return file.Id, nil
}

// DownloadLogo downloads a customer logo file from Google Drive by file ID.
func (ds *DriveService) DownloadLogo(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
