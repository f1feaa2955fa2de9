package service

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	UploadQuotePDF(folderID, filename string, pdf []byte) (string, error)
	DownloadLogo(fileID string) ([]byte, error)
}
