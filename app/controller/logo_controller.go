package controller

import (
	"net/http"
	"strings"

	"stitchquote/errs"
	"stitchquote/service"
)

// LogoController serves optimized customer logos fetched from Google Drive.
type LogoController struct {
	logos *service.LogoService // nil when Drive is not configured
}

// NewLogoController creates a new LogoController
func NewLogoController(logos *service.LogoService) *LogoController {
	return &LogoController{logos: logos}
}

// GetLogo handles GET /logos/{fileID}/image?size=preview|stitch
func (c *LogoController) GetLogo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.logos == nil {
		writeError(w, errs.Config("logo serving requires Google Drive credentials"))
		return
	}

	// Path: /logos/{fileID}/image
	path := strings.TrimPrefix(r.URL.Path, "/logos/")
	fileID := strings.TrimSuffix(path, "/image")
	if fileID == "" || fileID == path {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "preview"
	}

	data, err := c.logos.FetchLogo(fileID, size)
	if err != nil {
		writeError(w, errs.Wrapf(errs.TypeInternal, err, "failed to fetch logo %s", fileID))
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
