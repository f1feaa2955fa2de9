package router

import (
	"net/http"
	"strings"

	"stitchquote/app/controller"
)

type Controllers struct {
	Quote      *controller.QuoteController
	Catalog    *controller.CatalogController
	CostConfig *controller.CostConfigController
	Logo       *controller.LogoController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Quote routes
	http.HandleFunc("/quotes/price", controllers.Quote.PriceQuote)
	http.HandleFunc("/quotes/save", controllers.Quote.SaveQuote)

	// Quote by id - handles GET /quotes/:id plus the finalize/render/pdf actions
	http.HandleFunc("/quotes/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/quotes/")

		// Route to specific actions first
		if id, ok := strings.CutSuffix(path, "/finalize"); ok {
			controllers.Quote.FinalizeQuote(w, r, id)
			return
		}
		if id, ok := strings.CutSuffix(path, "/render"); ok {
			controllers.Quote.RenderQuote(w, r, id)
			return
		}
		if id, ok := strings.CutSuffix(path, "/pdf"); ok {
			controllers.Quote.QuotePDF(w, r, id)
			return
		}

		if path == "" || strings.Contains(path, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		controllers.Quote.GetQuote(w, r, path)
	})

	// Catalog routes
	http.HandleFunc("/catalog/values", controllers.Catalog.ListValues)
	http.HandleFunc("/catalog/lookup", controllers.Catalog.Lookup)
	http.HandleFunc("/admin/catalog/import", controllers.Catalog.ImportPriceList)

	// Cost configuration routes
	http.HandleFunc("/admin/costs/material", controllers.CostConfig.ListMaterialCosts)
	http.HandleFunc("/admin/costs/electricity", controllers.CostConfig.ListElectricityCosts)
	http.HandleFunc("/admin/costs/business", controllers.CostConfig.ListBusinessCosts)

	// Optimized logo images
	http.HandleFunc("/logos/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.Logo.GetLogo(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Static assets for quote documents (shop logo, fonts)
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}
