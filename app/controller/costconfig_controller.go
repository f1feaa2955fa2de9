package controller

import (
	"net/http"

	"stitchquote/models"
	"stitchquote/repository"
)

// CostConfigController exposes the cost configuration the pricing engine
// snapshots from. Read-only; the configuration is edited directly in the
// database by the shop owner.
type CostConfigController struct {
	store repository.CostConfigStore
}

// NewCostConfigController creates a new CostConfigController
func NewCostConfigController(store repository.CostConfigStore) *CostConfigController {
	return &CostConfigController{store: store}
}

// costList is the response shape of every cost listing endpoint.
type costList struct {
	Kind    models.CostKind    `json:"kind"`
	Count   int                `json:"count"`
	Entries []models.CostEntry `json:"entries"`
}

// ListMaterialCosts handles GET /admin/costs/material
func (c *CostConfigController) ListMaterialCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := c.store.LoadMaterialCosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, costList{Kind: models.CostKindMaterial, Count: len(entries), Entries: entries})
}

// ListElectricityCosts handles GET /admin/costs/electricity
func (c *CostConfigController) ListElectricityCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := c.store.LoadElectricityCosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, costList{Kind: models.CostKindElectricity, Count: len(entries), Entries: entries})
}

// ListBusinessCosts handles GET /admin/costs/business
func (c *CostConfigController) ListBusinessCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := c.store.LoadBusinessCosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, costList{Kind: models.CostKindBusiness, Count: len(entries), Entries: entries})
}
