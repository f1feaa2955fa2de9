package service

import (
	"context"

	"stitchquote/logging"
	"stitchquote/pricing"
	"stitchquote/repository"
)

// SnapshotService builds immutable cost snapshots for pricing passes.
type SnapshotService struct {
	store repository.CostConfigStore
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(store repository.CostConfigStore) *SnapshotService {
	return &SnapshotService{store: store}
}

// BuildSnapshot loads the full cost configuration (material, electricity and
// business costs) and freezes it into one snapshot. Every line of a pricing
// pass sees the same entries, even if the configuration changes mid-request.
func (s *SnapshotService) BuildSnapshot(ctx context.Context) (*pricing.Snapshot, error) {
	material, err := s.store.LoadMaterialCosts(ctx)
	if err != nil {
		return nil, err
	}
	electricity, err := s.store.LoadElectricityCosts(ctx)
	if err != nil {
		return nil, err
	}
	business, err := s.store.LoadBusinessCosts(ctx)
	if err != nil {
		return nil, err
	}

	all := append(append(material, electricity...), business...)
	snap := pricing.NewSnapshot(all)
	logging.Infof("📦 Cost snapshot built: %d material, %d electricity, %d business (%d total)",
		len(material), len(electricity), len(business), snap.Len())
	return snap, nil
}
