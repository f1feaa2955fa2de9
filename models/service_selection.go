package models

// ServiceType identifies a customization service.
type ServiceType string

const (
	ServicePrint      ServiceType = "print"
	ServiceEmbroidery ServiceType = "embroidery"
	ServiceOther      ServiceType = "other"
)

// ServiceSelection describes one customization service chosen for a quote
// line. Created by the caller, consumed read-only by the engine.
type ServiceSelection struct {
	ServiceType    ServiceType `json:"serviceType" validate:"required,oneof=print embroidery other"`
	LogoCount      int         `json:"logoCount" validate:"gte=0"`
	LogoSize       string      `json:"logoSize"`
	PlacementCount int         `json:"placementCount" validate:"gte=0"`
	// CostEntryRefs are snapshot keys of the cost entries this service draws
	// on (material, electricity and business entries).
	CostEntryRefs []string `json:"costEntryRefs"`
}

// Valid reports whether the selection is well formed.
func (s ServiceSelection) Valid() bool {
	switch s.ServiceType {
	case ServicePrint, ServiceEmbroidery, ServiceOther:
	default:
		return false
	}
	return s.LogoCount >= 0 && s.PlacementCount >= 0
}
