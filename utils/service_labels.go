package utils

import "strings"

// ServiceLabel maps a service type code to its customer-facing display name.
// Input is normalized to lowercase before mapping.
// Unknown codes fall back to a title-cased version of the input.
func ServiceLabel(serviceType string) string {
	st := strings.ToLower(strings.TrimSpace(serviceType))

	labels := map[string]string{
		"print":      "DTF Print",
		"embroidery": "Embroidery",
		"other":      "Other Decoration",
	}

	if label, exists := labels[st]; exists {
		return label
	}

	if st == "" {
		return "Decoration"
	}
	return strings.ToUpper(st[:1]) + st[1:]
}

// LogoSizeLabel maps a logo size value to its display name.
func LogoSizeLabel(logoSize string) string {
	ls := strings.ToLower(strings.TrimSpace(logoSize))

	sizes := map[string]string{
		"small logo": "Small Logo",
		"large logo": "Large Logo",
	}

	if label, exists := sizes[ls]; exists {
		return label
	}
	return logoSize
}
