package services

import "github.com/lumina-home/lumina-console/internal/models"

// ReasonSeparator is put between the status indicator and its reason.
const ReasonSeparator = "\u2003"

// ResolveStatus maps a status code and optional reason to its display form.
func ResolveStatus(status models.StatusCode, reason string) models.DisplayStatus {
	ds := models.DisplayStatus{
		Color: models.ColorOff,
		Icon:  models.IconFilled,
	}

	switch status {
	case models.StatusRed:
		ds.Color = models.ColorRed
	case models.StatusYellow:
		ds.Color = models.ColorYellow
	case models.StatusGreen:
		ds.Color = models.ColorGreen
	default:
		ds.Icon = models.IconUnknown
	}

	if reason != "" {
		ds.ReasonText = ReasonSeparator + reason
	}

	return ds
}
