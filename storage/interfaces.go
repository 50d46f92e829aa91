package storage

import "github.com/malick97/Rental-Profit/models"

// ReportExporter writes a finished simulation run somewhere outside the process
type ReportExporter interface {
	Export(report *models.PricingReport) error
}
