package service

import "github.com/google/uuid"

// QRCodeService produces and reads the pickup codes attached to orders.
// Customers show the code at the counter; kitchen tooling scans it to pull
// up the order.
type QRCodeService interface {
	// GeneratePickupQR renders a PNG QR code embedding the order identifier.
	GeneratePickupQR(orderID uuid.UUID) ([]byte, error)

	// ParsePickupQR extracts the order identifier from scanned QR data.
	ParsePickupQR(qrData string) (uuid.UUID, error)
}
