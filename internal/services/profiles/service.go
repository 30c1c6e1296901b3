package profiles

import (
	"context"

	"payopti/internal/domain"
	"payopti/internal/ports"
	"payopti/internal/services/relationship"
)

// Profile is a vendor's current relationship standing, computed on demand
// from the master data.
type Profile struct {
	VendorID     string                   `json:"vendor_id"`
	DisplayName  string                   `json:"display_name"`
	Industry     string                   `json:"industry,omitempty"`
	Relationship domain.RelationshipScore `json:"relationship_score"`
}

// Service looks up vendor relationship profiles.
type Service struct {
	vendors ports.VendorRepository
}

func New(vendors ports.VendorRepository) *Service { return &Service{vendors: vendors} }

func (s *Service) Get(ctx context.Context, vendorID string) (Profile, error) {
	vendor, found, err := s.vendors.Vendor(ctx, vendorID)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		return Profile{}, ErrNotFound
	}
	spends, err := s.vendors.AnnualSpends(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		VendorID:     vendor.VendorID,
		DisplayName:  vendor.DisplayName,
		Industry:     vendor.Industry,
		Relationship: relationship.Score(vendor, spends),
	}, nil
}

var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }
