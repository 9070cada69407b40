// Package address resolves postal codes to addresses through an ordered
// chain of lookup providers.
package address

import (
	"context"

	"github.com/eaglebank/registration/shared/models"
)

// Provider looks up the address for a postal code. A provider that does not
// know the code reports (nil, false); that is not an error.
type Provider interface {
	Lookup(ctx context.Context, postalCode string) (*models.Address, bool)
}

// Resolver asks its providers in order and keeps the first address found.
type Resolver struct {
	providers []Provider
}

func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

// Resolve returns the first present result. Providers after the first hit
// are never called. A provider panic is not recovered here.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (*models.Address, bool) {
	for _, p := range r.providers {
		if addr, ok := p.Lookup(ctx, postalCode); ok {
			return addr, true
		}
	}
	return nil, false
}
