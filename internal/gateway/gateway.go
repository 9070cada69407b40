// Package gateway holds the postal-code lookup adapters used by the address
// resolver. Both upstream APIs are mocked: they answer with a fixed address
// for every code except the ones configured as unknown.
package gateway

import (
	"context"
	"log"

	"github.com/eaglebank/registration/shared/models"
)

const (
	MockedStreet = "Mocked street"
	MockedCity   = "Mocked city"
	MockedState  = "Mocked state"
)

// MockGateway answers lookups with the mocked address.
type MockGateway struct {
	name    string
	unknown map[string]struct{}
}

func newMockGateway(name string, unknownCodes []string) *MockGateway {
	unknown := make(map[string]struct{}, len(unknownCodes))
	for _, code := range unknownCodes {
		unknown[code] = struct{}{}
	}
	return &MockGateway{name: name, unknown: unknown}
}

// NewCorreiosGateway is the primary lookup source.
func NewCorreiosGateway(unknownCodes ...string) *MockGateway {
	return newMockGateway("correios", unknownCodes)
}

// NewMyCepGateway is the fallback lookup source.
func NewMyCepGateway(unknownCodes ...string) *MockGateway {
	return newMockGateway("mycep", unknownCodes)
}

func (g *MockGateway) Name() string { return g.name }

func (g *MockGateway) Lookup(_ context.Context, postalCode string) (*models.Address, bool) {
	if _, ok := g.unknown[postalCode]; ok {
		log.Printf("%s: no address for postal code %s", g.name, postalCode)
		return nil, false
	}
	return &models.Address{
		Street:     MockedStreet,
		City:       MockedCity,
		State:      MockedState,
		PostalCode: postalCode,
	}, true
}
