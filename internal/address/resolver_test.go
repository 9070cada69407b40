package address

import (
	"context"
	"testing"

	"github.com/eaglebank/registration/shared/models"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	addr  *models.Address
	calls []string
}

func (p *stubProvider) Lookup(_ context.Context, postalCode string) (*models.Address, bool) {
	p.calls = append(p.calls, postalCode)
	return p.addr, p.addr != nil
}

func TestResolve(t *testing.T) {
	primaryAddr := &models.Address{Street: "Primary street", City: "A", State: "S", PostalCode: "00000-000"}
	secondaryAddr := &models.Address{Street: "Secondary street", City: "B", State: "S", PostalCode: "00000-000"}

	tests := []struct {
		name               string
		primary            *models.Address
		secondary          *models.Address
		want               *models.Address
		wantOK             bool
		wantSecondaryCalls int
	}{
		{name: "primary hit short-circuits", primary: primaryAddr, secondary: secondaryAddr, want: primaryAddr, wantOK: true, wantSecondaryCalls: 0},
		{name: "falls back to secondary", primary: nil, secondary: secondaryAddr, want: secondaryAddr, wantOK: true, wantSecondaryCalls: 1},
		{name: "both absent", primary: nil, secondary: nil, want: nil, wantOK: false, wantSecondaryCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &stubProvider{addr: tt.primary}
			secondary := &stubProvider{addr: tt.secondary}
			r := NewResolver(primary, secondary)

			got, ok := r.Resolve(context.Background(), "00000-000")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"00000-000"}, primary.calls)
			assert.Len(t, secondary.calls, tt.wantSecondaryCalls)
		})
	}
}

func TestResolve_NoProviders(t *testing.T) {
	got, ok := NewResolver().Resolve(context.Background(), "12345")
	assert.False(t, ok)
	assert.Nil(t, got)
}

type panickingProvider struct{}

func (panickingProvider) Lookup(context.Context, string) (*models.Address, bool) {
	panic("upstream exploded")
}

func TestResolve_ProviderPanicPropagates(t *testing.T) {
	r := NewResolver(panickingProvider{}, &stubProvider{addr: &models.Address{}})
	assert.Panics(t, func() { r.Resolve(context.Background(), "00000-000") })
}
