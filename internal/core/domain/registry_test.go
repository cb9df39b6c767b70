package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/waypoint/internal/core/domain"
)

func stubLoader(key domain.ZoneKey) domain.Loader {
	return func(_ context.Context) (*domain.Bundle, error) {
		return &domain.Bundle{Key: key}, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*domain.Registry) error
		wantErr error
	}{
		{
			name: "valid zone",
			setup: func(r *domain.Registry) error {
				return r.Register("hub", stubLoader("hub"))
			},
		},
		{
			name: "duplicate zone",
			setup: func(r *domain.Registry) error {
				_ = r.Register("hub", stubLoader("hub"))
				return r.Register("hub", stubLoader("hub"))
			},
			wantErr: domain.ErrZoneAlreadyRegistered,
		},
		{
			name: "empty key",
			setup: func(r *domain.Registry) error {
				return r.Register(domain.NoZone, stubLoader(domain.NoZone))
			},
			wantErr: domain.ErrInvalidZoneKey,
		},
		{
			name: "key with slash",
			setup: func(r *domain.Registry) error {
				return r.Register("a/b", stubLoader("a/b"))
			},
			wantErr: domain.ErrInvalidZoneKey,
		},
		{
			name: "nil loader",
			setup: func(r *domain.Registry) error {
				return r.Register("hub", nil)
			},
			wantErr: domain.ErrNilLoader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup(domain.NewRegistry())
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Register("forest", stubLoader("forest")))
	require.NoError(t, r.Register("cave", stubLoader("cave")))
	require.NoError(t, r.Register("hub", stubLoader("hub")))

	assert.True(t, r.Has("hub"))
	assert.False(t, r.Has("nowhere"))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []domain.ZoneKey{"cave", "forest", "hub"}, r.Keys())

	loader, ok := r.Loader("cave")
	require.True(t, ok)
	bundle, err := loader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneKey("cave"), bundle.Key)

	_, ok = r.Loader("nowhere")
	assert.False(t, ok)

	var order []domain.ZoneKey
	for key := range r.Walk() {
		order = append(order, key)
	}
	assert.Equal(t, []domain.ZoneKey{"forest", "cave", "hub"}, order)
}
