package ai

import (
	"context"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// offlineProvider never reaches the network. Every call fails, so suggestion
// callers use their local fallback.
type offlineProvider struct {
	model domain.ModelDefinition
}

func newOfflineProvider(model domain.ModelDefinition) ports.Provider {
	return &offlineProvider{model: model}
}

func (p *offlineProvider) Name() string {
	return string(domain.ProviderOffline)
}

func (p *offlineProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *offlineProvider) Generate(context.Context, ports.ProviderRequest) (ports.ProviderResponse, error) {
	return ports.ProviderResponse{}, transportError("offline mode: no provider configured")
}
