package suggestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doeshing/texturepro/internal/application/selection"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// Client asks the provider for suggestions. It makes exactly one provider
// call per request and never returns an error.
type Client struct {
	Provider  ports.Provider
	Validator *Validator
	Selector  *selection.Selector
	Templates *Templates
	Cache     ports.MetadataCache
	Logger    ports.Logger
	// Timeout bounds the provider call. Zero leaves the context untouched.
	Timeout time.Duration
}

// RequestRandomization returns a full parameter set. The fallback selection
// is computed from history before the provider is called and is returned
// whenever the provider fails or its answer is rejected.
func (c *Client) RequestRandomization(
	ctx context.Context,
	current domain.PartialParameters,
	catalogs domain.Catalogs,
	history domain.HistoryLog,
) domain.Randomization {
	fallback := c.selector().PickAll(history, catalogs, current)

	params, err := c.randomize(ctx, current, catalogs, fallback)
	if err != nil {
		reason := domain.FailureReason(err)
		c.logger().Warn("randomization suggestion unusable, using local selection", map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
		return domain.Randomization{Parameters: fallback, Source: domain.SourceFallback, Reason: reason}
	}

	c.logger().Debug("randomization suggestion accepted", map[string]interface{}{
		"materialType": params.MaterialType,
	})
	return domain.Randomization{Parameters: params, Source: domain.SourceModel}
}

// RequestMetadata returns a title and keywords for promptText, or nil when
// none could be produced.
func (c *Client) RequestMetadata(ctx context.Context, promptText string) *domain.Metadata {
	variant := c.cacheVariant()
	if c.Cache != nil {
		meta, ok, err := c.Cache.Get(promptText, variant)
		switch {
		case err != nil:
			c.logger().Warn("metadata cache read failed", map[string]interface{}{"error": err.Error()})
		case ok:
			c.logger().Debug("metadata cache hit", nil)
			return &meta
		}
	}

	meta, err := c.metadata(ctx, promptText)
	if err != nil {
		c.logger().Warn("metadata suggestion unusable", map[string]interface{}{
			"reason": domain.FailureReason(err),
			"error":  err.Error(),
		})
		return nil
	}

	if c.Cache != nil {
		if err := c.Cache.Set(promptText, variant, meta); err != nil {
			c.logger().Warn("metadata cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return &meta
}

func (c *Client) randomize(
	ctx context.Context,
	current domain.PartialParameters,
	catalogs domain.Catalogs,
	candidate domain.Parameters,
) (domain.Parameters, error) {
	instruction, err := c.templates().Randomization(RandomizationData{
		Catalogs:  catalogs,
		Current:   current,
		Candidate: candidate,
	})
	if err != nil {
		return domain.Parameters{}, err
	}
	raw, err := c.call(ctx, instruction)
	if err != nil {
		return domain.Parameters{}, err
	}
	return c.validator().ValidateRandomization(raw, catalogs)
}

func (c *Client) metadata(ctx context.Context, promptText string) (domain.Metadata, error) {
	instruction, err := c.templates().Metadata(promptText)
	if err != nil {
		return domain.Metadata{}, err
	}
	raw, err := c.call(ctx, instruction)
	if err != nil {
		return domain.Metadata{}, err
	}
	return c.validator().ValidateMetadata(raw)
}

// call performs the single provider round trip and parses the reply.
func (c *Client) call(ctx context.Context, instruction string) (any, error) {
	if c.Provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", domain.ErrTransportFailure)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := c.Provider.Generate(ctx, ports.ProviderRequest{
		Instruction: instruction,
		Model:       c.Provider.Model(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedResponse) && !errors.Is(err, domain.ErrTransportFailure) {
			err = fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
		}
		return nil, fmt.Errorf("provider %s: %w", c.Provider.Name(), err)
	}
	c.logger().Debug("provider responded", map[string]interface{}{
		"provider": c.Provider.Name(),
		"model":    resp.Model,
		"elapsed":  time.Since(started).String(),
	})
	return ParseObject(resp.Text)
}

var defaultTemplates = sync.OnceValue(DefaultTemplates)

func (c *Client) selector() *selection.Selector {
	if c.Selector == nil {
		return selection.New(nil)
	}
	return c.Selector
}

func (c *Client) validator() *Validator {
	if c.Validator == nil {
		return &Validator{Logger: c.Logger}
	}
	return c.Validator
}

// cacheVariant names the title normalization in effect, so a change of
// preferences.title_ellipsis does not serve titles cut the other way.
func (c *Client) cacheVariant() string {
	if c.validator().TitleEllipsis {
		return "title-ellipsis"
	}
	return ""
}

func (c *Client) templates() *Templates {
	if c.Templates == nil {
		return defaultTemplates()
	}
	return c.Templates
}

func (c *Client) logger() ports.Logger {
	if c.Logger == nil {
		return discard{}
	}
	return c.Logger
}

type discard struct{}

func (discard) Debug(string, map[string]interface{})        {}
func (discard) Info(string, map[string]interface{})         {}
func (discard) Warn(string, map[string]interface{})         {}
func (discard) Error(string, error, map[string]interface{}) {}
