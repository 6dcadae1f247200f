// Package generate implements the texture prompt use cases: randomizing
// parameters, generating and recording prompts, and free-text custom prompts.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/texturepro/internal/application/prompt"
	"github.com/doeshing/texturepro/internal/application/selection"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// Suggester is the part of suggestion.Client used here.
type Suggester interface {
	RequestRandomization(ctx context.Context, current domain.PartialParameters, catalogs domain.Catalogs, history domain.HistoryLog) domain.Randomization
	MetadataSuggester
}

// MetadataSuggester produces a title and keywords for a prompt, or nil.
type MetadataSuggester interface {
	RequestMetadata(ctx context.Context, promptText string) *domain.Metadata
}

// Service orchestrates parameter selection and prompt generation.
type Service struct {
	Catalogs    domain.Catalogs
	Repository  ports.HistoryRepository
	Suggestions Suggester
	Selector    *selection.Selector
	Clock       ports.Clock
	Observer    Observer
	Logger      ports.Logger
}

// WithObserver returns a copy of s that reports state transitions to o.
// The receiver is left untouched.
func (s *Service) WithObserver(o Observer) *Service {
	clone := *s
	clone.Observer = o
	return &clone
}

func (s *Service) ready() error {
	if s.Repository == nil || s.Suggestions == nil || s.Logger == nil {
		return errors.New("generate.Service dependencies not satisfied")
	}
	return nil
}

// RandomizeField picks a value for key that avoids recent history and the
// current value.
func (s *Service) RandomizeField(ctx context.Context, key domain.ParameterKey, current string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	history, err := s.Repository.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	return s.selector().PickDiverse(history, s.Catalogs.For(key), key, current), nil
}

// RandomizeAll asks the model for a harmonious combination, falling back to
// a local diverse selection.
func (s *Service) RandomizeAll(ctx context.Context, current domain.PartialParameters) (domain.Randomization, error) {
	if err := s.ready(); err != nil {
		return domain.Randomization{}, err
	}
	history, err := s.Repository.Load(ctx)
	if err != nil {
		return domain.Randomization{}, fmt.Errorf("load history: %w", err)
	}
	result := s.Suggestions.RequestRandomization(ctx, current, s.Catalogs, history)
	s.Logger.Info("randomized parameters", map[string]interface{}{
		"source": string(result.Source),
		"reason": result.Reason,
	})
	return result, nil
}

// Generate assembles the prompt for params, optionally enriches it with
// metadata and records it. When the history write fails the record is still
// returned alongside the error.
func (s *Service) Generate(ctx context.Context, params domain.Parameters, enrich bool) (domain.SelectionRecord, error) {
	if err := s.ready(); err != nil {
		return domain.SelectionRecord{}, err
	}
	if missing := params.MissingKeys(); len(missing) > 0 {
		return domain.SelectionRecord{}, fmt.Errorf("%w: missing %v", domain.ErrIncompleteParameters, missing)
	}
	for _, key := range domain.ParameterKeys {
		if value := params.Get(key); !s.Catalogs.Contains(key, value) {
			return domain.SelectionRecord{}, fmt.Errorf("%w: %s %q", domain.ErrUnknownOption, key.Label(), value)
		}
	}

	state := newTracker(s.Observer)
	state.move(StateAssembling)
	rec := domain.SelectionRecord{
		ID:         uuid.NewString(),
		Parameters: params,
		PromptText: prompt.Assemble(params),
		Timestamp:  s.now().UnixMilli(),
	}

	if enrich {
		state.move(StateRequestingMetadata)
		if meta := s.Suggestions.RequestMetadata(ctx, rec.PromptText); meta != nil {
			rec.Title = meta.Title
			rec.Keywords = meta.Keywords
		} else {
			s.Logger.Warn("prompt recorded without metadata", map[string]interface{}{"id": rec.ID})
		}
	}

	_, err := s.Repository.Append(ctx, rec)
	state.move(StateRecorded)
	if err != nil {
		return rec, fmt.Errorf("save history: %w", err)
	}

	s.Logger.Info("prompt generated", map[string]interface{}{
		"id":       rec.ID,
		"metadata": rec.HasMetadata(),
	})
	return rec, nil
}

// History returns the stored generated-prompt history, newest first.
func (s *Service) History(ctx context.Context) (domain.HistoryLog, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repository.Load(ctx)
}

// ClearHistory removes every generated-prompt record.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repository.Clear(ctx)
}

func (s *Service) selector() *selection.Selector {
	if s.Selector == nil {
		return selection.New(nil)
	}
	return s.Selector
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
