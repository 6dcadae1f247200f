package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// CustomService records free-text prompts together with generated metadata.
type CustomService struct {
	Repository  ports.CustomHistoryRepository
	Suggestions MetadataSuggester
	Clock       ports.Clock
	Logger      ports.Logger
}

func (s *CustomService) ready() error {
	if s.Repository == nil || s.Suggestions == nil || s.Logger == nil {
		return errors.New("generate.CustomService dependencies not satisfied")
	}
	return nil
}

// Generate requests metadata for text and records it. Text is trimmed and
// capped at MaxPromptLength characters. Nothing is recorded when no metadata
// could be produced.
func (s *CustomService) Generate(ctx context.Context, text string) (domain.CustomRecord, error) {
	if err := s.ready(); err != nil {
		return domain.CustomRecord{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.CustomRecord{}, domain.ErrEmptyPrompt
	}
	if runes := []rune(text); len(runes) > domain.MaxPromptLength {
		text = string(runes[:domain.MaxPromptLength])
		s.Logger.Warn("custom prompt truncated", map[string]interface{}{"limit": domain.MaxPromptLength})
	}

	meta := s.Suggestions.RequestMetadata(ctx, text)
	if meta == nil {
		return domain.CustomRecord{}, domain.ErrMetadataUnavailable
	}

	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}
	rec := domain.CustomRecord{
		ID:         uuid.NewString(),
		PromptText: text,
		Timestamp:  now.UnixMilli(),
		Title:      meta.Title,
		Keywords:   meta.Keywords,
	}
	if _, err := s.Repository.Append(ctx, rec); err != nil {
		return rec, fmt.Errorf("save custom history: %w", err)
	}
	return rec, nil
}

// History returns the custom prompt history, newest first.
func (s *CustomService) History(ctx context.Context) (domain.CustomLog, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repository.Load(ctx)
}

// ClearHistory removes every custom prompt record.
func (s *CustomService) ClearHistory(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repository.Clear(ctx)
}
