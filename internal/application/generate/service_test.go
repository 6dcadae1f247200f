package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/doeshing/texturepro/internal/application/suggestion"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type memoryHistory struct {
	mu        sync.Mutex
	log       domain.HistoryLog
	appendErr error
}

func (m *memoryHistory) Load(context.Context) (domain.HistoryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log, nil
}

func (m *memoryHistory) Append(_ context.Context, rec domain.SelectionRecord) (domain.HistoryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.log = m.log.Prepend(rec)
	return m.log, nil
}

func (m *memoryHistory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = nil
	return nil
}

type memoryCustomHistory struct {
	log domain.CustomLog
}

func (m *memoryCustomHistory) Load(context.Context) (domain.CustomLog, error) { return m.log, nil }

func (m *memoryCustomHistory) Append(_ context.Context, rec domain.CustomRecord) (domain.CustomLog, error) {
	m.log = m.log.Prepend(rec)
	return m.log, nil
}

func (m *memoryCustomHistory) Clear(context.Context) error {
	m.log = nil
	return nil
}

type stubSuggester struct {
	randomization domain.Randomization
	meta          *domain.Metadata
	prompts       []string
}

func (s *stubSuggester) RequestRandomization(context.Context, domain.PartialParameters, domain.Catalogs, domain.HistoryLog) domain.Randomization {
	return s.randomization
}

func (s *stubSuggester) RequestMetadata(_ context.Context, promptText string) *domain.Metadata {
	s.prompts = append(s.prompts, promptText)
	return s.meta
}

type failingProvider struct{}

func (failingProvider) Name() string                  { return "failing" }
func (failingProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }
func (failingProvider) Generate(context.Context, ports.ProviderRequest) (ports.ProviderResponse, error) {
	return ports.ProviderResponse{}, errors.New("network unreachable")
}

func tinyCatalogs() domain.Catalogs {
	return domain.Catalogs{
		Materials:       []string{"Wood", "Stone"},
		PrimaryColors:   []string{"Red", "Blue"},
		SecondaryColors: []string{"Gold", "Silver"},
		LightingStyles:  []string{"Soft", "Harsh"},
	}
}

func fixedClock() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func newService(history *memoryHistory, sugg Suggester) *Service {
	return &Service{
		Catalogs:    tinyCatalogs(),
		Repository:  history,
		Suggestions: sugg,
		Clock:       fixedClock,
		Logger:      nopLogger{},
	}
}

var woodParams = domain.Parameters{MaterialType: "Wood", PrimaryColorTone: "Red", SecondaryColorTone: "Gold", LightingStyle: "Soft"}

func TestGenerateRecordsPromptWithMetadata(t *testing.T) {
	history := &memoryHistory{}
	sugg := &stubSuggester{meta: &domain.Metadata{Title: "Red Wood", Keywords: []string{"wood", "red"}}}

	var transitions []string
	svc := newService(history, sugg)
	svc.Observer = ObserverFunc(func(from, to State) {
		transitions = append(transitions, fmt.Sprintf("%s>%s", from, to))
	})

	rec, err := svc.Generate(context.Background(), woodParams, true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantPrompt := "Wood texture, seamless and high resolution, top view, Red and Gold, realistic surface detail, natural patterns, intricate texture, Soft, ultra detailed, texture background"
	if rec.PromptText != wantPrompt {
		t.Fatalf("prompt = %q", rec.PromptText)
	}
	if rec.Title != "Red Wood" || len(rec.Keywords) != 2 {
		t.Fatalf("metadata not attached: %+v", rec)
	}
	if rec.ID == "" || rec.Timestamp != 1_700_000_000_000 {
		t.Fatalf("id/timestamp = %q/%d", rec.ID, rec.Timestamp)
	}
	if len(history.log) != 1 || history.log[0].ID != rec.ID {
		t.Fatalf("record not stored: %+v", history.log)
	}
	if len(sugg.prompts) != 1 || sugg.prompts[0] != wantPrompt {
		t.Fatalf("metadata requested for %q", sugg.prompts)
	}

	want := "idle>assembling,assembling>requesting_metadata,requesting_metadata>recorded"
	if got := strings.Join(transitions, ","); got != want {
		t.Fatalf("transitions = %s, want %s", got, want)
	}
}

func TestGenerateWithoutEnrichmentSkipsMetadata(t *testing.T) {
	history := &memoryHistory{}
	sugg := &stubSuggester{meta: &domain.Metadata{Title: "unused"}}

	var states []State
	svc := newService(history, sugg)
	svc.Observer = ObserverFunc(func(_, to State) { states = append(states, to) })

	rec, err := svc.Generate(context.Background(), woodParams, false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.HasMetadata() || len(sugg.prompts) != 0 {
		t.Fatalf("metadata should not be requested: %+v", rec)
	}
	if len(states) != 2 || states[1] != StateRecorded {
		t.Fatalf("states = %v", states)
	}
}

func TestWithObserverLeavesSharedServiceUntouched(t *testing.T) {
	history := &memoryHistory{}
	shared := newService(history, &stubSuggester{})

	var seen []State
	scoped := shared.WithObserver(ObserverFunc(func(_, to State) { seen = append(seen, to) }))
	if shared.Observer != nil {
		t.Fatal("WithObserver must not modify the receiver")
	}

	if _, err := scoped.Generate(context.Background(), woodParams, false); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := shared.Generate(context.Background(), woodParams, false); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("observer saw %v, want only the scoped call's transitions", seen)
	}
	if len(history.log) != 2 {
		t.Fatalf("both calls share the repository, got %d records", len(history.log))
	}
}

func TestGenerateRecordsEvenWhenMetadataFails(t *testing.T) {
	history := &memoryHistory{}
	rec, err := newService(history, &stubSuggester{}).Generate(context.Background(), woodParams, true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.Title != "" || rec.Keywords != nil {
		t.Fatalf("expected empty metadata, got %+v", rec)
	}
	if len(history.log) != 1 {
		t.Fatal("record should still be stored")
	}
}

func TestGenerateRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params domain.Parameters
		want   error
	}{
		{name: "missing lighting", params: woodParams.With(domain.KeyLighting, ""), want: domain.ErrIncompleteParameters},
		{name: "empty", params: domain.Parameters{}, want: domain.ErrIncompleteParameters},
		{name: "unknown material", params: woodParams.With(domain.KeyMaterial, "Plastic"), want: domain.ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &memoryHistory{}
			_, err := newService(history, &stubSuggester{}).Generate(context.Background(), tt.params, false)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if len(history.log) != 0 {
				t.Fatal("nothing should be recorded")
			}
		})
	}
}

func TestGenerateReturnsRecordWhenStorageFails(t *testing.T) {
	history := &memoryHistory{appendErr: errors.New("disk full")}
	rec, err := newService(history, &stubSuggester{}).Generate(context.Background(), woodParams, false)
	if err == nil {
		t.Fatal("expected storage error")
	}
	if rec.PromptText == "" {
		t.Fatal("record should be returned with the error")
	}
}

func TestHistoryBoundedAfterEleventhGenerate(t *testing.T) {
	history := &memoryHistory{}
	svc := newService(history, &stubSuggester{})

	var ids []string
	for i := 0; i < 11; i++ {
		rec, err := svc.Generate(context.Background(), woodParams, false)
		if err != nil {
			t.Fatalf("Generate() #%d error = %v", i, err)
		}
		ids = append(ids, rec.ID)
	}

	log, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(log) != domain.MaxHistoryItems {
		t.Fatalf("len = %d, want %d", len(log), domain.MaxHistoryItems)
	}
	if log[0].ID != ids[10] || log[9].ID != ids[1] {
		t.Fatal("history should keep the ten newest records, newest first")
	}
}

func TestRandomizeField(t *testing.T) {
	history := &memoryHistory{log: domain.HistoryLog{{Parameters: woodParams}}}
	svc := newService(history, &stubSuggester{})

	for i := 0; i < 20; i++ {
		got, err := svc.RandomizeField(context.Background(), domain.KeyMaterial, "")
		if err != nil {
			t.Fatalf("RandomizeField() error = %v", err)
		}
		if got != "Stone" {
			t.Fatalf("got %q, want Stone", got)
		}
	}
}

func TestRandomizeAllFallsBackEndToEnd(t *testing.T) {
	catalogs := domain.Catalogs{
		Materials:       []string{"A"},
		PrimaryColors:   []string{"B"},
		SecondaryColors: []string{"C"},
		LightingStyles:  []string{"D"},
	}
	svc := &Service{
		Catalogs:    catalogs,
		Repository:  &memoryHistory{},
		Suggestions: &suggestion.Client{Provider: failingProvider{}},
		Logger:      nopLogger{},
	}

	got, err := svc.RandomizeAll(context.Background(), domain.PartialParameters{})
	if err != nil {
		t.Fatalf("RandomizeAll() error = %v", err)
	}
	want := domain.Parameters{MaterialType: "A", PrimaryColorTone: "B", SecondaryColorTone: "C", LightingStyle: "D"}
	if got.Parameters != want || got.Source != domain.SourceFallback {
		t.Fatalf("got %+v", got)
	}
}

func TestServiceRequiresDependencies(t *testing.T) {
	if _, err := (&Service{}).Generate(context.Background(), woodParams, false); err == nil {
		t.Fatal("expected dependency error")
	}
}

func TestCustomGenerate(t *testing.T) {
	history := &memoryCustomHistory{}
	sugg := &stubSuggester{meta: &domain.Metadata{Title: "Mossy Rock", Keywords: []string{"moss"}}}
	svc := &CustomService{Repository: history, Suggestions: sugg, Clock: fixedClock, Logger: nopLogger{}}

	rec, err := svc.Generate(context.Background(), "   mossy rock close-up  ")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.PromptText != "mossy rock close-up" || rec.Title != "Mossy Rock" {
		t.Fatalf("got %+v", rec)
	}
	if len(history.log) != 1 {
		t.Fatal("record not stored")
	}
}

func TestCustomGenerateTruncatesLongInput(t *testing.T) {
	sugg := &stubSuggester{meta: &domain.Metadata{Title: "t", Keywords: []string{"k"}}}
	svc := &CustomService{Repository: &memoryCustomHistory{}, Suggestions: sugg, Logger: nopLogger{}}

	rec, err := svc.Generate(context.Background(), strings.Repeat("a", 800))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(rec.PromptText) != domain.MaxPromptLength {
		t.Fatalf("len = %d, want %d", len(rec.PromptText), domain.MaxPromptLength)
	}
}

func TestCustomGenerateErrors(t *testing.T) {
	history := &memoryCustomHistory{}
	svc := &CustomService{Repository: history, Suggestions: &stubSuggester{}, Logger: nopLogger{}}

	if _, err := svc.Generate(context.Background(), "  \n "); !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), "granite"); !errors.Is(err, domain.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
	if len(history.log) != 0 {
		t.Fatal("failed custom prompts must not be recorded")
	}
}
