package commands

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/texturepro/internal/app"
	"github.com/doeshing/texturepro/internal/application/generate"
	"github.com/doeshing/texturepro/internal/application/selection"
	"github.com/doeshing/texturepro/internal/application/suggestion"
	"github.com/doeshing/texturepro/internal/domain"
	configinfra "github.com/doeshing/texturepro/internal/infrastructure/config"
	"github.com/doeshing/texturepro/internal/infrastructure/history"
	"github.com/doeshing/texturepro/internal/infrastructure/storage"
	"github.com/doeshing/texturepro/internal/pkg/logger"
	"github.com/doeshing/texturepro/internal/ports"
	"github.com/doeshing/texturepro/internal/version"
)

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string                  { return "stub" }
func (p *stubProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{Name: "stub"} }
func (p *stubProvider) Generate(context.Context, ports.ProviderRequest) (ports.ProviderResponse, error) {
	if p.err != nil {
		return ports.ProviderResponse{}, p.err
	}
	return ports.ProviderResponse{Text: p.text, Model: "stub-1"}, nil
}

type fakeClipboard struct {
	copied []string
}

func (c *fakeClipboard) Enabled() bool { return true }
func (c *fakeClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

const metadataReply = "```json\n{\"title\":\"Weathered Oak Planks\",\"keywords\":\"oak, wood, grain\"}\n```"

func testContainer(t *testing.T, provider ports.Provider) (*app.Container, *fakeClipboard) {
	t.Helper()
	store := storage.NewMemoryStore()
	log := logger.NewNop()
	client := &suggestion.Client{
		Provider: provider,
		Selector: selection.New(rand.New(rand.NewPCG(3, 5))),
		Logger:   log,
	}
	catalogs := domain.DefaultCatalogs()
	clock := func() time.Time { return time.Date(2026, 10, 17, 14, 30, 0, 0, time.Local) }
	clip := &fakeClipboard{}

	return &app.Container{
		Catalogs: catalogs,
		Logger:   log,
		Store:    store,
		GenerateService: &generate.Service{
			Catalogs:    catalogs,
			Repository:  history.NewGenerated(store, log),
			Suggestions: client,
			Selector:    client.Selector,
			Clock:       clock,
			Logger:      log,
		},
		CustomService: &generate.CustomService{
			Repository:  history.NewCustom(store, log),
			Suggestions: client,
			Clock:       clock,
			Logger:      log,
		},
		Clipboard: clip,
	}, clip
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

var oakArgs = []string{
	"--material", "oak wood",
	"--primary", "Warm Brown",
	"--secondary", "Gold Accents",
	"--lighting", "Natural Daylight",
}

func TestGenerateWithoutEnrichment(t *testing.T) {
	c, _ := testContainer(t, nil)
	out, _, err := run(t, NewGenerateCommand(c), append(oakArgs, "--no-enrich")...)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	want := "Oak Wood texture, seamless and high resolution, top view, Warm Brown and Gold Accents"
	if !strings.Contains(out, want) {
		t.Fatalf("output missing prompt:\n%s", out)
	}

	log, _ := c.GenerateService.History(context.Background())
	if len(log) != 1 || log[0].HasMetadata() {
		t.Fatalf("history = %+v", log)
	}
}

func TestGenerateWithMetadataAndCopy(t *testing.T) {
	c, clip := testContainer(t, &stubProvider{text: metadataReply})
	out, _, err := run(t, NewGenerateCommand(c), append(oakArgs, "--enrich", "--copy")...)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, "Weathered Oak Planks") || !strings.Contains(out, "oak, wood, grain") {
		t.Fatalf("output missing metadata:\n%s", out)
	}
	if len(clip.copied) != 1 || !strings.HasPrefix(clip.copied[0], "Oak Wood texture") {
		t.Fatalf("clipboard = %v", clip.copied)
	}
}

func TestGenerateMetadataFailureStillRecords(t *testing.T) {
	c, _ := testContainer(t, &stubProvider{err: errors.New("503")})
	_, errOut, err := run(t, NewGenerateCommand(c), append(oakArgs, "--enrich")...)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(errOut, "recorded without them") {
		t.Fatalf("stderr = %q", errOut)
	}
	log, _ := c.GenerateService.History(context.Background())
	if len(log) != 1 {
		t.Fatalf("history length = %d, want 1", len(log))
	}
}

func TestGenerateRejectsUnknownOption(t *testing.T) {
	c, _ := testContainer(t, nil)
	_, _, err := run(t, NewGenerateCommand(c), "--material", "Cheese", "--no-enrich")
	if !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("error = %v, want ErrUnknownOption", err)
	}
}

func TestGenerateRequiresAllParameters(t *testing.T) {
	c, _ := testContainer(t, nil)
	_, _, err := run(t, NewGenerateCommand(c), "--material", "Oak Wood", "--no-enrich")
	if !errors.Is(err, domain.ErrIncompleteParameters) {
		t.Fatalf("error = %v, want ErrIncompleteParameters", err)
	}
}

func TestGenerateRandomFillsMissing(t *testing.T) {
	c, _ := testContainer(t, nil)
	_, errOut, err := run(t, NewGenerateCommand(c), "--material", "Oak Wood", "--random", "--no-enrich")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(errOut, "transport_failure") {
		t.Fatalf("stderr = %q", errOut)
	}
	log, _ := c.GenerateService.History(context.Background())
	if len(log) != 1 || log[0].MaterialType != "Oak Wood" || !log[0].Complete() {
		t.Fatalf("history = %+v", log)
	}
}

func TestRandomizeField(t *testing.T) {
	c, _ := testContainer(t, nil)
	out, _, err := run(t, NewRandomizeCommand(c), "--field", "lighting", "--lighting", "Natural Daylight")
	if err != nil {
		t.Fatalf("randomize error = %v", err)
	}
	value := strings.TrimSpace(strings.TrimPrefix(out, "Lighting:"))
	if value == "Natural Daylight" || !c.Catalogs.Contains(domain.KeyLighting, value) {
		t.Fatalf("randomized value = %q", value)
	}
}

func TestRandomizeAllFallback(t *testing.T) {
	c, _ := testContainer(t, &stubProvider{text: "no idea"})
	out, _, err := run(t, NewRandomizeCommand(c))
	if err != nil {
		t.Fatalf("randomize error = %v", err)
	}
	if !strings.Contains(out, "Local selection") || !strings.Contains(out, "malformed response") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestCustom(t *testing.T) {
	c, clip := testContainer(t, &stubProvider{text: metadataReply})
	out, _, err := run(t, NewCustomCommand(c), "weathered", "oak", "planks", "--copy")
	if err != nil {
		t.Fatalf("custom error = %v", err)
	}
	if !strings.Contains(out, "weathered oak planks") || !strings.Contains(out, "Weathered Oak Planks") {
		t.Fatalf("output:\n%s", out)
	}
	if len(clip.copied) != 1 || clip.copied[0] != "oak, wood, grain" {
		t.Fatalf("clipboard = %v", clip.copied)
	}
}

func TestCustomFailures(t *testing.T) {
	c, _ := testContainer(t, &stubProvider{err: errors.New("down")})
	if _, _, err := run(t, NewCustomCommand(c), "slate"); !errors.Is(err, domain.ErrMetadataUnavailable) {
		t.Fatalf("error = %v, want ErrMetadataUnavailable", err)
	}
	if _, _, err := run(t, NewCustomCommand(c)); !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("error = %v, want ErrEmptyPrompt", err)
	}
	log, _ := c.CustomService.History(context.Background())
	if len(log) != 0 {
		t.Fatalf("custom history = %+v", log)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	c, clip := testContainer(t, nil)

	out, _, err := run(t, NewHistoryCommand(c), "list")
	if err != nil || !strings.Contains(out, MsgNoHistoryRecorded) {
		t.Fatalf("empty list = %q, %v", out, err)
	}

	if _, _, err := run(t, NewGenerateCommand(c), append(oakArgs, "--no-enrich")...); err != nil {
		t.Fatal(err)
	}

	out, _, err = run(t, NewHistoryCommand(c), "list")
	if err != nil || !strings.Contains(out, " 1. 14:30") || !strings.Contains(out, "Oak Wood / Warm Brown") {
		t.Fatalf("list = %q, %v", out, err)
	}

	if _, _, err := run(t, NewHistoryCommand(c), "copy", "1"); err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if len(clip.copied) != 1 || !strings.HasPrefix(clip.copied[0], "Oak Wood texture") {
		t.Fatalf("clipboard = %v", clip.copied)
	}
	if _, _, err := run(t, NewHistoryCommand(c), "copy", "2"); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, _, err := run(t, NewHistoryCommand(c), "copy", "1", "--keywords"); err == nil {
		t.Fatal("expected missing keywords error")
	}

	path := filepath.Join(t.TempDir(), "history.json")
	if _, _, err := run(t, NewHistoryCommand(c), "export", path); err != nil {
		t.Fatalf("export error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), `"materialType": "Oak Wood"`) {
		t.Fatalf("export = %s, %v", data, err)
	}

	out, _, err = run(t, NewHistoryCommand(c), "stats")
	if err != nil || !strings.Contains(out, "Oak Wood (1)") {
		t.Fatalf("stats = %q, %v", out, err)
	}

	out, _, _ = run(t, NewHistoryCommand(c), "clear")
	if !strings.Contains(out, MsgClearCancelled) {
		t.Fatalf("clear without confirmation = %q", out)
	}
	if _, _, err := run(t, NewHistoryCommand(c), "clear", "--yes"); err != nil {
		t.Fatal(err)
	}
	log, _ := c.GenerateService.History(context.Background())
	if len(log) != 0 {
		t.Fatalf("history after clear = %+v", log)
	}
}

func TestHistoryCustomList(t *testing.T) {
	c, _ := testContainer(t, &stubProvider{text: metadataReply})
	if _, _, err := run(t, NewCustomCommand(c), "weathered oak"); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, NewHistoryCommand(c), "list", "--custom")
	if err != nil || !strings.Contains(out, "Weathered Oak Planks") {
		t.Fatalf("custom list = %q, %v", out, err)
	}
}

func TestCatalog(t *testing.T) {
	c, _ := testContainer(t, nil)
	out, _, err := run(t, NewCatalogCommand(c), "material")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, " 1. Oak Wood") || strings.Contains(out, "Warm Brown") {
		t.Fatalf("catalog output:\n%s", out)
	}
	if _, _, err := run(t, NewCatalogCommand(c), "texture"); err == nil {
		t.Fatal("expected unknown parameter error")
	}
}

func TestCacheCommandsRequireCache(t *testing.T) {
	c, _ := testContainer(t, nil)
	if _, _, err := run(t, NewCacheCommand(c), "list"); err == nil || err.Error() != ErrCacheStoreUnavailable {
		t.Fatalf("error = %v", err)
	}
}

func TestConfigDiff(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, _ := testContainer(t, nil)
	loader := configinfra.NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))
	c.ConfigLoader = loader
	c.ConfigProvider = loader

	out, _, err := run(t, NewConfigCommand(c), "diff")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Fatalf("fresh config should match defaults:\n%s", out)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Preferences.TimeoutSeconds = 99
	if err := loader.Save(cfg); err != nil {
		t.Fatal(err)
	}
	out, _, err = run(t, NewConfigCommand(c), "diff")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "TimeoutSeconds") || !strings.Contains(out, "99") {
		t.Fatalf("diff should show the timeout change:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	saved := [3]string{version.Version, version.Commit, version.BuildDate}
	t.Cleanup(func() { version.Version, version.Commit, version.BuildDate = saved[0], saved[1], saved[2] })
	version.Version, version.Commit, version.BuildDate = "1.2.0", "0123456789abcdef", "2026-10-17"

	out, _, err := run(t, NewVersionCommand())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "texturepro 1.2.0 (0123456)\n") || !strings.Contains(out, "Built:    2026-10-17") {
		t.Fatalf("version output:\n%s", out)
	}

	out, _, _ = run(t, NewVersionCommand(), "--short")
	if out != "1.2.0\n" {
		t.Fatalf("--short = %q", out)
	}

	out, _, _ = run(t, NewVersionCommand(), "--json")
	if !strings.Contains(out, `"commit": "0123456789abcdef"`) || !strings.Contains(out, `"platform"`) {
		t.Fatalf("--json = %s", out)
	}
}
