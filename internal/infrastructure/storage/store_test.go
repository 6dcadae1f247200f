package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLite(filepath.Join(dir, "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "nested", "store.json"), nil),
		"sqlite": sqlite,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok:%v err:%v", ok, err)
			}
			if err := store.Set(ctx, "k", `[{"id":"1"}]`); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Set(ctx, "k", `[{"id":"2"}]`); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}
			got, ok, err := store.Get(ctx, "k")
			if err != nil || !ok || got != `[{"id":"2"}]` {
				t.Fatalf("Get() = %q ok:%v err:%v", got, ok, err)
			}
			if err := store.Remove(ctx, "k"); err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if _, ok, _ := store.Get(ctx, "k"); ok {
				t.Fatal("value should be gone after Remove")
			}
			if err := store.Remove(ctx, "k"); err != nil {
				t.Fatalf("Remove() twice error = %v", err)
			}
		})
	}
}

func TestStoreConcurrentSets(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					key := string(rune('a' + i))
					if err := store.Set(ctx, key, key); err != nil {
						t.Errorf("Set(%s) error = %v", key, err)
					}
				}(i)
			}
			wg.Wait()
			for i := 0; i < 8; i++ {
				key := string(rune('a' + i))
				if got, ok, _ := store.Get(ctx, key); !ok || got != key {
					t.Fatalf("Get(%s) = %q ok:%v", key, got, ok)
				}
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	if err := NewFileStore(path, nil).Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := NewFileStore(path, nil).Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("reopened Get() = %q ok:%v err:%v", got, ok, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path, nil)

	if _, ok, err := store.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get() over corrupt file = ok:%v err:%v, want empty", ok, err)
	}
	kept, err := os.ReadFile(path + corruptSuffix)
	if err != nil || string(kept) != "{not json" {
		t.Fatalf("corrupt contents should be moved aside, got %q err:%v", kept, err)
	}
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() after recovery error = %v", err)
	}
	if got, ok, _ := NewFileStore(path, nil).Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("reopened Get() = %q ok:%v", got, ok)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		updater, ok := store.(ports.Updater)
		if !ok {
			continue
		}
		t.Run(name, func(t *testing.T) {
			err := updater.Update(ctx, "counter", func(current string, ok bool) (string, error) {
				if ok {
					t.Fatalf("absent key reported present with %q", current)
				}
				return "1", nil
			})
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			err = updater.Update(ctx, "counter", func(current string, ok bool) (string, error) {
				if !ok || current != "1" {
					t.Fatalf("current = %q ok:%v", current, ok)
				}
				return current + "2", nil
			})
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			boom := errors.New("boom")
			err = updater.Update(ctx, "counter", func(string, bool) (string, error) { return "x", boom })
			if !errors.Is(err, boom) {
				t.Fatalf("Update() error = %v, want boom", err)
			}
			if got, _, _ := store.Get(ctx, "counter"); got != "12" {
				t.Fatalf("value = %q, want 12 (failed update must not write)", got)
			}
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := first.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()
	if got, ok, _ := second.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("Get() after reopen = %q ok:%v", got, ok)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		wantErr bool
	}{
		{backend: domain.StorageMemory},
		{backend: domain.StorageFile},
		{backend: domain.StorageSQLite},
		{backend: ""},
		{backend: "redis", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := Open(domain.StorageSettings{Backend: tt.backend}, dir, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer store.Close()
		})
	}
}
