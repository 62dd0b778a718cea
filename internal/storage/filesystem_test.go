package storage

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestFileStoreWriteReadList(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	key, err := store.Write(ctx, "/2024/../2024/donorbook-2024-05.zip", []byte("zip"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "2024/donorbook-2024-05.zip" {
		t.Fatalf("key = %q", key)
	}

	data, err := store.Read(ctx, key)
	if err != nil || string(data) != "zip" {
		t.Fatalf("Read = %q, %v", data, err)
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("keys = %v", keys)
	}

	if _, err := store.Read(ctx, "missing.zip"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	for _, key := range []string{"", "../etc/passwd", "..", "a/../../b", "."} {
		if _, err := sanitizeKey(key); err == nil {
			t.Fatalf("sanitizeKey(%q) should fail", key)
		}
	}
}
