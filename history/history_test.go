package history

import (
	"context"
	"testing"

	"git.autistici.org/ai3/tools/masktr/mask"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(t.TempDir() + "/history.sql")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestStore_AddRecent(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	inputs := []string{"/24", "255.255.0.0", "11111111.00000000.00000000.00000000"}
	for _, input := range inputs {
		m, err := mask.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if err := store.Add(ctx, Record(input, m)); err != nil {
			t.Fatalf("Add(%q): %v", input, err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != len(inputs) {
		t.Fatalf("Recent returned %d entries, want %d", len(recent), len(inputs))
	}

	// Newest first.
	want := &Conversion{
		Input:  "11111111.00000000.00000000.00000000",
		Format: "binary",
		Ones:   8,
		Zeros:  24,
		CIDR:   "/8",
		Octet:  "255.0.0.0",
		Binary: "11111111.00000000.00000000.00000000",
	}
	if diff := cmp.Diff(want, recent[0], cmpopts.IgnoreFields(Conversion{}, "ID", "Stamp")); diff != "" {
		t.Errorf("Recent[0] mismatch (-want +got):\n%s", diff)
	}
	if recent[0].ID == 0 || recent[0].Stamp.IsZero() {
		t.Errorf("Recent[0] missing id/stamp: %+v", recent[0])
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	m, _ := mask.Parse("/16")
	for i := 0; i < 20; i++ {
		if err := store.Add(ctx, Record("/16", m)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 5 {
		t.Errorf("Recent(5) returned %d entries", len(recent))
	}
}

func TestStore_FindByFormat(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	for _, input := range []string{"/24", "255.255.255.0", "/8"} {
		m, err := mask.Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Add(ctx, Record(input, m)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	found, err := store.FindByFormat(ctx, "cidr", 10)
	if err != nil {
		t.Fatalf("FindByFormat: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("FindByFormat(cidr) returned %d entries, want 2", len(found))
	}
	if found[0].Input != "/8" || found[1].Input != "/24" {
		t.Errorf("unexpected order: %q, %q", found[0].Input, found[1].Input)
	}
}

func TestOpenDB_Reopen(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenDB(dir + "/history.sql")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	db.Close()

	// Migrations must be idempotent across reopens.
	db, err = OpenDB(dir + "/history.sql")
	if err != nil {
		t.Fatalf("OpenDB (reopen): %v", err)
	}
	db.Close()
}
