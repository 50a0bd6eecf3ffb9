package roster

import (
	"strings"
	"testing"
)

// ============================================================================
// CSV Loader Tests
// ============================================================================

func TestLoadMembersCSV_Basic(t *testing.T) {
	input := "Name,Member_ID,Membership_Type,Adult,Child\n" +
		"John Doe,ID123,Family,2,1\n"

	records, stats, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.MemberID != "ID123" {
		t.Errorf("MemberID = %q, want %q", rec.MemberID, "ID123")
	}
	if rec.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", rec.Name, "John Doe")
	}
	if rec.MembershipType != "Family" {
		t.Errorf("MembershipType = %q, want %q", rec.MembershipType, "Family")
	}
	if rec.Adult != IntCount(2) {
		t.Errorf("Adult = %+v, want IntCount(2)", rec.Adult)
	}
	if rec.Child != IntCount(1) {
		t.Errorf("Child = %+v, want IntCount(1)", rec.Child)
	}
	if stats.SourceRows != 1 || stats.LoadedRows != 1 || stats.SkippedRows != 0 {
		t.Errorf("stats = %+v, want 1/1/0", stats)
	}
}

func TestLoadMembersCSV_SkipsIncompleteRows(t *testing.T) {
	input := "Name,Member_ID\n" +
		"Alice,ID1\n" +
		",ID2\n" +
		"Bob,\n"

	records, stats, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if stats.SourceRows != 3 {
		t.Errorf("SourceRows = %d, want 3", stats.SourceRows)
	}
	if stats.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", stats.SkippedRows)
	}
}

func TestLoadMembersCSV_LooseHeaderMatch(t *testing.T) {
	input := "First Name,Membership Number\n" +
		"Alice,M-001\n"

	records, _, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Alice" {
		t.Errorf("Name = %q, want %q", records[0].Name, "Alice")
	}
	if records[0].MemberID != "M-001" {
		t.Errorf("MemberID = %q, want %q", records[0].MemberID, "M-001")
	}
}

func TestLoadMembersCSV_PositionalIDFallback(t *testing.T) {
	// No header suggests an ID; the second column is assumed.
	input := "Who,Badge\n" +
		"Alice,B-1\n"

	records, _, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].MemberID != "B-1" {
		t.Errorf("MemberID = %q, want %q", records[0].MemberID, "B-1")
	}
}

func TestLoadMembersCSV_SingleColumnNoID(t *testing.T) {
	input := "Who\nAlice\n"

	_, _, err := LoadMembersCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("LoadMembersCSV() expected error for missing ID column")
	}
}

func TestLoadMembersCSV_DuplicatesCountedAsSkipped(t *testing.T) {
	input := "Name,Member_ID\n" +
		"Alice,ID1\n" +
		"Alicia,ID1\n"

	records, stats, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Alice" {
		t.Errorf("Name = %q, want first occurrence %q", records[0].Name, "Alice")
	}
	if stats.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", stats.SkippedRows)
	}
}

func TestLoadMembersCSV_RaggedRows(t *testing.T) {
	input := "Name,Member_ID,Membership_Type\n" +
		"Alice,ID1\n"

	records, _, err := LoadMembersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMembersCSV() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].MembershipType != "" {
		t.Errorf("MembershipType = %q, want empty for short row", records[0].MembershipType)
	}
}
