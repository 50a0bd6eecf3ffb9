package appsheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

func TestLoadMembers_FullPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Rows":[
			{"Full Name":"Alice Ng","Member ID":"ID1","Membership Type":"Family","Adult":2,"Child":1},
			{"Full Name":"Bob Lee","Member ID":"ID2","Membership Type":"nan","Adult":"","Child":"two"},
			{"Full Name":"","Member ID":"ID3","Membership Type":"Single","Adult":1,"Child":0},
			{"Full Name":"Alice Copy","Member ID":"ID1","Membership Type":"Family","Adult":2,"Child":1}
		]}`))
	}))
	defer server.Close()

	c := testClient(t, server, Config{})
	records, stats, err := LoadMembers(context.Background(), c)
	if err != nil {
		t.Fatalf("LoadMembers() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Alice Ng" || records[0].MemberID != "ID1" {
		t.Errorf("records[0] = %+v, want Alice Ng / ID1", records[0])
	}
	if got := records[0].Adult; got.Kind != roster.CountInt || got.Int != 2 {
		t.Errorf("records[0].Adult = %v, want int 2", got)
	}
	if records[1].MembershipType != "" {
		t.Errorf("records[1].MembershipType = %q, want cleared nan sentinel", records[1].MembershipType)
	}
	if got := records[1].Child; got.Kind != roster.CountText || got.Text != "two" {
		t.Errorf("records[1].Child = %v, want text %q", got, "two")
	}

	if stats.SourceRows != 4 {
		t.Errorf("SourceRows = %d, want 4", stats.SourceRows)
	}
	if stats.SkippedMissingName != 1 {
		t.Errorf("SkippedMissingName = %d, want 1", stats.SkippedMissingName)
	}
	if stats.DroppedDuplicateMemberID != 1 {
		t.Errorf("DroppedDuplicateMemberID = %d, want 1", stats.DroppedDuplicateMemberID)
	}
	if stats.LoadedRows != 2 {
		t.Errorf("LoadedRows = %d, want 2", stats.LoadedRows)
	}
}

func TestLoadMembers_EmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Rows":[]}`))
	}))
	defer server.Close()

	c := testClient(t, server, Config{})
	records, stats, err := LoadMembers(context.Background(), c)
	if err != nil {
		t.Fatalf("LoadMembers() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil slice", records)
	}
	if stats.SourceRows != 0 || stats.LoadedRows != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}
