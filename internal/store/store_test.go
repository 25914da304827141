// File path: internal/store/store_test.go
package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nexaqa/testforge/internal/extract"
	"github.com/nexaqa/testforge/internal/scenario"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleBundle() *extract.Bundle {
	return &extract.Bundle{
		DocumentType: extract.DocumentText,
		RawText:      "The system shall authenticate users.",
		Requirements: []extract.Requirement{
			{ID: "REQ-1", Text: "The system shall authenticate users.", Type: extract.RequirementFunctional},
		},
		Sheets: map[string]*extract.Sheet{
			"Reqs": {
				Name: "Reqs",
				Requirements: []extract.Requirement{
					{ID: "REQ-2", Text: "Backups shall run nightly.", Type: extract.RequirementNonFunctional},
				},
			},
		},
	}
}

func TestSaveAndGetBundle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveBundle(ctx, "spec.txt", sampleBundle())
	if err != nil {
		t.Fatalf("SaveBundle returned error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated bundle id")
	}

	record, err := s.GetBundle(ctx, id)
	if err != nil {
		t.Fatalf("GetBundle returned error: %v", err)
	}
	if record.SourceName != "spec.txt" || record.DocumentType != "text" {
		t.Errorf("record basics wrong: %+v", record)
	}
	// Sheet requirements count toward the stored total.
	if record.RequirementCount != 2 {
		t.Errorf("requirement count = %d, want 2", record.RequirementCount)
	}

	bundle, err := record.Bundle()
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(bundle.Requirements) != 1 || bundle.Requirements[0].ID != "REQ-1" {
		t.Errorf("decoded requirements wrong: %+v", bundle.Requirements)
	}
	if bundle.Sheets["Reqs"] == nil || len(bundle.Sheets["Reqs"].Requirements) != 1 {
		t.Errorf("decoded sheets wrong: %+v", bundle.Sheets)
	}
}

func TestGetBundleNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetBundle(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListBundles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.SaveBundle(ctx, "doc.txt", sampleBundle()); err != nil {
			t.Fatalf("SaveBundle returned error: %v", err)
		}
	}
	records, err := s.ListBundles(ctx, 2)
	if err != nil {
		t.Fatalf("ListBundles returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit to apply, got %d records", len(records))
	}
}

func TestSaveAndListScenarios(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	bundleID, err := s.SaveBundle(ctx, "spec.txt", sampleBundle())
	if err != nil {
		t.Fatalf("SaveBundle returned error: %v", err)
	}

	records := []scenario.Record{
		{ID: "TS-1", Title: "Valid login", Priority: "High", RelatedRequirements: "REQ-1"},
		{ID: "TS-2", Title: "Lockout", Description: "Five failures lock the account."},
	}
	if err := s.SaveScenarios(ctx, bundleID, records); err != nil {
		t.Fatalf("SaveScenarios returned error: %v", err)
	}

	stored, err := s.ListScenarios(ctx, bundleID)
	if err != nil {
		t.Fatalf("ListScenarios returned error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(stored))
	}
	if stored[0].ID != "TS-1" || stored[1].ID != "TS-2" {
		t.Errorf("insertion order not preserved: %+v", stored)
	}
	if stored[1].Description != "Five failures lock the account." {
		t.Errorf("description = %q", stored[1].Description)
	}
}

func TestSaveScenariosEmptyIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveScenarios(context.Background(), "any", nil); err != nil {
		t.Fatalf("empty save should be a no-op, got %v", err)
	}
}
