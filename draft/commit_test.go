package draft

import (
	"testing"

	"github.com/appadook/appadook-portfolio-next/models"
)

func TestBuildReorderItemsDenseRenumbering(t *testing.T) {
	// Canonical orders were {a:1, b:2, c:3}; the user dragged b first.
	// Every entity gets renumbered densely from 1, not just the moved ones.
	items := BuildReorderItems([]string{"b", "a", "c"})

	want := []models.OrderUpdate{
		{ID: "b", Order: 1},
		{ID: "a", Order: 2},
		{ID: "c", Order: 3},
	}
	if len(items) != len(want) {
		t.Fatalf("want %d items, got %d", len(want), len(items))
	}
	for i, w := range want {
		if items[i] != w {
			t.Errorf("item %d: want %+v, got %+v", i, w, items[i])
		}
	}
}

func TestBuildBatchRequestMinimalDiff(t *testing.T) {
	canonical := []models.Technology{
		{ID: "1", Name: "X", Category: "tools"},
		{ID: "2", Name: "Y", Category: "tools"},
	}
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "1", Name: "X", Category: "tools"}},
		{Technology: models.Technology{ID: "2", Name: "Z", Category: "tools"}},
		{Technology: models.Technology{ID: "temp-1", Name: "New", Category: "tools"}, IsNew: true},
	}

	req, err := BuildBatchRequest(canonical, rows)
	if err != nil {
		t.Fatalf("BuildBatchRequest failed: %v", err)
	}

	if len(req.Creates) != 1 || req.Creates[0].Name != "New" {
		t.Errorf("creates mismatch: %+v", req.Creates)
	}
	if len(req.Updates) != 1 || req.Updates[0].ID != "2" || req.Updates[0].Name != "Z" {
		t.Errorf("updates mismatch: %+v", req.Updates)
	}
	// Row 1 is untouched and must NOT appear in updates
	for _, u := range req.Updates {
		if u.ID == "1" {
			t.Errorf("unchanged row leaked into updates: %+v", u)
		}
	}
	if len(req.Deletes) != 0 {
		t.Errorf("deletes should be empty: %v", req.Deletes)
	}
}

func TestBuildBatchRequestTombstoneDiscard(t *testing.T) {
	// A row both created and deleted within the same draft is discarded
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "temp-1", Name: "Gone", Category: "tools"}, IsNew: true, IsDeleted: true},
	}

	req, err := BuildBatchRequest(nil, rows)
	if err != nil {
		t.Fatalf("BuildBatchRequest failed: %v", err)
	}
	if len(req.Creates) != 0 || len(req.Updates) != 0 || len(req.Deletes) != 0 {
		t.Errorf("new+deleted row must appear nowhere, got %+v", req)
	}
}

func TestBuildBatchRequestDeletes(t *testing.T) {
	canonical := []models.Technology{
		{ID: "1", Name: "X", Category: "tools"},
	}
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "1", Name: "X", Category: "tools"}, IsDeleted: true},
		// Tombstone for a row canonical no longer has: already deleted by
		// another session, nothing to send
		{Technology: models.Technology{ID: "2", Name: "Y", Category: "tools"}, IsDeleted: true},
	}

	req, err := BuildBatchRequest(canonical, rows)
	if err != nil {
		t.Fatalf("BuildBatchRequest failed: %v", err)
	}
	if len(req.Deletes) != 1 || req.Deletes[0] != "1" {
		t.Errorf("deletes mismatch: %v", req.Deletes)
	}
}

func TestBuildBatchRequestValidation(t *testing.T) {
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "temp-1", Name: "Redis", Category: "database"}, IsNew: true},
		{Technology: models.Technology{ID: "temp-2", Name: "", Category: "tools"}, IsNew: true},
	}

	req, err := BuildBatchRequest(nil, rows)
	if err == nil {
		t.Fatalf("missing name must fail validation, got %+v", req)
	}
	if !IsValidation(err) {
		t.Errorf("expected a validation error, got %v", err)
	}

	// The error names the offending field
	vErr, ok := err.(*ValidationError)
	if !ok || vErr.Field != FieldName {
		t.Errorf("expected a name violation, got %v", err)
	}
}

func TestBuildBatchRequestValidationSkipsTombstones(t *testing.T) {
	canonical := []models.Technology{
		{ID: "1", Name: "X", Category: "tools"},
	}
	// The tombstoned row has no name, but deleted rows are not validated
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "1", Name: "", Category: ""}, IsDeleted: true},
	}

	req, err := BuildBatchRequest(canonical, rows)
	if err != nil {
		t.Fatalf("tombstones must not be validated: %v", err)
	}
	if len(req.Deletes) != 1 {
		t.Errorf("deletes mismatch: %v", req.Deletes)
	}
}

func TestBuildBatchRequestValidationMissingCategory(t *testing.T) {
	rows := []TechnologyRow{
		{Technology: models.Technology{ID: "temp-1", Name: "Redis", Category: ""}, IsNew: true},
	}

	_, err := BuildBatchRequest(nil, rows)
	if !IsValidation(err) {
		t.Fatalf("missing category must fail validation, got %v", err)
	}
	vErr := err.(*ValidationError)
	if vErr.Field != FieldCategory || vErr.RowLabel != "Redis" {
		t.Errorf("error should name the row and field, got %+v", vErr)
	}
}
