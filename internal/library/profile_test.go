package library

import (
	"errors"
	"testing"
)

func TestStore_AddProfile(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	p := &QualityProfile{Name: "HD", Cutoff: "Bluray-1080p", MediaType: MediaMovie}
	if err := store.AddProfile(p); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	if p.ID == 0 {
		t.Error("ID should be set after AddProfile")
	}

	got, err := store.GetProfile(p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "HD" || got.Cutoff != "Bluray-1080p" {
		t.Errorf("profile round trip mismatch: %+v", got)
	}
}

func TestStore_GetProfile_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetProfile(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListProfiles(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	for _, p := range []*QualityProfile{
		{Name: "Ultra", Cutoff: "Remux-2160p", MediaType: MediaMovie},
		{Name: "Any", Cutoff: "", MediaType: MediaSeries},
	} {
		if err := store.AddProfile(p); err != nil {
			t.Fatalf("AddProfile: %v", err)
		}
	}

	profiles, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("len = %d, want 2", len(profiles))
	}
	// Ordered by name.
	if profiles[0].Name != "Any" || profiles[1].Name != "Ultra" {
		t.Errorf("unexpected order: %q, %q", profiles[0].Name, profiles[1].Name)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	p := &QualityProfile{Name: "HD", Cutoff: "WEBDL-1080p", MediaType: MediaMovie}
	if err := store.AddProfile(p); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}

	p.Cutoff = "Bluray-1080p"
	if err := store.UpdateProfile(p); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := store.GetProfile(p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Cutoff != "Bluray-1080p" {
		t.Errorf("Cutoff = %q, want Bluray-1080p", got.Cutoff)
	}

	missing := &QualityProfile{ID: 9999, Name: "x"}
	if err := store.UpdateProfile(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
