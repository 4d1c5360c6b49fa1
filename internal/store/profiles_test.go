package store_test

import (
	"strings"
	"testing"

	"github.com/fitaura/fitaura-cli/internal/model"
	"github.com/fitaura/fitaura-cli/internal/store"
)

func TestResolveProfileFlattensMetadata(t *testing.T) {
	t.Parallel()

	age := 31
	weight := 70.0
	profiles := map[string]model.ProfileRecord{
		"u1": {Metadata: model.ProfileMetadata{
			UserID:        "u1",
			Age:           &age,
			Gender:        "female",
			Weight:        &weight,
			ActivityLevel: "moderate",
			Name:          "Ada",
		}},
	}

	profile, err := store.ResolveProfile(profiles, "u1")
	if err != nil {
		t.Fatalf("resolve profile: %v", err)
	}
	if profile.UserID != "u1" || profile.Name != "Ada" || profile.WeightKg() != 70.0 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestResolveProfileFallsBackToSuppliedUserID(t *testing.T) {
	t.Parallel()

	profiles := map[string]model.ProfileRecord{
		"u2": {Metadata: model.ProfileMetadata{Name: "Grace"}},
	}
	profile, err := store.ResolveProfile(profiles, "u2")
	if err != nil {
		t.Fatalf("resolve profile: %v", err)
	}
	if profile.UserID != "u2" {
		t.Fatalf("expected supplied user id fallback, got %q", profile.UserID)
	}
	// No stored weight: the calculators fall back to 70kg.
	if profile.WeightKg() != 70.0 {
		t.Fatalf("expected default weight 70, got %v", profile.WeightKg())
	}
}

func TestResolveProfileNotFound(t *testing.T) {
	t.Parallel()

	_, err := store.ResolveProfile(map[string]model.ProfileRecord{}, "ghost")
	if err == nil || !strings.Contains(err.Error(), `profile for user id "ghost" not found`) {
		t.Fatalf("expected profile-not-found error, got %v", err)
	}
}
