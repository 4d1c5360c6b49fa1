package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fitaura/fitaura-cli/internal/model"
)

// LoadProfiles reads a profiles file: a JSON object keyed by user id.
func LoadProfiles(path string) (map[string]model.ProfileRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file %s: %w", path, err)
	}
	profiles := make(map[string]model.ProfileRecord)
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles file %s: %w", path, err)
	}
	return profiles, nil
}

// ResolveProfile flattens the stored record's metadata block into the
// normalized profile shape. The supplied user id backfills the record's
// own when the metadata lacks one.
func ResolveProfile(profiles map[string]model.ProfileRecord, userID string) (model.Profile, error) {
	rec, ok := profiles[userID]
	if !ok {
		return model.Profile{}, fmt.Errorf("profile for user id %q not found", userID)
	}
	md := rec.Metadata
	profile := model.Profile{
		UserID:        md.UserID,
		Age:           md.Age,
		Gender:        md.Gender,
		Height:        md.Height,
		Weight:        md.Weight,
		ActivityLevel: md.ActivityLevel,
		Name:          md.Name,
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return profile, nil
}
