package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fitaura/fitaura-cli/internal/model"
	"github.com/fitaura/fitaura-cli/internal/store"
)

// Transcriber turns a stored audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// EntityPipeline turns a transcript into structured food and exercise
// entities, with quantity/unit/effort defaults already applied.
type EntityPipeline interface {
	ParseTranscript(ctx context.Context, transcript string) (model.ParsedEntities, error)
}

type RunInput struct {
	LogsPath     string
	ProfilesPath string
	OutputPath   string
	UploadsDir   string
}

type RunDeps struct {
	Transcriber Transcriber
	Pipeline    EntityPipeline
	Nutrition   NutritionProvider // nil degrades food enrichment
	Cache       *sql.DB           // nil disables the lookup cache
}

// Run processes one batch invocation: select the most recent log record,
// resolve its owner's profile, obtain the transcript, extract entities,
// enrich, and merge the result into the output store.
func Run(ctx context.Context, in RunInput, deps RunDeps) error {
	logs, err := store.LoadLogs(in.LogsPath)
	if err != nil {
		return err
	}
	record, err := store.LatestLog(logs)
	if err != nil {
		return err
	}
	md := record.Metadata

	profiles, err := store.LoadProfiles(in.ProfilesPath)
	if err != nil {
		return err
	}
	profile, err := store.ResolveProfile(profiles, md.UserID)
	if err != nil {
		return err
	}

	transcript, err := resolveTranscript(ctx, in, deps, md)
	if err != nil {
		return err
	}

	if deps.Pipeline == nil {
		return fmt.Errorf("entity pipeline not configured: set OPENAI_API_KEY")
	}
	parsed, err := deps.Pipeline.ParseTranscript(ctx, transcript)
	if err != nil {
		return err
	}

	payload := BuildPayload(model.PayloadMetadata{
		UserID:      md.UserID,
		Timestamp:   md.Timestamp,
		InputMethod: md.InputMethod,
		ID:          record.ID,
		FileName:    md.FileName,
		Transcript:  transcript,
	}, parsed)

	enriched, err := EnrichPayload(ctx, payload, profile, deps.Nutrition, deps.Cache)
	if err != nil {
		return err
	}

	output := store.LoadOutputLog(in.OutputPath)
	if err := output.Merge(record.ID, enriched); err != nil {
		return err
	}
	if err := store.SaveOutputLog(in.OutputPath, output); err != nil {
		return err
	}

	slog.Info("completed extraction", "record_id", record.ID, "user_id", profile.UserID)
	return nil
}

func resolveTranscript(ctx context.Context, in RunInput, deps RunDeps, md model.LogMetadata) (string, error) {
	if md.InputMethod != model.InputMethodVoice {
		return md.ContentPreview, nil
	}
	if md.FileName == "" {
		return "", fmt.Errorf("voice log has no file_name")
	}
	audioPath := filepath.Join(in.UploadsDir, "audio", md.FileName)
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file not found at %s: %w", audioPath, err)
	}
	if deps.Transcriber == nil {
		return "", fmt.Errorf("transcription not configured: set OPENAI_API_KEY")
	}
	return deps.Transcriber.Transcribe(ctx, audioPath)
}
