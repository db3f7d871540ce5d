package services

import (
	"context"
	"fmt"
	"log/slog"

	"actlog/internal/amqp"
	"actlog/internal/core"
	"actlog/internal/observability"
	"actlog/internal/store"
)

// ActivityService orchestrates record operations across the local store and
// AMQP. Writes go to the store first, the mirror message is best effort.
type ActivityService struct {
	store      store.Store
	amqpClient *amqp.Client
}

func NewActivityService(st store.Store, amqpClient *amqp.Client) *ActivityService {
	return &ActivityService{
		store:      st,
		amqpClient: amqpClient,
	}
}

// Load returns all records from the underlying store.
func (s *ActivityService) Load(ctx context.Context) ([]core.Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		observability.RecordLoadFailure()
		return nil, err
	}
	observability.RecordLoad(len(records))
	return records, nil
}

// Append saves a record locally and publishes a mirror message
func (s *ActivityService) Append(ctx context.Context, rec core.Record) (string, error) {
	ref, err := s.store.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("append record: %w", err)
	}

	observability.RecordAppended(rec.Category)

	if err := s.publishMirrorMessage(ctx, ref, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mirror message",
			"record_ref", ref, "error", err)
		// Don't fail the request, the record is saved locally
	}

	return ref, nil
}

// Delete removes records at the given positions from the underlying store.
// Deletions are not mirrored, the sheet is an append-only audit trail.
func (s *ActivityService) Delete(ctx context.Context, positions []int) (int, error) {
	removed, err := s.store.Delete(ctx, positions)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}

	observability.RecordsDeleted(removed)
	return removed, nil
}

func (s *ActivityService) publishMirrorMessage(ctx context.Context, ref string, rec core.Record) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping mirror message")
		return nil
	}

	return s.amqpClient.PublishRecordMirror(ctx, amqp.NewRecordMirrorMessage(ref, rec))
}

// Close closes the AMQP connection if one is configured. The store is owned
// by the caller and closed separately.
func (s *ActivityService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
