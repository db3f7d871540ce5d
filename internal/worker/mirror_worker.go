package worker

import (
	"context"
	"fmt"
	"log/slog"

	"actlog/internal/amqp"
	"actlog/internal/observability"
	"actlog/internal/sheets"
)

// MirrorWorker copies appended activity records from the AMQP queue to the
// mirror sheet. The local store stays the source of truth, the sheet only
// accumulates rows.
type MirrorWorker struct {
	writer sheets.RowWriter
}

func NewMirrorWorker(writer sheets.RowWriter) *MirrorWorker {
	return &MirrorWorker{writer: writer}
}

// HandleMirrorMessage processes a single record mirror message from AMQP
func (w *MirrorWorker) HandleMirrorMessage(ctx context.Context, msg *amqp.RecordMirrorMessage) error {
	if w.writer == nil {
		slog.WarnContext(ctx, "No row writer configured, skipping mirror message",
			"message_id", msg.ID)
		return nil
	}

	rowRef, err := w.writer.AppendRow(ctx, msg.Date, msg.Category, msg.Hours)
	if err != nil {
		observability.RecordMirrorFailure()
		return fmt.Errorf("append mirror row: %w", err)
	}

	observability.RecordMirrorRowAppended()
	slog.InfoContext(ctx, "Mirrored record to sheet",
		"message_id", msg.ID,
		"record_ref", msg.Ref,
		"row_ref", rowRef)

	return nil
}
