package store

import (
	"context"
	"fmt"

	"github.com/abhisek/gradewise/ent"
	"github.com/abhisek/gradewise/ent/syncevent"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendSyncEvent(ctx context.Context, data SyncEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SyncEvent.Create().
		SetSequence(seqNum).
		SetRequestID(data.RequestID).
		SetSubjectID(data.SubjectID).
		SetAction(data.Action).
		SetSuccess(data.Success).
		SetStatusCode(data.StatusCode).
		SetLatencyMs(data.LatencyMs).
		SetErrorMessage(data.ErrorMessage).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save sync event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySyncEvents(ctx context.Context, opts QueryOpts) ([]SyncEventRecord, error) {
	query := r.client.SyncEvent.Query().
		Order(ent.Desc(syncevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(syncevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(syncevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(syncevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(syncevent.TimestampLTE(opts.To))
	}
	if opts.SubjectID != "" {
		query = query.Where(syncevent.SubjectID(opts.SubjectID))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sync events: %w", err)
	}

	records := make([]SyncEventRecord, len(events))
	for i, e := range events {
		records[i] = SyncEventRecord{
			SyncEventData: SyncEventData{
				RequestID:    e.RequestID,
				SubjectID:    e.SubjectID,
				Action:       e.Action,
				Success:      e.Success,
				StatusCode:   e.StatusCode,
				LatencyMs:    e.LatencyMs,
				ErrorMessage: e.ErrorMessage,
			},
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}
