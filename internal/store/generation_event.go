package store

import (
	"context"
	"fmt"

	"github.com/abhisek/mathsheet/ent"
	"github.com/abhisek/mathsheet/ent/generationevent"
)

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.GenerationEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetUserID(data.UserID).
		SetWorksheetID(data.WorksheetID).
		SetLevel(data.Level).
		SetTopic(data.Topic).
		SetDifficulty(data.Difficulty).
		SetQuestionCount(data.QuestionCount).
		SetFallback(data.Fallback).
		SetFailureKind(data.FailureKind).
		SetFailureMessage(data.FailureMessage).
		SetLatencyMs(data.LatencyMs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGenerationEvents(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	q := r.client.GenerationEvent.Query().
		Order(ent.Desc(generationevent.FieldSequence))
	if opts.SessionID != "" {
		q = q.Where(generationevent.SessionID(opts.SessionID))
	}
	if opts.After > 0 {
		q = q.Where(generationevent.SequenceGT(opts.After))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}

	events := make([]GenerationEvent, 0, len(rows))
	for _, e := range rows {
		events = append(events, GenerationEvent{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp.UTC(),
			GenerationEventData: GenerationEventData{
				SessionID:      e.SessionID,
				UserID:         e.UserID,
				WorksheetID:    e.WorksheetID,
				Level:          e.Level,
				Topic:          e.Topic,
				Difficulty:     e.Difficulty,
				QuestionCount:  e.QuestionCount,
				Fallback:       e.Fallback,
				FailureKind:    e.FailureKind,
				FailureMessage: e.FailureMessage,
				LatencyMs:      e.LatencyMs,
			},
		})
	}
	return events, nil
}

func (r *eventRepo) GenerationStats(ctx context.Context) (GenerationStats, error) {
	stats := GenerationStats{ByFailure: map[string]int{}}

	var rows []struct {
		FailureKind string `json:"failure_kind"`
		Total       int    `json:"total"`
		Fallbacks   int    `json:"fallbacks"`
	}
	err := r.client.GenerationEvent.Query().
		GroupBy(generationevent.FieldFailureKind).
		Aggregate(
			ent.As(ent.Count(), "total"),
			ent.As(ent.Sum(generationevent.FieldFallback), "fallbacks"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return stats, fmt.Errorf("generation stats: %w", err)
	}

	for _, row := range rows {
		stats.Total += row.Total
		stats.Fallbacks += row.Fallbacks
		if row.FailureKind != "" {
			stats.ByFailure[row.FailureKind] = row.Total
		}
	}
	return stats, nil
}
