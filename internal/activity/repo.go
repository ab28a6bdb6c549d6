package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/rollfit/internal/streak"
	"github.com/2beens/rollfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type EventParams struct {
	UserID string
	Type   *EventType
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	EventParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if event.Data == nil {
		event.Data = map[string]string{}
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO activity_event (user_id, type, day, data, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		event.UserID,
		string(event.Type),
		event.Day.Time(),
		event.Data,
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user-id", params.UserID))
	if params.Type != nil {
		span.SetAttributes(attribute.String("type", params.Type.String()))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, day, data, timestamp
		FROM activity_event
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4)
		ORDER BY timestamp DESC, id DESC
		LIMIT $5 OFFSET $6;
	`,
		params.UserID,
		typeParam(params.Type),
		params.From, params.To,
		params.Size, params.Size*(params.Page-1),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var (
			event     Event
			eventType string
			day       time.Time
		)
		if err := rows.Scan(&event.ID, &event.UserID, &eventType, &day, &event.Data, &event.Timestamp); err != nil {
			return nil, err
		}
		event.Type = EventType(eventType)
		event.Day = streak.DateOf(day)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repo) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM activity_event
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4);
	`,
		params.UserID,
		typeParam(params.Type),
		params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count activity events: %w", err)
	}
	if count < 0 {
		return -1, errors.New("unexpected negative activity events count")
	}
	return count, nil
}

func typeParam(t *EventType) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
