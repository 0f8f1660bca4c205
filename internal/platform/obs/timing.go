package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const SessionIDKey ctxKey = "session_id"

// WithSessionID tags ctx so every timed operation logs the emergency it belongs to.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	sessionID := SessionID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("session_id=%s op=%s dur=%dms err=%v", sessionID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("session_id=%s op=%s dur=%dms", sessionID, name, dur.Milliseconds())
	}
}
