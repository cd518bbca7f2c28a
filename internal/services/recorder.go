package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/store"
)

const recorderTimeout = 5 * time.Second

// Recorder persists directory updates and failed-command transcripts of one
// console session.
type Recorder struct {
	store     *store.Store
	sessionID string
}

func NewRecorder(st *store.Store, sessionID string) *Recorder {
	return &Recorder{
		store:     st,
		sessionID: sessionID,
	}
}

func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Run saves the latest state of every record stored in dir until ctx is done.
// Updates arriving while a save is running are coalesced per host.
func (r *Recorder) Run(ctx context.Context, dir *Directory) {
	feed, stop := dir.Follow()
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-feed.Ready():
			for _, update := range feed.Drain() {
				r.save(update.Record)
			}
		}
	}
}

func (r *Recorder) save(rec models.HostRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	if err := r.store.Hosts().Save(ctx, r.sessionID, rec); err != nil {
		zap.S().Named("recorder").Errorw("failed to save host snapshot", "host_id", rec.HostID, "error", err)
	}
}

// RecordTranscript is meant to be registered with Trace.OnFlush.
func (r *Recorder) RecordTranscript(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	if err := r.store.Transcripts().Append(ctx, r.sessionID, text); err != nil {
		zap.S().Named("recorder").Errorw("failed to save transcript", "error", err)
	}
}
