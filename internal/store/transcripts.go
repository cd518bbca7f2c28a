package store

import (
	"context"
	"database/sql"

	"github.com/lumina-home/lumina-console/internal/models"
)

// TranscriptStore keeps the debug transcripts of failed commands.
type TranscriptStore struct {
	db *sql.DB
}

func NewTranscriptStore(db *sql.DB) *TranscriptStore {
	return &TranscriptStore{db: db}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID, text string) error {
	_, err := s.db.ExecContext(ctx, queryInsertTranscript, sessionID, text)
	return err
}

// List returns at most limit transcripts, newest first.
func (s *TranscriptStore) List(ctx context.Context, limit int) ([]models.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, queryListTranscripts, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var transcripts []models.Transcript
	for rows.Next() {
		var t models.Transcript
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Text, &t.CreatedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}
