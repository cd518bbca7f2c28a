package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db          *sql.DB
	hosts       *HostStore
	transcripts *TranscriptStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		hosts:       NewHostStore(db),
		transcripts: NewTranscriptStore(db),
	}
}

func (s *Store) Hosts() *HostStore {
	return s.hosts
}

func (s *Store) Transcripts() *TranscriptStore {
	return s.transcripts
}

func (s *Store) Close() error {
	return s.db.Close()
}
