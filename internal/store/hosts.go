package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lumina-home/lumina-console/internal/models"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// HostStore keeps the last known snapshot of each host record.
type HostStore struct {
	db *sql.DB
}

func NewHostStore(db *sql.DB) *HostStore {
	return &HostStore{db: db}
}

// Save stores or updates the snapshot of rec.
func (s *HostStore) Save(ctx context.Context, sessionID string, rec models.HostRecord) error {
	plugins, err := json.Marshal(rec.Plugins)
	if err != nil {
		return fmt.Errorf("encoding plugins: %w", err)
	}
	config, err := json.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	var raw sql.NullString
	if len(rec.Raw) > 0 {
		raw = sql.NullString{String: string(rec.Raw), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, queryUpsertHost,
		rec.HostID, rec.Hostname, rec.NodeName, string(rec.Lifecycle), rec.Root,
		string(rec.Status), rec.StatusWhy, string(plugins), string(config), raw, sessionID)
	return err
}

// Get retrieves the snapshot of a host.
func (s *HostStore) Get(ctx context.Context, hostID string) (*models.HostRecord, error) {
	row := s.db.QueryRowContext(ctx, queryGetHost, hostID)

	rec, err := scanHost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all snapshots, root first.
func (s *HostStore) List(ctx context.Context) ([]models.HostRecord, error) {
	rows, err := s.db.QueryContext(ctx, queryListHosts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var hosts []models.HostRecord
	for rows.Next() {
		rec, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, *rec)
	}
	return hosts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHost(row scanner) (*models.HostRecord, error) {
	var (
		rec                  models.HostRecord
		lifecycle, status    string
		plugins, config, raw sql.NullString
	)

	err := row.Scan(&rec.HostID, &rec.Hostname, &rec.NodeName, &lifecycle, &rec.Root,
		&status, &rec.StatusWhy, &plugins, &config, &raw, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rec.Lifecycle = models.Lifecycle(lifecycle)
	rec.Status = models.ParseStatusCode(status)

	if plugins.Valid {
		if err := json.Unmarshal([]byte(plugins.String), &rec.Plugins); err != nil {
			return nil, fmt.Errorf("decoding plugins of %s: %w", rec.HostID, err)
		}
	}
	if config.Valid {
		if err := json.Unmarshal([]byte(config.String), &rec.Config); err != nil {
			return nil, fmt.Errorf("decoding config of %s: %w", rec.HostID, err)
		}
	}
	if raw.Valid {
		rec.Raw = json.RawMessage(raw.String)
	}

	return &rec, nil
}
