package store

// Host queries
const (
	queryGetHost = `
		SELECT host_id, hostname, node_name, lifecycle, is_root, status, status_why, plugins, config, raw, updated_at
		FROM hosts WHERE host_id = ?`

	queryListHosts = `
		SELECT host_id, hostname, node_name, lifecycle, is_root, status, status_why, plugins, config, raw, updated_at
		FROM hosts ORDER BY is_root DESC, hostname, host_id`

	queryUpsertHost = `
		INSERT INTO hosts (host_id, hostname, node_name, lifecycle, is_root, status, status_why, plugins, config, raw, session_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now())
		ON CONFLICT (host_id) DO UPDATE SET
			hostname = EXCLUDED.hostname,
			node_name = EXCLUDED.node_name,
			lifecycle = EXCLUDED.lifecycle,
			is_root = EXCLUDED.is_root,
			status = EXCLUDED.status,
			status_why = EXCLUDED.status_why,
			plugins = EXCLUDED.plugins,
			config = EXCLUDED.config,
			raw = EXCLUDED.raw,
			session_id = EXCLUDED.session_id,
			updated_at = now()`
)

// Transcript queries
const (
	queryInsertTranscript = `INSERT INTO transcripts (session_id, text) VALUES (?, ?)`

	queryListTranscripts = `
		SELECT id, session_id, text, created_at
		FROM transcripts ORDER BY id DESC LIMIT ?`
)
