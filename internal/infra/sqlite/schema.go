package sqlite

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           INTEGER PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	chat_id      INTEGER,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_progress (
	user_id           INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	total_xp          INTEGER NOT NULL DEFAULT 0 CHECK (total_xp >= 0),
	today_xp          INTEGER NOT NULL DEFAULT 0 CHECK (today_xp >= 0),
	level             INTEGER NOT NULL DEFAULT 1 CHECK (level BETWEEN 1 AND 15),
	total_points      INTEGER NOT NULL DEFAULT 0 CHECK (total_points >= 0),
	tasks_completed   INTEGER NOT NULL DEFAULT 0 CHECK (tasks_completed >= 0),
	last_xp_update_at DATETIME,
	version           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_streaks (
	user_id            INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	current            INTEGER NOT NULL DEFAULT 0,
	longest            INTEGER NOT NULL DEFAULT 0,
	last_activity_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	xp_reward    INTEGER NOT NULL CHECK (xp_reward > 0),
	completed    BOOLEAN NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS xp_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind        TEXT NOT NULL CHECK (kind IN ('award', 'revoke')),
	amount      INTEGER NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	level_after INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_progress_points ON user_progress(total_points DESC, user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at);
`

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
