package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           BIGINT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	chat_id      BIGINT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_progress (
	user_id           BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	total_xp          BIGINT NOT NULL DEFAULT 0 CHECK (total_xp >= 0),
	today_xp          BIGINT NOT NULL DEFAULT 0 CHECK (today_xp >= 0),
	level             INT NOT NULL DEFAULT 1 CHECK (level BETWEEN 1 AND 15),
	total_points      BIGINT NOT NULL DEFAULT 0 CHECK (total_points >= 0),
	tasks_completed   INT NOT NULL DEFAULT 0 CHECK (tasks_completed >= 0),
	last_xp_update_at TIMESTAMPTZ,
	version           BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_streaks (
	user_id            BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	current            INT NOT NULL DEFAULT 0,
	longest            INT NOT NULL DEFAULT 0,
	last_activity_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	xp_reward    BIGINT NOT NULL CHECK (xp_reward > 0),
	completed    BOOLEAN NOT NULL DEFAULT FALSE,
	completed_at TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS xp_events (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind        TEXT NOT NULL CHECK (kind IN ('award', 'revoke')),
	amount      BIGINT NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	level_after INT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_progress_points ON user_progress(total_points DESC, user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at DESC);
`

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
