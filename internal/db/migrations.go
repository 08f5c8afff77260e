package db

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "create users table",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL COLLATE NOCASE,
				password_hash TEXT NOT NULL,
				name_first TEXT NOT NULL,
				name_last TEXT NOT NULL,
				handle TEXT UNIQUE NOT NULL,
				permission INTEGER NOT NULL DEFAULT 2,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		name: "create sessions table",
		sql: `
			CREATE TABLE IF NOT EXISTS sessions (
				token TEXT PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at INTEGER NOT NULL,
				expires_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
		`,
	},
	{
		name: "create channels table",
		sql: `
			CREATE TABLE IF NOT EXISTS channels (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				is_public BOOLEAN NOT NULL DEFAULT 1,
				created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		name: "create channel members table",
		sql: `
			CREATE TABLE IF NOT EXISTS channel_members (
				channel_id INTEGER NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				is_owner BOOLEAN NOT NULL DEFAULT 0,
				joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (channel_id, user_id)
			);
			CREATE INDEX IF NOT EXISTS idx_channel_members_user ON channel_members(user_id);
		`,
	},
}
