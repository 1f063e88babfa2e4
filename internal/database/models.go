package database

import "time"

// Invocation records one slash command invocation for the usage report and
// retention tasks. User and channel identifiers are Discord snowflakes.
type Invocation struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Command    string `db:"command"`
	UserID     string `db:"user_id"`
	GuildID    string `db:"guild_id"`
	ChannelID  string `db:"channel_id"`
	DurationMS int64  `db:"duration_ms"`
	OK         bool   `db:"ok"`
	// ErrorKind names the error category ("unavailable", "rejected",
	// "input", "internal"); empty on success.
	ErrorKind string `db:"error_kind"`
}

// CommandCount pairs a command name with its invocation count over a
// reporting window.
type CommandCount struct {
	Command string `db:"command"`
	Count   int64  `db:"count"`
}
