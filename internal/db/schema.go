package db

import "database/sql"

// SchemaSQL is the complete schema for fresh techmarket installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(): if repository code references a column that does not
// exist here, tests fail immediately with "no such column" instead of
// drifting against production.
const SchemaSQL = `
-- Profiles (one per account holder, client or technician)
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	auth_ref TEXT UNIQUE,
	role TEXT NOT NULL CHECK(role IN ('client', 'technician')),
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	profile_url TEXT,
	rate REAL NOT NULL DEFAULT 0,
	bio TEXT,
	photo_ref TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Missions (service requests from a client to one technician)
-- A mission's client party is either a profile or a guest token, never both.
-- accepted_at is non-null exactly for missions that reached 'accepted'.
CREATE TABLE IF NOT EXISTS missions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	requested_for DATETIME,
	status TEXT NOT NULL CHECK(status IN ('pending', 'accepted', 'declined', 'completed')) DEFAULT 'pending',
	client_profile_id TEXT,
	guest_token TEXT,
	guest_name TEXT,
	guest_email TEXT,
	technician_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	accepted_at DATETIME,
	FOREIGN KEY (client_profile_id) REFERENCES profiles(id),
	FOREIGN KEY (technician_id) REFERENCES profiles(id),
	CHECK ((client_profile_id IS NOT NULL) + (guest_token IS NOT NULL) = 1)
);

CREATE INDEX IF NOT EXISTS idx_missions_client ON missions(client_profile_id);
CREATE INDEX IF NOT EXISTS idx_missions_guest ON missions(guest_token);
CREATE INDEX IF NOT EXISTS idx_missions_technician ON missions(technician_id);
CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);

-- Messages (append-only mission threads)
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	mission_id TEXT NOT NULL,
	sender_ref TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	read_at DATETIME,
	FOREIGN KEY (mission_id) REFERENCES missions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_mission ON messages(mission_id);

-- Skills and brands (free-form tags on technician profiles)
CREATE TABLE IF NOT EXISTS skills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS brands (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profile_skills (
	profile_id TEXT NOT NULL,
	skill_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (profile_id, skill_id),
	FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE,
	FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS profile_brands (
	profile_id TEXT NOT NULL,
	brand_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (profile_id, brand_id),
	FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE,
	FOREIGN KEY (brand_id) REFERENCES brands(id) ON DELETE CASCADE
);
`

// InitSchema creates the database schema on the given connection.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent
// drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
