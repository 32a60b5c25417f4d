package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: a few
// client and technician profiles, skills/brands, and missions across the
// lifecycle states.
func SeedFixtures(database *sql.DB) error {
	profiles := []struct {
		id, authRef, role, first, last, email, phone, url, bio string
		rate                                                   float64
	}{
		{"PRO-001", "auth|client-acme", "client", "Maria", "Keller", "maria.keller@acme-robotics.example", "+1-555-0101", "", "Procurement lead, Acme Robotics.", 0},
		{"PRO-002", "auth|tech-ortiz", "technician", "Diego", "Ortiz", "diego.ortiz@example.com", "+1-555-0102", "https://portfolio.example/ortiz", "Industrial arm calibration and PLC commissioning.", 95},
		{"PRO-003", "auth|tech-lindqvist", "technician", "Sara", "Lindqvist", "sara.lindqvist@example.com", "+46-555-0103", "https://portfolio.example/lindqvist", "AGV fleets, safety scanners, conveyor integration.", 110},
		{"PRO-004", "auth|client-norden", "client", "Tomas", "Berg", "tomas.berg@norden-mfg.example", "+46-555-0104", "", "Maintenance manager, Norden Manufacturing.", 0},
	}
	for _, p := range profiles {
		if _, err := database.Exec(
			"INSERT INTO profiles (id, auth_ref, role, first_name, last_name, email, phone, profile_url, rate, bio) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.id, p.authRef, p.role, p.first, p.last, p.email, p.phone, p.url, p.rate, p.bio,
		); err != nil {
			return fmt.Errorf("seed profiles: %w", err)
		}
	}

	skills := []struct{ id, name string }{
		{"SKL-001", "arm-calibration"},
		{"SKL-002", "plc-programming"},
		{"SKL-003", "agv-maintenance"},
	}
	for _, s := range skills {
		if _, err := database.Exec("INSERT INTO skills (id, name) VALUES (?, ?)", s.id, s.name); err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}
	}

	brands := []struct{ id, name string }{
		{"BRD-001", "KUKA"},
		{"BRD-002", "FANUC"},
		{"BRD-003", "Omron"},
	}
	for _, b := range brands {
		if _, err := database.Exec("INSERT INTO brands (id, name) VALUES (?, ?)", b.id, b.name); err != nil {
			return fmt.Errorf("seed brands: %w", err)
		}
	}

	links := []struct{ table, profileID, tagID string }{
		{"profile_skills", "PRO-002", "SKL-001"},
		{"profile_skills", "PRO-002", "SKL-002"},
		{"profile_skills", "PRO-003", "SKL-003"},
		{"profile_brands", "PRO-002", "BRD-001"},
		{"profile_brands", "PRO-002", "BRD-002"},
		{"profile_brands", "PRO-003", "BRD-003"},
	}
	for _, l := range links {
		col := "skill_id"
		if l.table == "profile_brands" {
			col = "brand_id"
		}
		if _, err := database.Exec(
			fmt.Sprintf("INSERT INTO %s (profile_id, %s) VALUES (?, ?)", l.table, col),
			l.profileID, l.tagID,
		); err != nil {
			return fmt.Errorf("seed tag links: %w", err)
		}
	}

	missions := []struct {
		id, title, desc, status, clientID, techID, acceptedAt string
	}{
		{"MSN-001", "Pump calibration", "Recalibrate dosing pumps on line 3.", "pending", "PRO-001", "PRO-002", ""},
		{"MSN-002", "AGV wheel replacement", "Replace drive wheels on two AGVs.", "accepted", "PRO-004", "PRO-003", "2026-02-10T09:00:00Z"},
		{"MSN-003", "Safety scanner audit", "Annual audit of cell scanners.", "completed", "PRO-001", "PRO-003", "2026-01-05T14:30:00Z"},
	}
	for _, m := range missions {
		var acceptedAt any
		if m.acceptedAt != "" {
			acceptedAt = m.acceptedAt
		}
		if _, err := database.Exec(
			"INSERT INTO missions (id, title, description, status, client_profile_id, technician_id, accepted_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			m.id, m.title, m.desc, m.status, m.clientID, m.techID, acceptedAt,
		); err != nil {
			return fmt.Errorf("seed missions: %w", err)
		}
	}

	messages := []struct{ id, missionID, sender, body string }{
		{"MSG-001", "MSN-002", "PRO-004", "What time works for the wheel swap?"},
		{"MSG-002", "MSN-002", "PRO-003", "Thursday morning, I can be on site by 8."},
		{"MSG-003", "MSN-003", "PRO-001", "Audit report received, thanks."},
	}
	for _, msg := range messages {
		if _, err := database.Exec(
			"INSERT INTO messages (id, mission_id, sender_ref, body) VALUES (?, ?, ?, ?)",
			msg.id, msg.missionID, msg.sender, msg.body,
		); err != nil {
			return fmt.Errorf("seed messages: %w", err)
		}
	}

	return nil
}
