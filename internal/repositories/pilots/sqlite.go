package pilots

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pilots (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	callsign           TEXT NOT NULL DEFAULT '',
	affiliation        TEXT NOT NULL DEFAULT '',
	portrait           TEXT NOT NULL DEFAULT '',
	background         TEXT NOT NULL DEFAULT '',
	type               TEXT NOT NULL,
	status             TEXT NOT NULL,
	gunnery            INTEGER NOT NULL,
	piloting           INTEGER NOT NULL,
	wounds             INTEGER NOT NULL DEFAULT 0 CHECK (wounds BETWEEN 0 AND 6),
	has_career         INTEGER NOT NULL DEFAULT 1,
	missions_completed INTEGER NOT NULL DEFAULT 0,
	victories          INTEGER NOT NULL DEFAULT 0,
	defeats            INTEGER NOT NULL DEFAULT 0,
	draws              INTEGER NOT NULL DEFAULT 0,
	total_kills        INTEGER NOT NULL DEFAULT 0,
	xp                 INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
	total_xp_earned    INTEGER NOT NULL DEFAULT 0,
	rank               TEXT NOT NULL DEFAULT '',
	created_at         INTEGER NOT NULL,
	updated_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pilots_status ON pilots (status);

CREATE TABLE IF NOT EXISTS pilot_abilities (
	pilot_id         TEXT NOT NULL REFERENCES pilots (id) ON DELETE CASCADE,
	ability_id       TEXT NOT NULL,
	acquired_at      INTEGER NOT NULL,
	acquired_game_id TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (pilot_id, ability_id)
);

CREATE TABLE IF NOT EXISTS pilot_kills (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	pilot_id    TEXT NOT NULL REFERENCES pilots (id) ON DELETE CASCADE,
	target_id   TEXT NOT NULL,
	target_name TEXT NOT NULL DEFAULT '',
	weapon_used TEXT NOT NULL DEFAULT '',
	killed_at   INTEGER NOT NULL,
	game_id     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_pilot_kills_pilot ON pilot_kills (pilot_id);

CREATE TABLE IF NOT EXISTS pilot_missions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	pilot_id     TEXT NOT NULL REFERENCES pilots (id) ON DELETE CASCADE,
	game_id      TEXT NOT NULL,
	mission_name TEXT NOT NULL DEFAULT '',
	played_at    INTEGER NOT NULL,
	outcome      TEXT NOT NULL,
	xp_earned    INTEGER NOT NULL DEFAULT 0,
	kills        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_pilot_missions_pilot ON pilot_missions (pilot_id);
`

const pilotColumns = `id, name, callsign, affiliation, portrait, background, type, status,
	gunnery, piloting, wounds, has_career, missions_completed, victories, defeats, draws,
	total_kills, xp, total_xp_earned, rank, created_at, updated_at`

// SQLiteRepository persists pilots in SQLite
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
	idGen idgen.Generator
}

// SQLiteConfig contains configuration for the SQLite pilot repository.
type SQLiteConfig struct {
	// Path is the database file; ":memory:" is accepted for tests
	Path        string
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("storage path is required")
	}
	return nil
}

// OpenSQLite opens the database and applies the schema
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := cfg.Path
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to apply pilot schema")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewPrefixed("pilot")
	}

	return &SQLiteRepository{db: db, clock: c, idGen: gen}, nil
}

// Close closes the database handle
func (s *SQLiteRepository) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteRepository) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit transaction")
	}
	return nil
}

func (s *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	pilot, err := newPilot(s.idGen.Generate(), s.now(), input)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM pilots WHERE id = ?`, pilot.ID).Scan(&n); err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if n > 0 {
			return errors.AlreadyExistsf("pilot with ID %s already exists", pilot.ID)
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO pilots (`+pilotColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			pilotRowArgs(pilot)...)
		if err != nil {
			return errors.Wrapf(err, "failed to insert pilot")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "pilot created", "pilot_id", pilot.ID, "backend", "sqlite")
	return &CreateOutput{Pilot: pilot}, nil
}

func pilotRowArgs(p *entities.Pilot) []any {
	career := p.Career
	if career == nil {
		career = &entities.Career{}
	}
	hasCareer := 0
	if p.Career != nil {
		hasCareer = 1
	}
	return []any{
		p.ID, p.Name, p.Callsign, p.Affiliation, p.Portrait, p.Background,
		string(p.Type), string(p.Status), p.Skills.Gunnery, p.Skills.Piloting, p.Wounds,
		hasCareer, career.MissionsCompleted, career.Victories, career.Defeats, career.Draws,
		career.TotalKills, career.XP, career.TotalXPEarned, career.Rank,
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	}
}

func (s *SQLiteRepository) savePilotRow(ctx context.Context, q querier, p *entities.Pilot) error {
	args := pilotRowArgs(p)
	// id moves to the end for the WHERE clause
	args = append(args[1:], args[0])
	_, err := q.ExecContext(ctx, `UPDATE pilots SET
		name = ?, callsign = ?, affiliation = ?, portrait = ?, background = ?, type = ?, status = ?,
		gunnery = ?, piloting = ?, wounds = ?, has_career = ?, missions_completed = ?, victories = ?,
		defeats = ?, draws = ?, total_kills = ?, xp = ?, total_xp_earned = ?, rank = ?,
		created_at = ?, updated_at = ?
		WHERE id = ?`, args...)
	if err != nil {
		return errors.Wrapf(err, "failed to save pilot %s", p.ID)
	}
	return nil
}

func (s *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}
	pilot, err := s.load(ctx, s.db, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Pilot: pilot}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPilot(row rowScanner) (*entities.Pilot, error) {
	var (
		p                    entities.Pilot
		c                    entities.Career
		pilotType, status    string
		hasCareer            int
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Callsign, &p.Affiliation, &p.Portrait, &p.Background,
		&pilotType, &status, &p.Skills.Gunnery, &p.Skills.Piloting, &p.Wounds,
		&hasCareer, &c.MissionsCompleted, &c.Victories, &c.Defeats, &c.Draws,
		&c.TotalKills, &c.XP, &c.TotalXPEarned, &c.Rank, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = entities.PilotType(pilotType)
	p.Status = entities.PilotStatus(status)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	if hasCareer == 1 {
		c.KillRecords = []entities.KillRecord{}
		c.MissionHistory = []entities.MissionRecord{}
		p.Career = &c
	}
	p.Abilities = []entities.PilotAbility{}
	return &p, nil
}

// load reads a pilot with its abilities, kills and missions
func (s *SQLiteRepository) load(ctx context.Context, q querier, id string) (*entities.Pilot, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pilotColumns+` FROM pilots WHERE id = ?`, id)
	pilot, err := scanPilot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("pilot with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get pilot")
	}
	if err := s.loadChildren(ctx, q, pilot); err != nil {
		return nil, err
	}
	return pilot, nil
}

func (s *SQLiteRepository) loadChildren(ctx context.Context, q querier, p *entities.Pilot) error {
	rows, err := q.QueryContext(ctx,
		`SELECT ability_id, acquired_at, acquired_game_id FROM pilot_abilities
		 WHERE pilot_id = ? ORDER BY rowid`, p.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to load abilities")
	}
	for rows.Next() {
		var a entities.PilotAbility
		var at int64
		if err := rows.Scan(&a.AbilityID, &at, &a.AcquiredGameID); err != nil {
			_ = rows.Close()
			return errors.Wrapf(err, "failed to scan ability")
		}
		a.AcquiredDate = fromMillis(at)
		p.Abilities = append(p.Abilities, a)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	if p.Career == nil {
		return nil
	}

	rows, err = q.QueryContext(ctx,
		`SELECT target_id, target_name, weapon_used, killed_at, game_id FROM pilot_kills
		 WHERE pilot_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to load kills")
	}
	for rows.Next() {
		var k entities.KillRecord
		var at int64
		if err := rows.Scan(&k.TargetID, &k.TargetName, &k.WeaponUsed, &at, &k.GameID); err != nil {
			_ = rows.Close()
			return errors.Wrapf(err, "failed to scan kill")
		}
		k.Date = fromMillis(at)
		p.Career.KillRecords = append(p.Career.KillRecords, k)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = q.QueryContext(ctx,
		`SELECT game_id, mission_name, played_at, outcome, xp_earned, kills FROM pilot_missions
		 WHERE pilot_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to load missions")
	}
	for rows.Next() {
		var m entities.MissionRecord
		var at int64
		var outcome string
		if err := rows.Scan(&m.GameID, &m.MissionName, &at, &outcome, &m.XPEarned, &m.Kills); err != nil {
			_ = rows.Close()
			return errors.Wrapf(err, "failed to scan mission")
		}
		m.Date = fromMillis(at)
		m.Outcome = entities.MissionOutcome(outcome)
		p.Career.MissionHistory = append(p.Career.MissionHistory, m)
	}
	return closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return errors.Wrapf(err, "failed to iterate rows")
	}
	if err := rows.Close(); err != nil {
		return errors.Wrapf(err, "failed to close rows")
	}
	return nil
}

// mutate loads the pilot inside a transaction, applies fn and then write.
// Either both succeed and commit or nothing changes.
func (s *SQLiteRepository) mutate(
	ctx context.Context,
	id string,
	fn func(p *entities.Pilot, now time.Time) error,
	write func(tx *sql.Tx, p *entities.Pilot) error,
) (*entities.Pilot, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}

	var result *entities.Pilot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		pilot, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(pilot, s.now()); err != nil {
			return err
		}
		if err := s.savePilotRow(ctx, tx, pilot); err != nil {
			return err
		}
		if write != nil {
			if err := write(tx, pilot); err != nil {
				return err
			}
		}
		result = pilot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	pilot, err := s.mutate(ctx, input.ID, func(p *entities.Pilot, now time.Time) error {
		return applyUpdate(p, input, now)
	}, nil)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"pilot_abilities", "pilot_kills", "pilot_missions"} {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE pilot_id = ?`, table), input.ID); err != nil {
				return errors.Wrapf(err, "failed to delete from %s", table)
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM pilots WHERE id = ?`, input.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to delete pilot")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrapf(err, "failed to delete pilot")
		}
		if n == 0 {
			return errors.NotFoundf("pilot with ID %s not found", input.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}

func (s *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	pilots, err := s.query(ctx, `SELECT `+pilotColumns+` FROM pilots ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Pilots: pilots}, nil
}

func (s *SQLiteRepository) ListByStatus(ctx context.Context, input ListByStatusInput) (*ListByStatusOutput, error) {
	if input.Status == "" {
		return nil, errors.InvalidArgument("status cannot be empty")
	}
	pilots, err := s.query(ctx,
		`SELECT `+pilotColumns+` FROM pilots WHERE status = ? ORDER BY created_at, id`,
		string(input.Status))
	if err != nil {
		return nil, err
	}
	return &ListByStatusOutput{Pilots: pilots}, nil
}

func (s *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*entities.Pilot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list pilots")
	}
	pilots := []*entities.Pilot{}
	for rows.Next() {
		p, err := scanPilot(rows)
		if err != nil {
			_ = rows.Close()
			return nil, errors.Wrapf(err, "failed to scan pilot")
		}
		pilots = append(pilots, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	// children are loaded after the cursor closes; the pool holds one connection
	for _, p := range pilots {
		if err := s.loadChildren(ctx, s.db, p); err != nil {
			return nil, err
		}
	}
	return pilots, nil
}

func (s *SQLiteRepository) Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pilots WHERE id = ?`, input.ID).Scan(&n); err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	return &ExistsOutput{Exists: n > 0}, nil
}

func (s *SQLiteRepository) AddAbility(ctx context.Context, input AddAbilityInput) (*AddAbilityOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return addAbility(p, input, now)
	}, func(tx *sql.Tx, p *entities.Pilot) error {
		a := p.Abilities[len(p.Abilities)-1]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pilot_abilities (pilot_id, ability_id, acquired_at, acquired_game_id) VALUES (?, ?, ?, ?)`,
			p.ID, a.AbilityID, toMillis(a.AcquiredDate), a.AcquiredGameID)
		if err != nil {
			return errors.Wrapf(err, "failed to insert ability")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddAbilityOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) RemoveAbility(ctx context.Context, input RemoveAbilityInput) (*RemoveAbilityOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return removeAbility(p, input.AbilityID, now)
	}, func(tx *sql.Tx, p *entities.Pilot) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM pilot_abilities WHERE pilot_id = ? AND ability_id = ?`, p.ID, input.AbilityID)
		if err != nil {
			return errors.Wrapf(err, "failed to delete ability")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RemoveAbilityOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) RecordKill(ctx context.Context, input RecordKillInput) (*RecordKillOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return recordKill(p, input.Kill, now)
	}, func(tx *sql.Tx, p *entities.Pilot) error {
		k := p.Career.KillRecords[len(p.Career.KillRecords)-1]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pilot_kills (pilot_id, target_id, target_name, weapon_used, killed_at, game_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, k.TargetID, k.TargetName, k.WeaponUsed, toMillis(k.Date), k.GameID)
		if err != nil {
			return errors.Wrapf(err, "failed to insert kill")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RecordKillOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) RecordMission(ctx context.Context, input RecordMissionInput) (*RecordMissionOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return recordMission(p, input.Mission, now)
	}, func(tx *sql.Tx, p *entities.Pilot) error {
		m := p.Career.MissionHistory[len(p.Career.MissionHistory)-1]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pilot_missions (pilot_id, game_id, mission_name, played_at, outcome, xp_earned, kills)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, m.GameID, m.MissionName, toMillis(m.Date), string(m.Outcome), m.XPEarned, m.Kills)
		if err != nil {
			return errors.Wrapf(err, "failed to insert mission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RecordMissionOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) AddXP(ctx context.Context, input AddXPInput) (*AddXPOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return addXP(p, input.Amount, now)
	}, nil)
	if err != nil {
		return nil, err
	}
	return &AddXPOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) SpendXP(ctx context.Context, input SpendXPInput) (*SpendXPOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return spendXP(p, input.Amount, now)
	}, nil)
	if err != nil {
		return nil, err
	}
	return &SpendXPOutput{Pilot: pilot}, nil
}

func (s *SQLiteRepository) ImproveSkill(ctx context.Context, input ImproveSkillInput) (*ImproveSkillOutput, error) {
	pilot, err := s.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return improveSkill(p, input, now)
	}, nil)
	if err != nil {
		return nil, err
	}
	return &ImproveSkillOutput{Pilot: pilot}, nil
}
