package telemetry

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists runs, stats windows and phase events to SQLite so several
// runs can be compared in one file.
type Store struct {
	conn  *sql.DB
	runID int64
}

// OpenStore opens (or creates) the database at path and starts a new run.
// Returns nil if path is empty (store disabled).
func OpenStore(path string, seed int64) (*Store, error) {
	if path == "" {
		return nil, nil
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	res, err := conn.Exec("INSERT INTO runs (seed) VALUES (?)", seed)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating run: %w", err)
	}
	if s.runID, err = res.LastInsertId(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("reading run id: %w", err)
	}

	return s, nil
}

// migrate creates tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS windows (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		window_end INTEGER NOT NULL,
		sim_time REAL NOT NULL,
		phase TEXT NOT NULL,
		population INTEGER NOT NULL,
		spawns INTEGER NOT NULL,
		evictions INTEGER NOT NULL,
		depletions INTEGER NOT NULL,
		energy_mean REAL NOT NULL,
		speed_mean REAL NOT NULL,
		polarization REAL NOT NULL,
		spread REAL NOT NULL,
		PRIMARY KEY (run_id, window_end)
	);

	CREATE TABLE IF NOT EXISTS phase_events (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		from_phase TEXT NOT NULL,
		to_phase TEXT NOT NULL,
		reason TEXT NOT NULL,
		population INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_phase_events_run ON phase_events(run_id);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}
	return nil
}

// RunID returns the id of the run this store writes to.
func (s *Store) RunID() int64 {
	if s == nil {
		return 0
	}
	return s.runID
}

// InsertWindow records a stats window for the current run.
func (s *Store) InsertWindow(w WindowStats) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.Exec(`
		INSERT INTO windows (run_id, window_end, sim_time, phase, population, spawns,
			evictions, depletions, energy_mean, speed_mean, polarization, spread)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, w.WindowEndTick, w.SimTime, w.Phase, w.Population, w.Spawns,
		w.Evictions, w.Depletions, w.EnergyMean, w.SpeedMean, w.Polarization, w.Spread,
	)
	if err != nil {
		return fmt.Errorf("inserting window: %w", err)
	}
	return nil
}

// InsertPhaseEvent records a phase transition for the current run.
func (s *Store) InsertPhaseEvent(e PhaseEvent) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.Exec(
		"INSERT INTO phase_events (run_id, tick, from_phase, to_phase, reason, population) VALUES (?, ?, ?, ?, ?, ?)",
		s.runID, e.Tick, e.From, e.To, e.Reason, e.Population,
	)
	if err != nil {
		return fmt.Errorf("inserting phase event: %w", err)
	}
	return nil
}

// PhaseEvents returns the recorded transitions of the current run in tick order.
func (s *Store) PhaseEvents() ([]PhaseEvent, error) {
	return s.RunPhaseEvents(s.RunID())
}

// RunPhaseEvents returns the recorded transitions of any run in tick order.
func (s *Store) RunPhaseEvents(runID int64) ([]PhaseEvent, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.conn.Query(
		"SELECT tick, from_phase, to_phase, reason, population FROM phase_events WHERE run_id = ? ORDER BY tick, rowid",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying phase events: %w", err)
	}
	defer rows.Close()

	var events []PhaseEvent
	for rows.Next() {
		var e PhaseEvent
		if err := rows.Scan(&e.Tick, &e.From, &e.To, &e.Reason, &e.Population); err != nil {
			return nil, fmt.Errorf("scanning phase event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// WindowCount returns the number of windows recorded for the current run.
func (s *Store) WindowCount() (int, error) {
	return s.RunWindowCount(s.RunID())
}

// RunWindowCount returns the number of windows recorded for any run.
func (s *Store) RunWindowCount(runID int64) (int, error) {
	if s == nil {
		return 0, nil
	}
	var n int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM windows WHERE run_id = ?", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting windows: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.conn.Close()
}
