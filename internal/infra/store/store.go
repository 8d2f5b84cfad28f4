package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gasthaus-reservations/internal/domain/reservation"
	"gasthaus-reservations/internal/pkg/clock"
	"gasthaus-reservations/internal/pkg/config"
	"gasthaus-reservations/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

const (
	backupPrefix    = "reservations_backup_"
	backupSuffix    = ".json"
	corruptedSuffix = ".corrupted_"
	tempPrefix      = "res_temp_"
)

// Store owns the canonical reservation set. It keeps a process-wide cache
// that is refreshed from disk on first access or forced reload, and every
// save rotates a timestamped backup of the previous file.
type Store struct {
	mu     sync.Mutex
	cfg    config.StoreConfig
	clock  clock.Clock
	logger *slog.Logger

	cache  []reservation.Reservation
	loaded bool
}

func New(cfg config.StoreConfig, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// Load returns a copy of the reservation set. Callers that mutate records
// must pass the whole set back through Save for the change to stick.
func (s *Store) Load(force bool) ([]reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.loaded {
		return s.copyOut(), nil
	}

	loaded, err := s.loadFromDisk()
	if err != nil {
		return nil, err
	}
	s.cache = loaded
	s.loaded = true
	return s.copyOut(), nil
}

// Save persists the full set atomically: backup the current file, prune old
// backups, write to a temp file in the same directory, then rename it over
// the canonical file. The cache is only replaced after a successful rename.
func (s *Store) Save(all []reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backupCurrentFile()

	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	dataFile := s.cfg.DataFilePath()
	if err := os.MkdirAll(filepath.Dir(dataFile), 0o755); err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataFile), tempPrefix+"*"+backupSuffix)
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		s.removeTemp(tmpPath)
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if err := tmp.Close(); err != nil {
		s.removeTemp(tmpPath)
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if err := os.Rename(tmpPath, dataFile); err != nil {
		s.removeTemp(tmpPath)
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	s.cache = nil
	if err := copier.Copy(&s.cache, &all); err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	s.loaded = true
	return nil
}

// CleanupOld drops reservations whose start date is older than the retention
// window and persists the remainder. Records with an unparseable date are
// conservatively kept. Returns how many records were removed.
func (s *Store) CleanupOld() (int, error) {
	all, err := s.Load(true)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}

	now := s.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -s.cfg.RetentionDays)
	kept := make([]reservation.Reservation, 0, len(all))
	removed := 0
	for _, res := range all {
		start, err := reservation.ParseDate(res.Date)
		if err != nil {
			s.logger.Warn("reservation has unparseable date, keeping during cleanup",
				"id", res.ID, "date", res.Date)
			kept = append(kept, res)
			continue
		}
		if start.Before(cutoff) {
			s.logger.Info("removing stale reservation",
				"id", res.ID, "guest", res.Name, "date", res.Date)
			removed++
			continue
		}
		kept = append(kept, res)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.Save(kept); err != nil {
		return 0, err
	}
	s.logger.Info("cleanup removed stale reservations",
		"removed", removed, "retention_days", s.cfg.RetentionDays)
	return removed, nil
}

func (s *Store) copyOut() []reservation.Reservation {
	out := make([]reservation.Reservation, 0, len(s.cache))
	if err := copier.Copy(&out, &s.cache); err != nil {
		// Reservation is a flat value type; a copy failure would be a
		// programming error, not a runtime condition.
		panic(err)
	}
	return out
}

func (s *Store) loadFromDisk() ([]reservation.Reservation, error) {
	dataFile := s.cfg.DataFilePath()

	content, readErr := os.ReadFile(dataFile)
	switch {
	case os.IsNotExist(readErr):
		s.logger.Warn("reservation data file not found", "path", dataFile)
		if records, ok := s.restoreFromBackup(false); ok {
			return s.decodeRecords(records), nil
		}
		s.createEmptyDataFile()
		return nil, nil

	case readErr != nil:
		s.logger.Error("failed to read reservation data file", "path", dataFile, "error", readErr)
		if records, ok := s.restoreFromBackup(true); ok {
			return s.decodeRecords(records), nil
		}
		s.logger.Error("CRITICAL: data file unreadable and no valid backup found, starting empty")
		return nil, nil
	}

	if len(strings.TrimSpace(string(content))) == 0 {
		s.logger.Warn("reservation data file is empty", "path", dataFile)
		if records, ok := s.restoreFromBackup(true); ok {
			return s.decodeRecords(records), nil
		}
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(content, &records); err != nil {
		s.logger.Error("reservation data file is corrupt", "path", dataFile, "error", err)
		if restored, ok := s.restoreFromBackup(true); ok {
			return s.decodeRecords(restored), nil
		}
		s.logger.Error("CRITICAL: data file corrupt and no valid backup found, starting empty")
		s.quarantineDataFile()
		s.createEmptyDataFile()
		return nil, nil
	}

	return s.decodeRecords(records), nil
}

// decodeRecords skips malformed individual records rather than failing the
// whole load.
func (s *Store) decodeRecords(records []json.RawMessage) []reservation.Reservation {
	out := make([]reservation.Reservation, 0, len(records))
	for _, raw := range records {
		res, err := reservation.DecodeRecord(raw)
		if err != nil {
			s.logger.Error("skipping malformed reservation record", "error", err, "record", string(raw))
			continue
		}
		out = append(out, res)
	}
	return out
}

// restoreFromBackup scans the backup directory newest-first for a usable
// backup. On success the broken canonical file is moved aside and the backup
// copied over it, so subsequent loads see valid content.
func (s *Store) restoreFromBackup(quarantine bool) ([]json.RawMessage, bool) {
	backups, err := s.listBackups()
	if err != nil || len(backups) == 0 {
		s.logger.Warn("no backup files available for restore")
		return nil, false
	}

	for i := len(backups) - 1; i >= 0; i-- {
		path := backups[i].path
		records, ok := s.readValidBackup(path)
		if !ok {
			continue
		}

		s.logger.Warn("restoring reservation data from backup", "backup", path)
		if quarantine {
			s.quarantineDataFile()
		}
		if err := copyFile(path, s.cfg.DataFilePath()); err != nil {
			s.logger.Error("failed to restore data file from backup", "backup", path, "error", err)
			return records, true
		}
		return records, true
	}

	s.logger.Error("CRITICAL: no valid backup found in backup directory")
	return nil, false
}

func (s *Store) readValidBackup(path string) ([]json.RawMessage, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("cannot read backup file, skipping", "backup", path, "error", err)
		return nil, false
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		s.logger.Warn("backup file is empty, skipping", "backup", path)
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(content, &records); err != nil {
		s.logger.Warn("backup file is corrupt, skipping", "backup", path, "error", err)
		return nil, false
	}
	if len(records) > 0 {
		if _, err := reservation.DecodeRecord(records[0]); err != nil {
			s.logger.Warn("backup file does not contain reservation records, skipping",
				"backup", path, "error", err)
			return nil, false
		}
	}
	return records, true
}

// quarantineDataFile renames the (possibly corrupt) canonical file aside so
// it is preserved for inspection.
func (s *Store) quarantineDataFile() {
	dataFile := s.cfg.DataFilePath()
	if _, err := os.Stat(dataFile); err != nil {
		return
	}
	aside := dataFile + corruptedSuffix + s.clock.Now().Format("20060102_150405")
	if err := os.Rename(dataFile, aside); err != nil {
		s.logger.Error("failed to move corrupt data file aside", "error", err)
		return
	}
	s.logger.Info("corrupt data file preserved", "path", aside)
}

func (s *Store) createEmptyDataFile() {
	dataFile := s.cfg.DataFilePath()
	if err := os.MkdirAll(filepath.Dir(dataFile), 0o755); err != nil {
		s.logger.Error("failed to create data directory", "error", err)
		return
	}
	if err := os.WriteFile(dataFile, []byte("[]"), 0o644); err != nil {
		s.logger.Error("failed to create empty data file", "error", err)
	}
}

// backupCurrentFile copies the canonical file into the backup directory with
// a timestamped name, then prunes the directory to the configured maximum.
// Failure here never blocks the save itself.
func (s *Store) backupCurrentFile() {
	dataFile := s.cfg.DataFilePath()
	if _, err := os.Stat(dataFile); err != nil {
		return
	}

	backupDir := s.cfg.BackupDirPath()
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		s.logger.Warn("backup directory unavailable, saving without backup", "error", err)
		return
	}

	now := s.clock.Now()
	name := fmt.Sprintf("%s%s_%06d%s",
		backupPrefix, now.Format("20060102_150405"), now.Nanosecond()/1000, backupSuffix)
	if err := copyFile(dataFile, filepath.Join(backupDir, name)); err != nil {
		s.logger.Error("failed to back up data file", "error", err)
		return
	}
	s.pruneBackups()
}

func (s *Store) pruneBackups() {
	backups, err := s.listBackups()
	if err != nil {
		s.logger.Error("failed to list backup files for pruning", "error", err)
		return
	}
	if len(backups) <= s.cfg.MaxBackups {
		return
	}
	for _, b := range backups[:len(backups)-s.cfg.MaxBackups] {
		if err := os.Remove(b.path); err != nil {
			s.logger.Error("failed to delete old backup file", "backup", b.path, "error", err)
		}
	}
}

type backupFile struct {
	path    string
	modTime time.Time
}

// listBackups returns backup files sorted oldest-first by modification time.
func (s *Store) listBackups() ([]backupFile, error) {
	entries, err := os.ReadDir(s.cfg.BackupDirPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []backupFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{
			path:    filepath.Join(s.cfg.BackupDirPath(), name),
			modTime: info.ModTime(),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})
	return backups, nil
}

func (s *Store) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("could not remove temporary file", "path", path, "error", err)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
