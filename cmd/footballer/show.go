package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/database"
	"github.com/touchline/footballer/internal/model"
	gormstorage "github.com/touchline/footballer/internal/storage/gorm"
	"github.com/touchline/footballer/pkg/core"
)

// runShow prints a summary of one match from a SQLite dump. Without a
// match id the latest match is shown.
func runShow(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("show needs <dump.db> [match id]: %w", errUsage)
	}

	db, err := database.OpenSQLite(args[0], zerolog.Nop())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var id uint
	if len(args) == 2 {
		n, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("match id %q: %w", args[1], err)
		}
		id = uint(n)
	} else {
		var latest model.Match
		if err := db.Order("id DESC").First(&latest).Error; err != nil {
			return fmt.Errorf("finding latest match: %w", err)
		}
		id = latest.ID
	}

	reader := gormstorage.New(gormstorage.Dependencies{DB: db})
	m, err := reader.Match(id)
	if err != nil {
		return err
	}
	states, err := reader.PlayerStates(id)
	if err != nil {
		return err
	}
	contacts, err := reader.Contacts(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "match %d %q session=%s\n", m.ID, m.Name, m.SessionID)
	fmt.Fprintf(out, "  start %s\n", m.StartTime.UTC().Format("2006-01-02 15:04:05"))
	if !m.EndTime.IsZero() {
		fmt.Fprintf(out, "  end   %s\n", m.EndTime.UTC().Format("2006-01-02 15:04:05"))
	}

	for _, s := range lastStates(states) {
		snap := s.Snapshot
		fmt.Fprintf(out, "  player %d team %d at (%d,%d) facing %g, %s/%s, tick %d\n",
			snap.Player, snap.Team, snap.Position.X, snap.Position.Y, snap.AngleFacing,
			snap.Movement, snap.Action, s.Tick)
	}
	for _, c := range contacts {
		fmt.Fprintf(out, "  contact %d -> %d at (%d,%d) tick %d\n",
			c.Tackler, c.Target, c.At.X, c.At.Y, c.Tick)
	}
	return nil
}

// lastStates keeps the final state of every player, ordered by player id.
func lastStates(states []core.PlayerState) []core.PlayerState {
	last := make(map[core.PlayerID]core.PlayerState)
	for _, s := range states {
		last[s.Snapshot.Player] = s
	}
	out := make([]core.PlayerState, 0, len(last))
	for _, s := range last {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Snapshot.Player < out[j].Snapshot.Player })
	return out
}

// runDumps lists the SQLite dumps in a directory, the configured dump
// directory by default.
func runDumps(args []string, out io.Writer) error {
	var dir string
	switch len(args) {
	case 0:
		config.LoadDefaults()
		dir = viper.GetString("storage.sqlite.dumpDir")
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("dumps takes at most one directory: %w", errUsage)
	}

	paths, err := database.BackupPaths(dir)
	if err != nil {
		return fmt.Errorf("listing dumps: %w", err)
	}
	if len(paths) == 0 {
		return errors.New("no dumps found in " + dir)
	}
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	return nil
}
