package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/touchline/footballer/pkg/core"
)

// MatchExport is the root JSON structure.
type MatchExport struct {
	SessionID string        `json:"sessionId"`
	Name      string        `json:"name"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	EndTick   uint          `json:"endTick"`
	Anchor    [2]float64    `json:"anchor"`
	Players   []PlayerJSON  `json:"players"`
	Contacts  []ContactJSON `json:"contacts"`
}

// PlayerJSON is one player with its time series.
type PlayerJSON struct {
	ID       core.PlayerID       `json:"id"`
	Name     string              `json:"name"`
	Age      int                 `json:"age"`
	Team     int                 `json:"team"`
	JoinTick uint                `json:"joinTick"`
	States   []StateJSON         `json:"states"`
	Passes   []core.PassIntent   `json:"passes"`
	Swaps    []core.MovementSwap `json:"swaps"`
	Lunges   []core.LungeEvent   `json:"lunges"`
}

// StateJSON is a snapshot with its geographic position.
type StateJSON struct {
	Tick        uint          `json:"tick"`
	Position    core.Position `json:"position"`
	LonLat      [2]float64    `json:"lonLat"`
	AngleFacing float64       `json:"angleFacing"`
	Speed       int           `json:"speed"`
	Movement    string        `json:"movement"`
	Action      string        `json:"action"`
}

// ContactJSON is a contact with its geographic position.
type ContactJSON struct {
	core.ContactEvent
	LonLat [2]float64 `json:"lonLat"`
}

var fileNameReplacer = strings.NewReplacer(" ", "_", ":", "_", "/", "_", `\`, "_")

// exportJSON writes the match data to a JSON file, gzipped when configured.
// Caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	name := fileNameReplacer.Replace(b.match.Name)
	if name == "" {
		name = "match"
	}
	filename := fmt.Sprintf("%s_%s.json", name, b.match.StartTime.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		filename += ".gz"
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := writeExport(f, export, b.cfg.CompressOutput); err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func writeExport(w io.Writer, export MatchExport, compress bool) error {
	if !compress {
		if err := json.NewEncoder(w).Encode(export); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return nil
	}

	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(export); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

func (b *Backend) buildExport() MatchExport {
	export := MatchExport{
		SessionID: b.match.SessionID,
		Name:      b.match.Name,
		StartTime: b.match.StartTime,
		EndTime:   b.match.EndTime,
		Anchor:    [2]float64{b.anchor.Longitude, b.anchor.Latitude},
		Players:   make([]PlayerJSON, 0, len(b.players)),
		Contacts:  make([]ContactJSON, 0, len(b.contacts)),
	}

	var maxTick uint
	for _, r := range b.sortedPlayers() {
		pj := PlayerJSON{
			ID:       r.Player.PlayerID,
			Name:     r.Player.Name,
			Age:      r.Player.Age,
			Team:     r.Player.Team,
			JoinTick: r.Player.JoinTick,
			States:   make([]StateJSON, 0, len(r.States)),
			Passes:   nonNil(r.Passes),
			Swaps:    nonNil(r.Swaps),
			Lunges:   nonNil(r.Lunges),
		}
		for _, s := range r.States {
			lon, lat := b.anchor.LonLat(s.Snapshot.Position)
			pj.States = append(pj.States, StateJSON{
				Tick:        s.Tick,
				Position:    s.Snapshot.Position,
				LonLat:      [2]float64{lon, lat},
				AngleFacing: s.Snapshot.AngleFacing,
				Speed:       s.Snapshot.Speed,
				Movement:    s.Snapshot.Movement,
				Action:      s.Snapshot.Action,
			})
			maxTick = max(maxTick, s.Tick)
		}
		export.Players = append(export.Players, pj)
	}

	for _, c := range b.contacts {
		lon, lat := b.anchor.LonLat(c.At)
		export.Contacts = append(export.Contacts, ContactJSON{ContactEvent: c, LonLat: [2]float64{lon, lat}})
		maxTick = max(maxTick, c.Tick)
	}

	export.EndTick = maxTick
	return export
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
