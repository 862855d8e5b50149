package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/lepinkainen/movieway/internal/config"
	"github.com/lepinkainen/movieway/internal/history"
	"github.com/lepinkainen/movieway/internal/settings"
)

var stdout io.Writer = os.Stdout

// SettingsCmd groups the settings subcommands
type SettingsCmd struct {
	Show    SettingsShowCmd    `cmd:"" help:"Print the settings document"`
	Init    SettingsInitCmd    `cmd:"" help:"Write the default settings document"`
	Patch   SettingsPatchCmd   `cmd:"" help:"Merge JSON fields into one settings section"`
	History SettingsHistoryCmd `cmd:"" help:"List recorded settings writes"`
}

// SettingsShowCmd prints the current document
type SettingsShowCmd struct{}

// SettingsInitCmd writes the defaults
type SettingsInitCmd struct {
	Force bool `help:"Overwrite an existing settings file"`
}

// SettingsPatchCmd patches one section
type SettingsPatchCmd struct {
	Section string `arg:"" help:"Section name (site, announcement, homepage, ads, ...)"`
	Fields  string `arg:"" help:"JSON object of fields to merge into the section"`
}

// SettingsHistoryCmd lists revisions
type SettingsHistoryCmd struct {
	Limit int `help:"Number of revisions to list" default:"20"`
}

func (s *SettingsShowCmd) Run() error {
	cfg := config.Load()
	doc, err := settings.NewStore(cfg.SettingsFile).Read()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (s *SettingsInitCmd) Run() error {
	cfg := config.Load()
	store, hist, err := openSettings(cfg)
	if err != nil {
		return err
	}
	defer closeHistory(hist)

	if _, err := store.Read(); err == nil && !s.Force {
		return fmt.Errorf("settings file %s already exists (use --force to overwrite)", store.Path())
	}
	if err := store.WriteFull(context.Background(), settings.DefaultDocument()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "Wrote default settings to %s\n", store.Path())
	return err
}

func (s *SettingsPatchCmd) Run() error {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s.Fields), &fields); err != nil || fields == nil {
		return fmt.Errorf("fields must be a JSON object: %q", s.Fields)
	}

	cfg := config.Load()
	store, hist, err := openSettings(cfg)
	if err != nil {
		return err
	}
	defer closeHistory(hist)

	if err := store.PatchSection(context.Background(), s.Section, fields); err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return fmt.Errorf("%w (run 'movieway settings init' first)", err)
		}
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s ayarları kaydedildi\n", s.Section)
	return err
}

func (s *SettingsHistoryCmd) Run() error {
	cfg := config.Load()
	if cfg.HistoryDBFile == "" {
		return errors.New("settings history is disabled (set history.dbfile or --history-db)")
	}

	hist, err := history.Open(cfg.HistoryDBFile)
	if err != nil {
		return err
	}
	defer closeHistory(hist)

	revisions, err := hist.List(context.Background(), s.Limit)
	if err != nil {
		return err
	}
	return printRevisions(stdout, revisions)
}

func printRevisions(w io.Writer, revisions []history.Revision) error {
	if len(revisions) == 0 {
		_, err := fmt.Fprintln(w, "No settings writes recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSECTION\tWRITTEN")
	for _, rev := range revisions {
		section := rev.Section
		if section == "" {
			section = "(full)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", rev.ID, section, humanize.Time(rev.WrittenAt))
	}
	return tw.Flush()
}

func closeHistory(hist *history.SQLiteStore) {
	if hist != nil {
		_ = hist.Close()
	}
}
