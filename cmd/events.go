package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/skillmesh/internal/config"
	"github.com/papapumpkin/skillmesh/internal/telemetry"
)

var eventsCmd = &cobra.Command{
	Use:   "events [file]",
	Short: "View the JSONL session event log",
	Long: `Reads and formats the session events recorded with --telemetry.

Without a file argument, reads telemetry_path from the config.
With --session, shows only events from one session.
With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().String("session", "", "only show events from this session ID")
	eventsCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	session, _ := cmd.Flags().GetString("session")
	follow, _ := cmd.Flags().GetBool("follow")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := cfg.TelemetryPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("events: no event log; pass a file or set telemetry_path")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("events: open %s: %w", path, err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	if err := printLines(cmd.OutOrStdout(), reader, session); err != nil {
		return fmt.Errorf("events: read %s: %w", path, err)
	}
	if !follow {
		return nil
	}
	return tailFollow(cmd.OutOrStdout(), reader, path, session)
}

// printLines prints every complete line available from r.
func printLines(w io.Writer, r *bufio.Reader, session string) error {
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			printEvent(w, line, session)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// tailFollow watches the file for new data using fsnotify and prints new events.
func tailFollow(w io.Writer, r *bufio.Reader, path, session string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("events: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("events: watch %s: %w", path, err)
	}

	for event := range watcher.Events {
		if !event.Has(fsnotify.Write) {
			continue
		}
		if err := printLines(w, r, session); err != nil {
			return fmt.Errorf("events: read %s: %w", path, err)
		}
	}
	return nil
}

// printEvent decodes a JSONL line and prints a human-readable representation.
// Events from other sessions are skipped when session is set.
func printEvent(w io.Writer, line, session string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}
	if session != "" && evt.SessionID != session {
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	parts := []string{fmt.Sprintf("[%s]", ts), shortSession(evt.SessionID), evt.Kind}
	if evt.Skill != "" {
		parts = append(parts, fmt.Sprintf("skill=%s", evt.Skill))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
