package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/config"
	"github.com/papapumpkin/parallax/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "View JSONL theme telemetry events",
	Long: `Reads and formats the JSONL telemetry file written by run or simulate.

Without --file, reads telemetry_path from the configuration.
With --follow (-f), watches the file for new events (like tail -f).`,
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().String("file", "", "telemetry file (default: telemetry_path from config)")
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	follow, _ := cmd.Flags().GetBool("follow")

	path, err := resolveTelemetryPath(file)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	// Print all existing events.
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		printEvent(cmd.OutOrStdout(), line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}

	return tailFollow(cmd.Context(), cmd.OutOrStdout(), f, path)
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx is cancelled.
func tailFollow(ctx context.Context, w io.Writer, f *os.File, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	reader := bufio.NewReader(f)
	var partial string
	for {
		var event fsnotify.Event
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("telemetry: watch %s: %w", path, err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			event = ev
		}
		if event.Op&fsnotify.Write == 0 {
			continue
		}
		// Read all complete lines; an unterminated tail waits for the next write.
		for {
			chunk, err := reader.ReadString('\n')
			if err != nil {
				partial += chunk
				break
			}
			line := strings.TrimSpace(partial + chunk)
			partial = ""
			if line != "" {
				printEvent(w, line)
			}
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(w io.Writer, line string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", ts))
	parts = append(parts, string(evt.Kind))

	switch {
	case evt.From != "" && evt.To != "":
		parts = append(parts, fmt.Sprintf("%s→%s", evt.From, evt.To))
	case evt.To != "":
		parts = append(parts, fmt.Sprintf("theme=%s", evt.To))
	case evt.From != "":
		parts = append(parts, fmt.Sprintf("theme=%s", evt.From))
	}
	if len(evt.Data) > 0 {
		parts = append(parts, formatDataMap(evt.Data))
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
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

// resolveTelemetryPath returns file when set, otherwise the configured
// telemetry_path.
func resolveTelemetryPath(file string) (string, error) {
	path := file
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.TelemetryPath
	}
	if path == "" {
		return "", fmt.Errorf("telemetry: no file configured: set telemetry_path or pass --file")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("telemetry: %w", err)
	}
	return path, nil
}
