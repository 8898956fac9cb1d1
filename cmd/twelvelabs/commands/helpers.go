package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	defaultJSONIndent = 2
)

// collectPages fetches pages starting at params.Page until the last one and
// returns their items in order.
func collectPages[T any](
	ctx context.Context,
	params *twelvelabs.ListParams,
	fetch func(context.Context, *twelvelabs.ListParams) (*twelvelabs.ListResponse[T], error),
) ([]T, error) {
	query := twelvelabs.NewListParams()
	if params != nil {
		query = new(twelvelabs.ListParams)
		*query = *params
	}

	if query.Page <= 0 {
		query.Page = 1
	}

	var items []T

	for range constants.MaxListPages {
		page, err := fetch(ctx, query)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Data...)

		if !page.HasMore() {
			return items, nil
		}

		query.Page = page.PageInfo.Page + 1
	}

	return nil, fmt.Errorf("%w: stopped after %d pages", constants.ErrTooManyPages, constants.MaxListPages)
}

// OutputRenderer handles different output formats.
type OutputRenderer[T any] struct {
	RenderTable func(w io.Writer, data T) error
}

// Render outputs data in the format selected by --output.
func (o *OutputRenderer[T]) Render(w io.Writer, data T) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return renderJSON(w, data)
	case constants.FormatYAML:
		return renderYAML(w, data)
	default:
		return o.RenderTable(w, data)
	}
}

func renderJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	return encoder.Encode(data)
}

func renderYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	return encoder.Encode(data)
}

// renderTable writes rows under header.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	headerCells := make([]interface{}, len(header))
	for i, cell := range header {
		headerCells[i] = cell
	}

	table.Header(headerCells...)

	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}

		err := table.Append(cells...)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties writes a two-column property table.
func renderProperties(w io.Writer, properties [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, properties)
}

var titleCaser = cases.Title(language.English)

// formatStatus renders a task status for humans, e.g. "indexing" as "Indexing".
func formatStatus(status twelvelabs.TaskStatus) string {
	if status == "" {
		return NotAvailable
	}

	return titleCaser.String(strings.ReplaceAll(string(status), "_", " "))
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}

	return t.Local().Format(constants.TimeFormat)
}

func formatSeconds(seconds float64) string {
	return (time.Duration(seconds * float64(time.Second))).Round(time.Second).String()
}

func valueOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

// maskSecret hides all but the last few characters of a secret.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= constants.MaskVisibleChars {
		return strings.Repeat("*", len(secret))
	}

	return strings.Repeat("*", len(secret)-constants.MaskVisibleChars) + secret[len(secret)-constants.MaskVisibleChars:]
}

// stderrLogger implements twelvelabs.Logger for --verbose.
type stderrLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func newStderrLogger(out io.Writer) *stderrLogger {
	return &stderrLogger{out: out}
}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var line strings.Builder

	line.WriteString(time.Now().Format(time.RFC3339))
	line.WriteString(" ")
	line.WriteString(level)
	line.WriteString(" ")
	line.WriteString(msg)

	for _, key := range keys {
		fmt.Fprintf(&line, " %s=%v", key, fields[key])
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.out, line.String())
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
