package clean

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/tabclean/internal/frame"
)

// table builds a Table from CSV-ish text: first line header, comma separated.
func table(t *testing.T, text string) *frame.Table {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	header := strings.Split(lines[0], ",")
	rows := make([][]string, 0, len(lines)-1)
	for _, l := range lines[1:] {
		rows = append(rows, strings.Split(l, ","))
	}
	tbl, err := frame.FromRecords(header, rows, frame.Options{})
	require.NoError(t, err)
	return tbl
}

func capture() (*Cleaner, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))), &buf
}
