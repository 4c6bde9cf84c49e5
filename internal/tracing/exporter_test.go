package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestFileProvider_WritesCommandSpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	provider, err := NewProvider(FileConfig(tracePath))
	require.NoError(t, err)

	ctx := context.Background()
	err = RunCommand(ctx, provider.Tracer(), "find", []string{"eng"}, func(ctx context.Context) error {
		_, child := provider.Tracer().Start(ctx, "rank")
		child.End()
		return nil
	})
	require.NoError(t, err)

	failure := errors.New("no match")
	err = RunCommand(ctx, provider.Tracer(), "resolve", []string{"zzz"}, func(context.Context) error {
		return failure
	})
	require.ErrorIs(t, err, failure)

	require.NoError(t, provider.Shutdown(ctx))

	records := readRecords(t, tracePath)
	require.Len(t, records, 3)

	rank, find, resolve := records[0], records[1], records[2]
	require.Equal(t, "rank", rank.Name)
	require.Equal(t, find.SpanID, rank.ParentSpanID)
	require.Equal(t, find.TraceID, rank.TraceID)

	require.Equal(t, "command.find", find.Name)
	require.Equal(t, "OK", find.Status)
	require.Equal(t, "find", find.Attributes[AttrCommand])

	require.Equal(t, "command.resolve", resolve.Name)
	require.Equal(t, "ERROR", resolve.Status)
	require.Equal(t, "no match", resolve.StatusMsg)
}

func TestRunCommand_NilTracer(t *testing.T) {
	called := false
	err := RunCommand(context.Background(), nil, "list", nil, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
}
