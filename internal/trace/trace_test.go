package trace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "highlight")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")
	p, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: path})
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "save")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
}
