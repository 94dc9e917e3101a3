package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/document"
)

func TestClampInterval(t *testing.T) {
	require.Equal(t, 10*time.Second, ClampInterval(0), "non-positive falls back to default")
	require.Equal(t, 10*time.Second, ClampInterval(-3))
	require.Equal(t, 5*time.Second, ClampInterval(2), "below minimum clamps up")
	require.Equal(t, 5*time.Second, ClampInterval(5))
	require.Equal(t, 60*time.Second, ClampInterval(60))
	require.Equal(t, 300*time.Second, ClampInterval(301), "above maximum clamps down")
	require.Equal(t, 300*time.Second, ClampInterval(99999))
}

func TestTick_CleanDocumentSkips(t *testing.T) {
	d := document.New()
	res := Tick(d, t.TempDir(), time.Now())
	require.Equal(t, Skipped, res.Outcome)
	require.Empty(t, res.Path)
}

func TestTick_BoundDirtySavesToOwnPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	d := document.New()
	d.SetText("v1")
	require.NoError(t, d.SaveAs(path))
	d.SetText("v2")

	res := Tick(d, t.TempDir(), time.Now())
	require.Equal(t, Saved, res.Outcome)
	require.Equal(t, path, res.Path, "bound document saves only to its own path")
	require.False(t, d.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "v2", string(data))
}

func TestTick_UnboundDirtySnapshotsToScratch(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), "scratch")
	d := document.New()
	d.SetText("draft")

	res := Tick(d, scratch, time.Unix(1700000000, 0))
	require.Equal(t, Snapshotted, res.Outcome)
	require.Equal(t, filepath.Join(scratch, "untitled_1700000000.txt"), res.Path)
	require.True(t, d.Dirty(), "a snapshot is not a save; the document stays dirty")

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, "draft", string(data))
}

func TestTick_UnboundNeverInventsARealDestination(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), "scratch")
	d := document.New()
	d.SetText("draft")

	res := Tick(d, scratch, time.Now())
	require.Equal(t, Snapshotted, res.Outcome)
	rel, err := filepath.Rel(scratch, res.Path)
	require.NoError(t, err)
	require.NotContains(t, rel, "..", "snapshot stays inside the scratch dir")
}

func TestTick_FailureIsReportedNotFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}

	base := t.TempDir()
	require.NoError(t, os.Chmod(base, 0o500))
	t.Cleanup(func() { _ = os.Chmod(base, 0o700) })

	d := document.New()
	d.SetText("draft")

	res := Tick(d, filepath.Join(base, "scratch"), time.Now())
	require.Equal(t, Failed, res.Outcome)
	require.Error(t, res.Err)
	require.True(t, d.Dirty())
}
