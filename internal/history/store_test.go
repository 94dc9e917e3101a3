package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesDirectoryAndSchema(t *testing.T) {
	s := openTestStore(t)

	recent, err := s.ListRecent(10)
	require.NoError(t, err)
	require.Empty(t, recent)

	snaps, err := s.ListSnapshots(10)
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestTouchRecent_OrdersByLastOpened(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.TouchRecent("/tmp/a.txt", base))
	require.NoError(t, s.TouchRecent("/tmp/b.txt", base.Add(time.Minute)))
	require.NoError(t, s.TouchRecent("/tmp/c.txt", base.Add(2*time.Minute)))

	recent, err := s.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "/tmp/c.txt", recent[0].Path)
	require.Equal(t, "/tmp/b.txt", recent[1].Path)
	require.Equal(t, "/tmp/a.txt", recent[2].Path)
}

func TestTouchRecent_BumpsExistingEntry(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.TouchRecent("/tmp/a.txt", base))
	require.NoError(t, s.TouchRecent("/tmp/a.txt", base.Add(time.Hour)))

	recent, err := s.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, 2, recent[0].OpenCount)
}

func TestListRecent_Limit(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, p := range []string{"/a", "/b", "/c", "/d"} {
		require.NoError(t, s.TouchRecent(p, base.Add(time.Duration(i)*time.Minute)))
	}

	recent, err := s.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
}

func TestRecordSnapshot_AndList(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	id1, err := s.RecordSnapshot("/tmp/scratch/untitled_1.txt", "autosave", now)
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := s.RecordSnapshot("/tmp/scratch/untitled_2.txt", "autosave", now.Add(time.Minute))
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	snaps, err := s.ListSnapshots(10)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, "/tmp/scratch/untitled_2.txt", snaps[0].Path, "newest first")
	require.Equal(t, "autosave", snaps[0].Source)
}
