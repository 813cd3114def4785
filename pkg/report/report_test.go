package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestDiscover_NoMatch(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(dir, "**/*.xml", DiscoverOpts{IgnoreStale: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestDiscover_StaleFiltering(t *testing.T) {
	dir := t.TempDir()
	buildStart := time.Now().Add(-1 * time.Minute)
	old := buildStart.Add(-1 * time.Hour)
	fresh := time.Now()

	writeFile(t, dir, "old1.xml", "a", old)
	writeFile(t, dir, "old2.xml", "b", old)
	writeFile(t, dir, "new.xml", "c", fresh)

	files, err := Discover(dir, "*.xml", DiscoverOpts{
		BuildStart:  buildStart,
		StaleMargin: 2 * time.Second,
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.xml", files[0].Name)
	assert.Equal(t, []byte("c"), files[0].Data)
}

func TestDiscover_AllStale(t *testing.T) {
	dir := t.TempDir()
	buildStart := time.Now().Add(-1 * time.Minute)
	old := buildStart.Add(-1 * time.Hour)
	writeFile(t, dir, "leftover.xml", "x", old)

	_, err := Discover(dir, "*.xml", DiscoverOpts{BuildStart: buildStart})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllStale))
	// The message must name a stale candidate to aid diagnosis.
	assert.Contains(t, err.Error(), "leftover.xml")
}

func TestDiscover_IgnoreStale(t *testing.T) {
	dir := t.TempDir()
	buildStart := time.Now().Add(-1 * time.Minute)
	old := buildStart.Add(-1 * time.Hour)
	writeFile(t, dir, "a.xml", "a", old)
	writeFile(t, dir, "b.xml", "b", old)
	writeFile(t, dir, "c.xml", "c", time.Now())

	files, err := Discover(dir, "*.xml", DiscoverOpts{
		BuildStart:  buildStart,
		IgnoreStale: true,
	})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscover_RecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("sub", "deep", "r.xml"), "<xml/>", time.Now())
	writeFile(t, dir, "top.xml", "<xml/>", time.Now())
	writeFile(t, dir, "notes.txt", "no", time.Now())

	files, err := Discover(dir, "**/*.xml", DiscoverOpts{IgnoreStale: true})
	require.NoError(t, err)
	require.Len(t, files, 2)

	var paths []string
	for _, f := range files {
		paths = append(paths, filepath.ToSlash(f.Path))
	}
	assert.Contains(t, paths, "sub/deep/r.xml")
	assert.Contains(t, paths, "top.xml")
}

func TestThreshold_ClockSkew(t *testing.T) {
	// Host clock runs five minutes ahead of ours. The build started two
	// minutes ago by the host's reckoning, so the local threshold must be
	// about two minutes ago locally, unaffected by the five-minute skew.
	localNow := time.Now()
	hostNow := localNow.Add(5 * time.Minute)
	opts := DiscoverOpts{
		BuildStart:  hostNow.Add(-2 * time.Minute),
		HostNow:     hostNow,
		StaleMargin: time.Second,
	}
	threshold := opts.Threshold(localNow)
	want := localNow.Add(-2*time.Minute - time.Second)
	assert.WithinDuration(t, want, threshold, time.Millisecond)
}
