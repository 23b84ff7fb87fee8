package webroot

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveBootstrap(t *testing.T) {
	res := Resolve(t.TempDir(), "/")
	assert.Equal(t, Bootstrap, res.Kind)
	assert.Contains(t, BootstrapPage, ManifestName)
}

func TestResolveFound(t *testing.T) {
	root := t.TempDir()
	manifest := "#EXTM3U\n#EXT-X-VERSION:3\n"
	writeFile(t, root, "out.m3u8", manifest)
	writeFile(t, root, "seg.mp4", "\x00\x00\x00\x18ftypmp42")
	require.NoError(t, os.Mkdir(filepath.Join(root, "hls"), 0o755))
	writeFile(t, filepath.Join(root, "hls"), "fileSeq0.mp4", "segment")

	cases := []struct {
		target, wantExt, wantData string
	}{
		{"/out.m3u8", "m3u8", manifest},
		{"/seg.mp4", "mp4", "\x00\x00\x00\x18ftypmp42"},
		{"/hls/fileSeq0.mp4", "mp4", "segment"},
	}
	for _, c := range cases {
		res := Resolve(root, c.target)
		require.Equal(t, Found, res.Kind, c.target)
		assert.Equal(t, c.wantExt, res.Ext, c.target)
		assert.Equal(t, []byte(c.wantData), res.Data, c.target)
		assert.NoError(t, res.Err)
	}
}

func TestResolveNotFound(t *testing.T) {
	res := Resolve(t.TempDir(), "/does-not-exist")
	assert.Equal(t, NotFound, res.Kind)
	assert.Nil(t, res.Data)

	root := t.TempDir()
	writeFile(t, root, "out.m3u8", "#EXTM3U\n")
	res = Resolve(root, "/out.m3u8/seg.mp4")
	assert.Equal(t, NotFound, res.Kind)
	assert.NoError(t, res.Err)
}

func TestResolveReadError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "segments"), 0o755))

	// A directory exists but cannot be read as a file.
	res := Resolve(root, "/segments")
	assert.Equal(t, ReadError, res.Kind)
	assert.Error(t, res.Err)

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		return
	}
	writeFile(t, root, "locked.m3u8", "#EXTM3U\n")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.m3u8"), 0o000))
	res = Resolve(root, "/locked.m3u8")
	assert.Equal(t, ReadError, res.Kind)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "m3u8", Extension("/tmp/out.m3u8"))
	assert.Equal(t, "mp4", Extension("a.b.mp4"))
	assert.Equal(t, "", Extension("/tmp/README"))
	assert.Equal(t, "", Extension("/tmp/dir.d/README"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
