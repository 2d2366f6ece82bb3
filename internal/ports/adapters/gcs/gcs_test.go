package gcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "Jane_Doe/g1/stats/assists.mp4", objectName("", "/Jane_Doe/g1/stats/assists.mp4"))
	assert.Equal(t, "clips/Jane_Doe/g1/stats/assists.mp4", objectName("clips", "Jane_Doe/g1/stats/assists.mp4"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/hoops/Jane_Doe/vs%20state/stats/assists.mp4",
		PublicURL("hoops", "Jane_Doe/vs state/stats/assists.mp4"))
}

func TestContentType(t *testing.T) {
	dir := t.TempDir()

	mp4 := filepath.Join(dir, "clip.bin")
	// Minimal ISO BMFF header: size, "ftyp", major brand "isom".
	header := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00}
	require.NoError(t, os.WriteFile(mp4, header, 0o644))
	assert.Equal(t, "video/mp4", contentType(mp4))

	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"run_id":"x"}`), 0o644))
	assert.Equal(t, "application/json", contentType(manifest))

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("plain"), 0o644))
	assert.Equal(t, "application/octet-stream", contentType(other))
}
