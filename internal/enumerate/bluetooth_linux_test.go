package enumerate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInfo(t *testing.T, root, adapter, dev, content string) {
	t.Helper()
	dir := filepath.Join(root, adapter, dev)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info"), []byte(content), 0o644))
}

func TestPairedFromBluez(t *testing.T) {
	root := t.TempDir()
	writeInfo(t, root, "DC:A6:32:01:02:03", "00:0B:0D:87:5A:33",
		"[General]\nName=FlyLogger GPS\n")
	writeInfo(t, root, "DC:A6:32:01:02:03", "C8:3A:35:00:11:22",
		"[General]\nName=BLE Vario\nAddressType=static\n")
	// cache directory alongside the bondings must be ignored
	require.NoError(t, os.MkdirAll(filepath.Join(root, "DC:A6:32:01:02:03", "cache"), 0o755))

	devs := pairedFromBluez(root)
	require.Len(t, devs, 2)

	byAddr := map[string]BluetoothDevice{}
	for _, d := range devs {
		byAddr[d.Address] = d
	}
	classic := byAddr["00:0B:0D:87:5A:33"]
	assert.Equal(t, "FlyLogger GPS", classic.Name)
	assert.False(t, classic.BLE)

	ble := byAddr["C8:3A:35:00:11:22"]
	assert.Equal(t, "BLE Vario", ble.Name)
	assert.True(t, ble.BLE)
}

func TestPairedFromBluezMissingRoot(t *testing.T) {
	assert.Nil(t, pairedFromBluez(filepath.Join(t.TempDir(), "nope")))
}

func TestPairedFromBluezMissingInfoFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "DC:A6:32:01:02:03", "00:0B:0D:87:5A:33")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	devs := pairedFromBluez(root)
	require.Len(t, devs, 1)
	assert.Equal(t, "00:0B:0D:87:5A:33", devs[0].Address)
	assert.Empty(t, devs[0].Name)
}

func TestLooksLikeAddress(t *testing.T) {
	assert.True(t, looksLikeAddress("DC:A6:32:01:02:03"))
	assert.False(t, looksLikeAddress("cache"))
	assert.False(t, looksLikeAddress("DC:A6:32:01:02"))
	assert.False(t, looksLikeAddress("DC-A6-32-01-02-03"))
}
