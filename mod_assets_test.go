package furshell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetServer_LoadMesh(t *testing.T) {
	server := newTestAssetServer()

	vertices := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
	mesh := server.LoadMesh(vertices, []uint32{0, 1, 2})

	asset, ok := server.meshes[mesh.assetId]
	require.True(t, ok)
	assert.Len(t, asset.vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, asset.indices)
	assert.Equal(t, uint(0), asset.version)
}

func TestAssetServer_LoadMaterialSource(t *testing.T) {
	server := newTestAssetServer()

	material := server.LoadMaterialSource("fur.wgsl", furShaderSource)

	asset, ok := server.Material(material.assetId)
	require.True(t, ok)
	assert.Equal(t, "fur.wgsl", asset.shaderName)
	assert.Equal(t, furShaderSource, asset.shaderListing)
}

func TestAssetServer_LoadMaterialFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("// v1"), 0644))

	server := newTestAssetServer()
	material := server.LoadMaterial(path)

	asset, ok := server.Material(material.assetId)
	require.True(t, ok)
	assert.Equal(t, "// v1", asset.shaderListing)
}

func TestAssetServer_ReloadBumpsVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("// v1"), 0644))

	server := newTestAssetServer()
	material := server.LoadMaterial(path)

	require.NoError(t, os.WriteFile(path, []byte("// v2"), 0644))
	server.reloadMaterial(path)

	asset, _ := server.Material(material.assetId)
	assert.Equal(t, uint(1), asset.version)
	assert.Equal(t, "// v2", asset.shaderListing)
	assert.Equal(t, uint(1), server.MaterialVersion(material.assetId))
}

func TestAssetServer_ReloadMissingFileKeepsListing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("// v1"), 0644))

	server := newTestAssetServer()
	material := server.LoadMaterial(path)

	require.NoError(t, os.Remove(path))
	server.reloadMaterial(path)

	asset, _ := server.Material(material.assetId)
	assert.Equal(t, uint(0), asset.version)
	assert.Equal(t, "// v1", asset.shaderListing)
}

func TestMakeAssetId_Unique(t *testing.T) {
	seen := map[AssetId]bool{}
	for i := 0; i < 100; i++ {
		id := makeAssetId()
		require.False(t, seen[id], "duplicate asset id %s", id)
		seen[id] = true
	}
}
