package furshell

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type AssetId string

// Vertex is the mesh vertex layout shared by the procedural generators and
// the fur pipeline. Field order matters: it defines the GPU buffer layout.
type Vertex struct {
	Position mgl32.Vec3 `gpu:"layout" location:"0" format:"float3"`
	Normal   mgl32.Vec3 `gpu:"layout" location:"1" format:"float3"`
	TexCoord mgl32.Vec2 `gpu:"layout" location:"2" format:"float2"`
}

type AssetServer struct {
	mu        sync.Mutex
	meshes    map[AssetId]MeshAsset
	materials map[AssetId]MaterialAsset

	watcher *fsnotify.Watcher
	logger  Logger
}

type AssetServerModule struct{}

type Mesh struct {
	assetId AssetId
}

type Material struct {
	assetId AssetId
}

type MeshAsset struct {
	version  uint
	vertices []Vertex
	indices  []uint32
}

type MaterialAsset struct {
	version       uint
	shaderName    string
	shaderListing string
}

func (server *AssetServer) LoadMesh(vertices []Vertex, indices []uint32) Mesh {
	id := makeAssetId()

	server.mu.Lock()
	server.meshes[id] = MeshAsset{
		version:  0,
		vertices: vertices,
		indices:  indices,
	}
	server.mu.Unlock()

	return Mesh{
		assetId: id,
	}
}

// LoadMaterialSource registers an in-memory shader listing, e.g. one of the
// embedded defaults.
func (server *AssetServer) LoadMaterialSource(name string, listing string) Material {
	id := makeAssetId()

	server.mu.Lock()
	server.materials[id] = MaterialAsset{
		version:       0,
		shaderName:    name,
		shaderListing: listing,
	}
	server.mu.Unlock()

	return Material{
		assetId: id,
	}
}

// LoadMaterial reads a shader from disk and watches it: edits bump the
// material version, which the render modules pick up to rebuild pipelines.
func (server *AssetServer) LoadMaterial(filename string) Material {
	shaderData, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	id := makeAssetId()

	server.mu.Lock()
	server.materials[id] = MaterialAsset{
		version:       0,
		shaderName:    filename,
		shaderListing: string(shaderData),
	}
	server.mu.Unlock()

	if server.watcher != nil {
		if err := server.watcher.Add(filepath.Dir(filename)); err != nil {
			server.logger.Warnf("asset watch %s: %v", filename, err)
		}
	}

	return Material{
		assetId: id,
	}
}

func (server *AssetServer) Material(id AssetId) (MaterialAsset, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()
	m, ok := server.materials[id]
	return m, ok
}

func (server *AssetServer) MaterialVersion(id AssetId) uint {
	server.mu.Lock()
	defer server.mu.Unlock()
	return server.materials[id].version
}

func (server *AssetServer) reloadMaterial(filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		// Editors often replace files non-atomically; keep the old listing
		// until the next write succeeds.
		server.logger.Warnf("asset reload %s: %v", filename, err)
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for id, mat := range server.materials {
		if mat.shaderName != filename {
			continue
		}
		mat.version += 1
		mat.shaderListing = string(data)
		server.materials[id] = mat
		server.logger.Infof("reloaded shader %s (v%d)", filename, mat.version)
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("asset watcher unavailable: %v", err)
		watcher = nil
	}

	server := &AssetServer{
		meshes:    make(map[AssetId]MeshAsset),
		materials: make(map[AssetId]MaterialAsset),
		watcher:   watcher,
		logger:    logger,
	}
	app.addResources(server)

	if watcher != nil {
		go func() {
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						server.reloadMaterial(event.Name)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					logger.Warnf("asset watcher: %v", err)
				}
			}
		}()
	}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
