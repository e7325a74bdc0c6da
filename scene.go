package armature

// SceneNode is a read-only view of a node in a scene hierarchy, as supplied by whatever loaded the scene.
type SceneNode interface {
	// Name returns the node's name. Bone-influence lists refer to nodes by this name.
	Name() string
	// LocalTransform returns the node's transform relative to its parent.
	LocalTransform() Matrix4
	// Children returns the node's children, in order.
	Children() []SceneNode
}

// Mesh is a read-only view of a mesh in a scene; only the names of the nodes that influence it matter to armature.
type Mesh interface {
	// BoneNames returns the names of the nodes that deform the mesh, in order.
	BoneNames() []string
}

// Scene is the read-only scene description a SkeletonFactory extracts a Skeleton from.
type Scene interface {
	// Root returns the top node of the scene's hierarchy, or nil if the scene has no nodes.
	Root() SceneNode
	// Meshes returns the scene's meshes.
	Meshes() []Mesh
}

// SkinnedMesh is a simple Mesh implementation that just lists its bones' names.
type SkinnedMesh struct {
	Name  string
	Bones []string
}

// NewSkinnedMesh returns a new SkinnedMesh influenced by the named bones.
func NewSkinnedMesh(name string, bones ...string) *SkinnedMesh {
	return &SkinnedMesh{Name: name, Bones: bones}
}

// BoneNames returns the names of the bones influencing the SkinnedMesh.
func (mesh *SkinnedMesh) BoneNames() []string {
	return mesh.Bones
}

// SceneGraph is an in-memory Scene, composed of a tree of Nodes and a list of Meshes.
type SceneGraph struct {
	Name     string
	RootNode *Node
	MeshList []Mesh
}

// NewSceneGraph creates a new SceneGraph with an empty root Node named after the scene.
func NewSceneGraph(name string) *SceneGraph {
	return &SceneGraph{
		Name:     name,
		RootNode: NewNode(name),
		MeshList: []Mesh{},
	}
}

// Root returns the SceneGraph's root Node, or nil if it has none.
func (scene *SceneGraph) Root() SceneNode {
	// Avoid handing back a typed nil inside a non-nil interface.
	if scene.RootNode == nil {
		return nil
	}
	return scene.RootNode
}

// Meshes returns the Meshes in the SceneGraph.
func (scene *SceneGraph) Meshes() []Mesh {
	return scene.MeshList
}

// AddMeshes adds the provided Meshes to the SceneGraph.
func (scene *SceneGraph) AddMeshes(meshes ...Mesh) {
	scene.MeshList = append(scene.MeshList, meshes...)
}
