package armature

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/solarlune/armature/log"
)

var (
	// ErrSceneIndexOutOfRange is returned when GLTFLoadOptions.SceneIndex doesn't refer to a scene in the document.
	ErrSceneIndexOutOfRange = errors.New("armature: glTF scene index out of range")
	// ErrInvalidHierarchy is returned when a glTF document's node children don't form a tree.
	ErrInvalidHierarchy = errors.New("armature: glTF node hierarchy is not a tree")
	// ErrInvalidSkin is returned when a skin or a skinned node refers to something that isn't in the document.
	ErrInvalidSkin = errors.New("armature: invalid glTF skin")
)

// GLTFLoadOptions alters how a glTF document is turned into a SceneGraph.
type GLTFLoadOptions struct {
	// SceneIndex is the index of the glTF scene to load. If it's below 0, the document's default scene is loaded
	// (or the first scene, if the document doesn't name a default one).
	SceneIndex int
	// RootName is the name of the root Node created when the scene has more than one top-level node (or none at all).
	// A scene with a single top-level node uses that node as its root.
	RootName string
	// If PruneUnweightedJoints is true, a skinned mesh only lists the joints that actually carry weight on at least one of its
	// vertices, rather than every joint in its skin. Meshes without JOINTS_0 / WEIGHTS_0 data keep all of their joints.
	PruneUnweightedJoints bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		SceneIndex: -1,
		RootName:   "Root",
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given (along with any external buffers it references),
// using a provided GLTFLoadOptions struct to alter how the file is loaded. Passing nil for loadOptions will load the file
// using default load options.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*SceneGraph, error) {

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("armature: opening %s: %w", path, err)
	}

	return NewSceneGraphFromGLTF(doc, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given. Buffers must be embedded (in a .glb or as data URIs).
// Passing nil for loadOptions will load the data using default load options.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*SceneGraph, error) {

	doc := &gltf.Document{}

	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("armature: decoding glTF data: %w", err)
	}

	return NewSceneGraphFromGLTF(doc, loadOptions)

}

// NewSceneGraphFromGLTF builds a SceneGraph out of one scene of a decoded glTF document. Every node reachable from the scene
// becomes a Node; every reachable node with a skin becomes a SkinnedMesh listing its skin's joints by name.
func NewSceneGraphFromGLTF(doc *gltf.Document, loadOptions *GLTFLoadOptions) (*SceneGraph, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	rootIndices, sceneName, err := gltfSceneRoots(doc, loadOptions.SceneIndex)
	if err != nil {
		return nil, err
	}

	names := gltfNodeNames(doc)

	nodes := make([]*Node, len(doc.Nodes))
	for i, gltfNode := range doc.Nodes {
		nodes[i] = NewNode(names[i])
		nodes[i].SetLocalTransform(gltfNodeTransform(gltfNode))
	}

	for i, gltfNode := range doc.Nodes {
		for _, c := range gltfNode.Children {
			childIndex := int(c)
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, fmt.Errorf("%w: node %d has missing child %d", ErrInvalidHierarchy, i, childIndex)
			}
			child := nodes[childIndex]
			if child.parent != nil {
				return nil, fmt.Errorf("%w: node %q has more than one parent", ErrInvalidHierarchy, child.name)
			}
			for p := nodes[i]; p != nil; p = p.parent {
				if p == child {
					return nil, fmt.Errorf("%w: node %q is its own ancestor", ErrInvalidHierarchy, child.name)
				}
			}
			nodes[i].AddChildren(child)
		}
	}

	scene := &SceneGraph{Name: sceneName, MeshList: []Mesh{}}

	if len(rootIndices) == 1 {
		scene.RootNode = nodes[rootIndices[0]]
	} else {
		scene.RootNode = NewNode(loadOptions.RootName)
		for _, r := range rootIndices {
			if nodes[r].parent != nil {
				return nil, fmt.Errorf("%w: scene root %q is also the child of %q", ErrInvalidHierarchy, nodes[r].name, nodes[r].parent.name)
			}
			scene.RootNode.AddChildren(nodes[r])
		}
	}

	reachable := make([]bool, len(nodes))
	for _, r := range rootIndices {
		markGLTFSubtree(doc, r, reachable)
	}

	for i, gltfNode := range doc.Nodes {

		if !reachable[i] || gltfNode.Skin == nil {
			continue
		}

		mesh, err := gltfSkinnedMesh(doc, i, names, loadOptions.PruneUnweightedJoints)
		if err != nil {
			return nil, err
		}
		scene.AddMeshes(mesh)

	}

	return scene, nil

}

func gltfSceneRoots(doc *gltf.Document, sceneIndex int) ([]int, string, error) {

	if len(doc.Scenes) == 0 {

		if sceneIndex > 0 {
			return nil, "", fmt.Errorf("%w: scene %d requested, but the document has no scenes", ErrSceneIndexOutOfRange, sceneIndex)
		}

		// No scenes at all; every parentless node is a top-level node.
		hasParent := make([]bool, len(doc.Nodes))
		for _, n := range doc.Nodes {
			for _, c := range n.Children {
				if int(c) >= 0 && int(c) < len(hasParent) {
					hasParent[int(c)] = true
				}
			}
		}
		roots := []int{}
		for i, p := range hasParent {
			if !p {
				roots = append(roots, i)
			}
		}
		return roots, "", nil

	}

	if sceneIndex < 0 {
		sceneIndex = 0
		if doc.Scene != nil {
			sceneIndex = int(*doc.Scene)
		}
	}

	if sceneIndex >= len(doc.Scenes) {
		return nil, "", fmt.Errorf("%w: scene %d requested, but the document has %d", ErrSceneIndexOutOfRange, sceneIndex, len(doc.Scenes))
	}

	gltfScene := doc.Scenes[sceneIndex]

	roots := make([]int, 0, len(gltfScene.Nodes))
	for _, n := range gltfScene.Nodes {
		if int(n) < 0 || int(n) >= len(doc.Nodes) {
			return nil, "", fmt.Errorf("%w: scene %d refers to missing node %d", ErrInvalidHierarchy, sceneIndex, int(n))
		}
		roots = append(roots, int(n))
	}

	return roots, gltfScene.Name, nil

}

// gltfNodeNames returns the names of the document's nodes, naming unnamed nodes after their index.
func gltfNodeNames(doc *gltf.Document) []string {

	names := make([]string, len(doc.Nodes))
	seen := map[string]bool{}

	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = "Node." + strconv.Itoa(i)
		}
		if seen[name] {
			log.Warningf("armature: glTF node name %q is used more than once; bone lookups by name will find the first", name)
		}
		seen[name] = true
		names[i] = name
	}

	return names

}

// gltfNodeTransform returns the node's local transform, either from its matrix or from its translation, rotation, and scale.
func gltfNodeTransform(node *gltf.Node) Matrix4 {

	values := [16]float32{}
	for i, v := range node.Matrix {
		values[i] = float32(v)
	}

	matrix := NewMatrix4FromColumnMajor(values)

	if !matrix.IsZero() && !matrix.IsIdentity() {
		return matrix
	}

	scale := Vector3{X: float32(node.Scale[0]), Y: float32(node.Scale[1]), Z: float32(node.Scale[2])}
	if scale.IsZero() {
		scale = Vector3{X: 1, Y: 1, Z: 1}
	}

	rotation := NewQuaternion(float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2]), float32(node.Rotation[3]))

	transform := NewMatrix4Scale(scale.X, scale.Y, scale.Z)
	transform = transform.Mult(rotation.ToMatrix4())
	transform = transform.Mult(NewMatrix4Translate(float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])))

	return transform

}

func markGLTFSubtree(doc *gltf.Document, index int, reachable []bool) {
	stack := []int{index}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[i] {
			continue
		}
		reachable[i] = true
		for _, c := range doc.Nodes[i].Children {
			stack = append(stack, int(c))
		}
	}
}

// gltfSkinnedMesh creates the SkinnedMesh for the skinned node at nodeIndex.
func gltfSkinnedMesh(doc *gltf.Document, nodeIndex int, names []string, prune bool) (*SkinnedMesh, error) {

	gltfNode := doc.Nodes[nodeIndex]

	skinIndex := int(*gltfNode.Skin)
	if skinIndex < 0 || skinIndex >= len(doc.Skins) {
		return nil, fmt.Errorf("%w: node %q uses missing skin %d", ErrInvalidSkin, names[nodeIndex], skinIndex)
	}
	skin := doc.Skins[skinIndex]

	meshName := names[nodeIndex]
	var gltfMesh *gltf.Mesh
	if gltfNode.Mesh != nil && int(*gltfNode.Mesh) >= 0 && int(*gltfNode.Mesh) < len(doc.Meshes) {
		gltfMesh = doc.Meshes[int(*gltfNode.Mesh)]
		if gltfMesh.Name != "" {
			meshName = gltfMesh.Name
		}
	}

	var weighted []bool
	if prune && gltfMesh != nil {
		var err error
		weighted, err = gltfWeightedJoints(doc, gltfMesh, len(skin.Joints))
		if err != nil {
			return nil, fmt.Errorf("armature: reading joint weights of mesh %q: %w", meshName, err)
		}
	}

	mesh := NewSkinnedMesh(meshName)

	for jointIndex, j := range skin.Joints {
		if int(j) < 0 || int(j) >= len(names) {
			return nil, fmt.Errorf("%w: skin %d refers to missing joint node %d", ErrInvalidSkin, skinIndex, int(j))
		}
		if weighted != nil && !weighted[jointIndex] {
			continue
		}
		mesh.Bones = append(mesh.Bones, names[int(j)])
	}

	log.Debugf("armature: glTF mesh %q is influenced by %d of %d joints", meshName, len(mesh.Bones), len(skin.Joints))

	return mesh, nil

}

// gltfWeightedJoints reports, per skin joint, whether any vertex of the mesh gives it a non-zero weight through any
// JOINTS_n / WEIGHTS_n attribute pair. It returns nil if the mesh has no joint / weight attributes to go by.
func gltfWeightedJoints(doc *gltf.Document, mesh *gltf.Mesh, jointCount int) ([]bool, error) {

	var weighted []bool

	for _, prim := range mesh.Primitives {

		for set := 0; ; set++ {

			jointAccessor, hasJoints := prim.Attributes[fmt.Sprintf("JOINTS_%d", set)]
			weightAccessor, hasWeights := prim.Attributes[fmt.Sprintf("WEIGHTS_%d", set)]

			if !hasJoints || !hasWeights {
				break
			}

			if int(jointAccessor) < 0 || int(jointAccessor) >= len(doc.Accessors) {
				return nil, fmt.Errorf("%w: JOINTS_%d uses missing accessor %d", ErrInvalidSkin, set, int(jointAccessor))
			}
			if int(weightAccessor) < 0 || int(weightAccessor) >= len(doc.Accessors) {
				return nil, fmt.Errorf("%w: WEIGHTS_%d uses missing accessor %d", ErrInvalidSkin, set, int(weightAccessor))
			}

			joints, err := modeler.ReadJoints(doc, doc.Accessors[jointAccessor], nil)
			if err != nil {
				return nil, err
			}

			weights, err := modeler.ReadWeights(doc, doc.Accessors[weightAccessor], nil)
			if err != nil {
				return nil, err
			}

			if weighted == nil {
				weighted = make([]bool, jointCount)
			}

			for v := range joints {
				if v >= len(weights) {
					break
				}
				for k := 0; k < 4; k++ {
					if weights[v][k] == 0 {
						continue
					}
					j := int(joints[v][k])
					if j >= jointCount {
						return nil, fmt.Errorf("%w: vertex %d uses joint %d, but the skin has %d", ErrInvalidSkin, v, j, jointCount)
					}
					weighted[j] = true
				}
			}

		}

	}

	return weighted, nil

}
