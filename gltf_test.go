package armature

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rigPath = "./testdata/rig.gltf"

func TestLoadGLTFFile(t *testing.T) {

	scene, err := LoadGLTFFile(rigPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "Stage", scene.Name)

	// Three top-level nodes, so they're wrapped in a new root.
	require.NotNil(t, scene.RootNode)
	assert.Equal(t, "Root", scene.RootNode.Name())
	assert.Len(t, scene.RootNode.Children(), 3)
	assert.NotNil(t, scene.RootNode.Get("Armature/Hip/Spine/Head"))
	assert.NotNil(t, scene.RootNode.Get("Node.6"), "unnamed nodes are named after their index")

	require.Len(t, scene.Meshes(), 1)
	mesh := scene.Meshes()[0].(*SkinnedMesh)
	assert.Equal(t, "BodyMesh", mesh.Name)
	assert.Equal(t, []string{"Hip", "Spine", "Head", "Tail"}, mesh.BoneNames())

	assert.True(t, scene.RootNode.Get("Armature/Tail").LocalTransform().Position().Equals(Vector3{Z: -1}))
	assert.True(t, scene.RootNode.Get("Node.6").LocalTransform().Equals(NewMatrix4Scale(2, 2, 2)))

}

func TestGLTFExtractSkeleton(t *testing.T) {

	data, err := os.ReadFile(rigPath)
	require.NoError(t, err)

	t.Run("AllJoints", func(t *testing.T) {

		scene, err := LoadGLTFData(data, nil)
		require.NoError(t, err)

		skeleton := ExtractSkeleton(scene)

		require.Equal(t, 6, skeleton.BoneCount())
		for i, name := range []string{"Root", "Armature", "Hip", "Spine", "Head", "Tail"} {
			assert.Equal(t, name, skeleton.Name(i))
		}
		assert.Equal(t, 1, skeleton.Parent(5))
		assert.Equal(t, BoneNotFound, skeleton.BoneIndex("Body"))
		assert.True(t, skeleton.WorldTransform(4).Position().Equals(Vector3{Y: 2.5}))

	})

	t.Run("PruneUnweightedJoints", func(t *testing.T) {

		options := DefaultGLTFLoadOptions()
		options.PruneUnweightedJoints = true
		options.RootName = "Scene"

		scene, err := LoadGLTFData(data, options)
		require.NoError(t, err)

		assert.Equal(t, []string{"Hip", "Spine", "Head"}, scene.Meshes()[0].BoneNames())

		skeleton := ExtractSkeleton(scene)
		assert.Equal(t, 5, skeleton.BoneCount())
		assert.Equal(t, 0, skeleton.BoneIndex("Scene"))
		assert.Equal(t, BoneNotFound, skeleton.BoneIndex("Tail"))

	})

	t.Run("SceneIndex", func(t *testing.T) {

		options := DefaultGLTFLoadOptions()
		options.SceneIndex = 1

		scene, err := LoadGLTFData(data, options)
		require.NoError(t, err)

		// A single top-level node becomes the root itself; no skinned node is reachable from it.
		assert.Equal(t, "Hip", scene.RootNode.Name())
		assert.Empty(t, scene.Meshes())
		assert.Equal(t, 0, ExtractSkeleton(scene).BoneCount())

		options.SceneIndex = 2
		_, err = LoadGLTFData(data, options)
		assert.ErrorIs(t, err, ErrSceneIndexOutOfRange)

	})

}

func TestLoadGLTFDataErrors(t *testing.T) {

	t.Run("NotGLTF", func(t *testing.T) {
		_, err := LoadGLTFData([]byte("this is not a glTF file"), nil)
		assert.Error(t, err)
	})

	t.Run("Cycle", func(t *testing.T) {
		data := []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "children": [1]}, {"name": "b", "children": [0]}], "scenes": [{"nodes": [0]}]}`)
		_, err := LoadGLTFData(data, nil)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

	t.Run("MissingJoint", func(t *testing.T) {
		data := []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "skin": 0}], "skins": [{"joints": [0, 3]}], "scenes": [{"nodes": [0]}]}`)
		_, err := LoadGLTFData(data, nil)
		assert.ErrorIs(t, err, ErrInvalidSkin)
	})

	t.Run("NoScenes", func(t *testing.T) {
		data := []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "children": [1]}, {"name": "b"}, {"name": "c", "skin": 0}], "skins": [{"joints": [1]}]}`)
		scene, err := LoadGLTFData(data, nil)
		require.NoError(t, err)
		assert.Equal(t, "Root", scene.RootNode.Name())
		assert.Len(t, scene.RootNode.Children(), 2)

		skeleton := ExtractSkeleton(scene)
		assert.Equal(t, 3, skeleton.BoneCount())
		assert.Equal(t, 2, skeleton.BoneIndex("b"))
	})

}

// twoSetRig is a skin with three joints; Hip is weighted through JOINTS_0 / WEIGHTS_0, Hand only through JOINTS_1 / WEIGHTS_1,
// and Tail not at all.
const twoSetRig = `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0, 3]}],
  "nodes": [
    {"name": "Hip", "children": [1, 2]},
    {"name": "Hand", "translation": [1, 0, 0]},
    {"name": "Tail"},
    {"name": "Body", "mesh": 0, "skin": 0}
  ],
  "skins": [{"joints": [0, 1, 2]}],
  "meshes": [{"primitives": [{"attributes": {"JOINTS_0": 0, "JOINTS_1": 1, "WEIGHTS_0": 2, "WEIGHTS_1": 3}}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5121, "count": 1, "type": "VEC4"},
    {"bufferView": 1, "componentType": 5121, "count": 1, "type": "VEC4"},
    {"bufferView": 2, "componentType": 5126, "count": 1, "type": "VEC4"},
    {"bufferView": 3, "componentType": 5126, "count": 1, "type": "VEC4"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 4},
    {"buffer": 0, "byteOffset": 4, "byteLength": 4},
    {"buffer": 0, "byteOffset": 8, "byteLength": 16},
    {"buffer": 0, "byteOffset": 24, "byteLength": 16}
  ],
  "buffers": [{"byteLength": 40, "uri": "data:application/octet-stream;base64,AAAAAAEAAAAAAAA/AAAAAAAAAAAAAAAAAAAAPwAAAAAAAAAAAAAAAA=="}]
}`

func TestPruneUnweightedJointsReadsEveryWeightSet(t *testing.T) {

	options := DefaultGLTFLoadOptions()
	options.PruneUnweightedJoints = true

	scene, err := LoadGLTFData([]byte(twoSetRig), options)
	require.NoError(t, err)

	require.Len(t, scene.Meshes(), 1)
	assert.Equal(t, []string{"Hip", "Hand"}, scene.Meshes()[0].BoneNames())

	skeleton := ExtractSkeleton(scene)
	assert.Equal(t, 3, skeleton.BoneCount())
	assert.Equal(t, 2, skeleton.BoneIndex("Hand"))
	assert.Equal(t, BoneNotFound, skeleton.BoneIndex("Tail"))

}

func TestLoadGLTFDataMalformed(t *testing.T) {

	t.Run("MissingWeightAccessor", func(t *testing.T) {
		data := []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "mesh": 0, "skin": 0}], "skins": [{"joints": [0]}],
			"meshes": [{"primitives": [{"attributes": {"JOINTS_0": 0, "WEIGHTS_0": 5}}]}],
			"accessors": [{"componentType": 5121, "count": 1, "type": "VEC4"}], "scenes": [{"nodes": [0]}]}`)
		options := DefaultGLTFLoadOptions()
		options.PruneUnweightedJoints = true
		_, err := LoadGLTFData(data, options)
		assert.ErrorIs(t, err, ErrInvalidSkin)
	})

	t.Run("SceneRootWithParent", func(t *testing.T) {
		data := []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "children": [1]}, {"name": "b"}], "scenes": [{"nodes": [0, 1]}]}`)
		_, err := LoadGLTFData(data, nil)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

}

func BenchmarkLoadGLTFData(b *testing.B) {
	b.StopTimer()
	data, err := os.ReadFile(rigPath)
	if err != nil {
		b.Fatal(err)
	}
	b.StartTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_, err = LoadGLTFData(data, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}
