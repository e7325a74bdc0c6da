// Package armature turns a scene hierarchy into an animation skeleton: a flat, parent-first array of bones holding
// only the nodes that deform skinned meshes, plus the ancestors they need to compute their world transforms.
//
// Scenes can be built by hand out of Nodes, or loaded from glTF files with LoadGLTFFile and LoadGLTFData.
package armature
