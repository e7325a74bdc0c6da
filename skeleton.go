package armature

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// NoParent is the parent index of a root bone.
	NoParent = -1
	// BoneNotFound is returned by Skeleton.BoneIndex when no bone has the requested name.
	BoneNotFound = -1
)

// Skeleton is a flattened bone hierarchy. Bones are addressed by index and are always stored parents-first: a bone's parent
// index is either NoParent or lower than the bone's own index. The bone data is kept in parallel slices of equal length.
//
// Indices outside of [0, BoneCount()) are a programming error and panic. A Skeleton can be read from multiple goroutines at once,
// but SetLocalTransform must not run concurrently with anything else.
type Skeleton struct {
	transforms []Matrix4
	parents    []int
	names      []string
}

// NewSkeleton returns a new, empty Skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{
		transforms: []Matrix4{},
		parents:    []int{},
		names:      []string{},
	}
}

// AddTransform appends a new bone with the given parent bone index (or NoParent), local transform, and name.
// The parent must already be in the Skeleton; AddTransform panics otherwise.
func (skeleton *Skeleton) AddTransform(parent int, transform Matrix4, name string) {

	if parent < NoParent || parent >= len(skeleton.transforms) {
		panic(fmt.Sprintf("armature: bone %q added with parent %d, but the skeleton only has %d bones", name, parent, len(skeleton.transforms)))
	}

	skeleton.transforms = append(skeleton.transforms, transform)
	skeleton.parents = append(skeleton.parents, parent)
	skeleton.names = append(skeleton.names, name)

}

// LocalTransform returns the bone's transform relative to its parent bone.
func (skeleton *Skeleton) LocalTransform(bone int) Matrix4 {
	return skeleton.transforms[bone]
}

// SetLocalTransform overwrites the bone's transform relative to its parent bone; this is how a Skeleton is posed.
func (skeleton *Skeleton) SetLocalTransform(bone int, transform Matrix4) {
	skeleton.transforms[bone] = transform
}

// WorldTransform returns the bone's transform relative to the root of the Skeleton: the bone's local transform combined with
// each ancestor's, all the way up to (and including) the root bone. Nothing is cached; every call walks the whole chain.
func (skeleton *Skeleton) WorldTransform(bone int) Matrix4 {

	result := skeleton.transforms[bone]

	for p := skeleton.parents[bone]; p != NoParent; p = skeleton.parents[p] {
		result = result.Mult(skeleton.transforms[p])
	}

	return result

}

// WorldTransforms returns the world transforms of all bones in a single pass. Since parents always come before their
// children, each bone only needs its parent's already-computed world transform.
func (skeleton *Skeleton) WorldTransforms() []Matrix4 {

	out := make([]Matrix4, len(skeleton.transforms))

	for i, local := range skeleton.transforms {
		if p := skeleton.parents[i]; p != NoParent {
			out[i] = local.Mult(out[p])
		} else {
			out[i] = local
		}
	}

	return out

}

// InverseBindTransforms returns the inverse of each bone's world transform in the Skeleton's current pose. Taken while the
// Skeleton is in its rest pose, these move mesh vertices from model space into each bone's space for skinning.
func (skeleton *Skeleton) InverseBindTransforms() []Matrix4 {
	out := skeleton.WorldTransforms()
	for i := range out {
		out[i] = out[i].Inverted()
	}
	return out
}

// BoneLength returns the world-space distance between the bone and its parent bone, or 0 for a root bone.
func (skeleton *Skeleton) BoneLength(bone int) float32 {
	p := skeleton.parents[bone]
	if p == NoParent {
		return 0
	}
	return skeleton.WorldTransform(bone).Position().Sub(skeleton.WorldTransform(p).Position()).Magnitude()
}

// Parent returns the bone's parent bone index, or NoParent for a root bone.
func (skeleton *Skeleton) Parent(bone int) int {
	return skeleton.parents[bone]
}

// Name returns the name of the bone, which is the name of the scene node it was created from.
func (skeleton *Skeleton) Name(bone int) string {
	return skeleton.names[bone]
}

// BoneIndex returns the index of the first bone with the given name, or BoneNotFound.
func (skeleton *Skeleton) BoneIndex(name string) int {
	for i, n := range skeleton.names {
		if n == name {
			return i
		}
	}
	return BoneNotFound
}

// BoneCount returns the number of bones in the Skeleton.
func (skeleton *Skeleton) BoneCount() int {
	return len(skeleton.parents)
}

// Clone returns a deep copy of the Skeleton, which can then be posed independently.
func (skeleton *Skeleton) Clone() *Skeleton {
	return &Skeleton{
		transforms: append(make([]Matrix4, 0, len(skeleton.transforms)), skeleton.transforms...),
		parents:    append(make([]int, 0, len(skeleton.parents)), skeleton.parents...),
		names:      append(make([]string, 0, len(skeleton.names)), skeleton.names...),
	}
}

// HierarchyAsString returns a string displaying the bones of the Skeleton as a tree, alongside their indices and world positions.
func (skeleton *Skeleton) HierarchyAsString() string {

	children := make([][]int, len(skeleton.parents))
	roots := []int{}
	for i, p := range skeleton.parents {
		if p == NoParent {
			roots = append(roots, i)
		} else {
			children[p] = append(children[p], i)
		}
	}

	world := skeleton.WorldTransforms()

	var sb strings.Builder

	var printBone func(bone, level int)

	printBone = func(bone, level int) {
		sb.WriteString(strings.Repeat("    |", level))
		if level > 0 {
			sb.WriteString("-")
		}
		p := world[bone].Position()
		sb.WriteString(" [" + strconv.Itoa(bone) + "] " + skeleton.names[bone] + " : " + p.String() + "\n")
		for _, c := range children[bone] {
			printBone(c, level+1)
		}
	}

	for _, r := range roots {
		printBone(r, 0)
	}

	return sb.String()

}
