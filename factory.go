package armature

import (
	"fmt"

	"github.com/solarlune/armature/log"
)

// skeletonNode is one scene node in the flattened hierarchy a SkeletonFactory builds while extracting a Skeleton.
type skeletonNode struct {
	node   SceneNode
	parent int // index of the parent in the flattened hierarchy, or NoParent
	name   string
	used   bool
}

// SkeletonFactory extracts Skeletons from Scenes. It holds no state, so a single SkeletonFactory (or the zero value)
// can be used from any number of goroutines at once.
type SkeletonFactory struct{}

// NewSkeletonFactory returns a new SkeletonFactory.
func NewSkeletonFactory() SkeletonFactory {
	return SkeletonFactory{}
}

// ExtractSkeleton builds a Skeleton from the provided Scene using a zero-value SkeletonFactory.
func ExtractSkeleton(scene Scene) *Skeleton {
	return SkeletonFactory{}.ExtractSkeleton(scene)
}

// ExtractSkeleton builds a Skeleton out of the nodes in the Scene that are animated (referenced by a mesh's bone list) and all of
// their ancestors. Other nodes are left out. Bones are ordered depth-first, so every bone's parent comes before it.
// Passing a nil Scene panics; a Scene without a root or without animated nodes yields an empty Skeleton.
func (factory SkeletonFactory) ExtractSkeleton(scene Scene) *Skeleton {

	if scene == nil {
		panic("armature: ExtractSkeleton called with a nil Scene")
	}

	animated := factory.findAnimatedNodes(scene)

	hierarchy := factory.flattenHierarchy(scene.Root(), animated)

	factory.markParents(hierarchy)

	skeleton := factory.filterHierarchy(hierarchy)

	log.Debugf("armature: extracted %d bones from %d scene nodes (%d animated)", skeleton.BoneCount(), len(hierarchy), len(animated))

	return skeleton

}

// findAnimatedNodes returns the set of names of every node that influences some mesh.
func (factory SkeletonFactory) findAnimatedNodes(scene Scene) map[string]struct{} {

	animated := map[string]struct{}{}

	for _, mesh := range scene.Meshes() {
		if mesh == nil {
			panic("armature: Scene contains a nil Mesh")
		}
		for _, name := range mesh.BoneNames() {
			animated[name] = struct{}{}
		}
	}

	return animated

}

type flattenItem struct {
	node   SceneNode
	parent int
}

// flattenHierarchy walks the tree under root depth-first, pre-order, returning every node with the index of its parent
// in the returned slice. A work stack is used instead of recursion; children are pushed in reverse so they're visited in order.
func (factory SkeletonFactory) flattenHierarchy(root SceneNode, animated map[string]struct{}) []skeletonNode {

	hierarchy := []skeletonNode{}

	if root == nil {
		return hierarchy
	}

	stack := []flattenItem{{node: root, parent: NoParent}}

	for len(stack) > 0 {

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := item.node.Name()
		_, used := animated[name]

		hierarchy = append(hierarchy, skeletonNode{
			node:   item.node,
			parent: item.parent,
			name:   name,
			used:   used,
		})

		index := len(hierarchy) - 1

		children := item.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] == nil {
				continue
			}
			stack = append(stack, flattenItem{node: children[i], parent: index})
		}

	}

	return hierarchy

}

// markParents marks every ancestor of a used node as used. The climb stops at the first ancestor that's already used; since
// nodes are visited parents-first in a single pass, that ancestor's own chain has been marked already.
func (factory SkeletonFactory) markParents(hierarchy []skeletonNode) {

	for i := range hierarchy {

		if !hierarchy[i].used {
			continue
		}

		for p := hierarchy[i].parent; p != NoParent; p = hierarchy[p].parent {
			if hierarchy[p].used {
				break
			}
			hierarchy[p].used = true
		}

	}

}

// filterHierarchy copies the used nodes into a new Skeleton, remapping parent indices from the flattened hierarchy to the Skeleton.
func (factory SkeletonFactory) filterHierarchy(hierarchy []skeletonNode) *Skeleton {

	skeleton := NewSkeleton()

	// boneIndex maps a flattened hierarchy index to its bone index; unused nodes stay at NoParent.
	boneIndex := make([]int, len(hierarchy))

	for i, n := range hierarchy {

		boneIndex[i] = NoParent

		if !n.used {
			continue
		}

		parent := NoParent
		if n.parent != NoParent {
			parent = boneIndex[n.parent]
			if parent == NoParent {
				panic(fmt.Sprintf("armature: node %q is used, but its parent %q isn't", n.name, hierarchy[n.parent].name))
			}
		}

		skeleton.AddTransform(parent, n.node.LocalTransform(), n.name)
		boneIndex[i] = skeleton.BoneCount() - 1

	}

	return skeleton

}
