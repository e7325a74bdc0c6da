package armature

import (
	"strconv"
	"strings"
)

// Node is a named object in a scene hierarchy with a transform relative to its parent. Node implements SceneNode,
// so a tree of Nodes can be handed to a SkeletonFactory through a SceneGraph.
type Node struct {
	name           string
	localTransform Matrix4
	children       []*Node
	parent         *Node
}

// NewNode returns a new Node with an identity local transform.
func NewNode(name string) *Node {
	return &Node{
		name:           name,
		localTransform: NewMatrix4(),
		children:       []*Node{},
	}
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// LocalTransform returns the Node's transform relative to its parent.
func (node *Node) LocalTransform() Matrix4 {
	return node.localTransform
}

// SetLocalTransform sets the Node's transform relative to its parent.
func (node *Node) SetLocalTransform(transform Matrix4) {
	node.localTransform = transform
}

// Transform returns the Node's transform in the space of the top of its tree, combining it with every parent's.
func (node *Node) Transform() Matrix4 {
	transform := node.localTransform
	for p := node.parent; p != nil; p = p.parent {
		transform = transform.Mult(p.localTransform)
	}
	return transform
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() *Node {
	return node.parent
}

// Children returns the Node's children as SceneNodes.
func (node *Node) Children() []SceneNode {
	out := make([]SceneNode, 0, len(node.children))
	for _, child := range node.children {
		out = append(out, child)
	}
	return out
}

// ChildNodes returns the Node's children.
func (node *Node) ChildNodes() []*Node {
	return append(make([]*Node, 0, len(node.children)), node.children...)
}

// AddChildren parents the provided children Nodes to the calling Node. If the children are already parented to other Nodes,
// they are unparented before doing so. Their local transforms are left as-is.
func (node *Node) AddChildren(children ...*Node) {
	for _, child := range children {
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		child.parent = node
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this object.
func (node *Node) RemoveChildren(children ...*Node) {

	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.parent = nil
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}

}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
// slashes ('/'), and is relative to the node you use to call Get. As an example, if you had a hand parented to a forearm, which was parented
// to an upper arm, it would be found at "UpperArm/Forearm/Hand". You can use ".." to go up one level in the hierarchy.
func (node *Node) Get(path string) *Node {

	current := node

	for _, s := range strings.Split(path, `/`) {

		if len(strings.TrimSpace(s)) == 0 {
			continue
		}

		if s == ".." {
			current = current.parent
		} else {
			var found *Node
			for _, child := range current.children {
				if child.name == s {
					found = child
					break
				}
			}
			current = found
		}

		if current == nil {
			return nil
		}

	}

	return current

}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children, alongside their
// positions relative to this Node (truncated to the first 2 decimals). This is a useful function to debug the layout of a node tree.
func (node *Node) HierarchyAsString() string {

	var printNode func(n *Node, transform Matrix4, level int) string

	printNode = func(n *Node, transform Matrix4, level int) string {

		str := ""

		if level > 0 {
			str += strings.Repeat("    |", level) + "\n"
		}

		str += strings.Repeat("    |", level)

		if level > 0 {
			str += "-"
		}

		p := transform.Position()
		str += " " + n.name + " : [" +
			strconv.FormatFloat(float64(p.X), 'f', 2, 32) + ", " +
			strconv.FormatFloat(float64(p.Y), 'f', 2, 32) + ", " +
			strconv.FormatFloat(float64(p.Z), 'f', 2, 32) + "]\n"

		for _, child := range n.children {
			str += printNode(child, child.localTransform.Mult(transform), level+1)
		}

		return str
	}

	return printNode(node, NewMatrix4(), 0)
}
