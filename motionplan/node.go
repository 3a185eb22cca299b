package motionplan

import (
	"container/heap"

	"go.viam.com/latticeplan/spatialmath"
)

// noParent marks the start node.
const noParent = -1

// Node is one search state. Nodes live in the arena of a single search (PlanResult.Nodes) and
// refer to their parent by index, so the parent relation is a tree rooted at index 0.
type Node struct {
	// Parent is the arena index of the node this one was expanded from, or -1 for the start.
	Parent int `json:"parent"`
	// Cost2Come is the integrated path length from the start.
	Cost2Come float64 `json:"cost2come"`
	// Cost2Go is the straight line distance to the goal point. It is not admissible once
	// obstacles force detours.
	Cost2Go float64 `json:"cost2go"`
	// Clearance is copied from the start for every node of a search.
	Clearance float64          `json:"clearance"`
	Pose      spatialmath.Pose `json:"pose"`
}

// Cost returns the frontier priority of the node.
func (n Node) Cost() float64 {
	return n.Cost2Come + n.Cost2Go
}

// IsStart reports whether the node is the root of its search tree.
func (n Node) IsStart() bool {
	return n.Parent == noParent
}

type frontierItem struct {
	node     int
	priority float64
	seq      uint64
}

// frontier is a min-heap on node cost. Equal costs pop in insertion order so a search is
// reproducible bit for bit. Entries are never updated in place: relaxing a key pushes a new entry
// and the superseded one is dropped when popped, because its key is closed by then.
type frontier struct {
	items   []frontierItem
	nextSeq uint64
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	if f.items[i].priority != f.items[j].priority {
		return f.items[i].priority < f.items[j].priority
	}
	return f.items[i].seq < f.items[j].seq
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(frontierItem)) }

func (f *frontier) Pop() any {
	n := len(f.items)
	item := f.items[n-1]
	f.items = f.items[:n-1]
	return item
}

func (f *frontier) push(node int, priority float64) {
	heap.Push(f, frontierItem{node: node, priority: priority, seq: f.nextSeq})
	f.nextSeq++
}

func (f *frontier) pop() int {
	return heap.Pop(f).(frontierItem).node
}
