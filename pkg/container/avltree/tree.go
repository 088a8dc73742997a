// Package avltree is an ordered set kept balanced by AVL rotations.
package avltree

type FilterFn func(current Item) bool

func New() *Tree {
	return &Tree{}
}

type Tree struct {
	root *node
	len  int
}

func (t *Tree) Len() int {
	return t.len
}

func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	return t.root.height + 1
}

// Add inserts item unless an equal item is already stored and reports whether it did.
func (t *Tree) Add(item Item) bool {
	if t.root == nil {
		t.root = &node{item: item}
		t.len = 1
		return true
	}
	root, added := t.root.add(item)
	t.root = root
	if added {
		t.len += 1
	}
	return added
}

func (t *Tree) Contains(item Item) bool {
	n := t.root
	for n != nil {
		switch cmp := item.Compare(n.item); {
		case cmp < 0:
			n = n.left
		case cmp > 0:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Walk calls fn for every item in ascending order until fn returns false.
func (t *Tree) Walk(fn func(Item) bool) {
	if t.root != nil {
		t.root.walk(fn)
	}
}

func (t *Tree) Points() []Item {
	items := make([]Item, 0, t.len)
	t.Walk(func(item Item) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Filter returns the items fn accepts, in ascending order.
func (t *Tree) Filter(fn FilterFn) []Item {
	items := []Item{}
	t.Walk(func(item Item) bool {
		if fn(item) {
			items = append(items, item)
		}
		return true
	})
	return items
}
