package avltree

const needBalanceHeight = 2

type Item interface {
	// Compare returns a negative number when the item sorts before current,
	// a positive number when it sorts after and zero when they are equal.
	Compare(current Item) int
}

type node struct {
	item   Item
	left   *node
	right  *node
	height int
}

func (n *node) add(item Item) (*node, bool) {
	var added bool
	switch cmp := item.Compare(n.item); {
	case cmp < 0:
		n.left, added = addToSubTree(n.left, item)
	case cmp > 0:
		n.right, added = addToSubTree(n.right, item)
	default:
		return n, false
	}
	if !added {
		return n, false
	}
	n.computeHeight()
	return n.rebalance(), true
}

func addToSubTree(sub *node, item Item) (*node, bool) {
	if sub == nil {
		return &node{item: item}, true
	}
	return sub.add(item)
}

func (n *node) rebalance() *node {
	switch diff := n.heightDiff(); {
	case diff == needBalanceHeight:
		if n.left.heightDiff() < 0 {
			n.left = n.left.rotateLeft()
		}
		return n.rotateRight()
	case diff == -needBalanceHeight:
		if n.right.heightDiff() > 0 {
			n.right = n.right.rotateRight()
		}
		return n.rotateLeft()
	}
	return n
}

func (n *node) rotateRight() *node {
	root := n.left
	n.left = root.right
	root.right = n
	n.computeHeight()
	root.computeHeight()
	return root
}

func (n *node) rotateLeft() *node {
	root := n.right
	n.right = root.left
	root.left = n
	n.computeHeight()
	root.computeHeight()
	return root
}

func (n *node) computeHeight() {
	height := -1
	if n.left != nil && n.left.height > height {
		height = n.left.height
	}
	if n.right != nil && n.right.height > height {
		height = n.right.height
	}
	n.height = height + 1
}

func (n *node) heightDiff() int {
	leftTarget, rightTarget := 0, 0
	if n.left != nil {
		leftTarget = 1 + n.left.height
	}
	if n.right != nil {
		rightTarget = 1 + n.right.height
	}
	return leftTarget - rightTarget
}

func (n *node) walk(fn func(Item) bool) bool {
	if n.left != nil && !n.left.walk(fn) {
		return false
	}
	if !fn(n.item) {
		return false
	}
	if n.right != nil {
		return n.right.walk(fn)
	}
	return true
}
