package kdtree

import "github.com/go-sod/kdset/pkg/geom"

type node struct {
	point    geom.Point
	left     *node
	right    *node
	vertical bool
	// nil unless the tree prunes by region
	region *geom.Rect
}

func newNode(p geom.Point, vertical bool, region geom.Rect, cacheRegion bool) *node {
	n := &node{point: p, vertical: vertical}
	if cacheRegion {
		n.region = &region
	}
	return n
}

// compare reports on which side of n the point p lies: -1 for the left subtree, 1 for the
// right subtree and 0 when p equals the stored point. A vertical node orders by x and
// breaks ties by y, a horizontal node orders by y and breaks ties by x.
func (n *node) compare(p geom.Point) int {
	if n.vertical {
		return compareAxis(p.X, n.point.X, p.Y, n.point.Y)
	}
	return compareAxis(p.Y, n.point.Y, p.X, n.point.X)
}

func compareAxis(in, pt, inTie, ptTie float64) int {
	switch {
	case in < pt:
		return -1
	case in > pt:
		return 1
	case inTie < ptTie:
		return -1
	case inTie > ptTie:
		return 1
	}
	return 0
}

// split cuts the region owned by n into the regions of its left and right children.
func (n *node) split(region geom.Rect) (left, right geom.Rect) {
	if n.vertical {
		return region.SplitX(n.point.X)
	}
	return region.SplitY(n.point.Y)
}

func (n *node) perpendicularDistanceSquaredTo(p geom.Point) float64 {
	var d float64
	if n.vertical {
		d = n.point.X - p.X
	} else {
		d = n.point.Y - p.Y
	}
	return d * d
}

func (n *node) insert(p geom.Point, region geom.Rect, cacheRegion bool) bool {
	cmp := n.compare(p)
	if cmp == 0 {
		return false
	}
	left, right := n.split(region)
	if cmp < 0 {
		if n.left == nil {
			n.left = newNode(p, !n.vertical, left, cacheRegion)
			return true
		}
		return n.left.insert(p, left, cacheRegion)
	}
	if n.right == nil {
		n.right = newNode(p, !n.vertical, right, cacheRegion)
		return true
	}
	return n.right.insert(p, right, cacheRegion)
}

func (n *node) get(p geom.Point) *node {
	current := n
	for current != nil {
		switch cmp := current.compare(p); {
		case cmp < 0:
			current = current.left
		case cmp > 0:
			current = current.right
		default:
			return current
		}
	}
	return nil
}

func (n *node) points(points []geom.Point) []geom.Point {
	if n.left != nil {
		points = n.left.points(points)
	}
	points = append(points, n.point)
	if n.right != nil {
		points = n.right.points(points)
	}
	return points
}

func (n *node) height() int {
	if n == nil {
		return 0
	}
	l, r := n.left.height(), n.right.height()
	if l > r {
		return l + 1
	}
	return r + 1
}

func (n *node) rangeSearch(r geom.Rect, pruning Pruning, points []geom.Point) []geom.Point {
	if r.Contains(n.point) {
		points = append(points, n.point)
	}

	var toLeft, toRight bool
	switch pruning {
	case PruneSplit:
		// the min corner decides the left side, the max corner the right side
		toLeft = n.left != nil && n.compare(r.Min()) < 0
		toRight = n.right != nil && n.compare(r.Max()) > 0
	default:
		toLeft = n.left != nil && r.Intersects(*n.left.region)
		toRight = n.right != nil && r.Intersects(*n.right.region)
	}

	if toLeft {
		points = n.left.rangeSearch(r, pruning, points)
	}
	if toRight {
		points = n.right.rangeSearch(r, pruning, points)
	}
	return points
}

// Partition is the splitting segment of one node clipped to the region the node owns.
type Partition struct {
	Point    geom.Point `json:"point"`
	Vertical bool       `json:"vertical"`
	From     geom.Point `json:"from"`
	To       geom.Point `json:"to"`
}

func (n *node) partitions(region geom.Rect, partitions []Partition) []Partition {
	part := Partition{Point: n.point, Vertical: n.vertical}
	if n.vertical {
		part.From = geom.Point{X: n.point.X, Y: region.MinY}
		part.To = geom.Point{X: n.point.X, Y: region.MaxY}
	} else {
		part.From = geom.Point{X: region.MinX, Y: n.point.Y}
		part.To = geom.Point{X: region.MaxX, Y: n.point.Y}
	}
	partitions = append(partitions, part)

	left, right := n.split(region)
	if n.left != nil {
		partitions = n.left.partitions(left, partitions)
	}
	if n.right != nil {
		partitions = n.right.partitions(right, partitions)
	}
	return partitions
}
