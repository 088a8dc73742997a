/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree implements a 2-d tree over points of the unit square.
//
// The tree is not self-balancing: its shape is determined by the insertion order, and its
// height is linear in the number of points for sorted input. It is not safe for concurrent
// mutation; concurrent reads are safe while no insertion is in flight.
package kdtree

import (
	"fmt"
	"strings"

	"github.com/go-sod/kdset/pkg/geom"
)

// Pruning selects how range and nearest queries skip subtrees.
//
// PruneRegion caches the rectangle each node owns and only descends into children whose
// rectangle intersects the query or lies closer than the current best. It never visits a
// subtree that can not hold an answer, at the cost of one rectangle per node.
//
// PruneSplit caches nothing. Range queries compare the query corners against the splitting
// point and nearest queries bound the far side by the distance to the splitting line, which
// is looser than the distance to the far region and so visits more nodes.
type Pruning uint8

const (
	PruneRegion Pruning = iota
	PruneSplit
)

func (p Pruning) String() string {
	switch p {
	case PruneRegion:
		return "REGION"
	case PruneSplit:
		return "SPLIT"
	default:
		return fmt.Sprintf("Pruning(%d)", uint8(p))
	}
}

func PruningFor(s string) (Pruning, error) {
	switch strings.ToUpper(s) {
	case "REGION":
		return PruneRegion, nil
	case "SPLIT":
		return PruneSplit, nil
	default:
		return 0, fmt.Errorf("unknown pruning strategy: %s", s)
	}
}

type Option func(*Tree)

func WithPruning(p Pruning) Option {
	return func(t *Tree) {
		t.pruning = p
	}
}

func New(opts ...Option) *Tree {
	t := &Tree{pruning: PruneRegion}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type Tree struct {
	root    *node
	len     int
	pruning Pruning
}

func (t *Tree) Pruning() Pruning {
	return t.pruning
}

func (t *Tree) Len() int {
	return t.len
}

func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Insert adds p to the tree. Points outside the unit square are rejected with
// geom.ErrOutOfRange before the tree is touched, and inserting a stored point is a no-op.
func (t *Tree) Insert(p geom.Point) error {
	_, err := t.insert(p)
	return err
}

// Add is Insert that also reports whether p was new.
func (t *Tree) Add(p geom.Point) (bool, error) {
	return t.insert(p)
}

func (t *Tree) insert(p geom.Point) (bool, error) {
	if err := p.ValidateUnit(); err != nil {
		return false, fmt.Errorf("insert %v: %w", p, err)
	}
	cacheRegion := t.pruning == PruneRegion
	if t.root == nil {
		t.root = newNode(p, true, geom.UnitSquare(), cacheRegion)
		t.len = 1
		return true, nil
	}
	if !t.root.insert(p, geom.UnitSquare(), cacheRegion) {
		return false, nil
	}
	t.len += 1
	return true, nil
}

// Contains reports whether p is stored. Points outside the unit square are never stored.
func (t *Tree) Contains(p geom.Point) bool {
	if !p.InUnitSquare() || t.root == nil {
		return false
	}
	return t.root.get(p) != nil
}

// Range returns every stored point inside r, boundary included, in no particular order.
func (t *Tree) Range(r geom.Rect) []geom.Point {
	if t.root == nil {
		return []geom.Point{}
	}
	return t.root.rangeSearch(r, t.pruning, []geom.Point{})
}

// Points returns the stored points in tree order.
func (t *Tree) Points() []geom.Point {
	if t.root == nil {
		return []geom.Point{}
	}
	return t.root.points(make([]geom.Point, 0, t.len))
}

// Partitions returns the splitting segment of every node in preorder.
func (t *Tree) Partitions() []Partition {
	if t.root == nil {
		return []Partition{}
	}
	return t.root.partitions(geom.UnitSquare(), make([]Partition, 0, t.len))
}

func (t *Tree) Height() int {
	return t.root.height()
}
