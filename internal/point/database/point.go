// Package database stores the sequence of inserted points in bbolt, so that replaying it
// rebuilds a tree of the same shape.
package database

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	xdr "github.com/davecgh/go-xdr/xdr2"
	"github.com/go-sod/kdset/internal/database"
	"github.com/go-sod/kdset/pkg/geom"
	bolt "go.etcd.io/bbolt"
)

const bucketName = "points"

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func encodeKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func encodePoint(p geom.Point) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := xdr.Marshal(&buf, p); err != nil {
		return nil, fmt.Errorf("xdr encode %v: %w", p, err)
	}
	return buf.Bytes(), nil
}

func decodePoint(value []byte) (geom.Point, error) {
	var p geom.Point
	if _, err := xdr.Unmarshal(bytes.NewReader(value), &p); err != nil {
		return p, fmt.Errorf("xdr decode: %w", err)
	}
	return p, nil
}

// Append stores points after the ones already stored, in the given order.
func (db *DB) Append(_ context.Context, points []geom.Point) error {
	if len(points) == 0 {
		return nil
	}
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, p := range points {
			seq, err := b.NextSequence()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}
			value, err := encodePoint(p)
			if err != nil {
				return err
			}
			if err := b.Put(encodeKey(seq), value); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// Walk calls fn for every stored point in insertion order and stops at the first error.
func (db *DB) Walk(ctx context.Context, fn func(geom.Point) error) error {
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := decodePoint(v)
			if err != nil {
				return fmt.Errorf("key %x: %w", k, err)
			}
			if err := fn(p); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("view transaction error: %w", err)
	}

	return nil
}

func (db *DB) Count() (int, error) {
	var length int
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		length = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %w", err)
	}

	return length, nil
}
