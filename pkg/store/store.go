// Package store keeps calculated results in a bolt database, so the same
// statistic on the same alignment with the same settings is not calculated
// twice.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/blake2b"

	"github.com/andrew-torda/msastat/pkg/msa"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// results is the bucket everything goes into.
var results = []byte("results")

// Result is one calculated vector or matrix.
type Result struct {
	Stat    string    // which statistic
	Flags   string    // settings it was calculated with
	Rows    int       // 1 for vectors
	Cols    int       //
	Data    []float64 // Rows x Cols, row major
	Created time.Time
}

// Store wraps an open database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database in fname.
func Open(fname string) (*Store, error) {
	db, err := bolt.Open(fname, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening result store %s: %w", fname, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Key is a hash of the statistic name, its settings and the alignment,
// including its shape.
func Key(stat, flags string, a *msa.Alignment) []byte {
	h, _ := blake2b.New256(nil) // only fails for a bad key
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(a.Number()))
	binary.LittleEndian.PutUint64(dims[8:], uint64(a.Length()))
	h.Write([]byte(stat))
	h.Write([]byte{0})
	h.Write([]byte(flags))
	h.Write([]byte{0})
	h.Write(dims[:])
	h.Write(a.Bytes())
	return h.Sum(nil)
}

// Save stores r under key, replacing anything already there.
func (s *Store) Save(key []byte, r *Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		log.Error("Error serializing result", err)
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(results)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	if err != nil {
		log.Error("Error saving result", err)
	}
	return err
}

// Load returns the result stored under key, or nil if there is none.
func (s *Store) Load(key []byte) (*Result, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(results)
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...) // v is only valid in the transaction
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding stored result: %w", err)
	}
	if len(r.Data) != r.Rows*r.Cols {
		return nil, fmt.Errorf("stored %s result has %d values for %d x %d", r.Stat, len(r.Data), r.Rows, r.Cols)
	}
	log.Noticef("Found stored %s result from %s", r.Stat, r.Created.Format(time.RFC1123))
	return &r, nil
}
