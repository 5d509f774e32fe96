package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/msastat/pkg/msa"
)

func init() {
	logging.SetLevel(logging.ERROR, "store")
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRoundTrip(t *testing.T) {
	s := openTemp(t)
	a, err := msa.FromRows([]string{"ACD", "AC-"})
	require.NoError(t, err)
	key := Key("omes", "ambiguity", a)

	r, err := s.Load(key)
	require.NoError(t, err)
	require.Nil(t, r, "empty store")

	want := &Result{Stat: "omes", Flags: "ambiguity", Rows: 3, Cols: 3,
		Data:    []float64{0, 0.1, 1. / 3, 0.1, 0, 2e-300, 1. / 3, 2e-300, 0},
		Created: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Save(key, want))
	got, err := s.Load(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := s.Load(Key("sca", "", a))
	require.NoError(t, err)
	assert.Nil(t, other, "another key found the result")
}

func TestReopen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "results.db")
	a, err := msa.FromRows([]string{"AC"})
	require.NoError(t, err)
	key := Key("entropy", "", a)

	s, err := Open(fname)
	require.NoError(t, err)
	require.NoError(t, s.Save(key, &Result{Stat: "entropy", Rows: 1, Cols: 2, Data: []float64{0, 0}}))
	require.NoError(t, s.Close())

	s, err = Open(fname)
	require.NoError(t, err)
	defer s.Close()
	r, err := s.Load(key)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, []float64{0, 0}, r.Data)
}

func TestKey(t *testing.T) {
	a, _ := msa.FromRows([]string{"ACDE", "ACDE"})
	b, _ := msa.FromRows([]string{"ACDEACDE"})
	c, _ := msa.FromRows([]string{"ACDE", "ACDF"})
	k := Key("mutinfo", "x", a)
	assert.Len(t, k, 32)
	assert.Equal(t, k, Key("mutinfo", "x", a), "key is not stable")
	for _, other := range [][]byte{
		Key("mutinfo", "x", b),
		Key("mutinfo", "x", c),
		Key("mutinfo", "y", a),
		Key("omes", "x", a),
	} {
		assert.NotEqual(t, k, other)
	}
}

func TestBadResult(t *testing.T) {
	s := openTemp(t)
	a, _ := msa.FromRows([]string{"A"})
	key := Key("entropy", "", a)
	require.NoError(t, s.Save(key, &Result{Stat: "entropy", Rows: 1, Cols: 2, Data: []float64{1}}))
	_, err := s.Load(key)
	assert.Error(t, err, "short data should not load")
}
