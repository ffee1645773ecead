package flood

import (
	"errors"
	"testing"
	"time"

	"github.com/lintang-b-s/floodnav/pkg"
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	s := NewSnapshot([]Reading{
		{RoadID: "T1", Time: "08:00", Level: costfunction.SEVERITY_LOW},
		{RoadID: "T2", Time: "08:01", Level: costfunction.SEVERITY_IMPASSABLE},
		{RoadID: "T1", Time: "08:02", Level: costfunction.SEVERITY_MEDIUM},
	}, time.Now())

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, costfunction.SEVERITY_MEDIUM, s.GetSeverity("T1"))
	assert.Equal(t, costfunction.SEVERITY_IMPASSABLE, s.GetSeverity("T2"))
	assert.Equal(t, costfunction.SEVERITY_NORMAL, s.GetSeverity("T3"))
	assert.Equal(t, "08:00", s.LastUpdateTime())
	assert.Equal(t, []string{"T1", "T2"}, []string{s.Readings()[0].RoadID, s.Readings()[1].RoadID})

	empty := NewSnapshot(nil, time.Time{})
	assert.Equal(t, pkg.NO_UPDATE_TIME, empty.LastUpdateTime())

	var nilSnapshot *Snapshot
	assert.Equal(t, costfunction.SEVERITY_NORMAL, nilSnapshot.GetSeverity("T1"))
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.Current().Len())

	store.Replace(NewSnapshot([]Reading{
		{RoadID: "T1", Time: "08:00", Level: costfunction.SEVERITY_IMPASSABLE},
		{RoadID: "T2", Time: "08:00", Level: costfunction.SEVERITY_LOW},
	}, time.Now()))
	old := store.Current()

	store.Replace(NewSnapshot([]Reading{
		{RoadID: "T2", Time: "08:05", Level: costfunction.SEVERITY_MEDIUM},
	}, time.Now()))

	cur := store.Current()
	assert.Equal(t, costfunction.SEVERITY_NORMAL, cur.GetSeverity("T1"))
	assert.Equal(t, costfunction.SEVERITY_MEDIUM, cur.GetSeverity("T2"))

	// earlier snapshot is untouched
	assert.Equal(t, costfunction.SEVERITY_IMPASSABLE, old.GetSeverity("T1"))

	store.Clear(errors.New("connection refused"))
	assert.Equal(t, 0, store.Current().Len())
	assert.Equal(t, "connection refused", store.Current().Err())
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe()

	first := NewSnapshot([]Reading{{RoadID: "T1", Time: "1", Level: 1}}, time.Now())
	second := NewSnapshot([]Reading{{RoadID: "T1", Time: "2", Level: 2}}, time.Now())
	store.Replace(first)
	store.Replace(second)

	select {
	case got := <-ch:
		assert.Same(t, second, got)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}

	cancel()
	cancel()
	_, ok := <-ch
	require.False(t, ok)

	// publishing after cancel must not panic
	store.Replace(first)
}
