package libpsm_test

import (
	"testing"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureSets(t *testing.T) {
	sets := map[string]psm.StructureSet{
		"lsm":       libpsm.NewLSMSet(),
		"dropDupes": libpsm.NewDropDupes(libpsm.DropDupeOpts{}),
		"tinyPool":  libpsm.NewDropDupes(libpsm.DropDupeOpts{PoolSz: 4}),
	}
	for name, set := range sets {
		assert.True(t, set.TryAdd(libpsm.New("3A-B", psm.ParseOpts{})), name)
		assert.False(t, set.TryAdd(libpsm.New("A-A-A-B", psm.ParseOpts{})), name)
		assert.False(t, set.TryAdd(libpsm.New("A - 2A -B", psm.ParseOpts{})), name)
		assert.True(t, set.TryAdd(libpsm.New("B-3A", psm.ParseOpts{})), name)
		assert.False(t, set.TryAdd(libpsm.New("A--B", psm.ParseOpts{})), name)

		set.Close()
		assert.True(t, set.TryAdd(libpsm.New("3A-B", psm.ParseOpts{})), name)
		set.Close()
	}
}

func TestDropDupesByInput(t *testing.T) {
	set := libpsm.NewDropDupes(libpsm.DropDupeOpts{MatchByInput: true})
	defer set.Close()

	assert.True(t, set.TryAdd(libpsm.New("3A-B", psm.ParseOpts{})))
	assert.True(t, set.TryAdd(libpsm.New("A-A-A-B", psm.ParseOpts{})))
	assert.False(t, set.TryAdd(libpsm.New("3A-B", psm.ParseOpts{})))
}

func TestNmerSet(t *testing.T) {
	set := libpsm.NewNmerSet()
	defer set.Close()

	for _, walk := range mustParse(t, "A-B-A-B").Neighbors(2, true)[1] {
		set.TryAdd(walk)
	}
	assert.Equal(t, 2, set.Len())
	assert.False(t, set.TryAdd("A-B"))
	assert.True(t, set.TryAdd("A-C"))
	assert.Equal(t, 3, set.Len())

	set.Close()
	assert.Equal(t, 0, set.Len())
	assert.True(t, set.TryAdd("A-B"))
}

func TestSetAddReportsStoreErrors(t *testing.T) {
	nmers := libpsm.NewNmerSet()
	defer nmers.Close()

	added, err := nmers.Add("A-B")
	require.NoError(t, err)
	assert.True(t, added)

	// the store rejects empty keys
	added, err = nmers.Add("")
	require.Error(t, err)
	assert.ErrorIs(t, err, badger.ErrEmptyKey)
	assert.False(t, added)
	assert.False(t, nmers.TryAdd(""))
	assert.Equal(t, 1, nmers.Len())

	for name, set := range map[string]psm.StructureSet{
		"lsm":       libpsm.NewLSMSet(),
		"dropDupes": libpsm.NewDropDupes(libpsm.DropDupeOpts{}),
	} {
		added, err = set.Add(libpsm.New("A-B", psm.ParseOpts{}))
		require.NoError(t, err, name)
		assert.True(t, added, name)

		added, err = set.Add(libpsm.New("A - B", psm.ParseOpts{}))
		require.NoError(t, err, name)
		assert.False(t, added, name)

		added, err = set.Add(libpsm.New("A-", psm.ParseOpts{}))
		require.NoError(t, err, name)
		assert.False(t, added, name)
		set.Close()
	}
}
