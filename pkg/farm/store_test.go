package farm

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchCommits(t *testing.T) {
	env := testEnv()
	var calls int
	st := NewStore(env, State{Language: "en"}, func(prev, next State) error {
		calls++
		return nil
	})
	s, _, err := st.Dispatch(SeedDefaults{})
	require.NoError(t, err)
	assert.Len(t, s.Crops, 3)
	assert.Equal(t, 1, calls)
	assert.Len(t, st.Snapshot().Crops, 3)
}

func TestStorePersistFailureAborts(t *testing.T) {
	env := testEnv()
	boom := errors.New("disk full")
	st := NewStore(env, State{Language: "en"}, func(prev, next State) error { return boom })
	_, _, err := st.Dispatch(SeedDefaults{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, st.Snapshot().Crops)
}

func TestStoreSnapshotIsolated(t *testing.T) {
	st := NewStore(testEnv(), State{Language: "en"}, nil)
	_, _, err := st.Dispatch(SeedDefaults{})
	require.NoError(t, err)
	snap := st.Snapshot()
	snap.Crops[0].Tasks[0].IsCompleted = true
	assert.False(t, st.Snapshot().Crops[0].Tasks[0].IsCompleted)
}

func TestStoreConcurrentToggles(t *testing.T) {
	st := NewStore(testEnv(), State{Language: "en"}, nil)
	_, _, err := st.Dispatch(SeedDefaults{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = st.Dispatch(ToggleTask{CropID: "1", TaskID: "1-sowing-0"})
		}()
	}
	wg.Wait()
	c, _ := st.Snapshot().Crop("1")
	assert.False(t, findTask(t, c, "1-sowing-0").IsCompleted, "an even number of toggles")
}

func TestDiff(t *testing.T) {
	env := testEnv()
	prev := seeded(t, env)

	next, _ := mustReduce(t, env, prev, ToggleTask{CropID: "2", TaskID: "2-sowing-0"})
	up, del := Diff(prev, next)
	require.Len(t, up, 1)
	assert.Equal(t, "2", up[0].CropID)
	assert.Empty(t, del)

	next, _ = mustReduce(t, env, prev, RequestDelete{CropID: "3"})
	next, _ = mustReduce(t, env, next, ConfirmDelete{CropID: "3"})
	up, del = Diff(prev, next)
	assert.Empty(t, up)
	assert.Equal(t, []string{"3"}, del)

	up, del = Diff(State{}, prev)
	assert.Len(t, up, 3)
	assert.Empty(t, del)
}
