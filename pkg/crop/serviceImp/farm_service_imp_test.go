package serviceImp

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"krishimitra/database"
	"krishimitra/entities"
	cropRepoImp "krishimitra/pkg/crop/repositoryImp"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
	settingsRepoImp "krishimitra/pkg/settings/repositoryImp"
)

func newService(t *testing.T, path string, seed bool) service.FarmService {
	t.Helper()
	db, err := database.Open(path)
	require.NoError(t, err)
	return NewFarmService(
		cropRepoImp.New(db),
		settingsRepoImp.New(db),
		schedule.Defaults(),
		i18n.Default(),
		zap.NewNop(),
		Options{DefaultLang: "en", SeedDemo: seed},
	)
}

func TestFirstVisitSeeds(t *testing.T) {
	svc := newService(t, filepath.Join(t.TempDir(), "farm.db"), true)
	s, err := svc.State("u1")
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)
	require.Len(t, s.Crops, 3)
	assert.Equal(t, "Wheat", s.Crops[0].Name)
}

func TestNoSeed(t *testing.T) {
	svc := newService(t, filepath.Join(t.TempDir(), "farm.db"), false)
	s, err := svc.State("u1")
	require.NoError(t, err)
	assert.Empty(t, s.Crops)
}

func TestDispatchSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.db")
	svc := newService(t, path, true)

	area := 2.0
	_, id, err := svc.Dispatch("u1", farm.SaveCrop{Input: farm.CropInput{Name: "Sugarcane", PlantingDate: "2024-02-01", Area: &area}})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	_, _, err = svc.Dispatch("u1", farm.AdvancePhase{CropID: id, Index: 1})
	require.NoError(t, err)
	_, _, err = svc.Dispatch("u1", farm.RequestDelete{CropID: "3"})
	require.NoError(t, err)
	_, _, err = svc.Dispatch("u1", farm.ConfirmDelete{CropID: "3"})
	require.NoError(t, err)
	_, err = svc.SetLanguage("u1", "hi-IN")
	require.NoError(t, err)

	again := newService(t, path, true)
	s, err := again.State("u1")
	require.NoError(t, err)
	assert.Equal(t, "hi", s.Language)
	require.Len(t, s.Crops, 3, "a returning user is not re-seeded")
	assert.Equal(t, "गेहूँ", s.Crops[0].Name)

	c, ok := s.Crop(id)
	require.True(t, ok)
	assert.Equal(t, 2, farm.CurrentPhase(c.Tasks))
	assert.Len(t, c.Tasks, 18)
	_, ok = s.Crop("3")
	assert.False(t, ok)
}

func TestUsersAreIsolated(t *testing.T) {
	svc := newService(t, filepath.Join(t.TempDir(), "farm.db"), true)
	_, _, err := svc.Dispatch("u1", farm.ToggleTask{CropID: "1", TaskID: "1-sowing-0"})
	require.NoError(t, err)

	s, err := svc.State("u2")
	require.NoError(t, err)
	c, _ := s.Crop("1")
	for _, task := range c.Tasks {
		assert.False(t, task.IsCompleted)
	}
}

func TestSetLanguageUnsupported(t *testing.T) {
	svc := newService(t, filepath.Join(t.TempDir(), "farm.db"), false)
	_, err := svc.SetLanguage("u1", "fr")
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
}

type failingRepo struct{ err error }

func (f failingRepo) ListByUser(string) ([]entities.Crop, error)      { return nil, nil }
func (f failingRepo) Replace(string, []entities.Crop, []string) error { return f.err }

type memSettings struct{ m map[string]entities.UserSettings }

func (r *memSettings) Get(uid string) (*entities.UserSettings, error) {
	s, ok := r.m[uid]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memSettings) Save(s *entities.UserSettings) error {
	r.m[s.UserID] = *s
	return nil
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewFarmService(failingRepo{boom}, &memSettings{m: map[string]entities.UserSettings{}},
		schedule.Defaults(), i18n.Default(), zap.NewNop(), Options{})

	area := 1.0
	_, _, err := svc.Dispatch("u1", farm.SaveCrop{Input: farm.CropInput{Name: "Tomato", PlantingDate: "2024-01-01", Area: &area}})
	assert.ErrorIs(t, err, boom)
	s, err := svc.State("u1")
	require.NoError(t, err)
	assert.Empty(t, s.Crops)
}

// blockingSettings stalls Get for one user until release is closed.
type blockingSettings struct {
	memSettings
	mu      sync.Mutex
	slowUID string
	entered chan struct{}
	release chan struct{}
	fail    error
}

func (r *blockingSettings) Get(uid string) (*entities.UserSettings, error) {
	if uid == r.slowUID {
		close(r.entered)
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		err := r.fail
		r.fail = nil
		return nil, err
	}
	return r.memSettings.Get(uid)
}

func (r *blockingSettings) Save(s *entities.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.memSettings.Save(s)
}

func TestSlowHydrationDoesNotBlockOtherUsers(t *testing.T) {
	repo := &blockingSettings{
		memSettings: memSettings{m: map[string]entities.UserSettings{}},
		slowUID:     "slow",
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	svc := NewFarmService(failingRepo{}, repo, schedule.Defaults(), i18n.Default(), zap.NewNop(), Options{SeedDemo: true})

	slowDone := make(chan error, 1)
	go func() {
		_, err := svc.State("slow")
		slowDone <- err
	}()
	<-repo.entered

	fastDone := make(chan error, 1)
	go func() {
		_, err := svc.State("fast")
		fastDone <- err
	}()
	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("hydrating one user waited on another")
	}

	close(repo.release)
	require.NoError(t, <-slowDone)
}

func TestHydrationErrorIsRetried(t *testing.T) {
	boom := errors.New("locked")
	repo := &blockingSettings{memSettings: memSettings{m: map[string]entities.UserSettings{}}, fail: boom}
	svc := NewFarmService(failingRepo{}, repo, schedule.Defaults(), i18n.Default(), zap.NewNop(), Options{})

	_, err := svc.State("u1")
	assert.ErrorIs(t, err, boom)
	s, err := svc.State("u1")
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)
}
