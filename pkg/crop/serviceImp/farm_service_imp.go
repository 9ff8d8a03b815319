package serviceImp

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"krishimitra/entities"
	croprepo "krishimitra/pkg/crop/repository"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
	settingsrepo "krishimitra/pkg/settings/repository"
)

type Options struct {
	DefaultLang string
	SeedDemo    bool
	Location    *time.Location
	// NewID overrides the crop id generator; nil means UUIDv7.
	NewID func() string
}

type farmSvc struct {
	crops    croprepo.CropRepository
	settings settingsrepo.SettingsRepository
	tmpl     *schedule.Registry
	cat      *i18n.Catalog
	log      *zap.Logger
	opts     Options

	mu     sync.Mutex
	stores map[string]*farmEntry
}

// farmEntry hydrates one user's store at most once; mu only guards the map.
type farmEntry struct {
	once  sync.Once
	store *farm.Store
	err   error
}

func NewFarmService(cr croprepo.CropRepository, sr settingsrepo.SettingsRepository, tmpl *schedule.Registry, cat *i18n.Catalog, log *zap.Logger, opts Options) service.FarmService {
	if opts.NewID == nil {
		opts.NewID = newUUID
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = cat.Fallback()
	}
	return &farmSvc{
		crops:    cr,
		settings: sr,
		tmpl:     tmpl,
		cat:      cat,
		log:      log,
		opts:     opts,
		stores:   map[string]*farmEntry{},
	}
}

// newUUID returns a time-ordered id.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *farmSvc) Templates() *schedule.Registry { return s.tmpl }
func (s *farmSvc) Labels() *i18n.Catalog        { return s.cat }
func (s *farmSvc) Today() entities.Date         { return entities.Today(s.opts.Location) }

func (s *farmSvc) State(uid string) (farm.State, error) {
	st, err := s.store(uid)
	if err != nil {
		return farm.State{}, err
	}
	return st.Snapshot(), nil
}

func (s *farmSvc) Dispatch(uid string, cmd farm.Command) (farm.State, string, error) {
	st, err := s.store(uid)
	if err != nil {
		return farm.State{}, "", err
	}
	next, id, err := st.Dispatch(cmd)
	if err != nil {
		s.log.Debug("command rejected", zap.String("uid", uid), zap.String("cmd", fmt.Sprintf("%T", cmd)), zap.Error(err))
		return next, "", err
	}
	s.log.Info("command applied", zap.String("uid", uid), zap.String("cmd", fmt.Sprintf("%T", cmd)), zap.String("crop_id", id))
	return next, id, nil
}

func (s *farmSvc) SetLanguage(uid, lang string) (farm.State, error) {
	lang, err := s.cat.Normalize(lang)
	if err != nil {
		return farm.State{}, err
	}
	next, _, err := s.Dispatch(uid, farm.ChangeLanguage{Language: lang})
	return next, err
}

func (s *farmSvc) store(uid string) (*farm.Store, error) {
	s.mu.Lock()
	e, ok := s.stores[uid]
	if !ok {
		e = &farmEntry{}
		s.stores[uid] = e
	}
	s.mu.Unlock()

	e.once.Do(func() { e.store, e.err = s.hydrate(uid) })
	if e.err != nil {
		s.log.Error("hydrate farm", zap.String("uid", uid), zap.Error(e.err))
		// drop the failed entry so the next request retries
		s.mu.Lock()
		if s.stores[uid] == e {
			delete(s.stores, uid)
		}
		s.mu.Unlock()
		return nil, e.err
	}
	return e.store, nil
}

// hydrate loads a user's farm. A first visit stores the user's settings and,
// when enabled, the demo crops.
func (s *farmSvc) hydrate(uid string) (*farm.Store, error) {
	settings, err := s.settings.Get(uid)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	crops, err := s.crops.ListByUser(uid)
	if err != nil {
		return nil, fmt.Errorf("load crops: %w", err)
	}
	lang := s.opts.DefaultLang
	first := settings == nil
	if !first {
		if l, err := s.cat.Normalize(settings.Language); err == nil {
			lang = l
		}
	}

	env := farm.Env{Templates: s.tmpl, Labels: s.cat, NewID: s.opts.NewID, UserID: uid}
	st := farm.NewStore(env, farm.State{Language: lang, Crops: crops}, s.persist(uid))
	if first {
		if err := s.settings.Save(&entities.UserSettings{UserID: uid, Language: lang}); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}
		if s.opts.SeedDemo && len(crops) == 0 {
			if _, _, err := st.Dispatch(farm.SeedDefaults{}); err != nil {
				return nil, fmt.Errorf("seed demo crops: %w", err)
			}
		}
	}
	s.log.Info("farm hydrated", zap.String("uid", uid), zap.String("lang", lang), zap.Int("crops", len(st.Snapshot().Crops)), zap.Bool("first_visit", first))
	return st, nil
}

func (s *farmSvc) persist(uid string) farm.PersistFunc {
	return func(prev, next farm.State) error {
		upserts, deletes := farm.Diff(prev, next)
		if len(upserts) > 0 || len(deletes) > 0 {
			if err := s.crops.Replace(uid, upserts, deletes); err != nil {
				s.log.Error("persist crops", zap.String("uid", uid), zap.Error(err))
				return fmt.Errorf("persist crops: %w", err)
			}
		}
		if prev.Language != next.Language {
			if err := s.settings.Save(&entities.UserSettings{UserID: uid, Language: next.Language}); err != nil {
				s.log.Error("persist settings", zap.String("uid", uid), zap.Error(err))
				return fmt.Errorf("persist settings: %w", err)
			}
		}
		return nil
	}
}
