package farm

import (
	"fmt"

	"krishimitra/entities"
	"krishimitra/pkg/schedule"
)

// Catalog is what the reducer needs from the label catalog.
type Catalog interface {
	Labeler
	schedule.NameMatcher
}

// Env carries the collaborators a reduction reads from. It is never mutated.
type Env struct {
	Templates *schedule.Registry
	Labels    Catalog
	NewID     func() string
	UserID    string
}

// State is one user's farm. Phase progress is derived from Crops and never stored.
type State struct {
	Language      string          `json:"language"`
	Crops         []entities.Crop `json:"crops"`
	PendingDelete string          `json:"pending_delete,omitempty"`
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{Language: s.Language, PendingDelete: s.PendingDelete}
	if s.Crops != nil {
		out.Crops = make([]entities.Crop, len(s.Crops))
		for i := range s.Crops {
			out.Crops[i] = cloneCrop(s.Crops[i])
		}
	}
	return out
}

func cloneCrop(c entities.Crop) entities.Crop {
	if c.HarvestDate != nil {
		h := *c.HarvestDate
		c.HarvestDate = &h
	}
	if c.Tasks != nil {
		c.Tasks = append([]entities.FarmTask(nil), c.Tasks...)
	}
	return c
}

func (s *State) index(cropID string) int {
	for i := range s.Crops {
		if s.Crops[i].CropID == cropID {
			return i
		}
	}
	return -1
}

// Crop returns a copy of the crop with the given id.
func (s State) Crop(cropID string) (entities.Crop, bool) {
	i := s.index(cropID)
	if i == -1 {
		return entities.Crop{}, false
	}
	return cloneCrop(s.Crops[i]), true
}

// Command is one user interaction against the farm.
type Command interface {
	apply(env Env, s *State) (string, error)
}

// Reduce applies cmd to a copy of s. On error the returned state is s unchanged.
// The returned id names the crop the command touched, if any.
func Reduce(env Env, s State, cmd Command) (State, string, error) {
	next := s.Clone()
	id, err := cmd.apply(env, &next)
	if err != nil {
		return s, "", err
	}
	return next, id, nil
}

// regenerate rebuilds a crop's tasks from its template, keeping completion by id.
func regenerate(env Env, c *entities.Crop, lang string) {
	typ, tmpl, _ := env.Templates.Resolve(c.NameKey, c.CropType, c.Name, env.Labels)
	c.CropType = typ
	fresh := GenerateTasks(c, tmpl, env.Labels, lang)
	c.Tasks = MergeCompletion(c.Tasks, fresh)
}

// SaveCrop creates a crop when ID is empty and edits the crop with that id otherwise.
type SaveCrop struct {
	ID    string
	Input CropInput
}

func (cmd SaveCrop) apply(env Env, s *State) (string, error) {
	f, err := cmd.Input.parse()
	if err != nil {
		return "", err
	}
	if cmd.ID == "" {
		id, err := newCropID(env, s)
		if err != nil {
			return "", err
		}
		c := entities.Crop{UserID: env.UserID, CropID: id, Ordinal: nextOrdinal(s)}
		setFields(&c, f)
		regenerate(env, &c, s.Language)
		s.Crops = append(s.Crops, c)
		return id, nil
	}
	i := s.index(cmd.ID)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.ID)
	}
	c := &s.Crops[i]
	setFields(c, f)
	regenerate(env, c, s.Language)
	return c.CropID, nil
}

// setFields copies validated form fields; the id and translation key are kept.
func setFields(c *entities.Crop, f cropFields) {
	c.Name = f.name
	c.CropType = f.cropType
	c.PlantingDate = f.planting
	c.HarvestDate = f.harvest
	c.Area = f.area
	c.SoilType = f.soil
}

func nextOrdinal(s *State) int {
	n := 0
	for _, c := range s.Crops {
		if c.Ordinal >= n {
			n = c.Ordinal + 1
		}
	}
	return n
}

const maxIDAttempts = 16

func newCropID(env Env, s *State) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := env.NewID()
		if id != "" && s.index(id) == -1 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

type ToggleTask struct {
	CropID string
	TaskID string
}

func (cmd ToggleTask) apply(_ Env, s *State) (string, error) {
	i := s.index(cmd.CropID)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.CropID)
	}
	tasks := s.Crops[i].Tasks
	for j := range tasks {
		if tasks[j].TaskID == cmd.TaskID {
			tasks[j].IsCompleted = !tasks[j].IsCompleted
			return cmd.CropID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTaskNotFound, cmd.TaskID)
}

// AdvancePhase sets the completion frontier at Index.
type AdvancePhase struct {
	CropID string
	Index  int
}

func (cmd AdvancePhase) apply(_ Env, s *State) (string, error) {
	i := s.index(cmd.CropID)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.CropID)
	}
	tasks, err := AdvanceTo(s.Crops[i].Tasks, cmd.Index)
	if err != nil {
		return "", err
	}
	s.Crops[i].Tasks = tasks
	return cmd.CropID, nil
}

// RetreatPhase clears completion from Index onward.
type RetreatPhase struct {
	CropID string
	Index  int
}

func (cmd RetreatPhase) apply(_ Env, s *State) (string, error) {
	i := s.index(cmd.CropID)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.CropID)
	}
	tasks, err := RetreatFrom(s.Crops[i].Tasks, cmd.Index)
	if err != nil {
		return "", err
	}
	s.Crops[i].Tasks = tasks
	return cmd.CropID, nil
}

// RequestDelete marks a crop for deletion; ConfirmDelete commits it.
type RequestDelete struct {
	CropID string
}

func (cmd RequestDelete) apply(_ Env, s *State) (string, error) {
	if s.index(cmd.CropID) == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.CropID)
	}
	s.PendingDelete = cmd.CropID
	return cmd.CropID, nil
}

type CancelDelete struct {
	CropID string
}

func (cmd CancelDelete) apply(_ Env, s *State) (string, error) {
	if s.PendingDelete == "" || s.PendingDelete != cmd.CropID {
		return "", fmt.Errorf("%w: %s", ErrNoPendingDelete, cmd.CropID)
	}
	s.PendingDelete = ""
	return cmd.CropID, nil
}

type ConfirmDelete struct {
	CropID string
}

func (cmd ConfirmDelete) apply(_ Env, s *State) (string, error) {
	if s.PendingDelete == "" || s.PendingDelete != cmd.CropID {
		return "", fmt.Errorf("%w: %s", ErrNoPendingDelete, cmd.CropID)
	}
	i := s.index(cmd.CropID)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrCropNotFound, cmd.CropID)
	}
	s.Crops = append(s.Crops[:i], s.Crops[i+1:]...)
	s.PendingDelete = ""
	return cmd.CropID, nil
}

// ChangeLanguage relabels predefined crops and their tasks. User-authored crops
// keep the labels they were generated with.
type ChangeLanguage struct {
	Language string
}

func (cmd ChangeLanguage) apply(env Env, s *State) (string, error) {
	s.Language = cmd.Language
	for i := range s.Crops {
		c := &s.Crops[i]
		if !c.Predefined() {
			continue
		}
		c.Name = env.Labels.T(cmd.Language, c.NameKey)
		regenerate(env, c, cmd.Language)
	}
	return "", nil
}
