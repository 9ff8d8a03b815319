package schedule

import (
	"sort"
	"strings"

	"krishimitra/entities"
)

const cropKeyPrefix = "crop_name_"

// Template maps a task type to day offsets relative to the planting date.
type Template map[entities.TaskType][]int

// Count is the number of tasks the template expands to.
func (t Template) Count() int {
	n := 0
	for _, offs := range t {
		n += len(offs)
	}
	return n
}

func (t Template) clone() Template {
	out := make(Template, len(t))
	for k, v := range t {
		out[k] = append([]int(nil), v...)
	}
	return out
}

// Registry holds templates keyed by a stable crop type such as "wheat".
type Registry struct {
	byType map[string]Template
}

func NewRegistry() *Registry { return &Registry{byType: map[string]Template{}} }

// Defaults returns a registry with the built-in wheat, sugarcane and tomato schedules.
func Defaults() *Registry {
	r := NewRegistry()
	r.Set("wheat", Template{
		entities.TaskSoilPreparation: {-7},
		entities.TaskSowing:          {0},
		entities.TaskIrrigation:      {20, 40, 60, 80, 100},
		entities.TaskFertilizer:      {0, 40, 80},
		entities.TaskWeeding:         {30, 50},
		entities.TaskHarvesting:      {120},
	})
	r.Set("sugarcane", Template{
		entities.TaskSoilPreparation: {-15},
		entities.TaskSowing:          {0},
		entities.TaskIrrigation:      {30, 60, 90, 120, 150, 180, 210, 240, 270},
		entities.TaskFertilizer:      {45, 90, 120},
		entities.TaskWeeding:         {45, 75, 105},
		entities.TaskHarvesting:      {365},
	})
	r.Set("tomato", Template{
		entities.TaskSoilPreparation: {-5},
		entities.TaskSowing:          {0},
		entities.TaskIrrigation:      {15, 22, 29, 36, 43, 50, 57},
		entities.TaskFertilizer:      {20, 45, 65},
		entities.TaskWeeding:         {25, 40},
		entities.TaskHarvesting:      {90},
	})
	return r
}

// Set stores a copy of tmpl under cropType. Offsets are de-duplicated per task
// type so generated task ids stay unique.
func (r *Registry) Set(cropType string, tmpl Template) {
	cropType = normalizeType(cropType)
	out := make(Template, len(tmpl))
	for tt, offs := range tmpl {
		seen := map[int]bool{}
		var uniq []int
		for _, o := range offs {
			if !seen[o] {
				seen[o] = true
				uniq = append(uniq, o)
			}
		}
		sort.Ints(uniq)
		out[tt] = uniq
	}
	r.byType[cropType] = out
}

// Get returns a copy of the template for cropType.
func (r *Registry) Get(cropType string) (Template, bool) {
	t, ok := r.byType[normalizeType(cropType)]
	if !ok {
		return nil, false
	}
	return t.clone(), true
}

func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.byType))
	for k := range r.byType {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int { return len(r.byType) }

// KeyFor returns the translation key of a crop type's display name.
func KeyFor(cropType string) string { return cropKeyPrefix + normalizeType(cropType) }

// TypeFromKey is the inverse of KeyFor. It reports false for keys of another kind.
func TypeFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, cropKeyPrefix) || len(key) == len(cropKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, cropKeyPrefix), true
}

func normalizeType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// NameMatcher finds the translation key whose text matches a free-form name in any language.
type NameMatcher interface {
	Lookup(prefix, s string) (string, bool)
}

// Resolve picks the template for a crop without consulting the active language.
// Predefined crops use the type carried by their key; user-authored crops are
// matched by explicit type, by their name as a type, or by a catalog crop name in
// any supported language.
func (r *Registry) Resolve(nameKey, cropType, name string, names NameMatcher) (string, Template, bool) {
	if typ, ok := TypeFromKey(nameKey); ok {
		t, found := r.Get(typ)
		return normalizeType(typ), t, found
	}
	if cropType != "" {
		if t, ok := r.Get(cropType); ok {
			return normalizeType(cropType), t, true
		}
	}
	if t, ok := r.Get(name); ok {
		return normalizeType(name), t, true
	}
	if names != nil {
		if key, ok := names.Lookup(cropKeyPrefix, name); ok {
			typ, _ := TypeFromKey(key)
			if t, ok := r.Get(typ); ok {
				return typ, t, true
			}
		}
	}
	return "", nil, false
}
