package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/entities"
	"krishimitra/pkg/i18n"
)

func TestDefaults(t *testing.T) {
	r := Defaults()
	assert.Equal(t, []string{"sugarcane", "tomato", "wheat"}, r.Types())

	wheat, ok := r.Get("wheat")
	require.True(t, ok)
	assert.Equal(t, 13, wheat.Count())
	assert.Equal(t, []int{-7}, wheat[entities.TaskSoilPreparation])

	cane, _ := r.Get("sugarcane")
	assert.Equal(t, 18, cane.Count())
	tomato, _ := r.Get("tomato")
	assert.Equal(t, 15, tomato.Count())
}

func TestGetReturnsCopy(t *testing.T) {
	r := Defaults()
	a, _ := r.Get("wheat")
	a[entities.TaskSowing][0] = 99
	b, _ := r.Get("wheat")
	assert.Equal(t, []int{0}, b[entities.TaskSowing])
}

func TestSetDedupesOffsets(t *testing.T) {
	r := NewRegistry()
	r.Set(" Rice ", Template{entities.TaskIrrigation: {20, 10, 20}})
	got, ok := r.Get("rice")
	require.True(t, ok)
	assert.Equal(t, []int{10, 20}, got[entities.TaskIrrigation])
}

func TestKeyRoundTrip(t *testing.T) {
	assert.Equal(t, "crop_name_wheat", KeyFor("Wheat"))
	typ, ok := TypeFromKey("crop_name_tomato")
	require.True(t, ok)
	assert.Equal(t, "tomato", typ)

	_, ok = TypeFromKey("task_name_sowing")
	assert.False(t, ok)
	_, ok = TypeFromKey("crop_name_")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	r := Defaults()
	cat := i18n.Default()

	tests := []struct {
		name     string
		nameKey  string
		cropType string
		display  string
		wantType string
		found    bool
	}{
		{"predefined by key", "crop_name_wheat", "", "गेहूँ", "wheat", true},
		{"explicit type", "", "tomato", "My patch", "tomato", true},
		{"english name", "", "", " Sugarcane ", "sugarcane", true},
		{"hindi name", "", "", "टमाटर", "tomato", true},
		{"free form", "", "", "Dragon fruit", "", false},
		{"unknown key", "crop_name_rice", "", "Rice", "rice", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, tmpl, ok := r.Resolve(tt.nameKey, tt.cropType, tt.display, cat)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantType, typ)
			if ok {
				assert.NotZero(t, tmpl.Count())
			}
		})
	}
}
