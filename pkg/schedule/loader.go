package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"krishimitra/entities"
)

const xlsxSheet = "Schedules"

// LoadFromFiles starts from the built-in schedules and overlays rows read from a
// CSV file and an XLSX workbook. Empty paths are skipped. A crop type named in
// the files replaces its built-in template wholesale.
func LoadFromFiles(csvPath, xlsxPath string) (*Registry, error) {
	r := Defaults()
	if csvPath != "" {
		rows, err := readCSV(csvPath)
		if err != nil {
			return nil, err
		}
		if err := r.apply(csvPath, rows); err != nil {
			return nil, err
		}
	}
	if xlsxPath != "" {
		rows, err := readXLSX(xlsxPath)
		if err != nil {
			return nil, err
		}
		if err := r.apply(xlsxPath, rows); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(rd io.Reader) ([][]string, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheet := xlsxSheet
	if idx, err := x.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	return x.GetRows(sheet)
}

// apply overlays the rows of one source onto r. The first row is the header.
func (r *Registry) apply(src string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	head := rows[0]
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop_type", "crop", "croptype", "type")
	cTask := findAny("task_type", "task", "tasktype", "activity")
	cOffs := findAny("offsets", "days", "day_offsets", "offset")
	if cCrop == -1 || cTask == -1 || cOffs == -1 {
		return fmt.Errorf("%s: missing required columns. Found headers: %v. Need: crop_type, task_type, offsets", src, head)
	}

	staged := map[string]Template{}
	var order []string
	for i, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := normalizeType(get(cCrop))
		if crop == "" && get(cTask) == "" && get(cOffs) == "" {
			continue
		}
		line := i + 2
		if crop == "" {
			return fmt.Errorf("%s: row %d: empty crop type", src, line)
		}
		tt := entities.TaskType(strings.ToLower(get(cTask)))
		if !tt.Valid() {
			return fmt.Errorf("%s: row %d: unknown task type %q", src, line, get(cTask))
		}
		offs, err := parseOffsets(get(cOffs))
		if err != nil {
			return fmt.Errorf("%s: row %d: %w", src, line, err)
		}
		t, ok := staged[crop]
		if !ok {
			t = Template{}
			staged[crop] = t
			order = append(order, crop)
		}
		t[tt] = append(t[tt], offs...)
	}
	for _, crop := range order {
		r.Set(crop, staged[crop])
	}
	return nil
}

func parseOffsets(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errors.New("no offsets")
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad offset %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
