package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"krishimitra/entities"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the schedule templates, including imported ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadTemplates()
		if err != nil {
			return err
		}
		return printTemplates(cmd, reg)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the task list a crop would get",
	Example: `  krishimitra preview --crop wheat --planted 2023-11-15
  krishimitra preview --crop Tomato --planted 2024-01-20 --lang hi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadTemplates()
		if err != nil {
			return err
		}
		crop, _ := cmd.Flags().GetString("crop")
		planted, _ := cmd.Flags().GetString("planted")
		lang, _ := cmd.Flags().GetString("lang")
		return preview(cmd, reg, i18n.Default(), crop, planted, lang)
	},
}

func init() {
	previewCmd.Flags().String("crop", "", "crop type or crop name in any supported language")
	previewCmd.Flags().String("planted", "", "planting date, YYYY-MM-DD")
	previewCmd.Flags().String("lang", i18n.DefaultLanguage, "label language")
	_ = previewCmd.MarkFlagRequired("crop")
	_ = previewCmd.MarkFlagRequired("planted")
}

func printTemplates(cmd *cobra.Command, reg *schedule.Registry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CROP\tTASK\tOFFSETS")
	for _, typ := range reg.Types() {
		tmpl, _ := reg.Get(typ)
		types := make([]string, 0, len(tmpl))
		for tt := range tmpl {
			types = append(types, string(tt))
		}
		sort.Strings(types)
		for _, tt := range types {
			offs := tmpl[entities.TaskType(tt)]
			parts := make([]string, len(offs))
			for i, o := range offs {
				parts[i] = fmt.Sprint(o)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", typ, tt, strings.Join(parts, ";"))
		}
	}
	return w.Flush()
}

func preview(cmd *cobra.Command, reg *schedule.Registry, cat *i18n.Catalog, crop, planted, lang string) error {
	lang, err := cat.Normalize(lang)
	if err != nil {
		return err
	}
	date, err := entities.ParseDate(planted)
	if err != nil {
		return fmt.Errorf("--planted: %w", err)
	}
	typ, tmpl, ok := reg.Resolve("", "", crop, cat)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "no schedule for %q\n", crop)
		return nil
	}
	c := &entities.Crop{CropID: typ, CropType: typ, PlantingDate: date}
	tasks := farm.GenerateTasks(c, tmpl, cat, lang)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DUE\tPHASE\tTASK\tID")
	for _, t := range tasks {
		phase := "-"
		if farm.PhaseIndex(t.Type) != -1 {
			phase = cat.T(lang, "phase_"+string(t.Type))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.DueDate, phase, t.Name, t.TaskID)
	}
	return w.Flush()
}
