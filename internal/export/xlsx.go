package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/udisondev/essence/internal/simulation"
)

const summarySheet = "Summary"

var levelHeader = []string{
	"Level", "Found", "Reused", "DPS", "Avg Damage", "Hit %", "Attacks/s",
	"Crit %", "Bleed DPS", "Mana Regen", "Mana/s", "Attack Skill", "Supports", "Items",
}

// XLSX writes one sheet per result plus a summary sheet to path.
func XLSX(path string, results []*simulation.Result) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}

	summary := []any{"Config", "Name", "Run", "Levels", "From Cache", "Best DPS"}
	if err := f.SetSheetRow(summarySheet, "A1", &summary); err != nil {
		return err
	}
	_ = f.SetCellStyle(summarySheet, "A1", "F1", headerStyle)

	used := map[string]bool{summarySheet: true}
	for i, res := range results {
		sheet := sheetName(res.ConfigID, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		best, err := writeLevels(f, sheet, res, headerStyle, pctStyle)
		if err != nil {
			return fmt.Errorf("writing config %q: %w", res.ConfigID, err)
		}

		row := []any{
			res.ConfigID,
			res.ConfigName,
			res.RunID,
			fmt.Sprintf("%d-%d", res.StartLevel, res.EndLevel),
			res.FromCache,
			best,
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "C", 20)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeLevels(f *excelize.File, sheet string, res *simulation.Result, headerStyle, pctStyle int) (float64, error) {
	header := make([]any, len(levelHeader))
	for i, h := range levelHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(levelHeader))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	best := 0.0
	for i, lr := range res.Levels {
		st := lr.Stats
		if lr.Found {
			best = max(best, st.DPS)
		}
		row := []any{
			lr.Level,
			lr.Found,
			lr.Reused,
			st.DPS,
			st.AvgDamage,
			st.HitChance,
			st.AttackSpeed,
			st.CritChance,
			st.BleedDPS,
			st.ManaRegen,
			st.ManaPerSecond(),
			lr.Loadout.AttackSkill,
			strings.Join(lr.Loadout.Supports, ", "),
			formatItems(lr),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return 0, err
		}
	}

	if n := len(res.Levels); n > 0 {
		_ = f.SetCellStyle(sheet, "F2", fmt.Sprintf("F%d", n+1), pctStyle)
		_ = f.SetCellStyle(sheet, "H2", fmt.Sprintf("H%d", n+1), pctStyle)
	}
	_ = f.SetColWidth(sheet, "L", "N", 30)
	return best, nil
}

func formatItems(lr simulation.LevelResult) string {
	parts := make([]string, 0, len(lr.Loadout.Items))
	for _, slot := range lr.Loadout.Slots() {
		parts = append(parts, slot+": "+strings.Join(lr.Loadout.Items[slot], ", "))
	}
	return strings.Join(parts, "; ")
}

// sheetName makes a unique sheet name within Excel's 31 character limit.
func sheetName(id string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, id)
	if base == "" {
		base = "config"
	}
	if len(base) > 31 {
		base = base[:31]
	}

	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = base[:min(len(base), 31-len(suffix))] + suffix
	}
	used[name] = true
	return name
}
