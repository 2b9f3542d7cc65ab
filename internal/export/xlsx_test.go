package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/udisondev/essence/internal/calc"
	"github.com/udisondev/essence/internal/module"
	"github.com/udisondev/essence/internal/simulation"
)

func TestXLSX(t *testing.T) {
	results := []*simulation.Result{{
		ConfigID:   "phys",
		ConfigName: "Physical",
		RunID:      "run-1",
		StartLevel: 1,
		EndLevel:   2,
		Levels: []simulation.LevelResult{
			{Level: 1, Found: true, Stats: calc.Stats{DPS: 4.5}, Loadout: module.Loadout{
				AttackSkill: "Slash",
				Supports:    []string{"Brutality"},
				Items:       map[string][]string{"weapon": {"wpnPhys1"}, "armour": {"armRegen1"}},
			}},
			{Level: 2, Found: true, Reused: true, Stats: calc.Stats{DPS: 6}},
		},
	}}

	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	require.NoError(t, XLSX(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, "phys"}, f.GetSheetList())

	v, err := f.GetCellValue(summarySheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "6", v)

	v, err = f.GetCellValue("phys", "L2")
	require.NoError(t, err)
	assert.Equal(t, "Slash", v)

	v, err = f.GetCellValue("phys", "N2")
	require.NoError(t, err)
	assert.Equal(t, "armour: armRegen1; weapon: wpnPhys1", v)
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{summarySheet: true}

	assert.Equal(t, "a_b", sheetName("a/b", used))
	assert.Equal(t, "a_b~2", sheetName("a:b", used))
	assert.Equal(t, "Summary~2", sheetName(summarySheet, used))

	long := sheetName(strings.Repeat("x", 40), used)
	assert.Len(t, long, 31)
	again := sheetName(strings.Repeat("x", 40), used)
	assert.Len(t, again, 31)
	assert.NotEqual(t, long, again)
}
