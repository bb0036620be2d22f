package attrition

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/attrition/engine"
	"github.com/spektr-org/attrition/helpers"
	"github.com/spektr-org/attrition/internal/testutil"
	"github.com/spektr-org/attrition/schema"
)

var roles = []string{"Sales Executive", "Research Scientist", "Laboratory Technician", "Manager"}

// syntheticCSV builds n rows in the IBM HR column layout.
func syntheticCSV(n int) string {
	var b strings.Builder
	b.WriteString("Age,Attrition,DistanceFromHome,EmployeeNumber,JobRole,JobSatisfaction,OverTime,YearsAtCompany\n")
	for i := 0; i < n; i++ {
		attrition := "No"
		if i%4 == 0 {
			attrition = "Yes"
		}
		overtime := "No"
		if i%3 == 0 {
			overtime = "Yes"
		}
		tenure := fmt.Sprint(i % 15)
		if i%11 == 5 {
			tenure = ""
		}
		fmt.Fprintf(&b, "%d,%s,%d,%d,%s,%d,%s,%s\n",
			25+i%30, attrition, 1+i%29, 1000+i, roles[i%len(roles)], 1+i%4, overtime, tenure)
	}
	return b.String()
}

func setup(t *testing.T, csv string) schema.Config {
	t.Helper()
	cfg, err := schema.Default(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DataPath), 0o755))
	require.NoError(t, os.WriteFile(cfg.DataPath, []byte(csv), 0o644))
	return cfg
}

func listPNG(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func expectedFiles(cfg schema.Config) []string {
	files := []string{cfg.Files.H1, cfg.Files.H2, cfg.Files.H3, cfg.Files.H4, cfg.Files.H5, cfg.Files.H6}
	sort.Strings(files)
	return files
}

func TestRun(t *testing.T) {
	cfg := setup(t, syntheticCSV(60))

	err := Run(cfg, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, expectedFiles(cfg), listPNG(t, cfg.OutputDir))
	for _, f := range expectedFiles(cfg) {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, f))
		require.NoError(t, err)
		assert.Positive(t, info.Size(), f)
	}
}

func TestRun_Twice(t *testing.T) {
	cfg := setup(t, syntheticCSV(60))
	logger := testutil.NewTestLogger(t)

	require.NoError(t, Run(cfg, WithLogger(logger)))
	require.NoError(t, Run(cfg, WithLogger(logger)))

	assert.Equal(t, expectedFiles(cfg), listPNG(t, cfg.OutputDir))
}

func TestRun_CreatesNestedOutputDir(t *testing.T) {
	cfg := setup(t, syntheticCSV(20))
	_, err := os.Stat(cfg.OutputDir)
	require.True(t, os.IsNotExist(err))

	var saved []string
	err = Run(cfg, WithLogger(testutil.NewTestLogger(t)), WithSaveFunc(func(c *engine.ChartConfig, path string, _ float64) error {
		saved = append(saved, c.ID)
		return nil
	}))
	require.NoError(t, err)

	assert.DirExists(t, cfg.OutputDir)
	assert.Equal(t, []string{"H1", "H2", "H3", "H4", "H5", "H6"}, saved)
}

func TestRun_NotFound(t *testing.T) {
	cfg, err := schema.Default(t.TempDir())
	require.NoError(t, err)

	err = Run(cfg, WithLogger(testutil.NewTestLogger(t)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, helpers.ErrDataNotFound))
	assert.Contains(t, err.Error(), cfg.DataPath)
}

func TestRun_MissingColumn(t *testing.T) {
	csv := strings.Replace(syntheticCSV(20), "JobRole", "Department", 1)
	cfg := setup(t, csv)

	err := Run(cfg, WithLogger(testutil.NewTestLogger(t)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrValidation))

	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Poste"}, verr.Missing)

	assert.Empty(t, listPNG(t, cfg.OutputDir), "no figure is written before validation passes")
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	cfg := setup(t, syntheticCSV(20))
	boom := errors.New("disk full")

	var saved []string
	err := Run(cfg, WithLogger(testutil.NewTestLogger(t)), WithSaveFunc(func(c *engine.ChartConfig, _ string, _ float64) error {
		if c.ID == "H3" {
			return boom
		}
		saved = append(saved, c.ID)
		return nil
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "H3")
	assert.Equal(t, []string{"H1", "H2"}, saved)
}

func TestRun_EmptyGroupHalts(t *testing.T) {
	csv := strings.ReplaceAll(syntheticCSV(20), ",Yes,", ",No,")
	cfg := setup(t, csv)

	var saved []string
	err := Run(cfg, WithLogger(testutil.NewTestLogger(t)), WithSaveFunc(func(c *engine.ChartConfig, _ string, _ float64) error {
		saved = append(saved, c.ID)
		return nil
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrEmptyGroup)
	assert.Equal(t, []string{"H1"}, saved)
}

func TestSuccessMessage(t *testing.T) {
	cfg, err := schema.Default("/srv/report")
	require.NoError(t, err)

	msg := SuccessMessage(cfg)
	assert.Contains(t, msg, cfg.OutputDir)
	assert.False(t, strings.Contains(msg, "\n"))
}
