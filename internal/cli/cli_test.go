package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t    *testing.T
	home string
	db   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return &harness{t: t, home: home, db: filepath.Join(home, "test.db")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--db", h.db}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "cubestate %s", strings.Join(args, " "))
	return out
}

func scrambledState(t *testing.T, seq string) string {
	t.Helper()
	s := cubestate.NewSolved()
	require.NoError(t, s.ApplySequence(seq))
	return s.SolverString()
}

var idPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "cubestate 0.1.0\n", h.mustRun("version"))
}

func TestApply(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("apply", "R U R' U'")
	assert.Contains(t, out, "State: "+scrambledState(t, "R U R' U'"))
	assert.Contains(t, out, "Status: valid")

	out = h.mustRun("apply", "U R U' R'", "--from", scrambledState(t, "R U R' U'"))
	assert.Contains(t, out, "State: "+cubestate.NewSolved().SolverString())
	assert.Contains(t, out, "Status: solved")
}

func TestApplyRejectsBadSequence(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("apply", "R U X")
	assert.ErrorIs(t, err, cubestate.ErrInvalidNotation)

	_, err = h.run("apply", "R", "--from", "nonsense")
	assert.ErrorIs(t, err, cubestate.ErrInvalidStateString)
}

func TestValidate(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("validate", "solved")
	assert.Contains(t, out, "valid (solved)")
	assert.Contains(t, out, "white=9")

	out = h.mustRun("validate", scrambledState(t, "F2 L"))
	assert.True(t, strings.HasSuffix(out, "valid\n"), out)

	_, err := h.run("validate", "blank")
	assert.ErrorIs(t, err, cubestate.ErrIncomplete)

	unbalanced := "D" + cubestate.NewSolved().SolverString()[1:]
	_, err = h.run("validate", unbalanced)
	assert.ErrorIs(t, err, cubestate.ErrColorImbalance)
}

func TestShowWithoutSavedCubes(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.mustRun("show"), "No saved cubes")
	assert.Contains(t, h.mustRun("show", "blank"), "Empty stickers: 48")
}

func TestCubesLifecycle(t *testing.T) {
	h := newHarness(t)
	state := scrambledState(t, "R U")

	id := strings.TrimSpace(h.mustRun("cubes", "save", state, "--name", "two moves"))
	require.Regexp(t, idPattern, id)

	list := h.mustRun("cubes", "list")
	assert.Contains(t, list, id)
	assert.Contains(t, list, "two moves")
	assert.Contains(t, list, "Solves recorded: 0")

	show := h.mustRun("show")
	assert.Contains(t, show, "two moves")
	assert.Contains(t, show, "State: "+state)

	h.mustRun("cubes", "rename", id, "renamed")
	assert.Contains(t, h.mustRun("cubes", "show", id), "renamed")

	h.mustRun("cubes", "delete", id)
	assert.Contains(t, h.mustRun("cubes", "list"), "No saved cubes")

	_, err := h.run("cubes", "delete", id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = h.run("cubes", "show", id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSolveSearch(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("solve", scrambledState(t, "R U"), "--depth", "3")
	assert.Contains(t, out, "Solution (2 moves): U' R'")
	assert.Contains(t, out, "Length: 2 HTM, 2 QTM")
	assert.NotContains(t, out, "Say:")
	assert.Contains(t, out, "move  2: Solved")

	out = h.mustRun("solve", scrambledState(t, "R U"), "--depth", "3", "--spoken")
	assert.Contains(t, out, "Say: T rotate left, R down")

	assert.Contains(t, h.mustRun("solve", "solved"), "Already solved.")

	_, err := h.run("solve", "blank")
	assert.Error(t, err)

	_, err = h.run("solve")
	assert.Error(t, err)
}

func TestSolveHistoryAndSave(t *testing.T) {
	h := newHarness(t)
	scramble := "F R U' R' U' R U R' F' R U R' U' R' F R F'"
	state := scrambledState(t, scramble)

	id := strings.TrimSpace(h.mustRun("cubes", "save", state))
	out := h.mustRun("solve", "--id", id, "--history", scramble, "--save")
	assert.Contains(t, out, "Solution (17 moves)")
	assert.Contains(t, out, "for cube "+id)

	show := h.mustRun("cubes", "show", id)
	assert.Contains(t, show, "undo")
	assert.Contains(t, show, "17 moves")
	assert.Contains(t, h.mustRun("cubes", "list"), "Solves recorded: 1")

	_, err := h.run("solve", state, "--history", "R U")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	src := newHarness(t)
	archivePath := filepath.Join(src.home, "cubes.jsonl.zst")

	first := strings.TrimSpace(src.mustRun("cubes", "save", scrambledState(t, "R"), "--name", "first"))
	src.mustRun("solve", "--id", first, "--save")
	src.mustRun("cubes", "save", "blank", "--name", "second")

	src.mustRun("export", "-o", archivePath)

	dst := &harness{t: t, home: src.home, db: filepath.Join(src.home, "other.db")}
	assert.Equal(t, "Imported 2 cubes\n", dst.mustRun("import", archivePath))

	list := dst.mustRun("cubes", "list")
	assert.Contains(t, list, "first")
	assert.Contains(t, list, "second")
	assert.Contains(t, list, "Solves recorded: 1")

	_, err := dst.run("import", filepath.Join(src.home, "missing.zst"))
	assert.Error(t, err)
}

func TestEditedCubeKeepsSolveWithItsStart(t *testing.T) {
	h := newHarness(t)
	scrambled := scrambledState(t, "R U")

	id := strings.TrimSpace(h.mustRun("cubes", "save", scrambled, "--name", "edited"))
	h.mustRun("solve", "--id", id, "--save")

	db, err := storage.Open(h.db)
	require.NoError(t, err)
	edited := cubestate.NewSolved()
	edited.ApplyMove(cubestate.F)
	require.NoError(t, storage.NewCubeRepository(db).Update(id, edited))
	require.NoError(t, db.Close())

	session, title, err := loadSession(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", title)
	assert.Equal(t, scrambled, session.Origin().SolverString())
	require.NoError(t, session.JumpTo(session.Len()))
	assert.True(t, session.State().IsSolved(), "the saved solution ends solved from its own start")

	archivePath := filepath.Join(h.home, "edited.jsonl.zst")
	h.mustRun("export", "--id", id, "-o", archivePath)

	dst := &harness{t: t, home: h.home, db: filepath.Join(h.home, "other.db")}
	assert.Equal(t, "Imported 1 cubes\n", dst.mustRun("import", archivePath))
	list := dst.mustRun("cubes", "list")
	assert.Contains(t, list, "Solves recorded: 0")
}

func TestExportReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this system")
	}
	h := newHarness(t)
	h.mustRun("cubes", "save", scrambledState(t, "R"), "--name", "full")

	_, err := h.run("export", "-o", "/dev/full")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("--config", filepath.Join(h.home, "missing.yaml"), "version")
	assert.Error(t, err)
}

func TestParseState(t *testing.T) {
	s, err := parseState("solved")
	require.NoError(t, err)
	assert.True(t, s.IsSolved())

	s, err = parseState("blank")
	require.NoError(t, err)
	assert.Equal(t, 48, s.EmptyCount())

	_, err = parseState("UUU")
	assert.True(t, errors.Is(err, cubestate.ErrInvalidStateString))
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	h.mustRun("cubes", "save", "solved")

	out := h.mustRun("status")
	assert.Contains(t, out, h.db)
	assert.Contains(t, out, "schema v3")
	assert.Contains(t, out, "Saved cubes: 1")
	assert.Contains(t, out, "Total solves: 0")
	assert.Contains(t, out, "No stored settings")
	assert.Contains(t, out, "Solver: depth 7, timeout 30s")
}

func TestAnalyzeSequence(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("analyze", "R U R U R U R R' F2")
	assert.Contains(t, out, "Length: 9 HTM, 10 QTM")
	assert.Contains(t, out, "cancel  7-8  R R'")
	assert.Contains(t, out, "repeat  1-6  (R U) x3")
	assert.Contains(t, out, "x3   R U R")

	_, err := h.run("analyze")
	assert.Error(t, err)
	_, err = h.run("analyze", "R X")
	assert.Error(t, err)
}

func TestAnalyzeSolvesJSON(t *testing.T) {
	h := newHarness(t)
	scramble := "R U R' U' R U R' U'"
	h.mustRun("solve", scrambledState(t, scramble), "--history", scramble, "--save")
	h.mustRun("solve", scrambledState(t, "F R U R' U'"), "--history", "F R U R' U'", "--save")

	out := h.mustRun("analyze", "--all", "--json", "--min", "4", "--max", "4")
	var report struct {
		Sources int                        `json:"sources"`
		Solves  map[string]json.RawMessage `json:"solves"`
		NGrams  map[string][]struct {
			Sequence []string `json:"sequence"`
			Count    int      `json:"count"`
		} `json:"ngrams"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Sources)
	assert.Len(t, report.Solves, 2)
	require.NotEmpty(t, report.NGrams["4"])
	assert.Equal(t, []string{"U", "R", "U'", "R'"}, report.NGrams["4"][0].Sequence)
	assert.Equal(t, 3, report.NGrams["4"][0].Count)
}
