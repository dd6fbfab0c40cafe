package covlearn_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/covlearn"
	"github.com/hscells/covlearn/category"
	"github.com/hscells/covlearn/config"
	"github.com/hscells/covlearn/dataset"
	"github.com/hscells/covlearn/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

type fakeModel struct {
	saveErr error
	saved   string
	freed   int
}

func (m *fakeModel) Save(path string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = path
	return nil
}

func (m *fakeModel) Free() { m.freed++ }

type fakeTrainer struct {
	model    *fakeModel
	err      error
	calls    int
	problem  dataset.Problem
	received trainer.Parameters
}

func (f *fakeTrainer) Train(problem dataset.Problem, params trainer.Parameters) (trainer.Model, error) {
	f.calls++
	f.problem = problem
	f.received = params
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

// fixture writes the catA/catB layout and a manifest listing the given directories.
func fixture(t *testing.T, dirs ...string) (root, manifest string) {
	t.Helper()
	root = t.TempDir()
	files := map[string]string{
		"catA/one.cov": "1 2 3",
		"catA/two.cov": "4 5 6",
		"catB/one.cov": "7 8",
	}
	for name, contents := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}

	var lines []string
	for _, d := range dirs {
		lines = append(lines, filepath.Join(root, d), "")
	}
	manifest = filepath.Join(root, "manifest.txt")
	require.NoError(t, os.WriteFile(manifest, []byte(strings.Join(lines, "\n")), 0644))
	return root, manifest
}

func learner(root string, tr trainer.Trainer) covlearn.Learner {
	return covlearn.Learner{
		Builder:   dataset.NewBuilder(dataset.WithLogger(quiet)),
		Trainer:   tr,
		ModelPath: filepath.Join(root, "model.txt"),
		Logger:    quiet,
	}
}

func TestLearn(t *testing.T) {
	root, manifest := fixture(t, "catA", "catB")
	ft := &fakeTrainer{model: &fakeModel{}}

	r, err := learner(root, ft).Learn(0.5, manifest)
	require.NoError(t, err)

	assert.Equal(t, 1, ft.calls)
	assert.Equal(t, trainer.NewParameters(0.5), ft.received)
	assert.Equal(t, []int{1, 1, 2}, ft.problem.Labels())
	assert.Equal(t, []int{3, 3, 2}, ft.problem.Dimensions())
	assert.Equal(t, filepath.Join(root, "model.txt"), ft.model.saved)
	assert.Equal(t, 1, ft.model.freed)

	assert.NotEmpty(t, r.RunID)
	assert.Empty(t, r.Error)
	require.Len(t, r.Categories, 2)
	assert.Equal(t, 2, r.Categories[0].Samples)
	assert.Equal(t, 2, r.Categories[1].Label)
	assert.Equal(t, 3, r.Summary.Samples)
}

func TestLearnMissingCategoryKeepsLabels(t *testing.T) {
	root, manifest := fixture(t, "catA", "missing", "catB")
	ft := &fakeTrainer{model: &fakeModel{}}

	r, err := learner(root, ft).Learn(1, manifest)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 3}, ft.problem.Labels())
	assert.NotEmpty(t, r.Categories[1].Error)
}

func TestLearnFatalErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		ft := &fakeTrainer{model: &fakeModel{}}
		_, err := learner(t.TempDir(), ft).Learn(1, filepath.Join(t.TempDir(), "nope.txt"))
		assert.True(t, errors.Is(err, category.ErrManifestOpen))
		assert.Zero(t, ft.calls)
	})

	t.Run("empty manifest", func(t *testing.T) {
		root, manifest := fixture(t)
		ft := &fakeTrainer{model: &fakeModel{}}
		_, err := learner(root, ft).Learn(1, manifest)
		assert.True(t, errors.Is(err, dataset.ErrNoTrainingData))
		assert.Zero(t, ft.calls)
	})

	t.Run("sole category missing", func(t *testing.T) {
		root, manifest := fixture(t, "missing")
		ft := &fakeTrainer{model: &fakeModel{}}
		r, err := learner(root, ft).Learn(1, manifest)
		assert.True(t, errors.Is(err, dataset.ErrNoTrainingData))
		assert.Zero(t, ft.calls)
		assert.NotEmpty(t, r.Error)
	})

	t.Run("parameter validation", func(t *testing.T) {
		root, manifest := fixture(t, "catA", "catB")
		ft := &fakeTrainer{err: trainer.ErrParameterValidation}
		_, err := learner(root, ft).Learn(-1, manifest)
		assert.True(t, errors.Is(err, trainer.ErrParameterValidation))
		assert.Equal(t, 1, ft.calls)
		assert.NoFileExists(t, filepath.Join(root, "model.txt"))
	})

	t.Run("save failure frees model", func(t *testing.T) {
		root, manifest := fixture(t, "catA", "catB")
		model := &fakeModel{saveErr: errors.New("read-only file system")}
		ft := &fakeTrainer{model: model}
		_, err := learner(root, ft).Learn(1, manifest)
		assert.True(t, errors.Is(err, trainer.ErrModelSave))
		assert.Equal(t, 1, model.freed)
	})
}

func TestLearnWithLibSVM(t *testing.T) {
	root, manifest := fixture(t, "catA", "catB")
	c := config.Default()
	c.ModelPath = filepath.Join(root, "model.txt")
	c.CacheSize = 16

	l, err := covlearn.NewLearner(c)
	require.NoError(t, err)
	l.Logger = quiet
	l.Builder.Logger = quiet

	_, err = l.Learn(0.5, manifest)
	require.NoError(t, err)
	assert.FileExists(t, c.ModelPath)
}

func TestLearnRejectedByLibSVM(t *testing.T) {
	root, manifest := fixture(t, "catA", "catB")
	c := config.Default()
	c.ModelPath = filepath.Join(root, "model.txt")

	l, err := covlearn.NewLearner(c)
	require.NoError(t, err)
	l.Logger = quiet
	l.Builder.Logger = quiet

	_, err = l.Learn(-1, manifest)
	assert.True(t, errors.Is(err, trainer.ErrParameterValidation))
	assert.NoFileExists(t, c.ModelPath)
}

func TestReportWriteJSON(t *testing.T) {
	root, manifest := fixture(t, "catA", "catB")
	r, err := learner(root, &fakeTrainer{model: &fakeModel{}}).Learn(0.5, manifest)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, r.WriteJSON(&b))

	var decoded covlearn.Report
	require.NoError(t, json.Unmarshal(b.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, r.Categories, decoded.Categories)
	assert.Equal(t, r.Summary, decoded.Summary)
}
