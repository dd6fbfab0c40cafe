// Package covlearn learns an SVM covariance model from a manifest of category directories.
//
// Each line of the manifest names a directory of covariance files belonging to one category.
// Categories are labelled 1, 2, ... in manifest order, every covariance file becomes a sample of
// its category, and the samples are handed to an SVM trainer. The trained model is written to
// disk in libsvm's model format.
package covlearn

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hscells/covlearn/category"
	"github.com/hscells/covlearn/config"
	"github.com/hscells/covlearn/dataset"
	"github.com/hscells/covlearn/feature"
	"github.com/hscells/covlearn/trainer"
)

// Learner runs the whole pipeline: manifest, samples, training and persistence.
type Learner struct {
	Builder   dataset.Builder
	Trainer   trainer.Trainer
	ModelPath string
	Logger    *log.Logger
}

// NewLearner creates a learner from a configuration, training with libsvm.
func NewLearner(c config.Config) (Learner, error) {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	var parser feature.Parser = feature.FileParser{}
	switch {
	case len(c.CacheDir) > 0:
		parser = feature.NewCachedParser(parser, feature.NewDiskCache(c.CacheDir))
	case c.CacheSize > 0:
		cache, err := feature.NewLRUCache(c.CacheSize)
		if err != nil {
			return Learner{}, err
		}
		parser = feature.NewCachedParser(parser, cache)
	}

	options := []dataset.BuilderOption{dataset.WithParser(parser), dataset.WithLogger(logger)}
	if c.Progress {
		options = append(options, dataset.WithProgress(os.Stderr))
	}

	lib := trainer.NewLibSVM()
	lib.Quiet = c.Quiet
	lib.NumCPU = c.NumCPU
	lib.StrictDimensions = c.StrictDimensions

	return Learner{
		Builder:   dataset.NewBuilder(options...),
		Trainer:   lib,
		ModelPath: c.ModelPath,
		Logger:    logger,
	}, nil
}

// Learn trains a model with the given gamma from the categories listed in the manifest and
// saves it to the model path. The returned report describes the run even when it fails. The
// trainer is never invoked when no samples could be gathered.
func (l Learner) Learn(gamma float64, manifest string) (Report, error) {
	r := Report{
		RunID:     uuid.New().String(),
		Gamma:     gamma,
		Manifest:  manifest,
		ModelPath: l.ModelPath,
		Started:   time.Now(),
	}
	l.logf("run %s: gamma %v, manifest %s", r.RunID, gamma, manifest)

	err := l.learn(&r)
	r.Finished = time.Now()
	if err != nil {
		r.Error = err.Error()
		l.logf("run %s failed: %v", r.RunID, err)
		return r, err
	}
	l.logf("run %s: model saved to %s", r.RunID, l.ModelPath)
	return r, nil
}

func (l Learner) learn(r *Report) error {
	categories, err := category.Load(r.Manifest)
	if err != nil {
		return err
	}

	groups := l.Builder.Assemble(categories)
	r.addGroups(groups)

	problem, err := dataset.Pack(groups)
	if err != nil {
		return err
	}
	r.Summary = problem.Summary()
	l.logf("training on %d samples in %d classes", r.Summary.Samples, len(r.Summary.Classes))

	model, err := l.Trainer.Train(problem, trainer.NewParameters(r.Gamma))
	if err != nil {
		return err
	}
	defer model.Free()

	return trainer.Save(model, l.ModelPath)
}

func (l Learner) logf(format string, v ...interface{}) {
	if l.Logger != nil {
		l.Logger.Printf(format, v...)
	}
}
