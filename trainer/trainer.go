// Package trainer is the boundary to the SVM solver. It turns a training problem and its
// parameters into a model, and persists models to disk.
package trainer

import (
	"github.com/hscells/covlearn/dataset"
	"github.com/pkg/errors"
)

// ErrModelSave is returned when a trained model cannot be written.
var ErrModelSave = errors.New("save SVM model failed")

// Model is a trained model. Free must be called once the model is no longer needed, whether or
// not it was saved.
type Model interface {
	Save(path string) error
	Free()
}

// Trainer learns a model from a problem. Implementations validate the parameters against the
// problem first and return an error wrapping ErrParameterValidation when they are infeasible.
type Trainer interface {
	Train(problem dataset.Problem, params Parameters) (Model, error)
}

// Save writes the model to path.
func Save(model Model, path string) error {
	if err := model.Save(path); err != nil {
		return errors.Wrapf(ErrModelSave, "%s: %v", path, err)
	}
	return nil
}
