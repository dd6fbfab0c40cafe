package trainer

import (
	"math"

	"github.com/hscells/covlearn/dataset"
	"github.com/pkg/errors"
)

// ErrParameterValidation is returned when a problem and its parameters cannot be trained.
var ErrParameterValidation = errors.New("error checking SVM parameters")

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParameterValidation, format, args...)
}

// Validate checks that params are within a feasible range for the problem. The rules are those
// libsvm applies before training.
func Validate(problem dataset.Problem, params Parameters) error {
	if problem.Len() == 0 {
		return invalid("problem has no samples")
	}

	switch params.Type {
	case CSVC, NuSVC, OneClass, EpsilonSVR, NuSVR:
	default:
		return invalid("unknown svm type")
	}

	switch params.Kernel {
	case Linear, Poly, RBF, Sigmoid:
	default:
		return invalid("unknown kernel type")
	}

	if math.IsNaN(params.Gamma) {
		return invalid("gamma is not a number")
	}
	if params.Kernel != Linear && params.Gamma < 0 {
		return invalid("gamma < 0")
	}
	if params.Kernel == Poly && params.Degree < 0 {
		return invalid("degree of polynomial kernel < 0")
	}
	if params.CacheSize <= 0 {
		return invalid("cache_size <= 0")
	}
	if params.Eps <= 0 {
		return invalid("eps <= 0")
	}

	switch params.Type {
	case CSVC, EpsilonSVR, NuSVR:
		if params.C <= 0 {
			return invalid("C <= 0")
		}
	}
	switch params.Type {
	case NuSVC, OneClass, NuSVR:
		if params.Nu <= 0 || params.Nu > 1 {
			return invalid("nu <= 0 or nu > 1")
		}
	}
	if params.Type == EpsilonSVR && params.P < 0 {
		return invalid("p < 0")
	}
	if params.Type == OneClass && params.Probability {
		return invalid("one-class SVM probability output not supported yet")
	}
	if len(params.WeightLabels) != len(params.Weights) {
		return invalid("%d weight labels for %d weights", len(params.WeightLabels), len(params.Weights))
	}

	if params.Type == NuSVC {
		return checkNu(problem, params.Nu)
	}
	return nil
}

// checkNu rejects a nu that no pair of classes can satisfy.
func checkNu(problem dataset.Problem, nu float64) error {
	counts := make(map[int]int)
	var labels []int
	for _, label := range problem.Labels() {
		if _, ok := counts[label]; !ok {
			labels = append(labels, label)
		}
		counts[label]++
	}

	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			n1, n2 := float64(counts[labels[i]]), float64(counts[labels[j]])
			if nu*(n1+n2)/2 > math.Min(n1, n2) {
				return invalid("specified nu is infeasible")
			}
		}
	}
	return nil
}

// ValidateDimensions checks that every sample of the problem has the same number of features.
func ValidateDimensions(problem dataset.Problem) error {
	dims := problem.Dimensions()
	for i, d := range dims {
		if d != dims[0] {
			return invalid("vector dims: %s has %d features, %s has %d",
				problem.Samples[0].Source, dims[0], problem.Samples[i].Source, d)
		}
	}
	return nil
}
