// Package dataset assembles the labelled training problem from the categories of a manifest.
package dataset

import (
	"bufio"
	"io"
	"sort"

	"github.com/hscells/covlearn/category"
	"github.com/hscells/covlearn/feature"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoTrainingData is returned when no samples could be gathered from any category.
var ErrNoTrainingData = errors.New("no training data learned")

// Sample is a feature vector bound to the label of the category it was read from.
type Sample struct {
	Label  int
	Source string
	Vector feature.Vector
}

// Group is the outcome of reading one category.
type Group struct {
	Category category.Category
	Samples  []Sample
	// Skipped lists the files of the category that could not be read.
	Skipped []string
	// Err is set when the category directory itself could not be read.
	Err error
}

// Problem is the ordered collection of samples handed to a trainer. Trainers must treat it as
// read only.
type Problem struct {
	Samples []Sample
}

// Pack flattens the groups, in order, into a problem. It fails with ErrNoTrainingData when the
// groups hold no samples.
func Pack(groups []Group) (Problem, error) {
	n := 0
	for _, g := range groups {
		n += len(g.Samples)
	}
	if n == 0 {
		return Problem{}, errors.Wrapf(ErrNoTrainingData, "%d categories", len(groups))
	}

	samples := make([]Sample, 0, n)
	for _, g := range groups {
		samples = append(samples, g.Samples...)
	}
	return Problem{Samples: samples}, nil
}

// Len is the number of samples in the problem.
func (p Problem) Len() int {
	return len(p.Samples)
}

// Labels returns the label of every sample in order.
func (p Problem) Labels() []int {
	labels := make([]int, len(p.Samples))
	for i, s := range p.Samples {
		labels[i] = s.Label
	}
	return labels
}

// Classes returns the distinct labels of the problem in ascending order.
func (p Problem) Classes() []int {
	labels := sort.IntSlice(p.Labels())
	sort.Sort(labels)
	return labels[:set.Uniq(labels)]
}

// Dimensions returns the number of features of every sample in order.
func (p Problem) Dimensions() []int {
	dims := make([]int, len(p.Samples))
	for i, s := range p.Samples {
		dims[i] = s.Vector.Dimension()
	}
	return dims
}

// WriteLibSVM writes the problem in LIBSVM's sparse text format, one sample per line.
func (p Problem) WriteLibSVM(writer io.Writer) (int, error) {
	w := bufio.NewWriter(writer)
	total := 0
	for _, s := range p.Samples {
		n, err := s.Vector.WriteLibSVM(w, s.Label)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, w.Flush()
}

// Summary describes the shape of a problem.
type Summary struct {
	Samples       int     `json:"samples"`
	Classes       []int   `json:"classes"`
	MinDimension  int     `json:"min_dimension"`
	MaxDimension  int     `json:"max_dimension"`
	MeanDimension float64 `json:"mean_dimension"`
	StdDimension  float64 `json:"std_dimension"`
}

// Summary computes the summary of the problem.
func (p Problem) Summary() Summary {
	if p.Len() == 0 {
		return Summary{}
	}

	dims := make([]float64, p.Len())
	for i, d := range p.Dimensions() {
		dims[i] = float64(d)
	}

	s := Summary{
		Samples:       p.Len(),
		Classes:       p.Classes(),
		MinDimension:  int(floats.Min(dims)),
		MaxDimension:  int(floats.Max(dims)),
		MeanDimension: stat.Mean(dims, nil),
	}
	if len(dims) > 1 {
		s.StdDimension = stat.StdDev(dims, nil)
	}
	return s
}
