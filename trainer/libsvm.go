package trainer

import (
	"os"

	"github.com/ewalker544/libsvm-go"
	goerrors "github.com/go-errors/errors"
	"github.com/hscells/covlearn/dataset"
	"github.com/pkg/errors"
)

var (
	libSVMTypes   = map[SVMType]int{CSVC: libSvm.C_SVC, NuSVC: libSvm.NU_SVC, OneClass: libSvm.ONE_CLASS, EpsilonSVR: libSvm.EPSILON_SVR, NuSVR: libSvm.NU_SVR}
	libSVMKernels = map[Kernel]int{Linear: libSvm.LINEAR, Poly: libSvm.POLY, RBF: libSvm.RBF, Sigmoid: libSvm.SIGMOID}
)

// LibSVM trains models with libsvm-go. The problem is packed into libsvm's sparse text format in
// a temporary file, which is removed once the solver has loaded it.
type LibSVM struct {
	// Quiet suppresses the solver's progress output.
	Quiet bool
	// NumCPU is the number of CPUs the solver may use. Values below 1 keep the library default.
	NumCPU int
	// StrictDimensions rejects problems whose samples differ in their number of features.
	StrictDimensions bool
	// TempDir is where the packed problem is written; empty uses the system default.
	TempDir string
}

// NewLibSVM creates a quiet libsvm trainer.
func NewLibSVM() LibSVM {
	return LibSVM{Quiet: true, NumCPU: -1}
}

// Train implements Trainer. A panic inside the solver is returned as an error carrying the
// stack of the panic.
func (t LibSVM) Train(problem dataset.Problem, params Parameters) (Model, error) {
	if err := Validate(problem, params); err != nil {
		return nil, err
	}
	if t.StrictDimensions {
		if err := ValidateDimensions(problem); err != nil {
			return nil, err
		}
	}

	f, err := os.CreateTemp(t.TempDir, "covlearn-*.svm")
	if err != nil {
		return nil, errors.Wrap(err, "packing problem")
	}
	defer os.Remove(f.Name())

	_, err = problem.WriteLibSVM(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "packing problem to %s", f.Name())
	}

	return t.solve(f.Name(), t.parameter(params))
}

func (t LibSVM) solve(path string, param *libSvm.Parameter) (Model, error) {
	return recoverSolver(func() (Model, error) {
		prob, err := libSvm.NewProblem(path, param)
		if err != nil {
			return nil, errors.Wrapf(err, "loading packed problem %s", path)
		}

		model := libSvm.NewModel(param)
		if err := model.Train(prob); err != nil {
			return nil, errors.Wrapf(err, "training on packed problem %s", path)
		}
		return &libSVMModel{model: model}, nil
	})
}

// recoverSolver runs solve and turns a panic into an error. The error chain holds a
// *goerrors.Error with the stack of the panic.
func recoverSolver(solve func() (Model, error)) (m Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, errors.Wrap(goerrors.Wrap(r, 2), "solver panicked")
		}
	}()
	return solve()
}

func (t LibSVM) parameter(params Parameters) *libSvm.Parameter {
	param := libSvm.NewParameter()
	param.SvmType = libSVMTypes[params.Type]
	param.KernelType = libSVMKernels[params.Kernel]
	param.Degree = params.Degree
	param.Gamma = params.Gamma
	param.Coef0 = params.Coef0
	param.Nu = params.Nu
	param.CacheSize = params.CacheSize
	param.C = params.C
	param.Eps = params.Eps
	param.P = params.P
	param.Probability = params.Probability
	param.NrWeight = len(params.Weights)
	param.WeightLabel = append([]int(nil), params.WeightLabels...)
	param.Weight = append([]float64(nil), params.Weights...)
	if t.NumCPU > 0 {
		param.NumCPU = t.NumCPU
	}
	param.QuietMode = t.Quiet
	return param
}

type libSVMModel struct {
	model *libSvm.Model
}

func (m *libSVMModel) Save(path string) error {
	if m.model == nil {
		return errors.New("model has been freed")
	}
	return m.model.Dump(path)
}

func (m *libSVMModel) Free() {
	m.model = nil
}
