package trainer

// SVMType is the formulation of the support vector machine.
type SVMType int

// SVM formulations, in libsvm order.
const (
	CSVC SVMType = iota
	NuSVC
	OneClass
	EpsilonSVR
	NuSVR
)

var svmTypeNames = []string{"c_svc", "nu_svc", "one_class", "epsilon_svr", "nu_svr"}

func (t SVMType) String() string {
	if t < 0 || int(t) >= len(svmTypeNames) {
		return "unknown"
	}
	return svmTypeNames[t]
}

// Kernel is the kernel function of the support vector machine.
type Kernel int

// Kernel functions, in libsvm order.
const (
	Linear Kernel = iota
	Poly
	RBF
	Sigmoid
)

var kernelNames = []string{"linear", "polynomial", "rbf", "sigmoid"}

func (k Kernel) String() string {
	if k < 0 || int(k) >= len(kernelNames) {
		return "unknown"
	}
	return kernelNames[k]
}

// Parameters configures a training run. Values are copied into the solver, so Parameters can be
// shared freely once built.
type Parameters struct {
	Type   SVMType
	Kernel Kernel
	Degree int
	Gamma  float64
	Coef0  float64
	Nu     float64
	// CacheSize is the kernel cache budget in MB.
	CacheSize   int
	C           float64
	Eps         float64
	P           float64
	Shrinking   bool
	Probability bool
	// WeightLabels and Weights override the cost of individual classes.
	WeightLabels []int
	Weights      []float64
}

// NewParameters returns the parameters used to learn a covariance model: a C-SVC with an RBF
// kernel. Gamma is the only tunable.
func NewParameters(gamma float64) Parameters {
	return Parameters{
		Type:        CSVC,
		Kernel:      RBF,
		Degree:      3,
		Gamma:       gamma,
		Coef0:       0,
		Nu:          0.5,
		CacheSize:   100,
		C:           1,
		Eps:         1e-3,
		P:           0.1,
		Shrinking:   true,
		Probability: false,
	}
}
