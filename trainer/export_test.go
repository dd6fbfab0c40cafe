package trainer

// RecoverSolver exposes recoverSolver to the external tests.
var RecoverSolver = recoverSolver
