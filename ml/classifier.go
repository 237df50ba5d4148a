// ml/classifier.go
package ml

// Classifier is the serving-side contract: a fixed-width numeric matrix in,
// one 0/1 label per row out, in row order.
type Classifier interface {
	Predict(X [][]float64) ([]int, error)
}

// TrainableClassifier adds the training side. posWeight is a scalar weight
// multiplier applied to positive-class examples, used to compensate for class
// imbalance (delays are the minority class).
type TrainableClassifier interface {
	Classifier
	Fit(X [][]float64, y []int, posWeight float64) error
}

// Params are the hyperparameters of the boosted-tree learner. Fits are
// deterministic given equal Params and equal inputs.
type Params struct {
	Seed           int64
	LearningRate   float64
	NumRounds      int
	MaxDepth       int
	Lambda         float64
	MinChildWeight float64
}

// DefaultParams returns the frozen defaults used in production training.
func DefaultParams() Params {
	return Params{
		Seed:           1,
		LearningRate:   0.01,
		NumRounds:      100,
		MaxDepth:       4,
		Lambda:         1.0,
		MinChildWeight: 1.0,
	}
}
