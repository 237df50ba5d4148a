// ml/boosted.go
package ml

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotTrained = errors.New("classifier has not been trained")
	ErrEmptyInput = errors.New("training input is empty")
)

// BoostedTrees is a gradient-boosted decision-tree classifier for binary
// targets, trained with second-order (Newton) updates on logistic loss. It is
// the in-repo implementation of the TrainableClassifier contract; everything
// outside this package interacts with it only through Fit/Predict and the
// Marshal/Unmarshal blob.
type BoostedTrees struct {
	Params      Params
	NumFeatures int
	Trees       []*TreeNode
}

// TreeNode is one node of a regression tree. Leaf nodes carry the output
// value (already scaled by the learning rate); internal nodes split on
// feature <= Threshold going left.
type TreeNode struct {
	Leaf      bool
	Value     float64
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
}

func NewBoostedTrees(p Params) *BoostedTrees {
	return &BoostedTrees{Params: p}
}

// Fit trains NumRounds trees on X/y. Positive-class rows get their gradient
// and hessian scaled by posWeight. Tree construction is greedy and exact over
// the feature columns in index order, so the result is deterministic for
// identical inputs and Params.
func (b *BoostedTrees) Fit(X [][]float64, y []int, posWeight float64) error {
	if len(X) == 0 {
		return ErrEmptyInput
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ in length", len(X), len(y))
	}
	if posWeight <= 0 {
		posWeight = 1
	}

	n := len(X)
	b.NumFeatures = len(X[0])
	b.Trees = nil

	weights := make([]float64, n)
	for i, label := range y {
		if label == 1 {
			weights[i] = posWeight
		} else {
			weights[i] = 1
		}
	}

	// Raw margin per row; base score 0 corresponds to probability 0.5.
	margins := make([]float64, n)
	grads := make([]float64, n)
	hess := make([]float64, n)

	for round := 0; round < b.Params.NumRounds; round++ {
		for i := range X {
			p := sigmoid(margins[i])
			grads[i] = weights[i] * (p - float64(y[i]))
			hess[i] = weights[i] * p * (1 - p)
		}

		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		tree := b.buildNode(X, grads, hess, rows, 0)
		b.Trees = append(b.Trees, tree)

		for i := range X {
			margins[i] += tree.eval(X[i])
		}
	}
	return nil
}

// buildNode grows one subtree over the given row subset.
func (b *BoostedTrees) buildNode(X [][]float64, grads, hess []float64, rows []int, depth int) *TreeNode {
	var sumG, sumH float64
	for _, r := range rows {
		sumG += grads[r]
		sumH += hess[r]
	}

	leaf := &TreeNode{Leaf: true, Value: b.leafValue(sumG, sumH)}
	if depth >= b.Params.MaxDepth || len(rows) < 2 {
		return leaf
	}

	feature, threshold, gain := b.bestSplit(X, grads, hess, rows, sumG, sumH)
	if gain <= 0 {
		return leaf
	}

	var left, right []int
	for _, r := range rows {
		if X[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.buildNode(X, grads, hess, left, depth+1),
		Right:     b.buildNode(X, grads, hess, right, depth+1),
	}
}

// bestSplit scans every feature for the split maximizing the gain
// G_L^2/(H_L+lambda) + G_R^2/(H_R+lambda) - G^2/(H+lambda). The features are
// 0/1 indicators, so the only candidate threshold per feature is 0.5.
func (b *BoostedTrees) bestSplit(X [][]float64, grads, hess []float64, rows []int, sumG, sumH float64) (feature int, threshold, gain float64) {
	lambda := b.Params.Lambda
	parent := sumG * sumG / (sumH + lambda)
	feature = -1

	for f := 0; f < b.NumFeatures; f++ {
		var leftG, leftH float64
		for _, r := range rows {
			if X[r][f] <= 0.5 {
				leftG += grads[r]
				leftH += hess[r]
			}
		}
		rightG := sumG - leftG
		rightH := sumH - leftH
		if leftH < b.Params.MinChildWeight || rightH < b.Params.MinChildWeight {
			continue
		}
		g := leftG*leftG/(leftH+lambda) + rightG*rightG/(rightH+lambda) - parent
		if g > gain {
			gain = g
			feature = f
			threshold = 0.5
		}
	}
	if feature < 0 {
		return 0, 0, 0
	}
	return feature, threshold, gain
}

func (b *BoostedTrees) leafValue(sumG, sumH float64) float64 {
	return -b.Params.LearningRate * sumG / (sumH + b.Params.Lambda)
}

func (t *TreeNode) eval(row []float64) float64 {
	for !t.Leaf {
		if row[t.Feature] <= t.Threshold {
			t = t.Left
		} else {
			t = t.Right
		}
	}
	return t.Value
}

// Predict returns one 0/1 label per row: 1 when the accumulated margin maps
// to a delay probability above 0.5.
func (b *BoostedTrees) Predict(X [][]float64) ([]int, error) {
	if len(b.Trees) == 0 {
		return nil, ErrNotTrained
	}
	labels := make([]int, len(X))
	for i, row := range X {
		if len(row) != b.NumFeatures {
			return nil, fmt.Errorf("row %d has %d features, classifier expects %d", i, len(row), b.NumFeatures)
		}
		var margin float64
		for _, tree := range b.Trees {
			margin += tree.eval(row)
		}
		if margin > 0 {
			labels[i] = 1
		}
	}
	return labels, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
