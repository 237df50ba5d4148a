// ml/boosted_test.go
package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds a dataset where feature 0 fully determines the class.
func separable(n int) (X [][]float64, y []int) {
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			X = append(X, []float64{1, 0, 1})
			y = append(y, 1)
		} else {
			X = append(X, []float64{0, 1, 0})
			y = append(y, 0)
		}
	}
	return X, y
}

func testParams() Params {
	p := DefaultParams()
	p.LearningRate = 0.1
	p.NumRounds = 50
	return p
}

func TestBoostedTrees_LearnsSeparableData(t *testing.T) {
	X, y := separable(60)

	clf := NewBoostedTrees(testParams())
	require.NoError(t, clf.Fit(X, y, 1))

	got, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, got)
}

func TestBoostedTrees_DeterministicAcrossFits(t *testing.T) {
	X, y := separable(40)

	a := NewBoostedTrees(testParams())
	b := NewBoostedTrees(testParams())
	require.NoError(t, a.Fit(X, y, 2.5))
	require.NoError(t, b.Fit(X, y, 2.5))

	predsA, err := a.Predict(X)
	require.NoError(t, err)
	predsB, err := b.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, predsA, predsB)

	// Same classifier, same input, asked twice.
	again, err := a.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, predsA, again)
}

func TestBoostedTrees_OutputShapeMatchesInput(t *testing.T) {
	X, y := separable(30)
	clf := NewBoostedTrees(testParams())
	require.NoError(t, clf.Fit(X, y, 1))

	preds, err := clf.Predict(X[:7])
	require.NoError(t, err)
	require.Len(t, preds, 7)
	for _, p := range preds {
		assert.Contains(t, []int{0, 1}, p)
	}
}

func TestBoostedTrees_PredictBeforeFitFails(t *testing.T) {
	clf := NewBoostedTrees(DefaultParams())
	_, err := clf.Predict([][]float64{{1, 0, 0}})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestBoostedTrees_RejectsMismatchedInput(t *testing.T) {
	X, y := separable(20)
	clf := NewBoostedTrees(testParams())
	require.NoError(t, clf.Fit(X, y, 1))

	_, err := clf.Predict([][]float64{{1, 0}})
	assert.Error(t, err)

	assert.ErrorIs(t, clf.Fit(nil, nil, 1), ErrEmptyInput)
	assert.Error(t, clf.Fit(X, y[:5], 1))
}

func TestMarshalUnmarshal_RoundTripPreservesPredictions(t *testing.T) {
	X, y := separable(40)
	clf := NewBoostedTrees(testParams())
	require.NoError(t, clf.Fit(X, y, 3))

	blob, err := Marshal(clf)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	restored, err := Unmarshal(blob)
	require.NoError(t, err)

	want, err := clf.Predict(X)
	require.NoError(t, err)
	got, err := restored.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarshal_UntrainedFails(t *testing.T) {
	_, err := Marshal(NewBoostedTrees(DefaultParams()))
	assert.ErrorIs(t, err, ErrNotTrained)

	_, err = Marshal(nil)
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestUnmarshal_GarbageFails(t *testing.T) {
	_, err := Unmarshal([]byte("not a model"))
	assert.Error(t, err)
}
