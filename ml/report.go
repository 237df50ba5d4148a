// ml/report.go
package ml

import (
	"fmt"
	"strings"
)

// ConfusionMatrix counts holdout outcomes: rows are the true class, columns
// the predicted class, indices 0/1.
func ConfusionMatrix(yTrue, yPred []int) [2][2]int {
	var cm [2][2]int
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm
}

// FormatConfusionMatrix renders a ConfusionMatrix for logging.
func FormatConfusionMatrix(cm [2][2]int) string {
	return fmt.Sprintf("[[%d %d]\n [%d %d]]", cm[0][0], cm[0][1], cm[1][0], cm[1][1])
}

// ClassificationReport renders per-class precision, recall, f1 and support
// plus overall accuracy, in the layout of sklearn's classification_report.
func ClassificationReport(yTrue, yPred []int) string {
	cm := ConfusionMatrix(yTrue, yPred)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%12s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support"))
	total := len(yTrue)
	correct := cm[0][0] + cm[1][1]

	for class := 0; class <= 1; class++ {
		tp := cm[class][class]
		predicted := cm[0][class] + cm[1][class]
		actual := cm[class][0] + cm[class][1]

		precision := ratio(tp, predicted)
		recall := ratio(tp, actual)
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		sb.WriteString(fmt.Sprintf("%12d %10.2f %10.2f %10.2f %10d\n", class, precision, recall, f1, actual))
	}
	sb.WriteString(fmt.Sprintf("\n%12s %10s %10s %10.2f %10d\n", "accuracy", "", "", ratio(correct, total), total))
	return sb.String()
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
