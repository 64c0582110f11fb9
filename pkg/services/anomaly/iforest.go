package anomaly

import (
	"math"
	"math/rand"
)

// Batch isolation forest over a fixed feature matrix. Shorter average path
// lengths through randomly split trees mean a point is easier to isolate and
// therefore more anomalous. All randomness comes from one seeded source so
// the same input always yields the same scores.

type isoNode struct {
	splitFeature int
	splitValue   float64
	left, right  *isoNode
	size         int // external nodes only
}

type isolationForest struct {
	trees         []*isoNode
	subsampleSize int
}

func fitIsolationForest(data [][]float64, numTrees, subsampleSize int, seed int64) *isolationForest {
	if subsampleSize > len(data) {
		subsampleSize = len(data)
	}
	heightLimit := int(math.Ceil(math.Log2(float64(subsampleSize))))

	rng := rand.New(rand.NewSource(seed))
	forest := &isolationForest{
		trees:         make([]*isoNode, numTrees),
		subsampleSize: subsampleSize,
	}
	for i := range forest.trees {
		sample := make([][]float64, subsampleSize)
		for j, idx := range rng.Perm(len(data))[:subsampleSize] {
			sample[j] = data[idx]
		}
		forest.trees[i] = buildIsoTree(sample, 0, heightLimit, rng)
	}
	return forest
}

func buildIsoTree(data [][]float64, depth, heightLimit int, rng *rand.Rand) *isoNode {
	if depth >= heightLimit || len(data) <= 1 {
		return &isoNode{size: len(data)}
	}

	feature := rng.Intn(len(data[0]))
	lo, hi := data[0][feature], data[0][feature]
	for _, row := range data[1:] {
		if row[feature] < lo {
			lo = row[feature]
		}
		if row[feature] > hi {
			hi = row[feature]
		}
	}
	if lo == hi {
		// Constant along the chosen feature; nothing left to isolate here.
		return &isoNode{size: len(data)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, row := range data {
		if row[feature] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}

	return &isoNode{
		splitFeature: feature,
		splitValue:   split,
		left:         buildIsoTree(left, depth+1, heightLimit, rng),
		right:        buildIsoTree(right, depth+1, heightLimit, rng),
	}
}

// score returns the anomaly score in (0,1); values close to 1 are isolated
// quickly and are the outliers.
func (f *isolationForest) score(x []float64) float64 {
	total := 0.0
	for _, tree := range f.trees {
		total += pathLength(x, tree, 0)
	}
	avg := total / float64(len(f.trees))
	return math.Pow(2, -avg/avgPathLength(f.subsampleSize))
}

func pathLength(x []float64, node *isoNode, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if x[node.splitFeature] < node.splitValue {
		return pathLength(x, node.left, depth+1)
	}
	return pathLength(x, node.right, depth+1)
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search over n points, used to normalize path lengths.
func avgPathLength(n int) float64 {
	switch {
	case n > 2:
		fn := float64(n)
		h := math.Log(fn-1) + 0.5772156649 // harmonic number approximation
		return 2*h - 2*(fn-1)/fn
	case n == 2:
		return 1
	default:
		return 0
	}
}
