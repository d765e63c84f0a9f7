package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	FormatVotingClassifier = "voting_classifier"

	VotingHard = "hard"
	VotingSoft = "soft"

	EstimatorLogistic = "logistic"
	EstimatorTree     = "tree"
	EstimatorForest   = "forest"
)

// TreeNode is one node of a fitted decision tree. Leaves have Left == -1 and
// carry per-class weights in Value.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

type estimatorDoc struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Coef      [][]float64  `json:"coef,omitempty"`
	Intercept []float64    `json:"intercept,omitempty"`
	Nodes     []TreeNode   `json:"nodes,omitempty"`
	Trees     [][]TreeNode `json:"trees,omitempty"`
}

type classifierDoc struct {
	Format     string         `json:"format"`
	Voting     string         `json:"voting"`
	Classes    []int          `json:"classes"`
	Weights    []float64      `json:"weights,omitempty"`
	NFeatures  int            `json:"n_features"`
	Estimators []estimatorDoc `json:"estimators"`
}

// estimator returns class probabilities for one dense row, indexed like the
// classifier's classes.
type estimator interface {
	name() string
	proba(x *mat.VecDense) []float64
}

// Classifier is a fitted voting ensemble. It is immutable after loading and
// safe for concurrent use.
type Classifier struct {
	voting     string
	classes    []int
	weights    []float64
	nFeatures  int
	estimators []estimator
}

// ParseClassifier decodes and validates a classifier artifact.
func ParseClassifier(data []byte) (*Classifier, error) {
	var doc classifierDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode classifier: %w", err)
	}
	if doc.Format != FormatVotingClassifier {
		return nil, fmt.Errorf("unsupported classifier format %q", doc.Format)
	}

	voting := doc.Voting
	if voting == "" {
		voting = VotingHard
	}
	if voting != VotingHard && voting != VotingSoft {
		return nil, fmt.Errorf("unsupported voting %q", doc.Voting)
	}
	if len(doc.Classes) < 2 {
		return nil, errors.New("classifier needs at least two classes")
	}
	if doc.NFeatures <= 0 {
		return nil, errors.New("classifier n_features must be positive")
	}
	if len(doc.Estimators) == 0 {
		return nil, errors.New("classifier has no estimators")
	}

	weights := doc.Weights
	if len(weights) == 0 {
		weights = make([]float64, len(doc.Estimators))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(doc.Estimators) {
		return nil, fmt.Errorf("got %d weights for %d estimators", len(weights), len(doc.Estimators))
	}

	c := &Classifier{
		voting:    voting,
		classes:   doc.Classes,
		weights:   weights,
		nFeatures: doc.NFeatures,
	}

	k := len(doc.Classes)
	for i, ed := range doc.Estimators {
		name := ed.Name
		if name == "" {
			name = fmt.Sprintf("estimator_%d", i)
		}
		est, err := buildEstimator(name, ed, k, doc.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("estimator %q: %w", name, err)
		}
		c.estimators = append(c.estimators, est)
	}

	return c, nil
}

func buildEstimator(name string, ed estimatorDoc, k, n int) (estimator, error) {
	switch ed.Type {
	case EstimatorLogistic:
		return newLogistic(name, ed.Coef, ed.Intercept, k, n)
	case EstimatorTree:
		t, err := newTree(ed.Nodes, k, n)
		if err != nil {
			return nil, err
		}
		return &forest{label: name, trees: []*tree{t}}, nil
	case EstimatorForest:
		if len(ed.Trees) == 0 {
			return nil, errors.New("forest has no trees")
		}
		f := &forest{label: name}
		for i, nodes := range ed.Trees {
			t, err := newTree(nodes, k, n)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			f.trees = append(f.trees, t)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported estimator type %q", ed.Type)
	}
}

// NFeatures is the input width expected by Predict.
func (c *Classifier) NFeatures() int {
	return c.nFeatures
}

// Classes returns the class labels in output order.
func (c *Classifier) Classes() []int {
	out := make([]int, len(c.classes))
	copy(out, c.classes)
	return out
}

// EstimatorNames lists the ensemble members in voting order.
func (c *Classifier) EstimatorNames() []string {
	names := make([]string, len(c.estimators))
	for i, e := range c.estimators {
		names[i] = e.name()
	}
	return names
}

// Predict returns the class for a single dense row.
func (c *Classifier) Predict(x *mat.VecDense) (int, error) {
	if x == nil {
		return 0, errors.New("predict: nil input")
	}
	if x.Len() != c.nFeatures {
		return 0, fmt.Errorf("predict: got %d features, want %d", x.Len(), c.nFeatures)
	}

	scores := make([]float64, len(c.classes))
	for i, est := range c.estimators {
		p := est.proba(x)
		switch c.voting {
		case VotingSoft:
			floats.AddScaled(scores, c.weights[i], p)
		default:
			scores[argmax(p)] += c.weights[i]
		}
	}

	for _, s := range scores {
		if math.IsNaN(s) {
			return 0, errors.New("predict: estimator produced NaN")
		}
	}

	return c.classes[argmax(scores)], nil
}

// argmax returns the first index of the largest value.
func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

type logistic struct {
	label     string
	coef      *mat.Dense
	intercept *mat.VecDense
}

func newLogistic(name string, coef [][]float64, intercept []float64, k, n int) (*logistic, error) {
	if len(coef) != k {
		return nil, fmt.Errorf("coef has %d rows, want %d", len(coef), k)
	}
	if len(intercept) != k {
		return nil, fmt.Errorf("intercept has %d values, want %d", len(intercept), k)
	}
	data := make([]float64, 0, k*n)
	for i, row := range coef {
		if len(row) != n {
			return nil, fmt.Errorf("coef row %d has %d values, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return &logistic{
		label:     name,
		coef:      mat.NewDense(k, n, data),
		intercept: mat.NewVecDense(k, append([]float64(nil), intercept...)),
	}, nil
}

func (l *logistic) name() string { return l.label }

func (l *logistic) proba(x *mat.VecDense) []float64 {
	k, _ := l.coef.Dims()
	z := mat.NewVecDense(k, nil)
	z.MulVec(l.coef, x)
	z.AddVec(z, l.intercept)

	logits := z.RawVector().Data
	lse := floats.LogSumExp(logits)
	out := make([]float64, k)
	for i, v := range logits {
		out[i] = math.Exp(v - lse)
	}
	return out
}

type tree struct {
	nodes []TreeNode
	k     int
}

func newTree(nodes []TreeNode, k, n int) (*tree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, nd := range nodes {
		if nd.Left == -1 {
			if len(nd.Value) != k {
				return nil, fmt.Errorf("leaf %d has %d values, want %d", i, len(nd.Value), k)
			}
			continue
		}
		if nd.Feature < 0 || nd.Feature >= n {
			return nil, fmt.Errorf("node %d: feature %d out of range", i, nd.Feature)
		}
		// children must point forward so traversal always terminates
		if nd.Left <= i || nd.Left >= len(nodes) || nd.Right <= i || nd.Right >= len(nodes) {
			return nil, fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return &tree{nodes: nodes, k: k}, nil
}

func (t *tree) proba(x *mat.VecDense) []float64 {
	i := 0
	for t.nodes[i].Left != -1 {
		nd := t.nodes[i]
		if x.AtVec(nd.Feature) <= nd.Threshold {
			i = nd.Left
		} else {
			i = nd.Right
		}
	}

	out := append([]float64(nil), t.nodes[i].Value...)
	if sum := floats.Sum(out); sum > 0 {
		floats.Scale(1/sum, out)
	}
	return out
}

// forest averages the probabilities of its trees. A single decision tree is a
// forest of one.
type forest struct {
	label string
	trees []*tree
}

func (f *forest) name() string { return f.label }

func (f *forest) proba(x *mat.VecDense) []float64 {
	out := make([]float64, f.trees[0].k)
	for _, t := range f.trees {
		floats.Add(out, t.proba(x))
	}
	floats.Scale(1/float64(len(f.trees)), out)
	return out
}
