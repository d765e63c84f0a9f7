package model

import (
	"fmt"
	"os"
)

// Artifacts holds the fitted preprocessor and classifier for the process
// lifetime. Both are read-only after loading.
type Artifacts struct {
	Preprocessor *Preprocessor
	Classifier   *Classifier
}

// LoadArtifacts reads both artifact files and checks they fit together.
func LoadArtifacts(preprocessorPath, classifierPath string) (*Artifacts, error) {
	raw, err := os.ReadFile(preprocessorPath)
	if err != nil {
		return nil, fmt.Errorf("load preprocessor %s: %w", preprocessorPath, err)
	}
	pre, err := ParsePreprocessor(raw)
	if err != nil {
		return nil, fmt.Errorf("load preprocessor %s: %w", preprocessorPath, err)
	}

	raw, err = os.ReadFile(classifierPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier %s: %w", classifierPath, err)
	}
	clf, err := ParseClassifier(raw)
	if err != nil {
		return nil, fmt.Errorf("load classifier %s: %w", classifierPath, err)
	}

	if pre.Width() != clf.NFeatures() {
		return nil, fmt.Errorf("artifact mismatch: preprocessor emits %d features, classifier expects %d",
			pre.Width(), clf.NFeatures())
	}

	return &Artifacts{Preprocessor: pre, Classifier: clf}, nil
}

// Predict runs one row through transform, densify and predict.
func (a *Artifacts) Predict(row map[string]string) (int, error) {
	features, err := a.Preprocessor.Transform(row)
	if err != nil {
		return 0, err
	}
	dense, err := Densify(features)
	if err != nil {
		return 0, err
	}
	return a.Classifier.Predict(dense)
}
