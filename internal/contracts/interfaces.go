package contracts

import (
	"context"
	"time"
)

// Classifier is the fitted model boundary. The core never looks inside it;
// it consumes only the positive-class probability.
type Classifier interface {
	// PredictProba returns the probability of default for one
	// schema-ordered feature vector.
	PredictProba(values []float64) (float64, error)

	// NumFeatures returns the feature count the model was fitted with.
	NumFeatures() int
}

// Transformer is a fitted column-wise transform (imputer, scaler). Transform
// must not mutate its input.
type Transformer interface {
	Transform(values []float64) ([]float64, error)
	NumFeatures() int
}

// AssessmentRepository stores scored assessments for later review.
type AssessmentRepository interface {
	Save(ctx context.Context, rec *AssessmentRecord) (int64, error)
	List(ctx context.Context, limit int) ([]AssessmentRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScoreProvider fetches external bureau scores for an applicant when the
// form leaves them blank.
type ScoreProvider interface {
	FetchScores(ctx context.Context, applicantRef string) ([]float64, error)
}
