// FILE: internal/service/prediction_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-rating-be/internal/constant"
	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/metrics"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/pkg/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrPredictionFailed = errors.New("prediction failed")

// Predictor runs one row through the loaded artifacts. *model.Artifacts
// satisfies it.
type Predictor interface {
	Predict(row map[string]string) (int, error)
}

type IPredictionService interface {
	Predict(ctx context.Context, record entity.StoryRecord) (*dto.PredictionResponse, error)
}

type predictionService struct {
	predictor Predictor
	logger    logger.ILogger
}

func NewPredictionService(predictor Predictor, sysLogger logger.ILogger) IPredictionService {
	return &predictionService{
		predictor: predictor,
		logger:    sysLogger,
	}
}

func (s *predictionService) Predict(ctx context.Context, record entity.StoryRecord) (*dto.PredictionResponse, error) {
	_, span := otel.Tracer("news-rating-be/prediction").Start(ctx, "Predict")
	defer span.End()

	start := time.Now()
	tier, err := s.predictor.Predict(record.Row())
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PredictionsFailed.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("PREDICT", "Prediction failed", map[string]interface{}{
			"error":  err.Error(),
			"record": record.Row(),
		})
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	label := entity.TierLabel(tier)
	metrics.Predictions.WithLabelValues(label).Inc()
	span.SetAttributes(attribute.Int("tier", tier), attribute.String("label", label))

	return &dto.PredictionResponse{
		Tier:   tier,
		Label:  label,
		Record: record.Cells(),
		Note: dto.TierNote{
			Intro: constant.TierNoteIntro,
			Bands: constant.TierBands,
		},
	}, nil
}

// VerifyStorySchema checks the preprocessor was fitted on exactly the Story
// Record columns. Options the preprocessor never saw are only warned about:
// depending on how it was fitted they encode as all-zero or fail at predict.
func VerifyStorySchema(pre *model.Preprocessor, sysLogger logger.ILogger) error {
	got := pre.Columns()
	if len(got) != len(constant.StoryColumns) {
		return fmt.Errorf("preprocessor columns %q do not match story columns %q", got, constant.StoryColumns)
	}
	for i, col := range constant.StoryColumns {
		if got[i] != col {
			return fmt.Errorf("preprocessor column %d is %q, want %q", i, got[i], col)
		}
	}

	fields := dto.StoryFields(dto.StoryForm{})
	for _, f := range fields {
		fitted := make(map[string]struct{})
		for _, c := range pre.Categories(f.Column) {
			fitted[c] = struct{}{}
		}
		for _, opt := range f.Options {
			if _, ok := fitted[opt]; !ok {
				sysLogger.Warn("MODEL", "Form option unknown to preprocessor", map[string]interface{}{
					"column": f.Column,
					"option": opt,
				})
			}
		}
	}
	return nil
}
