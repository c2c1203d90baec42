package application

import (
	"context"
	"errors"
	"time"

	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

// AdvanceCommand asks to record a unit entering a stage.
type AdvanceCommand struct {
	BarcodeNumber string
	Stage         domain.Stage
	RecordedBy    string
}

// PipelineService moves units through the production pipeline.
type PipelineService struct {
	barcodes  domain.BarcodeRepository
	records   domain.StageRecordRepository
	publisher EventPublisher
	logger    *logging.Logger
	now       func() time.Time
}

// NewPipelineService creates a PipelineService. publisher may be nil.
func NewPipelineService(
	barcodes domain.BarcodeRepository,
	records domain.StageRecordRepository,
	publisher EventPublisher,
	logger *logging.Logger,
) *PipelineService {
	return &PipelineService{
		barcodes:  barcodes,
		records:   records,
		publisher: publisher,
		logger:    logger.WithComponent("pipeline-service"),
		now:       time.Now,
	}
}

// Advance records the unit entering the target stage. The commit is a single
// conditional insert: a concurrent duplicate surfaces as AlreadyInStageError
// from the repository, never as a lost write.
func (s *PipelineService) Advance(ctx context.Context, cmd AdvanceCommand) (*domain.StageRecord, error) {
	if !cmd.Stage.IsValid() {
		return nil, domain.NewValidationError("unknown stage %q", cmd.Stage.String())
	}
	if cmd.RecordedBy == "" {
		return nil, domain.NewValidationError("recorded_by is required")
	}

	now := s.now().UTC()

	barcode, err := s.barcodes.FindByNumber(ctx, cmd.BarcodeNumber)
	if err != nil {
		return nil, err
	}

	var predecessor *domain.StageRecord
	if pred, ok := cmd.Stage.Predecessor(); ok {
		predecessor, err = s.records.FindByBarcodeAndStage(ctx, cmd.BarcodeNumber, pred)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.PredecessorMissingError{BarcodeNumber: cmd.BarcodeNumber, Stage: cmd.Stage}
		}
		if err != nil {
			return nil, err
		}
	}

	record, err := domain.NewStageRecord(barcode, cmd.Stage, cmd.RecordedBy, predecessor, now)
	if err != nil {
		return nil, err
	}

	if err := s.records.InsertIfAbsent(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("stage recorded",
		"barcode", record.BarcodeNumber,
		"stage", record.Stage.String(),
		"verdict", record.Verdict(),
		"recorded_by", record.RecordedBy,
	)

	if s.publisher != nil {
		event := domain.StageRecordedEvent{Record: record, At: now}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("publishing stage event failed",
				"barcode", record.BarcodeNumber,
				"stage", record.Stage.String(),
			)
		}
	}

	return record, nil
}

// History returns the unit's identity document and its stage records in
// pipeline order.
func (s *PipelineService) History(ctx context.Context, barcodeNumber string) (*domain.Barcode, []*domain.StageRecord, error) {
	barcode, err := s.barcodes.FindByNumber(ctx, barcodeNumber)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.records.FindByBarcode(ctx, barcodeNumber)
	if err != nil {
		return nil, nil, err
	}
	return barcode, records, nil
}
