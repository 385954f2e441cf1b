package extract

import (
	"context"
	"errors"
	"time"

	"receiptscan/internal/llm"
	"receiptscan/internal/logging"
	"receiptscan/internal/metrics"
	"receiptscan/internal/pdf"

	"go.uber.org/zap"
)

type ImageExtractor interface {
	ExtractImage(ctx context.Context, data []byte) (string, error)
}

type PDFExtractor interface {
	ExpandText(ctx context.Context, data []byte) (string, int, error)
}

type Formatter interface {
	Format(ctx context.Context, ocrText string) (llm.Result, error)
}

// TextCleaner optionally rewrites OCR text before prompting.
type TextCleaner interface {
	Clean(text string) string
}

type Service struct {
	images    ImageExtractor
	pdfs      PDFExtractor
	formatter Formatter
	cleaner   TextCleaner
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

type Option func(*Service)

// WithCleaner enables OCR text cleanup before the model call.
func WithCleaner(c TextCleaner) Option {
	return func(s *Service) { s.cleaner = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(images ImageExtractor, pdfs PDFExtractor, formatter Formatter, opts ...Option) *Service {
	s := &Service{
		images:    images,
		pdfs:      pdfs,
		formatter: formatter,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs one upload through the pipeline. It returns ErrUnsupportedType
// for content types outside image/* and application/pdf, and a *StageError
// when OCR, rasterization or the model call fails. Malformed model output is
// not an error: it is carried in the returned llm.Result.
func (s *Service) Process(ctx context.Context, contentType string, data []byte) (llm.Result, error) {
	branch := Classify(contentType)
	logger := s.logger.With(
		zap.String("branch", string(branch)),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)
	if id := logging.RequestID(ctx); id != "" {
		logger = logger.With(zap.String("request_id", id))
	}

	text, err := s.extractText(ctx, branch, data, logger)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrUnsupportedType) {
			outcome = "unsupported"
		}
		s.metrics.ObserveRequest(string(branch), outcome)
		return llm.Result{}, err
	}

	if text == "" {
		// No short-circuit: the model still gets the (empty) prompt.
		logger.Warn("OCR_EMPTY_TEXT")
		s.metrics.ObserveEmptyText(string(branch))
	}

	if s.cleaner != nil {
		text = s.cleaner.Clean(text)
	}

	started := time.Now()
	res, err := s.formatter.Format(ctx, text)
	s.metrics.ObserveStage(StageLLM, started)
	if err != nil {
		logger.Error("LLM_FAILED", zap.Error(err))
		s.metrics.ObserveRequest(string(branch), "error")
		return llm.Result{}, &StageError{Stage: StageLLM, Err: err}
	}

	fields := []zap.Field{zap.Stringer("result", res.Kind), zap.Int("chars", len(text))}
	if rec, ok := res.Receipt(); ok {
		fields = append(fields, zap.Int("items", len(rec.Items)), zap.Float64("total", rec.Total()))
	}
	logger.Info("EXTRACT_DONE", fields...)
	s.metrics.ObserveRequest(string(branch), res.Kind.String())

	return res, nil
}

func (s *Service) extractText(ctx context.Context, branch Branch, data []byte, logger *zap.Logger) (string, error) {
	started := time.Now()

	switch branch {
	case BranchImage:
		text, err := s.images.ExtractImage(ctx, data)
		s.metrics.ObserveStage(StageOCR, started)
		if err != nil {
			logger.Error("OCR_FAILED", zap.Error(err))
			return "", &StageError{Stage: StageOCR, Err: err}
		}
		return text, nil

	case BranchPDF:
		text, pages, err := s.pdfs.ExpandText(ctx, data)
		s.metrics.ObserveStage(StageOCR, started)
		s.metrics.ObservePDFPages(pages)
		if err != nil {
			stage := StageOCR
			if errors.Is(err, pdf.ErrRasterize) {
				stage = StageRasterize
			}
			logger.Error("PDF_FAILED", zap.String("stage", stage), zap.Int("pages", pages), zap.Error(err))
			return "", &StageError{Stage: stage, Err: err}
		}
		logger.Debug("PDF_DONE", zap.Int("pages", pages))
		return text, nil

	default:
		logger.Info("UNSUPPORTED_FILE_TYPE")
		return "", ErrUnsupportedType
	}
}
