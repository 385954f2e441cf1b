// Package app assembles the extraction pipeline from configuration.
package app

import (
	"fmt"
	"net/http"

	"receiptscan/internal/config"
	"receiptscan/internal/extract"
	"receiptscan/internal/llm"
	"receiptscan/internal/metrics"
	"receiptscan/internal/ocr"
	"receiptscan/internal/ocr/tesseract"
	"receiptscan/internal/pdf"
	"receiptscan/internal/pdf/fitz"

	"go.uber.org/zap"
)

type Pipeline struct {
	Service *extract.Service
	Metrics *metrics.Metrics
}

// Build wires OCR engine, PDF rasterizer, model client and metrics into a
// Service. Nothing is contacted at build time.
func Build(cfg config.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine, err := tesseract.New(cfg.OCR.Engine, cfg.OCR.Binary, cfg.OCR.Languages, cfg.OCR.PSM)
	if err != nil {
		return nil, err
	}
	images := ocr.NewExtractor(engine, cfg.Server.TempDir, logger)
	pdfs := pdf.NewExpander(fitz.New(cfg.PDF.DPI), images, logger)

	client, err := llm.NewClient(llm.Options{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
		HTTPClient:  &http.Client{Timeout: cfg.LLM.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	m := metrics.New()
	opts := []extract.Option{
		extract.WithMetrics(m),
		extract.WithLogger(logger),
	}
	if cfg.OCR.Cleanup {
		opts = append(opts, extract.WithCleaner(ocr.Cleaner{MaxChars: cfg.OCR.MaxChars}))
	}

	logger.Info("PIPELINE_READY",
		zap.String("ocr_engine", engine.Name()),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
		zap.Bool("cleanup", cfg.OCR.Cleanup),
	)

	return &Pipeline{
		Service: extract.NewService(images, pdfs, llm.NewFormatter(client, logger), opts...),
		Metrics: m,
	}, nil
}
