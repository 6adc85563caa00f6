// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
//
// The service owns the recognition pipeline: it encodes uploaded
// screenshots, sends them one at a time to the vision oracle, parses
// whatever comes back, and folds the results into the session store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	encoding "github.com/okian/tribute/internal/adapters/encoding"
	recognition "github.com/okian/tribute/internal/adapters/recognition"
	repository "github.com/okian/tribute/internal/adapters/repository"
	"github.com/okian/tribute/internal/domain/merge"
	"github.com/okian/tribute/internal/domain/model"
	"github.com/okian/tribute/internal/domain/parse"
	"github.com/okian/tribute/internal/domain/tier"
	"github.com/okian/tribute/pkg/logger"
	"github.com/okian/tribute/pkg/metrics"
)

const defaultMaxBatchImages = 20

// Status reasons surfaced to clients through image statuses.
const (
	reasonNoResult          = "no recognizable result"
	reasonMissingCredential = "missing credential"
)

// Service implements the API dependencies for the recognition system.
type Service struct {
	mu sync.RWMutex

	// batchMu serializes batch runs; image processing is strictly
	// single-flight across the whole service.
	batchMu sync.Mutex

	// Core components
	store      repository.Store
	recognizer recognition.Recognizer
	parser     *parse.Parser

	// Configuration
	apiKey         string
	maxBatchImages int
	recognizerOpts []recognition.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the session store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRecognizer sets the vision oracle client.
func WithRecognizer(r recognition.Recognizer) Option {
	return func(s *Service) {
		if r != nil {
			s.recognizer = r
		}
	}
}

// WithParser sets the reply parser.
func WithParser(p *parse.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithAPIKey sets the oracle credential used when no recognizer is injected.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithRecognizerOptions forwards options to the default oracle client.
// Ignored when a recognizer is injected directly.
func WithRecognizerOptions(opts ...recognition.Option) Option {
	return func(s *Service) {
		s.recognizerOpts = opts
	}
}

// WithMaxBatchImages caps how many images one batch may carry.
func WithMaxBatchImages(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchImages = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxBatchImages: defaultMaxBatchImages,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewSessionStore()
	}
	if s.parser == nil {
		s.parser = parse.New()
	}
	if s.recognizer == nil {
		s.recognizer = recognition.NewClient(s.apiKey, s.recognizerOpts...)
	}

	s.started = true
	s.logger.Info(ctx, "recognition service started",
		logger.Int("maxBatchImages", s.maxBatchImages),
	)

	return nil
}

// Stop shuts the service down. The session store is in-memory, so there
// is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "recognition service stopped")
}

// ProcessBatch runs the full pipeline for one category: every image is
// encoded, recognized, and parsed strictly in order, and the category's
// previous results are replaced wholesale by this batch's output.
//
// A failed image never aborts its siblings; it is marked failed and the
// loop moves on. The one exception is a missing oracle credential, which
// fails the whole batch up front since no image could possibly succeed.
func (s *Service) ProcessBatch(ctx context.Context, category model.Category, images []model.Image) (model.BatchSummary, error) {
	s.mu.RLock()
	started := s.started
	maxImages := s.maxBatchImages
	s.mu.RUnlock()

	summary := model.BatchSummary{Category: category}

	if !started {
		return summary, ErrNotStarted
	}
	if !category.Valid() {
		return summary, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if len(images) == 0 {
		return summary, ErrNoImages
	}
	if len(images) > maxImages {
		return summary, fmt.Errorf("%w: %d images, limit %d", ErrBatchTooLarge, len(images), maxImages)
	}

	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	summary.Accepted = len(images)
	summary.Images = make([]model.ImageOutcome, 0, len(images))

	for _, img := range images {
		s.store.SetImageStatus(ctx, img.ID, model.ImageStatus{State: model.StatePending})
	}

	batchStart := time.Now()
	records := make([]model.ContributionRecord, 0, len(images))

	for i, img := range images {
		s.store.SetImageStatus(ctx, img.ID, model.ImageStatus{State: model.StateInProgress})

		extracted, err := s.processImage(ctx, category, img)
		if errors.Is(err, recognition.ErrMissingCredential) {
			// No image in this batch can succeed. Fail everything
			// from here on and bail out.
			s.failRemaining(ctx, images[i:], reasonMissingCredential, &summary)
			return summary, err
		}
		if err != nil {
			s.logger.Warn(ctx, "image failed",
				logger.String("imageID", img.ID),
				logger.String("name", img.Name),
				logger.Error(err),
			)
			status := model.ImageStatus{State: model.StateFailed, Reason: err.Error()}
			s.store.SetImageStatus(ctx, img.ID, status)
			metrics.RecordImageFailed(string(category), "pipeline")
			summary.Failed++
			summary.Images = append(summary.Images, model.ImageOutcome{
				ID: img.ID, Name: img.Name, State: string(model.StateFailed), Reason: err.Error(),
			})
			continue
		}
		if len(extracted) == 0 {
			s.store.SetImageStatus(ctx, img.ID, model.ImageStatus{State: model.StateFailed, Reason: reasonNoResult})
			metrics.RecordImageFailed(string(category), "empty")
			summary.Failed++
			summary.Images = append(summary.Images, model.ImageOutcome{
				ID: img.ID, Name: img.Name, State: string(model.StateFailed), Reason: reasonNoResult,
			})
			continue
		}

		for _, ex := range extracted {
			records = append(records, model.ContributionRecord{
				MemberID:      ex.MemberID,
				Contribution:  ex.Contribution,
				SourceImageID: img.ID,
			})
		}
		s.store.SetImageStatus(ctx, img.ID, model.ImageStatus{State: model.StateCompleted})
		metrics.RecordImageProcessed(string(category))
		metrics.RecordRecordsExtracted(string(category), len(extracted))
		summary.Completed++
		summary.Images = append(summary.Images, model.ImageOutcome{
			ID: img.ID, Name: img.Name, State: string(model.StateCompleted), Records: len(extracted),
		})
	}

	s.store.ReplaceCategoryResults(ctx, category, records)
	s.recompute(ctx)

	summary.Records = len(records)
	metrics.UpdateLastBatchImages(string(category), len(images))
	metrics.RecordBatchDuration(string(category), float64(time.Since(batchStart).Milliseconds()))

	s.logger.Info(ctx, "batch processed",
		logger.String("category", string(category)),
		logger.Int("accepted", summary.Accepted),
		logger.Int("completed", summary.Completed),
		logger.Int("failed", summary.Failed),
		logger.Int("records", summary.Records),
	)

	return summary, nil
}

// processImage runs encode -> recognize -> parse for one screenshot.
func (s *Service) processImage(ctx context.Context, category model.Category, img model.Image) ([]parse.Extraction, error) {
	encoded, err := encoding.EncodeBytes(img.Data)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", img.Name, err)
	}

	reply, err := s.recognizer.Recognize(ctx, encoded, recognition.Prompt(category))
	if err != nil {
		return nil, err
	}

	return s.parser.Parse(reply), nil
}

// failRemaining marks every not-yet-processed image failed with the
// given reason.
func (s *Service) failRemaining(ctx context.Context, images []model.Image, reason string, summary *model.BatchSummary) {
	for _, img := range images {
		s.store.SetImageStatus(ctx, img.ID, model.ImageStatus{State: model.StateFailed, Reason: reason})
		metrics.RecordImageFailed(string(summary.Category), "credential")
		summary.Failed++
		summary.Images = append(summary.Images, model.ImageOutcome{
			ID: img.ID, Name: img.Name, State: string(model.StateFailed), Reason: reason,
		})
	}
}

// recompute rebuilds the merged member list from both categories' latest
// results and the current tier table.
func (s *Service) recompute(ctx context.Context) {
	coins := s.store.CategoryResults(ctx, model.CategoryCoins)
	activity := s.store.CategoryResults(ctx, model.CategoryActivity)
	table := s.store.TierTable(ctx)

	members := merge.Members(coins, activity, table)
	s.store.ReplaceMembers(ctx, members)

	metrics.UpdateMembersTotal(len(members))
	perTier := make(map[string]int, len(table)+1)
	for _, m := range members {
		perTier[m.Tier]++
	}
	for _, label := range table.Labels() {
		metrics.UpdateTierMembers(label, perTier[label])
	}
}

// ImageStatuses returns a snapshot of every tracked image status.
func (s *Service) ImageStatuses(ctx context.Context) map[string]model.ImageStatus {
	return s.store.ImageStatuses(ctx)
}

// Members returns the merged member list, optionally filtered to one
// tier label. An unknown label simply yields an empty list.
func (s *Service) Members(ctx context.Context, tierLabel string) []model.MemberRecord {
	members := s.store.Members(ctx)
	if tierLabel == "" {
		return members
	}
	return merge.FilterByTier(members, tierLabel)
}

// TierTable returns the current tier table.
func (s *Service) TierTable(ctx context.Context) tier.Table {
	return s.store.TierTable(ctx)
}

// SetTierTable replaces the tier table and reclassifies every merged
// member against the new thresholds.
func (s *Service) SetTierTable(ctx context.Context, table tier.Table) error {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	if err := s.store.ReplaceTierTable(ctx, table); err != nil {
		return err
	}
	s.recompute(ctx)

	s.logger.Info(ctx, "tier table replaced",
		logger.Int("rules", len(table)),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	started := s.started
	maxImages := s.maxBatchImages
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        started,
		"maxBatchImages": maxImages,
	}

	if started {
		coins, activity, images := s.store.Counts(ctx)
		members := s.store.Members(ctx)

		stats["coinsRecords"] = coins
		stats["activityRecords"] = activity
		stats["trackedImages"] = images
		stats["members"] = len(members)

		metrics.UpdateMembersTotal(len(members))
	}

	return stats
}
