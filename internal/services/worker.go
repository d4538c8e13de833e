package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"rezoom/feedback-api/internal/repositories"
)

// Indexer embeds one stored feedback and writes it to the index.
type Indexer struct {
	feedbackRepo  repositories.FeedbackRepository
	geminiService GeminiService
	index         FeedbackIndex
}

func NewIndexer(feedbackRepo repositories.FeedbackRepository, geminiService GeminiService, index FeedbackIndex) *Indexer {
	return &Indexer{
		feedbackRepo:  feedbackRepo,
		geminiService: geminiService,
		index:         index,
	}
}

func (ix *Indexer) Index(ctx context.Context, feedbackID uuid.UUID) error {
	feedback, err := ix.feedbackRepo.FindByID(feedbackID)
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}

	embedding, err := ix.geminiService.GenerateEmbedding(ctx, feedback.FullFeedback)
	if err != nil {
		return fmt.Errorf("failed to embed feedback: %w", err)
	}

	if err := ix.index.Upsert(ctx, feedback, embedding); err != nil {
		return fmt.Errorf("failed to index feedback: %w", err)
	}

	if err := ix.feedbackRepo.MarkIndexed(feedbackID); err != nil {
		return fmt.Errorf("failed to mark feedback indexed: %w", err)
	}

	return nil
}

// IndexQueue accepts stored feedbacks for background indexing.
type IndexQueue interface {
	EnqueueJob(feedbackID uuid.UUID)
}

type Worker interface {
	IndexQueue
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	feedbackRepo repositories.FeedbackRepository
	indexer      *Indexer
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	feedbackRepo repositories.FeedbackRepository,
	indexer *Indexer,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return &worker{
		feedbackRepo: feedbackRepo,
		indexer:      indexer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Index worker stopped")
	})
}

// EnqueueJob never blocks the caller. A dropped job stays unindexed in the
// database and is picked up by the poller.
func (w *worker) EnqueueJob(feedbackID uuid.UUID) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue feedback %s\n", feedbackID)
	case w.jobQueue <- feedbackID:
	default:
		log.Printf("⚠️  Index queue full, feedback %s left for the poller\n", feedbackID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case feedbackID := <-w.jobQueue:
			if err := w.indexer.Index(ctx, feedbackID); err != nil {
				log.Printf("❌ Worker #%d failed to index feedback %s: %v\n", workerID, feedbackID, err)
			}
		}
	}
}

func (w *worker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.feedbackRepo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed feedbacks: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d unindexed feedbacks\n", len(pending))
			}

			for _, fb := range pending {
				w.EnqueueJob(fb.ID)
			}
		}
	}
}
