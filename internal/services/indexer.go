package services

import (
	"context"
	"log"
	"sync"
)

// IndexJob carries everything needed to (re)embed one user's resume.
type IndexJob struct {
	UserID   uint
	FileName string
	Summary  string
}

// Indexer embeds and upserts resumes into the vector index off the
// request path, so a parse call never blocks on indexing.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job IndexJob)
}

type indexer struct {
	embedder    EmbeddingGenerator
	index       ResumeIndexService
	jobQueue    chan IndexJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewIndexer(embedder EmbeddingGenerator, index ResumeIndexService, concurrency, queueSize int) Indexer {
	return &indexer{
		embedder:    embedder,
		index:       index,
		jobQueue:    make(chan IndexJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	log.Println("🛑 Stopping indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Indexer stopped")
}

// Enqueue implements Indexer. Indexing is best effort: a full queue drops
// the job rather than blocking the caller.
func (w *indexer) Enqueue(job IndexJob) {
	select {
	case w.jobQueue <- job:
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue job for user %d\n", job.UserID)
	default:
		log.Printf("⚠️  Index queue full, dropping job for user %d\n", job.UserID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Index worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			if err := w.indexResume(ctx, job); err != nil {
				log.Printf("❌ Index worker #%d failed to index user %d: %v\n", workerID, job.UserID, err)
			}
		}
	}
}

func (w *indexer) indexResume(ctx context.Context, job IndexJob) error {
	embedding, err := w.embedder.GenerateEmbedding(ctx, job.Summary)
	if err != nil {
		return err
	}

	return w.index.UpsertResume(ctx, job.UserID, job.FileName, job.Summary, embedding)
}
