package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"rezoom/feedback-api/internal/models"
)

// FeedbackIndex stores feedback embeddings so a user can look up earlier
// critiques that resemble a given one.
type FeedbackIndex interface {
	Enabled() bool
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, feedback *models.Feedback, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, userEmail string, limit int) ([]uuid.UUID, error)
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

// NewFeedbackIndex connects to Qdrant, or returns a disabled index when
// urlStr is empty.
func NewFeedbackIndex(urlStr, apiKey, collectionName string, vectorSize uint64) (FeedbackIndex, error) {
	if urlStr == "" {
		return noopIndex{}, nil
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port unless the URL names one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}, nil
}

func (q *qdrantIndex) Enabled() bool {
	return true
}

// InitCollection implements FeedbackIndex.
func (q *qdrantIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Upsert implements FeedbackIndex. The point id is the feedback id, so
// re-indexing a record overwrites it.
func (q *qdrantIndex) Upsert(ctx context.Context, feedback *models.Feedback, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(feedback.ID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"user_email": feedback.UserEmail,
			"company":    feedback.Company,
			"position":   feedback.Position,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements FeedbackIndex. Results are limited to the user's
// own feedbacks, best match first.
func (q *qdrantIndex) SearchSimilar(ctx context.Context, embedding []float32, userEmail string, limit int) ([]uuid.UUID, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("user_email", userEmail),
			},
		},
		Limit: qdrant.PtrOf(uint64(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(points))
	for _, point := range points {
		id, err := uuid.Parse(point.GetId().GetUuid())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

type noopIndex struct{}

func (noopIndex) Enabled() bool { return false }

func (noopIndex) InitCollection(context.Context) error { return nil }

func (noopIndex) Upsert(context.Context, *models.Feedback, []float32) error { return nil }

func (noopIndex) SearchSimilar(context.Context, []float32, string, int) ([]uuid.UUID, error) {
	return nil, nil
}
