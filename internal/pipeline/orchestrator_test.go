package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/pkg/apperror"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/repository/contract"
	"doc-analytics-be/internal/repository/unitofwork"
	"doc-analytics-be/pkg/analysis"
	"doc-analytics-be/pkg/keywords"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- In-memory persistence fakes ----

type memStore struct {
	mu sync.Mutex

	embeddings         []*entity.DocumentEmbedding
	clusters           []*entity.Cluster
	clusterAssignments []*entity.ClusterAssignment
	topics             []*entity.Topic
	topicAssignments   []*entity.TopicAssignment
	edges              []*entity.RecommendationEdge
	points             []*entity.VisualizationPoint

	failCreate bool
}

type memFactory struct{ store *memStore }

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

// memUow stages mutations between Begin and Commit so a rolled back run
// leaves the store untouched.
type memUow struct {
	store   *memStore
	pending []func(s *memStore)
}

func (u *memUow) Begin(ctx context.Context) error { return nil }

func (u *memUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, apply := range u.pending {
		apply(u.store)
	}
	u.pending = nil
	return nil
}

func (u *memUow) Rollback() error {
	u.pending = nil
	return nil
}

func (u *memUow) EmbeddingRepository() contract.EmbeddingRepository {
	return &memEmbeddingRepo{u: u}
}
func (u *memUow) ClusterRepository() contract.ClusterRepository { return &memClusterRepo{u: u} }
func (u *memUow) TopicRepository() contract.TopicRepository     { return &memTopicRepo{u: u} }
func (u *memUow) RecommendationRepository() contract.RecommendationRepository {
	return &memRecommendationRepo{u: u}
}
func (u *memUow) VisualizationRepository() contract.VisualizationRepository {
	return &memVisualizationRepo{u: u}
}

type memEmbeddingRepo struct{ u *memUow }

func (r *memEmbeddingRepo) FindByUser(ctx context.Context, userId string) ([]*entity.DocumentEmbedding, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.DocumentEmbedding{}
	for _, e := range r.u.store.embeddings {
		if e.UserId == userId {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEmbeddingRepo) FindByDocument(ctx context.Context, userId, documentId string) ([]*entity.DocumentEmbedding, error) {
	rows, _ := r.FindByUser(ctx, userId)
	out := []*entity.DocumentEmbedding{}
	for _, e := range rows {
		if e.DocumentId == documentId {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEmbeddingRepo) CountDocuments(ctx context.Context, userId string) (int64, error) {
	rows, _ := r.FindByUser(ctx, userId)
	seen := map[string]bool{}
	for _, e := range rows {
		seen[e.DocumentId] = true
	}
	return int64(len(seen)), nil
}

func (r *memEmbeddingRepo) SearchSimilar(ctx context.Context, userId, excludeDocumentId string, query []float32, limit int, threshold float64) ([]*contract.ScoredDocument, error) {
	return nil, nil
}

type memClusterRepo struct{ u *memUow }

func (r *memClusterRepo) CreateBulk(ctx context.Context, clusters []*entity.Cluster) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) { s.clusters = append(s.clusters, clusters...) })
	return nil
}

func (r *memClusterRepo) CreateAssignmentsBulk(ctx context.Context, assignments []*entity.ClusterAssignment) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) {
		s.clusterAssignments = append(s.clusterAssignments, assignments...)
	})
	return nil
}

func (r *memClusterRepo) DeleteByUser(ctx context.Context, userId string) error {
	r.u.pending = append(r.u.pending, func(s *memStore) {
		kept := []*entity.Cluster{}
		for _, c := range s.clusters {
			if c.UserId != userId {
				kept = append(kept, c)
			}
		}
		s.clusters = kept
		keptA := []*entity.ClusterAssignment{}
		for _, a := range s.clusterAssignments {
			if a.UserId != userId {
				keptA = append(keptA, a)
			}
		}
		s.clusterAssignments = keptA
	})
	return nil
}

func (r *memClusterRepo) FindByUser(ctx context.Context, userId string) ([]*entity.Cluster, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.Cluster{}
	for _, c := range r.u.store.clusters {
		if c.UserId == userId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClusterRepo) FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.ClusterAssignment, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.ClusterAssignment{}
	for _, a := range r.u.store.clusterAssignments {
		if a.UserId == userId {
			out = append(out, a)
		}
	}
	return out, nil
}

type memTopicRepo struct{ u *memUow }

func (r *memTopicRepo) CreateBulk(ctx context.Context, topics []*entity.Topic) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) { s.topics = append(s.topics, topics...) })
	return nil
}

func (r *memTopicRepo) CreateAssignmentsBulk(ctx context.Context, assignments []*entity.TopicAssignment) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) {
		s.topicAssignments = append(s.topicAssignments, assignments...)
	})
	return nil
}

func (r *memTopicRepo) DeleteByUser(ctx context.Context, userId string) error {
	r.u.pending = append(r.u.pending, func(s *memStore) {
		kept := []*entity.Topic{}
		for _, t := range s.topics {
			if t.UserId != userId {
				kept = append(kept, t)
			}
		}
		s.topics = kept
		keptA := []*entity.TopicAssignment{}
		for _, a := range s.topicAssignments {
			if a.UserId != userId {
				keptA = append(keptA, a)
			}
		}
		s.topicAssignments = keptA
	})
	return nil
}

func (r *memTopicRepo) FindByUser(ctx context.Context, userId string) ([]*entity.Topic, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.Topic{}
	for _, t := range r.u.store.topics {
		if t.UserId == userId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTopicRepo) FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.TopicAssignment, error) {
	return nil, nil
}

type memRecommendationRepo struct{ u *memUow }

func (r *memRecommendationRepo) CreateBulk(ctx context.Context, edges []*entity.RecommendationEdge) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) { s.edges = append(s.edges, edges...) })
	return nil
}

func (r *memRecommendationRepo) DeleteBySourceDocument(ctx context.Context, userId, sourceDocumentId string) error {
	r.u.pending = append(r.u.pending, func(s *memStore) {
		kept := []*entity.RecommendationEdge{}
		for _, e := range s.edges {
			if e.UserId != userId || e.SourceDocumentId != sourceDocumentId {
				kept = append(kept, e)
			}
		}
		s.edges = kept
	})
	return nil
}

func (r *memRecommendationRepo) FindBySourceDocument(ctx context.Context, userId, sourceDocumentId string) ([]*entity.RecommendationEdge, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.RecommendationEdge{}
	for _, e := range r.u.store.edges {
		if e.UserId == userId && e.SourceDocumentId == sourceDocumentId {
			out = append(out, e)
		}
	}
	return out, nil
}

type memVisualizationRepo struct{ u *memUow }

func (r *memVisualizationRepo) CreateBulk(ctx context.Context, points []*entity.VisualizationPoint) error {
	if r.u.store.failCreate {
		return errors.New("insert rejected")
	}
	r.u.pending = append(r.u.pending, func(s *memStore) { s.points = append(s.points, points...) })
	return nil
}

func (r *memVisualizationRepo) DeleteByUser(ctx context.Context, userId string) error {
	r.u.pending = append(r.u.pending, func(s *memStore) {
		kept := []*entity.VisualizationPoint{}
		for _, p := range s.points {
			if p.UserId != userId {
				kept = append(kept, p)
			}
		}
		s.points = kept
	})
	return nil
}

func (r *memVisualizationRepo) FindByUser(ctx context.Context, userId string) ([]*entity.VisualizationPoint, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	out := []*entity.VisualizationPoint{}
	for _, p := range r.u.store.points {
		if p.UserId == userId {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- Algorithm fakes ----

type fakeReducer struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (f *fakeReducer) ReduceDimensions(ctx context.Context, vectors []analysis.DocumentVector, targetDim int, metric string) ([]analysis.DocumentVector, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]analysis.DocumentVector, 0, len(vectors))
	for _, v := range vectors {
		reduced := make([]float32, targetDim)
		copy(reduced, v.Vector)
		out = append(out, analysis.DocumentVector{DocumentID: v.DocumentID, Vector: reduced})
	}
	return out, nil
}

type fakeClusterer struct {
	assign map[string]int // document id -> group; missing ids are omitted from the result
	prob   float64
	err    error
}

func (f *fakeClusterer) Cluster(ctx context.Context, vectors []analysis.DocumentVector, minGroupSize, minSamples int) ([]analysis.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []analysis.Assignment{}
	for _, v := range vectors {
		groupId, ok := f.assign[v.DocumentID]
		if !ok {
			continue
		}
		out = append(out, analysis.Assignment{DocumentID: v.DocumentID, GroupID: groupId, Probability: f.prob})
	}
	return out, nil
}

type fakeTopicExtractor struct {
	groups    []analysis.TopicGroup
	err       error
	numTopics int
}

func (f *fakeTopicExtractor) ExtractTopics(ctx context.Context, documents []analysis.DocumentText, vectors []analysis.DocumentVector, minGroupSize, numTopics int) ([]analysis.TopicGroup, error) {
	f.numTopics = numTopics
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}

// ---- Fixtures ----

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		MinClusterSize:      3,
		MinSamples:          2,
		ClusterDimensions:   5,
		VizDimensions:       2,
		ReduceMetric:        "cosine",
		TopK:                5,
		SimilarityThreshold: 0.7,
		TopNKeywords:        10,
	}
}

func seedDocuments(store *memStore, userId string, docs map[string][]string) {
	for docId, chunks := range docs {
		for i, text := range chunks {
			store.embeddings = append(store.embeddings, &entity.DocumentEmbedding{
				UserId:     userId,
				DocumentId: docId,
				ChunkIndex: i,
				Content:    text,
				Embedding:  []float32{float32(len(text)), 1, 0, 0, 0},
			})
		}
	}
}

func newTestOrchestrator(store *memStore, reducer analysis.Reducer, clusterer analysis.Clusterer, topics analysis.TopicExtractor, budget time.Duration) *Orchestrator {
	return NewOrchestrator(
		&memFactory{store: store},
		reducer,
		clusterer,
		topics,
		analysis.NewCosineRanker(),
		keywords.NewExtractor(),
		testAnalysisConfig(),
		budget,
		logger.NewNopLogger(),
	)
}

// ---- Tests ----

func TestRunClusterSuccess(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"machine learning models", "training machine learning"},
		"d2": {"machine learning pipelines"},
		"d3": {"cooking pasta recipes"},
		"d4": {"italian cooking recipes"},
		"d5": {"random note"},
	})
	// d5 is omitted by the algorithm and must come back as an outlier.
	clusterer := &fakeClusterer{
		assign: map[string]int{"d1": 0, "d2": 0, "d3": 1, "d4": 1},
		prob:   0.9,
	}
	o := newTestOrchestrator(store, &fakeReducer{}, clusterer, &fakeTopicExtractor{}, time.Minute)

	resp, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.NoError(t, err)

	assert.Equal(t, "u1", resp.UserId)
	assert.Equal(t, 5, resp.TotalDocuments)
	assert.Equal(t, 2, resp.NumClusters)
	assert.Equal(t, 1, resp.NumOutliers)
	assert.InDelta(t, 20.0, resp.OutlierPercentage, 0.001)
	require.Len(t, resp.Clusters, 2)
	assert.Equal(t, 0, resp.Clusters[0].ClusterId)
	assert.Equal(t, 2, resp.Clusters[0].Size)
	assert.NotEmpty(t, resp.Clusters[0].Label)
	assert.NotEmpty(t, resp.Clusters[0].Keywords)

	assert.Len(t, store.clusters, 2)
	require.Len(t, store.clusterAssignments, 5)
	for _, a := range store.clusterAssignments {
		if a.DocumentId == "d5" {
			assert.True(t, a.IsOutlier)
			assert.Equal(t, constant.OutlierClusterID, a.ClusterId)
			assert.Zero(t, a.Probability)
		} else {
			assert.False(t, a.IsOutlier)
		}
	}
}

func TestRunClusterReplacesPreviousArtifacts(t *testing.T) {
	store := &memStore{}
	store.clusters = append(store.clusters, &entity.Cluster{UserId: "u1", ClusterId: 7, Label: "Stale"})
	store.clusterAssignments = append(store.clusterAssignments, &entity.ClusterAssignment{UserId: "u1", DocumentId: "old"})
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"alpha"}, "d2": {"beta"}, "d3": {"gamma"},
	})
	clusterer := &fakeClusterer{assign: map[string]int{"d1": 0, "d2": 0, "d3": 0}, prob: 1}
	o := newTestOrchestrator(store, &fakeReducer{}, clusterer, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.NoError(t, err)

	require.Len(t, store.clusters, 1)
	assert.NotEqual(t, "Stale", store.clusters[0].Label)
	for _, a := range store.clusterAssignments {
		assert.NotEqual(t, "old", a.DocumentId)
	}
}

func TestRunClusterInsufficientData(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"one"}, "d2": {"two"},
	})
	reducer := &fakeReducer{}
	o := newTestOrchestrator(store, reducer, &fakeClusterer{}, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientData))
	assert.Zero(t, reducer.calls, "no algorithm call before the document check")
	assert.Empty(t, store.clusters)
}

func TestRunClusterAlgorithmFailure(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	o := newTestOrchestrator(store, &fakeReducer{err: errors.New("solver diverged")}, &fakeClusterer{}, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAlgorithmFailure))
}

func TestRunClusterUnknownDocumentFromAlgorithm(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	clusterer := &fakeClusterer{assign: map[string]int{"d1": 0, "ghost": 0}, prob: 1}
	o := newTestOrchestrator(store, &fakeReducer{}, clusterer, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAlgorithmFailure))
}

func TestRunClusterPersistenceFailureKeepsPriorArtifacts(t *testing.T) {
	store := &memStore{failCreate: true}
	store.clusters = append(store.clusters, &entity.Cluster{UserId: "u1", Label: "Previous"})
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	clusterer := &fakeClusterer{assign: map[string]int{"d1": 0, "d2": 0, "d3": 0}, prob: 1}
	o := newTestOrchestrator(store, &fakeReducer{}, clusterer, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPersistenceFailure))

	require.Len(t, store.clusters, 1)
	assert.Equal(t, "Previous", store.clusters[0].Label)
}

func TestRunClusterTimeout(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	reducer := &fakeReducer{delay: 200 * time.Millisecond}
	o := newTestOrchestrator(store, reducer, &fakeClusterer{}, &fakeTopicExtractor{}, 20*time.Millisecond)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTimeout))
}

func TestRunInProgressRejection(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	reducer := &fakeReducer{delay: 150 * time.Millisecond}
	clusterer := &fakeClusterer{assign: map[string]int{"d1": 0, "d2": 0, "d3": 0}, prob: 1}
	o := newTestOrchestrator(store, reducer, clusterer, &fakeTopicExtractor{}, time.Minute)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
		done <- err
	}()
	<-started
	time.Sleep(30 * time.Millisecond)

	_, err := o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindRunInProgress))

	// A different action for the same user is not blocked by the cluster run.
	_, err = o.RunVisualize(context.Background(), &dto.VisualizeRequest{UserId: "u1"})
	assert.False(t, apperror.IsKind(err, apperror.KindRunInProgress))

	require.NoError(t, <-done)

	// The lock is released after the first run completes.
	_, err = o.RunCluster(context.Background(), &dto.ClusterRequest{UserId: "u1"})
	assert.NoError(t, err)
}

func TestRunTopicsSuccess(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"neural networks deep learning"},
		"d2": {"gradient descent learning"},
		"d3": {"gardening tips"},
	})
	topics := &fakeTopicExtractor{groups: []analysis.TopicGroup{
		{GroupID: 0, Keywords: []string{"learning", "networks"}, MemberDocumentIDs: []string{"d1", "d2"}},
		{GroupID: constant.OutlierClusterID, MemberDocumentIDs: []string{"d3"}},
	}}
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{}, topics, time.Minute)

	resp, err := o.RunTopics(context.Background(), &dto.TopicsRequest{UserId: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalDocuments)
	assert.Equal(t, 1, resp.NumTopics)
	require.Len(t, resp.Topics, 1)
	assert.Equal(t, "Learning / Networks", resp.Topics[0].Label)
	assert.Equal(t, 2, resp.Topics[0].DocumentCount)

	assert.Len(t, store.topics, 1)
	require.Len(t, store.topicAssignments, 3)
	for _, a := range store.topicAssignments {
		if a.DocumentId == "d3" {
			assert.Equal(t, constant.OutlierClusterID, a.TopicId)
		} else {
			assert.Equal(t, 0, a.TopicId)
		}
	}
}

func TestRunTopicsForwardsRequestedTopicCount(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"neural networks"},
		"d2": {"gradient descent"},
		"d3": {"gardening tips"},
	})
	topics := &fakeTopicExtractor{groups: []analysis.TopicGroup{
		{GroupID: 0, Keywords: []string{"learning"}, MemberDocumentIDs: []string{"d1", "d2", "d3"}},
	}}
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{}, topics, time.Minute)

	_, err := o.RunTopics(context.Background(), &dto.TopicsRequest{UserId: "u1", NumTopics: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, topics.numTopics)

	// Zero means the algorithm picks the count.
	_, err = o.RunTopics(context.Background(), &dto.TopicsRequest{UserId: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 0, topics.numTopics)
}

func TestRunRecommendSuccess(t *testing.T) {
	store := &memStore{}
	// Orthogonal-ish vectors: d2 is nearly identical to d1, d3 is far away.
	store.embeddings = []*entity.DocumentEmbedding{
		{UserId: "u1", DocumentId: "d1", ChunkIndex: 0, Content: "a", Embedding: []float32{1, 0, 0}},
		{UserId: "u1", DocumentId: "d2", ChunkIndex: 0, Content: "b", Embedding: []float32{0.9, 0.1, 0}},
		{UserId: "u1", DocumentId: "d3", ChunkIndex: 0, Content: "c", Embedding: []float32{0, 0, 1}},
	}
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{}, &fakeTopicExtractor{}, time.Minute)

	resp, err := o.RunRecommend(context.Background(), &dto.RecommendRequest{UserId: "u1", DocumentId: "d1"})
	require.NoError(t, err)

	// d3 scores below the 0.7 threshold and is dropped.
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "d2", resp.Recommendations[0].DocumentId)
	assert.Equal(t, 1, resp.Recommendations[0].Rank)
	assert.Greater(t, resp.Recommendations[0].SimilarityScore, 0.7)

	require.Len(t, store.edges, 1)
	assert.Equal(t, "d1", store.edges[0].SourceDocumentId)
	assert.Equal(t, "d2", store.edges[0].TargetDocumentId)
}

func TestRunRecommendSourceNotFound(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"},
	})
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{}, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunRecommend(context.Background(), &dto.RecommendRequest{UserId: "u1", DocumentId: "missing"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRunVisualizeSuccess(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"a"}, "d2": {"b"}, "d3": {"c"},
	})
	clusterer := &fakeClusterer{assign: map[string]int{"d1": 0, "d2": 0, "d3": 0}, prob: 1}
	o := newTestOrchestrator(store, &fakeReducer{}, clusterer, &fakeTopicExtractor{}, time.Minute)

	resp, err := o.RunVisualize(context.Background(), &dto.VisualizeRequest{UserId: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalDocuments)
	require.Len(t, resp.Points, 3)
	for _, p := range resp.Points {
		assert.Equal(t, 0, p.ClusterId)
	}
	assert.Len(t, store.points, 3)
}

func TestRunVisualizeSmallSetSkipsClustering(t *testing.T) {
	store := &memStore{}
	seedDocuments(store, "u1", map[string][]string{
		"d1": {"only one"},
	})
	// The clusterer would fail if called; one document is below the minimum
	// group size so the points are all unclustered.
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{err: errors.New("should not be called")}, &fakeTopicExtractor{}, time.Minute)

	resp, err := o.RunVisualize(context.Background(), &dto.VisualizeRequest{UserId: "u1"})
	require.NoError(t, err)
	require.Len(t, resp.Points, 1)
	assert.Equal(t, constant.OutlierClusterID, resp.Points[0].ClusterId)
}

func TestRunVisualizeNoDocuments(t *testing.T) {
	store := &memStore{}
	o := newTestOrchestrator(store, &fakeReducer{}, &fakeClusterer{}, &fakeTopicExtractor{}, time.Minute)

	_, err := o.RunVisualize(context.Background(), &dto.VisualizeRequest{UserId: "nobody"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientData))
}

func TestCollapseChunksMeansVectorsAndJoinsText(t *testing.T) {
	rows := []*entity.DocumentEmbedding{
		{DocumentId: "d1", ChunkIndex: 0, Content: "first", Embedding: []float32{1, 3}},
		{DocumentId: "d1", ChunkIndex: 1, Content: "second", Embedding: []float32{3, 5}},
		{DocumentId: "d2", ChunkIndex: 0, Content: "solo", Embedding: []float32{2, 2}},
	}
	docs := collapseChunks(rows)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].DocumentId)
	assert.Equal(t, []float32{2, 4}, docs[0].Vector)
	assert.Equal(t, "first\n\nsecond", docs[0].Text)
	assert.Equal(t, []float32{2, 2}, docs[1].Vector)
}
