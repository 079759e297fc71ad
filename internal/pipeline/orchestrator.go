package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/pkg/apperror"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/repository/unitofwork"
	"doc-analytics-be/pkg/analysis"
	"doc-analytics-be/pkg/keywords"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const labelTermCount = 3

// Orchestrator drives one analysis pipeline per request: FETCH documents,
// REDUCE dimensions, ANALYZE with the action's algorithm, LABEL groups and
// PERSIST the artifact set atomically. One run per (user, action) at a time.
type Orchestrator struct {
	factory   unitofwork.RepositoryFactory
	reducer   analysis.Reducer
	clusterer analysis.Clusterer
	topics    analysis.TopicExtractor
	ranker    analysis.SimilarityRanker
	keywords  *keywords.Extractor
	cfg       config.AnalysisConfig
	budget    time.Duration
	locks     *RunLock
	log       logger.ILogger
}

func NewOrchestrator(
	factory unitofwork.RepositoryFactory,
	reducer analysis.Reducer,
	clusterer analysis.Clusterer,
	topics analysis.TopicExtractor,
	ranker analysis.SimilarityRanker,
	extractor *keywords.Extractor,
	cfg config.AnalysisConfig,
	budget time.Duration,
	log logger.ILogger,
) *Orchestrator {
	if budget <= 0 {
		budget = 120 * time.Second
	}
	return &Orchestrator{
		factory:   factory,
		reducer:   reducer,
		clusterer: clusterer,
		topics:    topics,
		ranker:    ranker,
		keywords:  extractor,
		cfg:       cfg,
		budget:    budget,
		locks:     NewRunLock(),
		log:       log,
	}
}

func (o *Orchestrator) RunCluster(ctx context.Context, req *dto.ClusterRequest) (*dto.ClusterRunResponse, error) {
	release, err := o.acquire(req.UserId, constant.ActionCluster)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	ctx, span := o.startSpan(ctx, constant.ActionCluster)
	defer span.End()

	run := NewRun(req.UserId, constant.ActionCluster)
	resp, err := o.cluster(ctx, run, req)
	if err != nil {
		return nil, o.failRun(run, err)
	}
	o.completeRun(run)
	return resp, nil
}

func (o *Orchestrator) RunTopics(ctx context.Context, req *dto.TopicsRequest) (*dto.TopicsRunResponse, error) {
	release, err := o.acquire(req.UserId, constant.ActionTopics)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	ctx, span := o.startSpan(ctx, constant.ActionTopics)
	defer span.End()

	run := NewRun(req.UserId, constant.ActionTopics)
	resp, err := o.topicsRun(ctx, run, req)
	if err != nil {
		return nil, o.failRun(run, err)
	}
	o.completeRun(run)
	return resp, nil
}

func (o *Orchestrator) RunRecommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendRunResponse, error) {
	release, err := o.acquire(req.UserId, constant.ActionRecommend)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	ctx, span := o.startSpan(ctx, constant.ActionRecommend)
	defer span.End()

	run := NewRun(req.UserId, constant.ActionRecommend)
	resp, err := o.recommend(ctx, run, req)
	if err != nil {
		return nil, o.failRun(run, err)
	}
	o.completeRun(run)
	return resp, nil
}

func (o *Orchestrator) RunVisualize(ctx context.Context, req *dto.VisualizeRequest) (*dto.VisualizeRunResponse, error) {
	release, err := o.acquire(req.UserId, constant.ActionVisualize)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	ctx, span := o.startSpan(ctx, constant.ActionVisualize)
	defer span.End()

	run := NewRun(req.UserId, constant.ActionVisualize)
	resp, err := o.visualize(ctx, run, req)
	if err != nil {
		return nil, o.failRun(run, err)
	}
	o.completeRun(run)
	return resp, nil
}

// ---- Stage sequences per action ----

func (o *Orchestrator) cluster(ctx context.Context, run *Run, req *dto.ClusterRequest) (*dto.ClusterRunResponse, error) {
	docs, err := o.fetch(ctx, run, 3)
	if err != nil {
		return nil, err
	}

	run.advance(StageReduce)
	reduced, err := o.reducer.ReduceDimensions(ctx, vectorsOf(docs), o.cfg.ClusterDimensions, o.cfg.ReduceMetric)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "dimensionality reduction failed", err)
	}

	run.advance(StageAnalyze)
	minSize := req.MinClusterSize
	if minSize <= 0 {
		minSize = o.cfg.MinClusterSize
	}
	raw, err := o.clusterer.Cluster(ctx, reduced, minSize, o.cfg.MinSamples)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "clustering failed", err)
	}
	assignments, err := completeAssignments(docs, raw)
	if err != nil {
		return nil, err
	}

	run.advance(StageLabel)
	textByDoc := textIndex(docs)
	members := map[int][]string{}
	for _, a := range assignments {
		if a.GroupID == constant.OutlierClusterID {
			continue
		}
		members[a.GroupID] = append(members[a.GroupID], a.DocumentID)
	}

	clusters := make([]*entity.Cluster, 0, len(members))
	for _, groupId := range sortedGroupIds(members) {
		texts := make([]string, 0, len(members[groupId]))
		for _, docId := range members[groupId] {
			texts = append(texts, textByDoc[docId])
		}
		clusters = append(clusters, &entity.Cluster{
			RunId:     run.Id,
			UserId:    run.UserId,
			ClusterId: groupId,
			Label:     o.keywords.Label(texts, labelTermCount),
			Size:      len(members[groupId]),
			Keywords:  o.keywords.TopTerms(texts, o.cfg.TopNKeywords),
		})
	}

	assignmentEntities := make([]*entity.ClusterAssignment, 0, len(assignments))
	numOutliers := 0
	for _, a := range assignments {
		isOutlier := a.GroupID == constant.OutlierClusterID
		if isOutlier {
			numOutliers++
		}
		assignmentEntities = append(assignmentEntities, &entity.ClusterAssignment{
			RunId:       run.Id,
			UserId:      run.UserId,
			DocumentId:  a.DocumentID,
			ClusterId:   a.GroupID,
			Probability: a.Probability,
			IsOutlier:   isOutlier,
		})
	}

	run.advance(StagePersist)
	err = o.inTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		repo := uow.ClusterRepository()
		if err := repo.DeleteByUser(ctx, run.UserId); err != nil {
			return err
		}
		if err := repo.CreateBulk(ctx, clusters); err != nil {
			return err
		}
		return repo.CreateAssignmentsBulk(ctx, assignmentEntities)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ClusterRunResponse{
		UserId:         run.UserId,
		RunId:          run.Id.String(),
		TotalDocuments: len(docs),
		NumClusters:    len(clusters),
		NumOutliers:    numOutliers,
		Clusters:       make([]dto.ClusterInfo, 0, len(clusters)),
	}
	if len(docs) > 0 {
		resp.OutlierPercentage = float64(numOutliers) / float64(len(docs)) * 100
	}
	for _, c := range clusters {
		resp.Clusters = append(resp.Clusters, dto.ClusterInfo{
			ClusterId: c.ClusterId,
			Label:     c.Label,
			Size:      c.Size,
			Keywords:  c.Keywords,
		})
	}
	return resp, nil
}

func (o *Orchestrator) topicsRun(ctx context.Context, run *Run, req *dto.TopicsRequest) (*dto.TopicsRunResponse, error) {
	docs, err := o.fetch(ctx, run, 3)
	if err != nil {
		return nil, err
	}

	run.advance(StageReduce)
	reduced, err := o.reducer.ReduceDimensions(ctx, vectorsOf(docs), o.cfg.ClusterDimensions, o.cfg.ReduceMetric)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "dimensionality reduction failed", err)
	}

	run.advance(StageAnalyze)
	groups, err := o.topics.ExtractTopics(ctx, textsOf(docs), reduced, o.cfg.MinClusterSize, req.NumTopics)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "topic extraction failed", err)
	}
	if err := validateTopicGroups(docs, groups); err != nil {
		return nil, err
	}

	run.advance(StageLabel)
	textByDoc := textIndex(docs)
	assigned := map[string]int{}
	topicEntities := make([]*entity.Topic, 0, len(groups))
	for _, g := range groups {
		for _, docId := range g.MemberDocumentIDs {
			assigned[docId] = g.GroupID
		}
		if g.GroupID == constant.OutlierClusterID {
			continue
		}
		texts := make([]string, 0, len(g.MemberDocumentIDs))
		for _, docId := range g.MemberDocumentIDs {
			texts = append(texts, textByDoc[docId])
		}
		kw := g.Keywords
		if len(kw) == 0 {
			kw = o.keywords.TopTerms(texts, o.cfg.TopNKeywords)
		}
		topicEntities = append(topicEntities, &entity.Topic{
			RunId:         run.Id,
			UserId:        run.UserId,
			TopicId:       g.GroupID,
			Label:         topicLabel(kw, o.keywords, texts),
			Keywords:      kw,
			DocumentCount: len(g.MemberDocumentIDs),
		})
	}

	assignmentEntities := make([]*entity.TopicAssignment, 0, len(docs))
	for _, d := range docs {
		topicId, ok := assigned[d.DocumentId]
		if !ok {
			topicId = constant.OutlierClusterID
		}
		assignmentEntities = append(assignmentEntities, &entity.TopicAssignment{
			RunId:      run.Id,
			UserId:     run.UserId,
			DocumentId: d.DocumentId,
			TopicId:    topicId,
		})
	}

	run.advance(StagePersist)
	err = o.inTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		repo := uow.TopicRepository()
		if err := repo.DeleteByUser(ctx, run.UserId); err != nil {
			return err
		}
		if err := repo.CreateBulk(ctx, topicEntities); err != nil {
			return err
		}
		return repo.CreateAssignmentsBulk(ctx, assignmentEntities)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.TopicsRunResponse{
		UserId:         run.UserId,
		RunId:          run.Id.String(),
		TotalDocuments: len(docs),
		NumTopics:      len(topicEntities),
		Topics:         make([]dto.TopicInfo, 0, len(topicEntities)),
	}
	for _, t := range topicEntities {
		resp.Topics = append(resp.Topics, dto.TopicInfo{
			TopicId:       t.TopicId,
			Label:         t.Label,
			Keywords:      t.Keywords,
			DocumentCount: t.DocumentCount,
		})
	}
	return resp, nil
}

func (o *Orchestrator) recommend(ctx context.Context, run *Run, req *dto.RecommendRequest) (*dto.RecommendRunResponse, error) {
	docs, err := o.fetch(ctx, run, 2)
	if err != nil {
		return nil, err
	}

	var source *Document
	candidates := make([]analysis.DocumentVector, 0, len(docs)-1)
	for i := range docs {
		if docs[i].DocumentId == req.DocumentId {
			source = &docs[i]
			continue
		}
		candidates = append(candidates, analysis.DocumentVector{
			DocumentID: docs[i].DocumentId,
			Vector:     docs[i].Vector,
		})
	}
	if source == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "document %s not found for user %s", req.DocumentId, req.UserId)
	}

	// REDUCE is skipped: similarity ranking works in the original embedding
	// space.
	run.advance(StageAnalyze)
	ranked, err := o.ranker.RankBySimilarity(ctx, source.Vector, candidates)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "similarity ranking failed", err)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = o.cfg.TopK
	}
	edges := make([]*entity.RecommendationEdge, 0, topK)
	for _, s := range ranked {
		if s.Score < o.cfg.SimilarityThreshold {
			continue
		}
		edges = append(edges, &entity.RecommendationEdge{
			RunId:            run.Id,
			UserId:           run.UserId,
			SourceDocumentId: req.DocumentId,
			TargetDocumentId: s.DocumentID,
			Score:            s.Score,
			Rank:             len(edges) + 1,
		})
		if len(edges) == topK {
			break
		}
	}

	run.advance(StagePersist)
	err = o.inTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		repo := uow.RecommendationRepository()
		if err := repo.DeleteBySourceDocument(ctx, run.UserId, req.DocumentId); err != nil {
			return err
		}
		return repo.CreateBulk(ctx, edges)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.RecommendRunResponse{
		UserId:          run.UserId,
		RunId:           run.Id.String(),
		DocumentId:      req.DocumentId,
		Recommendations: make([]dto.RecommendationInfo, 0, len(edges)),
	}
	for _, e := range edges {
		resp.Recommendations = append(resp.Recommendations, dto.RecommendationInfo{
			DocumentId:      e.TargetDocumentId,
			SimilarityScore: e.Score,
			Rank:            e.Rank,
		})
	}
	return resp, nil
}

func (o *Orchestrator) visualize(ctx context.Context, run *Run, req *dto.VisualizeRequest) (*dto.VisualizeRunResponse, error) {
	docs, err := o.fetch(ctx, run, 1)
	if err != nil {
		return nil, err
	}

	run.advance(StageReduce)
	reduced, err := o.reducer.ReduceDimensions(ctx, vectorsOf(docs), o.cfg.VizDimensions, o.cfg.ReduceMetric)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "dimensionality reduction failed", err)
	}
	planar := map[string][]float32{}
	for _, v := range reduced {
		if len(v.Vector) < 2 {
			return nil, apperror.Newf(apperror.KindAlgorithmFailure, "reduction returned %d dimensions for document %s, want 2", len(v.Vector), v.DocumentID)
		}
		planar[v.DocumentID] = v.Vector
	}

	// ANALYZE colors the map: the projected points are clustered so the
	// plotting side can shade by group.
	run.advance(StageAnalyze)
	groupOf := map[string]int{}
	if len(docs) >= o.cfg.MinClusterSize {
		raw, err := o.clusterer.Cluster(ctx, reduced, o.cfg.MinClusterSize, o.cfg.MinSamples)
		if err != nil {
			return nil, o.stageErr(ctx, apperror.KindAlgorithmFailure, "clustering failed", err)
		}
		assignments, err := completeAssignments(docs, raw)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			groupOf[a.DocumentID] = a.GroupID
		}
	}

	points := make([]*entity.VisualizationPoint, 0, len(docs))
	for _, d := range docs {
		v, ok := planar[d.DocumentId]
		if !ok {
			return nil, apperror.Newf(apperror.KindAlgorithmFailure, "reduction dropped document %s", d.DocumentId)
		}
		groupId, ok := groupOf[d.DocumentId]
		if !ok {
			groupId = constant.OutlierClusterID
		}
		points = append(points, &entity.VisualizationPoint{
			RunId:      run.Id,
			UserId:     run.UserId,
			DocumentId: d.DocumentId,
			X:          float64(v[0]),
			Y:          float64(v[1]),
			ClusterId:  groupId,
		})
	}

	run.advance(StagePersist)
	err = o.inTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		repo := uow.VisualizationRepository()
		if err := repo.DeleteByUser(ctx, run.UserId); err != nil {
			return err
		}
		return repo.CreateBulk(ctx, points)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.VisualizeRunResponse{
		UserId:         run.UserId,
		RunId:          run.Id.String(),
		TotalDocuments: len(docs),
		Points:         make([]dto.VisualizationPointInfo, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.VisualizationPointInfo{
			DocumentId: p.DocumentId,
			X:          p.X,
			Y:          p.Y,
			ClusterId:  p.ClusterId,
		})
	}
	return resp, nil
}

// ---- Shared stages and helpers ----

// fetch loads the user's chunk embeddings and collapses them to one mean
// vector and one concatenated text per document.
func (o *Orchestrator) fetch(ctx context.Context, run *Run, minDocs int) ([]Document, error) {
	uow := o.factory.NewUnitOfWork(ctx)
	rows, err := uow.EmbeddingRepository().FindByUser(ctx, run.UserId)
	if err != nil {
		return nil, o.stageErr(ctx, apperror.KindInternal, "load document embeddings", err)
	}
	docs := collapseChunks(rows)
	if len(docs) < minDocs {
		return nil, apperror.Newf(apperror.KindInsufficientData, "need at least %d documents, found %d", minDocs, len(docs))
	}
	return docs, nil
}

func (o *Orchestrator) inTransaction(ctx context.Context, fn func(uow unitofwork.UnitOfWork) error) error {
	uow := o.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return o.stageErr(ctx, apperror.KindPersistenceFailure, "begin transaction", err)
	}
	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			o.log.Error("pipeline", "Rollback failed", map[string]interface{}{"error": rbErr.Error()})
		}
		return o.stageErr(ctx, apperror.KindPersistenceFailure, "replace artifact set", err)
	}
	if err := uow.Commit(); err != nil {
		return o.stageErr(ctx, apperror.KindPersistenceFailure, "commit transaction", err)
	}
	return nil
}

func (o *Orchestrator) startSpan(ctx context.Context, action constant.Action) (context.Context, trace.Span) {
	return otel.Tracer("pipeline").Start(ctx, "pipeline."+string(action))
}

func (o *Orchestrator) acquire(userId string, action constant.Action) (func(), error) {
	if !o.locks.TryAcquire(userId, action) {
		return nil, apperror.Newf(apperror.KindRunInProgress, "a %s run is already in progress for user %s", action, userId)
	}
	return func() { o.locks.Release(userId, action) }, nil
}

// stageErr attaches the failure kind, unless the real cause is the run
// exceeding its wall-clock budget.
func (o *Orchestrator) stageErr(ctx context.Context, kind apperror.Kind, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.Wrap(apperror.KindTimeout, fmt.Sprintf("run exceeded the %s budget", o.budget), err)
	}
	return apperror.Wrap(kind, message, err)
}

func (o *Orchestrator) failRun(run *Run, err error) error {
	stage := run.Stage
	run.fail(err)
	o.log.Error("pipeline", "Run failed", map[string]interface{}{
		"run_id":  run.Id.String(),
		"user_id": run.UserId,
		"action":  string(run.Action),
		"stage":   string(stage),
		"kind":    string(apperror.KindOf(err)),
		"error":   err.Error(),
	})
	return err
}

func (o *Orchestrator) completeRun(run *Run) {
	run.advance(StageDone)
	o.log.Info("pipeline", "Run completed", map[string]interface{}{
		"run_id":   run.Id.String(),
		"user_id":  run.UserId,
		"action":   string(run.Action),
		"duration": time.Since(run.StartedAt).String(),
	})
}

// collapseChunks folds ordered (document_id, chunk_index) rows into one
// document each: the mean of the chunk vectors and the joined chunk text.
func collapseChunks(rows []*entity.DocumentEmbedding) []Document {
	order := make([]string, 0)
	chunks := map[string][]*entity.DocumentEmbedding{}
	for _, row := range rows {
		if _, seen := chunks[row.DocumentId]; !seen {
			order = append(order, row.DocumentId)
		}
		chunks[row.DocumentId] = append(chunks[row.DocumentId], row)
	}

	docs := make([]Document, 0, len(order))
	for _, docId := range order {
		group := chunks[docId]
		dim := len(group[0].Embedding)
		sum := make([]float64, dim)
		texts := make([]string, 0, len(group))
		for _, chunk := range group {
			for i, v := range chunk.Embedding {
				if i < dim {
					sum[i] += float64(v)
				}
			}
			texts = append(texts, chunk.Content)
		}
		mean := make([]float32, dim)
		for i := range sum {
			mean[i] = float32(sum[i] / float64(len(group)))
		}
		docs = append(docs, Document{
			DocumentId: docId,
			Vector:     mean,
			Text:       strings.Join(texts, "\n\n"),
		})
	}
	return docs
}

// completeAssignments checks the algorithm covered each input document at
// most once and fills the gaps with outlier assignments.
func completeAssignments(docs []Document, raw []analysis.Assignment) ([]analysis.Assignment, error) {
	known := make(map[string]bool, len(docs))
	for _, d := range docs {
		known[d.DocumentId] = true
	}

	seen := make(map[string]bool, len(raw))
	byDoc := make(map[string]analysis.Assignment, len(raw))
	for _, a := range raw {
		if !known[a.DocumentID] {
			return nil, apperror.Newf(apperror.KindAlgorithmFailure, "algorithm returned unknown document %s", a.DocumentID)
		}
		if seen[a.DocumentID] {
			return nil, apperror.Newf(apperror.KindAlgorithmFailure, "algorithm returned document %s more than once", a.DocumentID)
		}
		seen[a.DocumentID] = true
		byDoc[a.DocumentID] = a
	}

	out := make([]analysis.Assignment, 0, len(docs))
	for _, d := range docs {
		if a, ok := byDoc[d.DocumentId]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, analysis.Assignment{
			DocumentID:  d.DocumentId,
			GroupID:     constant.OutlierClusterID,
			Probability: 0,
		})
	}
	return out, nil
}

func validateTopicGroups(docs []Document, groups []analysis.TopicGroup) error {
	known := make(map[string]bool, len(docs))
	for _, d := range docs {
		known[d.DocumentId] = true
	}
	seen := map[string]bool{}
	for _, g := range groups {
		for _, docId := range g.MemberDocumentIDs {
			if !known[docId] {
				return apperror.Newf(apperror.KindAlgorithmFailure, "algorithm returned unknown document %s", docId)
			}
			if seen[docId] {
				return apperror.Newf(apperror.KindAlgorithmFailure, "algorithm returned document %s more than once", docId)
			}
			seen[docId] = true
		}
	}
	return nil
}

// topicLabel prefers the algorithm's own keywords, falling back to local
// extraction when it returned none.
func topicLabel(kw []string, extractor *keywords.Extractor, texts []string) string {
	if len(kw) > 0 {
		return keywords.LabelFromTerms(kw, labelTermCount)
	}
	return extractor.Label(texts, labelTermCount)
}

func vectorsOf(docs []Document) []analysis.DocumentVector {
	out := make([]analysis.DocumentVector, 0, len(docs))
	for _, d := range docs {
		out = append(out, analysis.DocumentVector{DocumentID: d.DocumentId, Vector: d.Vector})
	}
	return out
}

func textsOf(docs []Document) []analysis.DocumentText {
	out := make([]analysis.DocumentText, 0, len(docs))
	for _, d := range docs {
		out = append(out, analysis.DocumentText{DocumentID: d.DocumentId, Text: d.Text})
	}
	return out
}

func textIndex(docs []Document) map[string]string {
	out := make(map[string]string, len(docs))
	for _, d := range docs {
		out[d.DocumentId] = d.Text
	}
	return out
}

func sortedGroupIds(members map[int][]string) []int {
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
