package service

import (
	"context"
	"testing"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/repository/contract"
	"doc-analytics-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTopicRepo struct {
	topics      []*entity.Topic
	assignments []*entity.TopicAssignment
}

func (r *fakeTopicRepo) CreateBulk(ctx context.Context, topics []*entity.Topic) error {
	r.topics = append(r.topics, topics...)
	return nil
}

func (r *fakeTopicRepo) CreateAssignmentsBulk(ctx context.Context, assignments []*entity.TopicAssignment) error {
	r.assignments = append(r.assignments, assignments...)
	return nil
}

func (r *fakeTopicRepo) DeleteByUser(ctx context.Context, userId string) error {
	return nil
}

func (r *fakeTopicRepo) FindByUser(ctx context.Context, userId string) ([]*entity.Topic, error) {
	out := []*entity.Topic{}
	for _, t := range r.topics {
		if t.UserId == userId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTopicRepo) FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.TopicAssignment, error) {
	out := []*entity.TopicAssignment{}
	for _, a := range r.assignments {
		if a.UserId == userId {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeUow struct {
	topicRepo *fakeTopicRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) EmbeddingRepository() contract.EmbeddingRepository { return nil }
func (u *fakeUow) ClusterRepository() contract.ClusterRepository     { return nil }
func (u *fakeUow) TopicRepository() contract.TopicRepository         { return u.topicRepo }
func (u *fakeUow) RecommendationRepository() contract.RecommendationRepository {
	return nil
}
func (u *fakeUow) VisualizationRepository() contract.VisualizationRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestGetTopicsReturnsTopicsAndAssignments(t *testing.T) {
	repo := &fakeTopicRepo{
		topics: []*entity.Topic{
			{UserId: "u1", TopicId: 0, Label: "Learning", Keywords: []string{"learning"}, DocumentCount: 2},
		},
		assignments: []*entity.TopicAssignment{
			{UserId: "u1", DocumentId: "d1", TopicId: 0},
			{UserId: "u1", DocumentId: "d2", TopicId: 0},
			{UserId: "u1", DocumentId: "d3", TopicId: constant.OutlierClusterID},
			{UserId: "u2", DocumentId: "x1", TopicId: 0},
		},
	}
	svc := NewResultService(&fakeFactory{uow: &fakeUow{topicRepo: repo}}, nil, config.AnalysisConfig{}, logger.NewNopLogger())

	resp, err := svc.GetTopics(context.Background(), &dto.GetTopicsRequest{UserId: "u1"})
	require.NoError(t, err)

	require.Len(t, resp.Topics, 1)
	assert.Equal(t, "Learning", resp.Topics[0].Label)

	require.Len(t, resp.Assignments, 3)
	byDoc := map[string]int{}
	for _, a := range resp.Assignments {
		byDoc[a.DocumentId] = a.TopicId
	}
	assert.Equal(t, 0, byDoc["d1"])
	assert.Equal(t, 0, byDoc["d2"])
	assert.Equal(t, constant.OutlierClusterID, byDoc["d3"])
}

func TestGetTopicsEmptyUser(t *testing.T) {
	svc := NewResultService(&fakeFactory{uow: &fakeUow{topicRepo: &fakeTopicRepo{}}}, nil, config.AnalysisConfig{}, logger.NewNopLogger())

	resp, err := svc.GetTopics(context.Background(), &dto.GetTopicsRequest{UserId: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, resp.Topics)
	assert.Empty(t, resp.Assignments)
}
