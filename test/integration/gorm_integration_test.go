package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/repository/unitofwork"
	"doc-analytics-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	require.NoError(t, database.Migrate(gormDB))

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.EmbeddingRepository())
	assert.NotNil(t, uow.ClusterRepository())
	assert.NotNil(t, uow.TopicRepository())
	assert.NotNil(t, uow.RecommendationRepository())
	assert.NotNil(t, uow.VisualizationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Embedding Repository", func(t *testing.T) {
		count, err := uow.EmbeddingRepository().CountDocuments(context.Background(), "integration-nobody")
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Transactional Artifact Replace", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.New().String()
		runId := uuid.New()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		err = uow.ClusterRepository().DeleteByUser(ctx, userId)
		assert.NoError(t, err)

		clusters := []*entity.Cluster{{
			RunId:     runId,
			UserId:    userId,
			ClusterId: 0,
			Label:     "Integration / Test",
			Size:      2,
			Keywords:  []string{"integration", "test"},
		}}
		err = uow.ClusterRepository().CreateBulk(ctx, clusters)
		assert.NoError(t, err)

		assignments := []*entity.ClusterAssignment{
			{RunId: runId, UserId: userId, DocumentId: "doc-a", ClusterId: 0, Probability: 0.9},
			{RunId: runId, UserId: userId, DocumentId: "doc-b", ClusterId: 0, Probability: 0.8},
		}
		err = uow.ClusterRepository().CreateAssignmentsBulk(ctx, assignments)
		assert.NoError(t, err)

		// Visible inside the transaction.
		found, err := uow.ClusterRepository().FindByUser(ctx, userId)
		assert.NoError(t, err)
		assert.Len(t, found, 1)

		// Rolled back by the deferred Rollback; a fresh unit of work must
		// not see the rows.
		err = uow.Rollback()
		assert.NoError(t, err)

		fresh := uowFactory.NewUnitOfWork(ctx)
		found, err = fresh.ClusterRepository().FindByUser(ctx, userId)
		assert.NoError(t, err)
		assert.Empty(t, found)
	})
}
