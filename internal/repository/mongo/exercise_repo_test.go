package mongo

import (
	"context"
	"testing"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestExerciseRepositoryMock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "workouthub.exercises"

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "1"},
			{Key: "name", Value: "Push-ups"},
			{Key: "description", Value: "Upper body"},
		}))

		ex, err := repo.GetByID(context.Background(), "1")
		require.NoError(mt, err)
		assert.Equal(mt, "Push-ups", ex.Name)
		assert.Nil(mt, ex.UserID)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "999")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ex := &domain.Exercise{Name: "Rows"}
		require.NoError(mt, repo.Create(context.Background(), ex))
		assert.NotEmpty(mt, ex.ID)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &domain.Exercise{ID: "999", Name: "x"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), "999")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update clears userId", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.Update(context.Background(), &domain.Exercise{ID: "1", Name: "Push-ups"}))
		cmd := lastCommand(mt, "update", exerciseCollectionName)
		_, err := cmd.LookupErr("updates", "0", "u", "$unset", "userId")
		assert.NoError(mt, err)
		assert.Equal(mt, "Push-ups", cmd.Lookup("updates", "0", "u", "$set", "name").StringValue())
	})

	mt.Run("update keeps userId when set", func(mt *mtest.T) {
		repo := NewStore(nil, mt.DB).Exercises()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		owner := "user123"
		require.NoError(mt, repo.Update(context.Background(), &domain.Exercise{ID: "1", Name: "Push-ups", UserID: &owner}))
		cmd := lastCommand(mt, "update", exerciseCollectionName)
		assert.Equal(mt, "user123", cmd.Lookup("updates", "0", "u", "$set", "userId").StringValue())
		_, err := cmd.LookupErr("updates", "0", "u", "$unset")
		assert.Error(mt, err)
	})
}

func TestSeedMock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "workouthub." + migrationCollectionName

	mt.Run("skips when marker exists", func(mt *mtest.T) {
		store := NewStore(nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: seedMigrationID},
		}))

		require.NoError(mt, store.Seed(context.Background()))
		assert.Equal(mt, []string{"find migrations"}, commandTargets(mt))
	})

	mt.Run("inserts catalog before marker", func(mt *mtest.T) {
		store := NewStore(nil, mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 8}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, store.Seed(context.Background()))
		assert.Equal(mt, []string{"find migrations", "insert exercises", "insert migrations"}, commandTargets(mt))

		insert := lastCommand(mt, "insert", exerciseCollectionName)
		assert.Equal(mt, "1", insert.Lookup("documents", "0", "_id").StringValue())
		assert.Equal(mt, "8", insert.Lookup("documents", "7", "_id").StringValue())
		assert.False(mt, insert.Lookup("ordered").Boolean())
	})

	mt.Run("rows from an earlier run do not fail the seed", func(mt *mtest.T) {
		store := NewStore(nil, mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, store.Seed(context.Background()))
		assert.Equal(mt, []string{"find migrations", "insert exercises", "insert migrations"}, commandTargets(mt))
	})

	mt.Run("failed catalog insert is retried on next boot", func(mt *mtest.T) {
		store := NewStore(nil, mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}),
		)

		require.Error(mt, store.Seed(context.Background()))
		assert.Equal(mt, []string{"find migrations", "insert exercises"}, commandTargets(mt), "marker must not be written")

		mt.ClearEvents()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 8}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		require.NoError(mt, store.Seed(context.Background()))
		assert.Equal(mt, []string{"find migrations", "insert exercises", "insert migrations"}, commandTargets(mt))
	})
}
