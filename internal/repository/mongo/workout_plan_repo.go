// internal/repository/mongo/workout_plan_repo.go
package mongo

import (
	"context"

	"alcyxob/workouthub/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// workoutPlanRepository implements repository.WorkoutPlanRepository
type workoutPlanRepository struct {
	collection *mongo.Collection
	schedule   *mongo.Collection
}

// Create inserts the plan, then its schedule in slice order.
func (r *workoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == "" {
		plan.ID = domain.NewID()
	}
	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return err
	}
	if len(plan.ScheduledWorkouts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(plan.ScheduledWorkouts))
	for i := range plan.ScheduledWorkouts {
		s := &plan.ScheduledWorkouts[i]
		if s.ID == "" {
			s.ID = domain.NewID()
		}
		s.PlanID = plan.ID
		s.Position = i
		docs = append(docs, s)
	}
	if _, err := r.schedule.InsertMany(ctx, docs); err != nil {
		removeParent(ctx, r.collection, plan.ID)
		return err
	}
	return nil
}

// GetByID retrieves a plan and its schedule.
func (r *workoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		return nil, translate(err)
	}
	schedule, err := findScheduledWorkouts(ctx, r.schedule, bson.M{"planId": id})
	if err != nil {
		return nil, err
	}
	plan.ScheduledWorkouts = schedule
	plan.CreatedAt = plan.CreatedAt.UTC()
	return &plan, nil
}

func (r *workoutPlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	return r.find(ctx, bson.M{})
}

// ListByUserID retrieves all plans owned by userID.
func (r *workoutPlanRepository) ListByUserID(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *workoutPlanRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutPlan, error) {
	cursor, err := r.collection.Find(ctx, filter, insertionOrder())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := make([]domain.WorkoutPlan, 0)
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	for i := range plans {
		schedule, err := findScheduledWorkouts(ctx, r.schedule, bson.M{"planId": plans[i].ID})
		if err != nil {
			return nil, err
		}
		plans[i].ScheduledWorkouts = schedule
		plans[i].CreatedAt = plans[i].CreatedAt.UTC()
	}
	return plans, nil
}

// Update changes name and owner; createdAt is never rewritten.
func (r *workoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": plan.ID},
		bson.M{"$set": bson.M{"name": plan.Name, "userId": plan.UserID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes the schedule, then the plan, in the same order as workouts.
func (r *workoutPlanRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.schedule.DeleteMany(ctx, bson.M{"planId": id}); err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

// scheduledWorkoutRepository implements repository.ScheduledWorkoutRepository
type scheduledWorkoutRepository struct {
	collection *mongo.Collection
}

func (r *scheduledWorkoutRepository) Create(ctx context.Context, s *domain.ScheduledWorkout) error {
	if s.ID == "" {
		s.ID = domain.NewID()
	}
	pos, err := nextPosition(ctx, r.collection, "planId", s.PlanID)
	if err != nil {
		return err
	}
	s.Position = pos
	_, err = r.collection.InsertOne(ctx, s)
	return err
}

func (r *scheduledWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledWorkout, error) {
	var s domain.ScheduledWorkout
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *scheduledWorkoutRepository) ListByPlanID(ctx context.Context, planID string) ([]domain.ScheduledWorkout, error) {
	return findScheduledWorkouts(ctx, r.collection, bson.M{"planId": planID})
}

func (r *scheduledWorkoutRepository) Update(ctx context.Context, s *domain.ScheduledWorkout) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": s.ID},
		bson.M{"$set": bson.M{"workoutId": s.WorkoutID, "recurrenceRule": s.RecurrenceRule}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *scheduledWorkoutRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func findScheduledWorkouts(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]domain.ScheduledWorkout, error) {
	cursor, err := collection.Find(ctx, filter, byPosition())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	schedule := make([]domain.ScheduledWorkout, 0)
	if err = cursor.All(ctx, &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}
