package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/metrics"
	"alcyxob/workouthub/internal/repository/sqlite"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *sqlite.Store
	tokens service.TokenService
}

func newTestServer(t *testing.T, tokens service.TokenService, requireAuth bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.OpenStore(context.Background(), filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	err = SetupRoutes(router, Services{
		Exercises:   service.NewExerciseService(store.Exercises(), nil),
		Workouts:    service.NewWorkoutService(store.Workouts(), store.WorkoutExercises(), store.Exercises()),
		Plans:       service.NewPlanService(store.WorkoutPlans(), store.ScheduledWorkouts(), store.Workouts()),
		Tokens:      tokens,
		RequireAuth: requireAuth,
	})
	require.NoError(t, err)
	return &testServer{router: router, store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil, false)
	rec := s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSeededExercises(t *testing.T) {
	s := newTestServer(t, nil, false)
	rec := s.do(t, http.MethodGet, "/exercise", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	exercises := decode[[]domain.Exercise](t, rec)
	require.Len(t, exercises, 8)
	for i, ex := range exercises {
		assert.Equal(t, string(rune('1'+i)), ex.ID)
		assert.NotEmpty(t, ex.Name)
		assert.Nil(t, ex.UserID)
	}
}

func TestExerciseLifecycle(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodPost, "/exercise", gin.H{
		"name":        "Push-ups",
		"description": "Upper body exercise",
		"userId":      "user123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Exercise](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Push-ups", created.Name)

	rec = s.do(t, http.MethodGet, "/exercise/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Exercise](t, rec)
	assert.Equal(t, "Push-ups", got.Name)
	assert.Equal(t, "Upper body exercise", got.Description)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "user123", *got.UserID)

	// Partial update: description survives, body id is ignored.
	rec = s.do(t, http.MethodPut, "/exercise/"+created.ID, gin.H{"id": "1", "name": "Wide push-ups"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Exercise](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Wide push-ups", updated.Name)
	assert.Equal(t, "Upper body exercise", updated.Description)

	rec = s.do(t, http.MethodGet, "/exercise/1", nil)
	assert.Equal(t, "Push-ups", decode[domain.Exercise](t, rec).Name)

	// PUT without a path id uses the body id.
	rec = s.do(t, http.MethodPut, "/exercise", gin.H{"id": created.ID, "description": "Chest"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chest", decode[domain.Exercise](t, rec).Description)

	rec = s.do(t, http.MethodPut, "/exercise", gin.H{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/exercise/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Wide push-ups", decode[domain.Exercise](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/exercise/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExerciseNotFoundAndValidation(t *testing.T) {
	s := newTestServer(t, nil, false)

	for _, tc := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/exercise/missing", nil},
		{http.MethodPut, "/exercise/missing", gin.H{"name": "x"}},
		{http.MethodDelete, "/exercise/missing", nil},
	} {
		rec := s.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}

	rec := s.do(t, http.MethodPost, "/exercise", gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/exercise", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmptyExerciseList(t *testing.T) {
	s := newTestServer(t, nil, false)
	require.NoError(t, s.store.DB().Exec("DELETE FROM exercises").Error)

	rec := s.do(t, http.MethodGet, "/exercise", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for i := 0; i < 3; i++ {
		rec = s.do(t, http.MethodPost, "/exercise", gin.H{"name": "e"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/exercise", nil)
	assert.Len(t, decode[[]domain.Exercise](t, rec), 3)
}

func TestVideoRoutesWithoutStorage(t *testing.T) {
	s := newTestServer(t, nil, false)
	rec := s.do(t, http.MethodPost, "/exercise/1/video", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = s.do(t, http.MethodGet, "/exercise/1/video", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWorkoutRoutes(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodPost, "/workout", gin.H{
		"name":      "Push day",
		"exercises": []gin.H{{"exerciseId": "missing", "sets": 3, "reps": 10}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/workout", gin.H{
		"exercises": []gin.H{{"exerciseId": "1", "sets": -1, "reps": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/workout", gin.H{
		"name": "Push day",
		"exercises": []gin.H{
			{"exerciseId": "4", "sets": 5, "reps": 5, "weight": 80.5},
			{"exerciseId": "1", "sets": 3, "reps": 20},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workout := decode[domain.Workout](t, rec)
	require.Len(t, workout.Exercises, 2)

	rec = s.do(t, http.MethodPost, "/workout/"+workout.ID+"/exercises", gin.H{"exerciseId": "7", "sets": 3, "reps": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decode[domain.WorkoutExercise](t, rec)

	rec = s.do(t, http.MethodPut, "/workout/"+workout.ID+"/exercises/"+entry.ID, gin.H{"reps": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[domain.WorkoutExercise](t, rec).Reps)

	rec = s.do(t, http.MethodGet, "/workout/"+workout.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Workout](t, rec)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, []string{"4", "1", "7"}, []string{got.Exercises[0].ExerciseID, got.Exercises[1].ExerciseID, got.Exercises[2].ExerciseID})

	rec = s.do(t, http.MethodPut, "/workout/"+workout.ID, gin.H{"name": "Chest day"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chest day", decode[domain.Workout](t, rec).Name)

	rec = s.do(t, http.MethodDelete, "/workout/"+workout.ID+"/exercises/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/workout/"+workout.ID+"/exercises/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/workout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Workout](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/workout/"+workout.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/workout/"+workout.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanRoutes(t *testing.T) {
	s := newTestServer(t, nil, false)

	rec := s.do(t, http.MethodPost, "/workout", gin.H{"name": "Legs"})
	require.Equal(t, http.StatusCreated, rec.Code)
	workout := decode[domain.Workout](t, rec)

	rec = s.do(t, http.MethodPost, "/plan", gin.H{"name": "No owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/plan", gin.H{
		"name": "Bad rule", "userId": "u1",
		"schedule": []gin.H{{"workoutId": workout.ID, "recurrenceRule": "FREQ=SOMETIMES"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	before := time.Now().UTC().Add(-time.Second)
	rec = s.do(t, http.MethodPost, "/plan", gin.H{
		"name": "Spring", "userId": "u1",
		"schedule": []gin.H{{"workoutId": workout.ID, "recurrenceRule": "FREQ=WEEKLY;BYDAY=TU,TH"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decode[domain.WorkoutPlan](t, rec)
	assert.True(t, plan.CreatedAt.After(before))
	require.Len(t, plan.ScheduledWorkouts, 1)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=TU,TH", plan.ScheduledWorkouts[0].RecurrenceRule.String())

	rec = s.do(t, http.MethodPut, "/plan/"+plan.ID, gin.H{"name": "Summer"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.WorkoutPlan](t, rec)
	assert.Equal(t, "Summer", updated.Name)
	assert.True(t, plan.CreatedAt.Equal(updated.CreatedAt))

	rec = s.do(t, http.MethodPost, "/plan/"+plan.ID+"/schedule", gin.H{"workoutId": workout.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	scheduled := decode[domain.ScheduledWorkout](t, rec)
	assert.Equal(t, "FREQ=WEEKLY", scheduled.RecurrenceRule.String())

	rec = s.do(t, http.MethodPut, "/plan/"+plan.ID+"/schedule/"+scheduled.ID, gin.H{"recurrenceRule": "not a rule"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/plan/"+plan.ID+"/schedule/"+scheduled.ID, gin.H{"recurrenceRule": "FREQ=MONTHLY;BYMONTHDAY=1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "FREQ=MONTHLY;BYMONTHDAY=1", decode[domain.ScheduledWorkout](t, rec).RecurrenceRule.String())

	rec = s.do(t, http.MethodPut, "/plan/"+plan.ID+"/schedule/"+scheduled.ID, gin.H{"recurrenceRule": ""})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "FREQ=WEEKLY", decode[domain.ScheduledWorkout](t, rec).RecurrenceRule.String())

	rec = s.do(t, http.MethodPut, "/plan/"+plan.ID+"/schedule/"+scheduled.ID, gin.H{"recurrenceRule": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/plan?userId=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plans := decode[[]domain.WorkoutPlan](t, rec)
	require.Len(t, plans, 1)
	assert.Len(t, plans[0].ScheduledWorkouts, 2)

	rec = s.do(t, http.MethodGet, "/plan?userId=nobody", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/plan/"+plan.ID+"/schedule/"+scheduled.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/plan/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/plan/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth(t *testing.T) {
	tokens, err := service.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	token, err := tokens.GenerateToken("user-42")
	require.NoError(t, err)
	bearer := "Bearer " + token

	t.Run("optional", func(t *testing.T) {
		s := newTestServer(t, tokens, false)

		rec := s.do(t, http.MethodPost, "/exercise", gin.H{"name": "Anonymous"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Nil(t, decode[domain.Exercise](t, rec).UserID)

		rec = s.do(t, http.MethodPost, "/exercise", gin.H{"name": "Mine"}, "Authorization", bearer)
		require.Equal(t, http.StatusCreated, rec.Code)
		owned := decode[domain.Exercise](t, rec)
		require.NotNil(t, owned.UserID)
		assert.Equal(t, "user-42", *owned.UserID)

		rec = s.do(t, http.MethodPost, "/plan", gin.H{"name": "Token plan"}, "Authorization", bearer)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "user-42", decode[domain.WorkoutPlan](t, rec).UserID)

		rec = s.do(t, http.MethodGet, "/exercise", nil, "Authorization", "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		rec = s.do(t, http.MethodGet, "/exercise", nil, "Authorization", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("required", func(t *testing.T) {
		s := newTestServer(t, tokens, true)

		rec := s.do(t, http.MethodGet, "/exercise", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodPost, "/exercise", gin.H{"name": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = s.do(t, http.MethodDelete, "/exercise/1", nil, "Authorization", bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled ignores header", func(t *testing.T) {
		s := newTestServer(t, nil, true)
		rec := s.do(t, http.MethodPost, "/exercise", gin.H{"name": "x"}, "Authorization", "Bearer garbage")
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil, false)
	s.do(t, http.MethodGet, "/exercise/1", nil)

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/exercise/:id"`)
}

func TestStorageFailureIsInternalError(t *testing.T) {
	s := newTestServer(t, nil, false)
	require.NoError(t, s.store.Close())

	counter := metrics.RepositoryErrors.WithLabelValues("/exercise")
	before := testutil.ToFloat64(counter)

	rec := s.do(t, http.MethodGet, "/exercise", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
