package routines_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/zenfit/internal/routines"
	"github.com/2beens/zenfit/internal/telemetry/metrics"
	"github.com/2beens/zenfit/internal/workout"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testRouterWithCatalog(t *testing.T) (*mux.Router, *MockroutinesCatalog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalogMock := NewMockroutinesCatalog(ctrl)
	handler := routines.NewHandler(catalogMock, metrics.NewTestManager())
	router := mux.NewRouter()
	handler.SetupRoutes(router)
	return router, catalogMock
}

func TestHandler_HandleAdd(t *testing.T) {
	router, catalogMock := testRouterWithCatalog(t)

	routine := workout.Routine{
		Name: "Series en pista",
		Type: workout.ActivityRunning,
		Running: &workout.RunningActivity{
			IsInterval:    true,
			IntervalCount: 5,
			IntervalValue: 2,
			IntervalType:  workout.IntervalTime,
		},
	}
	routineJson, err := json.Marshal(routine)
	require.NoError(t, err)

	catalogMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, r workout.Routine) error {
			assert.NotEmpty(t, r.ID)
			assert.Equal(t, "Series en pista", r.Name)
			// interval totals are derived on the template too
			require.NotNil(t, r.Running)
			assert.Equal(t, 10, r.Running.TimeMinutes)
			return nil
		}).Times(1)

	req, err := http.NewRequest("POST", "/routines", bytes.NewReader(routineJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_HandleAdd_Invalid(t *testing.T) {
	router, _ := testRouterWithCatalog(t)

	routine := workout.Routine{
		Name: "",
		Type: workout.ActivityGym,
		Gym: &workout.GymActivity{
			Exercises: []workout.Exercise{workout.NewExercise("Remo")},
		},
	}
	routineJson, err := json.Marshal(routine)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/routines", bytes.NewReader(routineJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	router, catalogMock := testRouterWithCatalog(t)

	catalogMock.EXPECT().
		Delete(gomock.Any(), "r1").
		Return(nil).Times(1)

	req, err := http.NewRequest("DELETE", "/routines/r1", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var deleteResp routines.DeleteRoutineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleteResp))
	assert.Equal(t, "r1", deleteResp.DeletedID)
}

func TestHandler_HandleList_Empty(t *testing.T) {
	router, catalogMock := testRouterWithCatalog(t)

	catalogMock.EXPECT().
		List(gomock.Any()).
		Return(nil).Times(1)

	req, err := http.NewRequest("GET", "/routines", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"routines":[],"total":0}`, rec.Body.String())
}

func TestHandler_HandleMaterialize(t *testing.T) {
	router, catalogMock := testRouterWithCatalog(t)

	catalogMock.EXPECT().
		Materialize(gomock.Any(), "r1").
		Return(&workout.Draft{
			Type: workout.ActivityRunning,
			Running: &workout.RunningActivity{
				Distance:    8,
				TimeMinutes: 50,
			},
		}, nil).Times(1)

	req, err := http.NewRequest("GET", "/routines/r1/materialize", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var draft workout.Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Equal(t, workout.ActivityRunning, draft.Type)
	require.NotNil(t, draft.Running)
	assert.Equal(t, 8.0, draft.Running.Distance)
}

func TestHandler_HandleMaterialize_NotFound(t *testing.T) {
	router, catalogMock := testRouterWithCatalog(t)

	catalogMock.EXPECT().
		Materialize(gomock.Any(), "no-such-routine").
		Return(nil, routines.ErrRoutineNotFound).Times(1)

	req, err := http.NewRequest("GET", "/routines/no-such-routine/materialize", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
