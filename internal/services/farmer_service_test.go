package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type farmerFixture struct {
	farmers *FarmerService
	tasks   *TaskService
	lands   *LandService
}

func setupFarmerServices(t *testing.T) farmerFixture {
	db := setupTestDB(t)
	farmerRepo := repository.NewFarmerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	landRepo := repository.NewLandRepository(db)

	return farmerFixture{
		farmers: NewFarmerService(farmerRepo, taskRepo, landRepo),
		tasks:   NewTaskService(taskRepo, farmerRepo),
		lands:   NewLandService(landRepo, farmerRepo),
	}
}

func TestFarmerService_CRUD(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	farmer, err := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi", Phone: "555", Address: "Village 1"})
	require.NoError(t, err)

	updated, err := f.farmers.UpdateFarmer(ctx, farmer.ID, FarmerInput{Name: "Ravi K", Phone: "556"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name)
	assert.Equal(t, "", updated.Address)

	_, err = f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Mina"})
	require.NoError(t, err)

	page, err := f.farmers.ListFarmers(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Mina", page[0].Name)

	deleted, err := f.farmers.DeleteFarmer(ctx, farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", deleted.Name)

	_, err = f.farmers.GetFarmer(ctx, farmer.ID)
	assert.Equal(t, ErrFarmerNotFound, err)
	_, err = f.farmers.UpdateFarmer(ctx, farmer.ID, FarmerInput{Name: "x"})
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestFarmerService_TasksAndLands(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	ravi, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi"})
	mina, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Mina"})

	_, err := f.tasks.CreateTask(ctx, "Plough", "", ravi.ID)
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(ctx, "Weed", models.TaskStatusCompleted, ravi.ID)
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(ctx, "Sow", "", mina.ID)
	require.NoError(t, err)
	_, err = f.lands.CreateLand(ctx, LandInput{Name: "North", FarmerID: uintPtr(ravi.ID)})
	require.NoError(t, err)

	tasks, err := f.farmers.FarmerTasks(ctx, ravi.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	lands, err := f.farmers.FarmerLands(ctx, ravi.ID)
	require.NoError(t, err)
	require.Len(t, lands, 1)
	assert.Equal(t, "North", lands[0].Name)

	lands, err = f.farmers.FarmerLands(ctx, mina.ID)
	require.NoError(t, err)
	assert.Empty(t, lands)

	_, err = f.farmers.FarmerTasks(ctx, 999)
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestFarmerService_DeleteLeavesTasksAndLands(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	farmer, err := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi"})
	require.NoError(t, err)
	task, err := f.tasks.CreateTask(ctx, "Plough", "", farmer.ID)
	require.NoError(t, err)
	land, err := f.lands.CreateLand(ctx, LandInput{Name: "North", Location: "Hill", Size: 4, FarmerID: uintPtr(farmer.ID)})
	require.NoError(t, err)

	_, err = f.farmers.DeleteFarmer(ctx, farmer.ID)
	require.NoError(t, err)

	_, err = f.farmers.GetFarmer(ctx, farmer.ID)
	assert.Equal(t, ErrFarmerNotFound, err)

	keptTask, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, farmer.ID, keptTask.FarmerID)

	keptLand, err := f.lands.GetLand(ctx, land.ID)
	require.NoError(t, err)
	require.NotNil(t, keptLand.FarmerID)
	assert.Equal(t, farmer.ID, *keptLand.FarmerID)
}

func TestTaskService_CreateDefaultsPending(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	farmer, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi"})
	task, err := f.tasks.CreateTask(ctx, "Plough", "", farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)

	_, err = f.tasks.CreateTask(ctx, "Plough", "", 999)
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	ravi, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi"})
	mina, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Mina"})
	task, err := f.tasks.CreateTask(ctx, "Plough", "", ravi.ID)
	require.NoError(t, err)

	var p TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Completed"}`), &p))
	updated, err := f.tasks.UpdateTask(ctx, task.ID, p)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "Plough", updated.Description)
	assert.Equal(t, ravi.ID, updated.FarmerID)

	var move TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"farmer_id": 999}`), &move))
	_, err = f.tasks.UpdateTask(ctx, task.ID, move)
	assert.Equal(t, ErrFarmerNotFound, err)

	require.NoError(t, json.Unmarshal([]byte(`{"farmer_id": `+jsonUint(mina.ID)+`}`), &move))
	moved, err := f.tasks.UpdateTask(ctx, task.ID, move)
	require.NoError(t, err)
	assert.Equal(t, mina.ID, moved.FarmerID)

	unchanged, err := f.tasks.UpdateTask(ctx, task.ID, TaskPatch{})
	require.NoError(t, err)
	assert.True(t, moved.UpdatedAt.Equal(unchanged.UpdatedAt))
}

func TestTaskService_Delete(t *testing.T) {
	f := setupFarmerServices(t)
	ctx := context.Background()

	farmer, _ := f.farmers.CreateFarmer(ctx, FarmerInput{Name: "Ravi"})
	task, _ := f.tasks.CreateTask(ctx, "Plough", "", farmer.ID)

	deleted, err := f.tasks.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plough", deleted.Description)

	tasks, err := f.tasks.ListTasks(ctx, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = f.tasks.GetTask(ctx, task.ID)
	assert.Equal(t, ErrTaskNotFound, err)
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
