package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLandService(t *testing.T) (*repository.FarmerRepository, *LandService) {
	db := setupTestDB(t)
	farmerRepo := repository.NewFarmerRepository(db)
	return farmerRepo, NewLandService(repository.NewLandRepository(db), farmerRepo)
}

func TestLandService_CreateDefaultsTax(t *testing.T) {
	_, landService := setupLandService(t)

	land, err := landService.CreateLand(context.Background(), LandInput{Name: "North", Location: "Hill", Size: 12.5})
	require.NoError(t, err)
	require.NotNil(t, land.TaxAmount)
	assert.Equal(t, 0.0, *land.TaxAmount)
	assert.Nil(t, land.FarmerID)
}

func TestLandService_CreateUnknownFarmer(t *testing.T) {
	_, landService := setupLandService(t)

	_, err := landService.CreateLand(context.Background(), LandInput{Name: "North", FarmerID: uintPtr(7)})
	assert.Equal(t, ErrFarmerNotFound, err)
}

func TestLandService_PartialUpdateKeepsOtherFields(t *testing.T) {
	farmerRepo, landService := setupLandService(t)
	ctx := context.Background()

	farmer := &models.Farmer{Name: "Ravi"}
	require.NoError(t, farmerRepo.Create(ctx, farmer))
	land, err := landService.CreateLand(ctx, LandInput{
		Name:      "North",
		Location:  "Hill",
		Size:      50,
		SoilType:  strPtr("loam"),
		TaxAmount: floatPtr(120.5),
		FarmerID:  uintPtr(farmer.ID),
	})
	require.NoError(t, err)

	var p LandPatch
	require.NoError(t, json.Unmarshal([]byte(`{"size": 60}`), &p))
	updated, err := landService.UpdateLand(ctx, land.ID, p)
	require.NoError(t, err)

	assert.Equal(t, 60.0, updated.Size)
	assert.Equal(t, "North", updated.Name)
	assert.Equal(t, "Hill", updated.Location)
	assert.Equal(t, "loam", *updated.SoilType)
	assert.Equal(t, 120.5, *updated.TaxAmount)
	assert.Equal(t, farmer.ID, *updated.FarmerID)
}

func TestLandService_ExplicitNullClears(t *testing.T) {
	farmerRepo, landService := setupLandService(t)
	ctx := context.Background()

	farmer := &models.Farmer{Name: "Ravi"}
	require.NoError(t, farmerRepo.Create(ctx, farmer))
	land, err := landService.CreateLand(ctx, LandInput{Name: "North", SoilType: strPtr("clay"), FarmerID: uintPtr(farmer.ID)})
	require.NoError(t, err)

	var p LandPatch
	require.NoError(t, json.Unmarshal([]byte(`{"soil_type": null, "farmer_id": null}`), &p))
	updated, err := landService.UpdateLand(ctx, land.ID, p)
	require.NoError(t, err)
	assert.Nil(t, updated.SoilType)
	assert.Nil(t, updated.FarmerID)
	assert.Equal(t, "North", updated.Name)
}

func TestLandService_NullOnRequiredField(t *testing.T) {
	_, landService := setupLandService(t)
	ctx := context.Background()

	land, err := landService.CreateLand(ctx, LandInput{Name: "North"})
	require.NoError(t, err)

	var p LandPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))
	_, err = landService.UpdateLand(ctx, land.ID, p)
	var nullErr *patch.NullError
	require.ErrorAs(t, err, &nullErr)
	assert.Equal(t, "name", nullErr.Column)
}

func TestLandService_AssignFarmer(t *testing.T) {
	farmerRepo, landService := setupLandService(t)
	ctx := context.Background()

	first := &models.Farmer{Name: "Ravi"}
	second := &models.Farmer{Name: "Mina"}
	require.NoError(t, farmerRepo.Create(ctx, first))
	require.NoError(t, farmerRepo.Create(ctx, second))

	land, err := landService.CreateLand(ctx, LandInput{Name: "North", FarmerID: uintPtr(first.ID)})
	require.NoError(t, err)

	assigned, err := landService.AssignFarmer(ctx, land.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *assigned.FarmerID)

	_, err = landService.AssignFarmer(ctx, land.ID, 999)
	assert.Equal(t, ErrFarmerNotFound, err)

	_, err = landService.AssignFarmer(ctx, 999, second.ID)
	assert.Equal(t, ErrLandNotFound, err)
}

func TestLandService_Delete(t *testing.T) {
	_, landService := setupLandService(t)
	ctx := context.Background()

	land, err := landService.CreateLand(ctx, LandInput{Name: "North"})
	require.NoError(t, err)

	deleted, err := landService.DeleteLand(ctx, land.ID)
	require.NoError(t, err)
	assert.Equal(t, land.ID, deleted.ID)

	_, err = landService.GetLand(ctx, land.ID)
	assert.Equal(t, ErrLandNotFound, err)
}
