package cmd

import (
	"github.com/GregMSThompson/budget-backend/internal/bootstrap"
	"github.com/GregMSThompson/budget-backend/internal/services"
	"github.com/GregMSThompson/budget-backend/internal/store"
)

func newCategorySeeder(bs *bootstrap.Bootstrap) categorySeeder {
	return store.NewCategoryStore(bs.Firestore)
}

func newPlanRecomputer(bs *bootstrap.Bootstrap) planRecomputer {
	return services.NewSavingsPlanService(store.NewSavingsPlanStore(bs.Firestore), bs.Location)
}
