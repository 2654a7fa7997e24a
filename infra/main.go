package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/budget-backend/infra/cloudrun"
	"github.com/GregMSThompson/budget-backend/infra/docker"
	"github.com/GregMSThompson/budget-backend/infra/firestore"
	"github.com/GregMSThompson/budget-backend/infra/identity"
	"github.com/GregMSThompson/budget-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firebase auth for the ID tokens the API verifies
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// firestore database plus the composite indexes the stores query
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
