package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type indexField struct {
	path  string
	order string
}

type compositeIndex struct {
	name       string
	collection string
	fields     []indexField
}

// indexes covers the queries issued by internal/store.
var indexes = []compositeIndex{
	{"planPeriodIndex", "savingsPlans", []indexField{
		{"userId", "ASCENDING"}, {"month", "ASCENDING"}, {"year", "ASCENDING"},
	}},
	{"planHistoryIndex", "savingsPlans", []indexField{
		{"userId", "ASCENDING"}, {"year", "DESCENDING"}, {"createdAt", "DESCENDING"},
	}},
	{"transactionFilterIndex", "transactions", []indexField{
		{"userId", "ASCENDING"}, {"type", "ASCENDING"}, {"category", "ASCENDING"},
	}},
	{"categoryNameIndex", "categories", []indexField{
		{"userId", "ASCENDING"}, {"name", "ASCENDING"},
	}},
}

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return err
	}

	return createIndexes(ctx, prov, db)
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func createIndexes(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	for _, idx := range indexes {
		fields := make(firestore.IndexFieldArray, 0, len(idx.fields))
		for _, f := range idx.fields {
			fields = append(fields, &firestore.IndexFieldArgs{
				FieldPath: pulumi.String(f.path),
				Order:     pulumi.String(f.order),
			})
		}

		_, err := firestore.NewIndex(ctx, idx.name, &firestore.IndexArgs{
			Project:    pulumi.String(projectID),
			Database:   db.Name,
			Collection: pulumi.String(idx.collection),
			Fields:     fields,
		},
			pulumi.Provider(prov),
			pulumi.DependsOn([]pulumi.Resource{db}),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
