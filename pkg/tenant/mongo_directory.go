package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ovenkit/ovenkit/pkg/limits"
)

const tenantsCollection = "tenants"

// MongoDirectory stores tenant records in the shared database.
type MongoDirectory struct {
	coll *mongo.Collection
}

// NewMongoDirectory returns a Directory over the shared database's tenants
// collection.
func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{coll: db.Collection(tenantsCollection)}
}

// EnsureIndexes creates the unique subdomain index. Called once at startup.
func (d *MongoDirectory) EnsureIndexes(ctx context.Context) error {
	_, err := d.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subdomain", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *MongoDirectory) FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return d.findOne(ctx, bson.M{"subdomain": Normalize(subdomain)})
}

func (d *MongoDirectory) FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return d.findOne(ctx, bson.M{"_id": id.String()})
}

func (d *MongoDirectory) findOne(ctx context.Context, filter bson.M) (*Tenant, error) {
	var doc tenantDoc
	if err := d.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return doc.toTenant()
}

func (d *MongoDirectory) TouchActivity(ctx context.Context, id uuid.UUID) error {
	_, err := d.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"last_activity_at": time.Now().UTC()}},
	)
	return err
}

// Insert stores a freshly provisioned tenant. Exposed for provisioning and
// seed tooling; the request path never writes records.
func (d *MongoDirectory) Insert(ctx context.Context, t *Tenant) error {
	_, err := d.coll.InsertOne(ctx, docFromTenant(t))
	return err
}

// tenantDoc is the persistence shape. IDs are stored as strings so records
// stay readable in shell tooling and free of driver binary-codec concerns.
type tenantDoc struct {
	ID             string           `bson:"_id"`
	Subdomain      string           `bson:"subdomain"`
	Name           string           `bson:"name"`
	DatabaseName   string           `bson:"database_name"`
	DatabaseURI    string           `bson:"database_uri,omitempty"`
	PlanID         string           `bson:"plan_id"`
	Limits         map[string]int64 `bson:"limits,omitempty"`
	Features       map[string]bool  `bson:"features,omitempty"`
	Status         string           `bson:"status"`
	TrialEndsAt    time.Time        `bson:"trial_ends_at,omitempty"`
	LastActivityAt time.Time        `bson:"last_activity_at,omitempty"`
	Counters       countersDoc      `bson:"counters"`
	CreatedAt      time.Time        `bson:"created_at"`
	UpdatedAt      time.Time        `bson:"updated_at"`
}

type countersDoc struct {
	Users        int64 `bson:"users"`
	StorageMB    int64 `bson:"storage_mb"`
	APICallsUsed int64 `bson:"api_calls_used"`
}

func (doc tenantDoc) toTenant() (*Tenant, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Join(ErrTenantNotFound, err)
	}

	t := &Tenant{
		ID:             id,
		Subdomain:      doc.Subdomain,
		Name:           doc.Name,
		DatabaseName:   doc.DatabaseName,
		DatabaseURI:    doc.DatabaseURI,
		PlanID:         doc.PlanID,
		Status:         Status(doc.Status),
		TrialEndsAt:    doc.TrialEndsAt,
		LastActivityAt: doc.LastActivityAt,
		Counters: Counters{
			Users:        doc.Counters.Users,
			StorageMB:    doc.Counters.StorageMB,
			APICallsUsed: doc.Counters.APICallsUsed,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	if doc.Limits != nil {
		t.Limits = make(map[limits.Resource]int64, len(doc.Limits))
		for res, v := range doc.Limits {
			t.Limits[limits.Resource(res)] = v
		}
	}
	if doc.Features != nil {
		t.Features = make(map[limits.Feature]bool, len(doc.Features))
		for f, on := range doc.Features {
			t.Features[limits.Feature(f)] = on
		}
	}
	return t, nil
}

func docFromTenant(t *Tenant) tenantDoc {
	doc := tenantDoc{
		ID:             t.ID.String(),
		Subdomain:      t.Subdomain,
		Name:           t.Name,
		DatabaseName:   t.DatabaseName,
		DatabaseURI:    t.DatabaseURI,
		PlanID:         t.PlanID,
		Status:         string(t.Status),
		TrialEndsAt:    t.TrialEndsAt,
		LastActivityAt: t.LastActivityAt,
		Counters: countersDoc{
			Users:        t.Counters.Users,
			StorageMB:    t.Counters.StorageMB,
			APICallsUsed: t.Counters.APICallsUsed,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	if t.Limits != nil {
		doc.Limits = make(map[string]int64, len(t.Limits))
		for res, v := range t.Limits {
			doc.Limits[string(res)] = v
		}
	}
	if t.Features != nil {
		doc.Features = make(map[string]bool, len(t.Features))
		for f, on := range t.Features {
			doc.Features[string(f)] = on
		}
	}
	return doc
}
