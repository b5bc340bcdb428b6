package entities

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Name identifies a canonical business entity. The set of names is closed and
// known at compile time; resolving anything else is a configuration error,
// not a runtime lookup miss.
type Name string

const (
	User            Name = "User"
	Product         Name = "Product"
	Client          Name = "Client"
	Supplier        Name = "Supplier"
	Recipe          Name = "Recipe"
	Batch           Name = "Batch"
	Sale            Name = "Sale"
	Purchase        Name = "Purchase"
	Package         Name = "Package"
	Bank            Name = "Bank"
	BankTransaction Name = "BankTransaction"
	Account         Name = "Account"
)

// Spec binds an entity name to its physical collection and the indexes that
// make up its canonical schema. Specs are defined once and reused for every
// tenant; only the database behind them differs.
type Spec struct {
	Name       Name
	Collection string
	Indexes    []mongo.IndexModel
}

var table = []Spec{
	{Name: User, Collection: "users", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}},
	{Name: Product, Collection: "products", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}},
	{Name: Client, Collection: "clients", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}},
	{Name: Supplier, Collection: "suppliers", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}},
	{Name: Recipe, Collection: "recipes", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}},
	{Name: Batch, Collection: "batches", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipe_id", Value: 1}}},
		{Keys: bson.D{{Key: "produced_at", Value: -1}}},
	}},
	{Name: Sale, Collection: "sales", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "sold_at", Value: -1}}},
	}},
	{Name: Purchase, Collection: "purchases", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
		{Keys: bson.D{{Key: "purchased_at", Value: -1}}},
	}},
	{Name: Package, Collection: "packages", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}},
	{Name: Bank, Collection: "banks", Indexes: nil},
	{Name: BankTransaction, Collection: "bank_transactions", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "bank_id", Value: 1}, {Key: "booked_at", Value: -1}}},
	}},
	{Name: Account, Collection: "accounts", Indexes: []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}},
}

// Table returns the full entity table in binding order.
func Table() []Spec {
	return table
}

// Names returns every canonical entity name in binding order.
func Names() []Name {
	names := make([]Name, len(table))
	for i, spec := range table {
		names[i] = spec.Name
	}
	return names
}

// Lookup resolves a name against the static table.
func Lookup(name Name) (Spec, error) {
	for _, spec := range table {
		if spec.Name == name {
			return spec, nil
		}
	}
	return Spec{}, ErrUnknownEntity
}

// Map holds the entity handles bound to one tenant's database. A Map is
// immutable after binding and shares its lifetime with the connection it was
// bound to.
type Map map[Name]*mongo.Collection

// Collection returns the bound handle for the named entity.
func (m Map) Collection(name Name) (*mongo.Collection, error) {
	coll, ok := m[name]
	if !ok {
		return nil, ErrUnknownEntity
	}
	return coll, nil
}
