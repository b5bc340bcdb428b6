package limits

// Resource is a countable tenant resource type.
type Resource string

const (
	ResourceUsers     Resource = "users"
	ResourceProducts  Resource = "products"
	ResourceClients   Resource = "clients"
	ResourceSuppliers Resource = "suppliers"
	ResourceStorage   Resource = "storage"
	ResourceAPICalls  Resource = "api_calls"
)

// Unlimited marks a resource with no limit.
const Unlimited int64 = -1

// Feature is a plan-gated capability flag.
type Feature string

const (
	FeatureInventory      Feature = "inventory"
	FeatureRecipes        Feature = "recipes"
	FeatureSales          Feature = "sales"
	FeaturePurchases      Feature = "purchases"
	FeatureReports        Feature = "reports"
	FeatureAPI            Feature = "api"
	FeatureCustomBranding Feature = "custom_branding"
)

// UsageInfo pairs current usage with the plan limit for one resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
