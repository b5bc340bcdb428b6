package limits_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenkit/ovenkit/pkg/limits"
)

type planKey struct{}

func withPlan(ctx context.Context, p limits.Plan) context.Context {
	return context.WithValue(ctx, planKey{}, p)
}

func planFromContext(ctx context.Context) (limits.Plan, bool) {
	p, ok := ctx.Value(planKey{}).(limits.Plan)
	return p, ok
}

func newGate(t *testing.T, plans map[string]limits.Plan, counters limits.CounterRegistry) *limits.Service {
	t.Helper()
	svc, err := limits.NewService(context.Background(), limits.NewInMemSource(plans), counters, planFromContext)
	require.NoError(t, err)
	return svc
}

func fixedCounter(v int64) limits.CounterFunc {
	return func(ctx context.Context) (int64, error) { return v, nil }
}

func TestServiceCanCreate(t *testing.T) {
	t.Parallel()

	plan := limits.Plan{
		ID:     "basic",
		Limits: map[limits.Resource]int64{limits.ResourceProducts: 5},
	}

	t.Run("allows below limit", func(t *testing.T) {
		t.Parallel()

		counters := limits.NewRegistry()
		counters.Register(limits.ResourceProducts, fixedCounter(4))
		gate := newGate(t, nil, counters)

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.ResourceProducts)
		assert.NoError(t, err)
	})

	t.Run("rejects at limit", func(t *testing.T) {
		t.Parallel()

		counters := limits.NewRegistry()
		counters.Register(limits.ResourceProducts, fixedCounter(5))
		gate := newGate(t, nil, counters)

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.ResourceProducts)
		assert.ErrorIs(t, err, limits.ErrLimitExceeded)
	})

	t.Run("rejects above limit", func(t *testing.T) {
		t.Parallel()

		counters := limits.NewRegistry()
		counters.Register(limits.ResourceProducts, fixedCounter(9))
		gate := newGate(t, nil, counters)

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.ResourceProducts)
		assert.ErrorIs(t, err, limits.ErrLimitExceeded)
	})

	t.Run("unlimited always allows", func(t *testing.T) {
		t.Parallel()

		unlimited := limits.Plan{
			ID:     "enterprise",
			Limits: map[limits.Resource]int64{limits.ResourceProducts: limits.Unlimited},
		}
		gate := newGate(t, nil, limits.NewRegistry())

		err := gate.CanCreate(withPlan(context.Background(), unlimited), limits.ResourceProducts)
		assert.NoError(t, err)
	})

	t.Run("no tenant scope always allows", func(t *testing.T) {
		t.Parallel()

		gate := newGate(t, nil, limits.NewRegistry())

		err := gate.CanCreate(context.Background(), limits.ResourceProducts)
		assert.NoError(t, err)
	})

	t.Run("unknown resource is rejected", func(t *testing.T) {
		t.Parallel()

		gate := newGate(t, nil, limits.NewRegistry())

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.Resource("widgets"))
		assert.ErrorIs(t, err, limits.ErrInvalidResource)
	})

	t.Run("counter failure surfaces", func(t *testing.T) {
		t.Parallel()

		counters := limits.NewRegistry()
		counters.Register(limits.ResourceProducts, func(ctx context.Context) (int64, error) {
			return 0, errors.New("db gone")
		})
		gate := newGate(t, nil, counters)

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.ResourceProducts)
		assert.ErrorIs(t, err, limits.ErrFailedToCountUsage)
	})

	t.Run("missing counter surfaces", func(t *testing.T) {
		t.Parallel()

		gate := newGate(t, nil, limits.NewRegistry())

		err := gate.CanCreate(withPlan(context.Background(), plan), limits.ResourceProducts)
		assert.ErrorIs(t, err, limits.ErrNoCounterRegistered)
	})
}

func TestServiceCatalogFallback(t *testing.T) {
	t.Parallel()

	// The tenant carries only a plan ID; limits come from the catalog.
	counters := limits.NewRegistry()
	counters.Register(limits.ResourceProducts, fixedCounter(20))
	gate := newGate(t, limits.DefaultPlans(), counters)

	ctx := withPlan(context.Background(), limits.Plan{ID: "free"})

	err := gate.CanCreate(ctx, limits.ResourceProducts)
	assert.ErrorIs(t, err, limits.ErrLimitExceeded)

	assert.True(t, gate.HasFeature(ctx, limits.FeatureInventory))
	assert.False(t, gate.HasFeature(ctx, limits.FeatureAPI))

	t.Run("unknown plan id fails", func(t *testing.T) {
		t.Parallel()

		ctx := withPlan(context.Background(), limits.Plan{ID: "gold"})
		err := gate.CanCreate(ctx, limits.ResourceProducts)
		assert.ErrorIs(t, err, limits.ErrPlanNotFound)
	})
}

func TestServiceHasFeature(t *testing.T) {
	t.Parallel()

	plan := limits.Plan{
		ID:       "basic",
		Limits:   map[limits.Resource]int64{},
		Features: []limits.Feature{limits.FeatureInventory},
	}
	gate := newGate(t, nil, limits.NewRegistry())

	ctx := withPlan(context.Background(), plan)
	assert.True(t, gate.HasFeature(ctx, limits.FeatureInventory))
	assert.False(t, gate.HasFeature(ctx, limits.FeatureReports))

	// Outside tenant scope everything is available.
	assert.True(t, gate.HasFeature(context.Background(), limits.FeatureReports))
}

func TestServiceUsage(t *testing.T) {
	t.Parallel()

	plan := limits.Plan{
		ID:     "basic",
		Limits: map[limits.Resource]int64{limits.ResourceProducts: 200},
	}
	counters := limits.NewRegistry()
	counters.Register(limits.ResourceProducts, fixedCounter(42))
	gate := newGate(t, nil, counters)

	usage, err := gate.Usage(withPlan(context.Background(), plan), limits.ResourceProducts)
	require.NoError(t, err)
	assert.Equal(t, int64(42), usage.Current)
	assert.Equal(t, int64(200), usage.Limit)

	t.Run("no scope reports unlimited", func(t *testing.T) {
		t.Parallel()

		usage, err := gate.Usage(context.Background(), limits.ResourceProducts)
		require.NoError(t, err)
		assert.Equal(t, limits.Unlimited, usage.Limit)
	})
}

func TestServicePlanID(t *testing.T) {
	t.Parallel()

	gate := newGate(t, nil, limits.NewRegistry())

	assert.Equal(t, "basic", gate.PlanID(withPlan(context.Background(), limits.Plan{ID: "basic"})))
	assert.Empty(t, gate.PlanID(context.Background()))
}

func TestServiceVerifyPlan(t *testing.T) {
	t.Parallel()

	gate := newGate(t, limits.DefaultPlans(), limits.NewRegistry())

	assert.NoError(t, gate.VerifyPlan("premium"))
	assert.ErrorIs(t, gate.VerifyPlan("gold"), limits.ErrPlanNotFound)
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	t.Run("nil resolver rejected", func(t *testing.T) {
		t.Parallel()

		_, err := limits.NewService(context.Background(), limits.NewInMemSource(nil), nil, nil)
		assert.ErrorIs(t, err, limits.ErrNilResolver)
	})

	t.Run("negative trial days rejected", func(t *testing.T) {
		t.Parallel()

		plans := map[string]limits.Plan{"bad": {ID: "bad", TrialDays: -1}}
		_, err := limits.NewService(context.Background(), limits.NewInMemSource(plans), nil, planFromContext)
		assert.ErrorIs(t, err, limits.ErrInvalidPlanConfiguration)
	})
}
