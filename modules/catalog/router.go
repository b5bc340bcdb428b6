package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ovenkit/ovenkit/pkg/apierror"
	"github.com/ovenkit/ovenkit/pkg/entities"
	"github.com/ovenkit/ovenkit/pkg/limits"
	"github.com/ovenkit/ovenkit/pkg/tenant"
)

// Router mounts the product endpoints. All routes assume the tenant
// middleware has already attached the tenant and its entity map; mount
// behind tenant.RequireTenant.
func Router(gate *limits.Service, logger *slog.Logger) chi.Router {
	h := &handler{gate: gate, logger: logger}

	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	return r
}

type handler struct {
	gate   *limits.Service
	logger *slog.Logger
}

// create inserts a product after the plan gates pass: the inventory
// feature must be enabled and the products limit not yet reached.
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.gate.HasFeature(ctx, limits.FeatureInventory) {
		apierror.Write(w, apierror.FeatureNotAvailable.WithDetails(map[string]any{
			"plan":    h.gate.PlanID(ctx),
			"feature": string(limits.FeatureInventory),
		}))
		return
	}

	if err := h.gate.CanCreate(ctx, limits.ResourceProducts); err != nil {
		if errors.Is(err, limits.ErrLimitExceeded) {
			usage, uerr := h.gate.Usage(ctx, limits.ResourceProducts)
			if uerr != nil {
				h.logger.ErrorContext(ctx, "failed to read product usage", slog.Any("error", uerr))
			}
			apierror.Write(w, apierror.LimitExceeded.WithDetails(map[string]any{
				"current": usage.Current,
				"limit":   usage.Limit,
				"plan":    h.gate.PlanID(ctx),
			}))
			return
		}
		h.logger.ErrorContext(ctx, "product limit check failed", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, apierror.New(http.StatusBadRequest, "INVALID_REQUEST", "malformed request body"))
		return
	}
	if err := req.validate(); err != nil {
		apierror.Write(w, apierror.New(http.StatusBadRequest, "INVALID_REQUEST", err.Error()))
		return
	}

	coll, err := h.collection(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "product collection unavailable", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}

	product := newProduct(req)
	if _, err := coll.InsertOne(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to insert product", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := h.collection(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "product collection unavailable", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}

	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}
	defer cursor.Close(ctx)

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode products", slog.Any("error", err))
		apierror.Write(w, apierror.TenantError)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// collection resolves the bound Product handle from the request context.
// Callers never learn which physical database backs it.
func (h *handler) collection(ctx context.Context) (*mongo.Collection, error) {
	entityMap, ok := tenant.EntitiesFromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoEntities
	}
	return entityMap.Collection(entities.Product)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
