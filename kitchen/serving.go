package kitchen

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ServeResult reports a successful service for metrics and tracing.
type ServeResult struct {
	OrderID OrderID
	Recipe  *Recipe
	Quality DishQuality
	Points  int
}

// ServingStation is the terminal station: it consults the order book for
// active orders and the dish validator for quality and score before
// marking an order fulfilled and awarding points.
type ServingStation struct {
	id        StationID
	orders    *OrderBook
	catalog   *Catalog
	validator DishValidator
	scores    ScoreSink
	despawn   DespawnFunc

	// OnServed is invoked after a successful service.
	OnServed func(actor ActorID, result ServeResult)
}

// NewServingStation creates a serving counter.
func NewServingStation(id StationID, orders *OrderBook, catalog *Catalog, validator DishValidator, scores ScoreSink, despawn DespawnFunc) *ServingStation {
	return &ServingStation{
		id:        id,
		orders:    orders,
		catalog:   catalog,
		validator: validator,
		scores:    scores,
		despawn:   despawn,
	}
}

// ID returns the station id.
func (s *ServingStation) ID() StationID { return s.id }

// Kind returns KindServing.
func (s *ServingStation) Kind() StationKind { return KindServing }

// Tick is a no-op.
func (s *ServingStation) Tick(now, dt float64) {}

// Serve matches the plate's contents against active orders in creation
// order. On the first match it completes the order, awards the score, and
// consumes the dish; with no match the dish stays on the plate and the
// call fails.
func (s *ServingStation) Serve(actor ActorID, plate *Assembler, now float64) (ServeResult, error) {
	items := plate.Items()
	if len(items) == 0 {
		return ServeResult{}, fmt.Errorf("plate %s is empty: %w", plate.ID(), ErrInvalidOperation)
	}
	for _, order := range s.orders.Active() {
		recipe, ok := s.catalog.Recipe(order.RecipeID)
		if !ok {
			logrus.Warnf("serving %s: order %d references unknown recipe %q", s.id, order.ID, order.RecipeID)
			continue
		}
		if !s.validator.ValidateDish(items, recipe) {
			continue
		}
		quality := s.validator.GetDishQuality(items, recipe)
		points := s.validator.CalculateScore(items, recipe, order.TimeRemaining(now))
		if err := s.orders.Complete(order.ID, actor); err != nil {
			return ServeResult{}, err
		}
		s.scores.AddScore(actor, points, fmt.Sprintf("order %d (%s, %s)", order.ID, recipe.ID, quality))
		for _, item := range plate.drain() {
			s.despawn(item.ID)
		}
		result := ServeResult{OrderID: order.ID, Recipe: recipe, Quality: quality, Points: points}
		if s.OnServed != nil {
			s.OnServed(actor, result)
		}
		return result, nil
	}
	return ServeResult{}, fmt.Errorf("no active order matches the dish: %w", ErrInvalidOperation)
}
