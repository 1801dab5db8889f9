package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bot metrics, auto-registered in the default Prometheus registry.
var (
	// CommandsProcessed counts handled commands by name.
	CommandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandashop_commands_processed_total",
			Help: "Total number of processed commands by name",
		},
		[]string{"command"},
	)

	// CallbacksProcessed counts handled button presses by action.
	CallbacksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandashop_callbacks_processed_total",
			Help: "Total number of processed callback queries by action",
		},
		[]string{"action"},
	)

	// WizardSteps counts wizard step transitions by step name.
	WizardSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandashop_wizard_steps_total",
			Help: "Total number of wizard step transitions by step",
		},
		[]string{"step"},
	)

	// OrdersCreated counts completed checkouts.
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandashop_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	// ProductsCreated counts products added through the admin wizard.
	ProductsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandashop_products_created_total",
			Help: "Total number of products created",
		},
	)

	// CategoriesCreated counts categories added through the admin wizard.
	CategoriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandashop_categories_created_total",
			Help: "Total number of categories created",
		},
	)

	// WizardAbandons counts conversations dropped before their final step.
	WizardAbandons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandashop_wizard_abandons_total",
			Help: "Total number of wizards abandoned before completion",
		},
	)

	// ErrorsTotal counts user-visible failures by type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandashop_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)
)
