package services

import (
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// metrics may be nil when metrics are disabled.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics portssvc.LedgerMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The reconciliation engine and the employee directory have no dependencies on other services
	container.Reconciliation = NewReconciliationService(domain.ReconciliationPolicy{
		Tolerance:    cfg.ReconciliationTolerance,
		CurrencyCode: cfg.CurrencyCode,
	})
	container.Employee = NewEmployeeService(repos.EmployeeRepo)

	container.Session = NewCashSessionService(
		repos.SessionRepo,
		repos.EntryRepo,
		container.Employee,
		container.Reconciliation,
		WithSessionMetrics(metrics),
		WithDefaultCloseNote(cfg.DefaultCloseNote),
	)
	container.Entry = NewLedgerEntryService(
		repos.SessionRepo,
		repos.EntryRepo,
		WithEntryMetrics(metrics),
	)

	return container
}
