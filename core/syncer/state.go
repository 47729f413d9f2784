// Package syncer keeps a local view of the remote pricing catalog fresh:
// warm-cache-first sync with direct per-resource fallback, an in-process
// TTL snapshot cache and an observable sync-state record.
package syncer

import (
	"sync"
	"time"
)

// ResourceStatus is the sync outcome for one catalog resource table.
type ResourceStatus string

const (
	StatusPending ResourceStatus = "pending"
	StatusSuccess ResourceStatus = "success"
	StatusError   ResourceStatus = "error"
)

// Resource table keys, matching the upstream aggregate document.
const (
	ResourceServices          = "services"
	ResourcePlans             = "plans"
	ResourceRateCards         = "rateCards"
	ResourceBillingCycles     = "billingCycles"
	ResourceProducts          = "products"
	ResourceLicences          = "licences"
	ResourceOperatingSystems  = "operatingSystems"
	ResourceTemplates         = "templates"
	ResourceStorageCategories = "storageCategories"
	ResourcePlanCategories    = "planCategories"
)

// resourceTables lists every tracked table.
var resourceTables = []string{
	ResourceServices,
	ResourcePlans,
	ResourceRateCards,
	ResourceBillingCycles,
	ResourceProducts,
	ResourceLicences,
	ResourceOperatingSystems,
	ResourceTemplates,
	ResourceStorageCategories,
	ResourcePlanCategories,
}

// TableState is the per-resource slice of the sync state.
type TableState struct {
	RecordCount   int            `json:"record_count"`
	LastUpdatedAt *time.Time     `json:"last_updated_at,omitempty"`
	Status        ResourceStatus `json:"status"`
	Error         string         `json:"error,omitempty"`
}

// State is a read-only view of sync health. It is created empty at
// process start and mutated only by the Synchronizer.
type State struct {
	IsRunning  bool                  `json:"is_running"`
	LastSyncAt *time.Time            `json:"last_sync_at,omitempty"`
	NextSyncAt *time.Time            `json:"next_sync_at,omitempty"`
	LastError  string                `json:"last_error,omitempty"`
	Tables     map[string]TableState `json:"tables"`
}

// tracker is the Synchronizer's mutable sync-state record. Each resource
// writes to its own table slot; the mutex guards the map itself.
type tracker struct {
	mu    sync.Mutex
	state State
}

func newTracker() *tracker {
	tables := make(map[string]TableState, len(resourceTables))
	for _, name := range resourceTables {
		tables[name] = TableState{Status: StatusPending}
	}
	return &tracker{state: State{Tables: tables}}
}

func (t *tracker) setRunning(running bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.IsRunning = running
}

func (t *tracker) recordSuccess(table string, count int, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := at
	t.state.Tables[table] = TableState{
		RecordCount:   count,
		LastUpdatedAt: &ts,
		Status:        StatusSuccess,
	}
}

func (t *tracker) recordError(table string, message string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := at
	t.state.Tables[table] = TableState{
		LastUpdatedAt: &ts,
		Status:        StatusError,
		Error:         message,
	}
}

func (t *tracker) finish(lastError string, at time.Time, next *time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := at
	t.state.LastSyncAt = &ts
	t.state.NextSyncAt = next
	t.state.LastError = lastError
}

// snapshot returns a deep copy safe for read-only consumers.
func (t *tracker) snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.state
	out.Tables = make(map[string]TableState, len(t.state.Tables))
	for k, v := range t.state.Tables {
		if v.LastUpdatedAt != nil {
			ts := *v.LastUpdatedAt
			v.LastUpdatedAt = &ts
		}
		out.Tables[k] = v
	}
	if t.state.LastSyncAt != nil {
		ts := *t.state.LastSyncAt
		out.LastSyncAt = &ts
	}
	if t.state.NextSyncAt != nil {
		ts := *t.state.NextSyncAt
		out.NextSyncAt = &ts
	}
	return out
}
