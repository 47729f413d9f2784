package syncer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
	apperrors "github.com/Sudheer128/cloud4india-sub003/internal/errors"
)

// WarmSource serves the pre-aggregated catalog document in one call.
type WarmSource interface {
	FetchAggregate(ctx context.Context) (*catalog.AggregateDocument, error)
}

// DirectSource fetches each catalog resource from the upstream API,
// already normalized. Plans are fetched per service.
type DirectSource interface {
	Services(ctx context.Context) ([]catalog.Service, error)
	ServicePlans(ctx context.Context, serviceName, rateCard string, storageCats, planCats map[string]string) ([]catalog.Plan, error)
	RateCards(ctx context.Context) ([]catalog.RateCard, error)
	BillingCycles(ctx context.Context) ([]catalog.BillingCycleInfo, error)
	Products(ctx context.Context, rateCard string) ([]catalog.Product, error)
	Licences(ctx context.Context, rateCard string) ([]catalog.Licence, error)
	OperatingSystems(ctx context.Context) ([]catalog.OperatingSystem, error)
	Templates(ctx context.Context) ([]catalog.Template, error)
	StorageCategories(ctx context.Context) ([]catalog.StorageCategory, error)
	PlanCategories(ctx context.Context) ([]catalog.PlanCategory, error)
}

const (
	DefaultTTL         = 5 * time.Minute
	DefaultPlanWorkers = 8
	DefaultRateCard    = "default"
)

// Options configures a Synchronizer. Zero values fall back to the
// package defaults.
type Options struct {
	TTL             time.Duration
	Interval        time.Duration
	PlanWorkers     int
	DefaultRateCard string
	Redis           *redis.Client
	Logger          *zap.Logger
}

// Synchronizer owns the catalog cache and the sync lifecycle. All state
// lives on the instance so independent instances never interfere.
type Synchronizer struct {
	warm   WarmSource
	direct DirectSource
	cache  *snapshotCache
	state  *tracker

	ttl             time.Duration
	interval        time.Duration
	planWorkers     int
	defaultRateCard string

	running atomic.Bool
	syncMu  sync.Mutex
	logger  *zap.Logger
}

// Result is the outcome of a manual sync trigger.
type Result struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Counts  map[string]int `json:"counts,omitempty"`
	State   State          `json:"state"`
}

func New(warm WarmSource, direct DirectSource, opts Options) *Synchronizer {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Interval <= 0 {
		opts.Interval = opts.TTL
	}
	if opts.PlanWorkers <= 0 {
		opts.PlanWorkers = DefaultPlanWorkers
	}
	if opts.DefaultRateCard == "" {
		opts.DefaultRateCard = DefaultRateCard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Synchronizer{
		warm:            warm,
		direct:          direct,
		cache:           newSnapshotCache(opts.TTL, opts.Redis, opts.Logger),
		state:           newTracker(),
		ttl:             opts.TTL,
		interval:        opts.Interval,
		planWorkers:     opts.PlanWorkers,
		defaultRateCard: opts.DefaultRateCard,
		logger:          opts.Logger,
	}
}

// GetCatalog returns a fresh snapshot for rateCard, syncing only when
// the cached one is older than the TTL. Concurrent callers on a cold
// cache trigger at most one sync; the rest wait and reuse its result.
func (s *Synchronizer) GetCatalog(ctx context.Context, rateCard string) (*catalog.Snapshot, error) {
	if rateCard == "" {
		rateCard = s.defaultRateCard
	}
	if snap, fresh := s.cache.lookup(ctx, rateCard); fresh {
		return snap, nil
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	// Another caller may have finished a sync while we waited.
	if snap, fresh := s.cache.lookup(ctx, rateCard); fresh {
		return snap, nil
	}
	return s.sync(ctx, rateCard)
}

// TriggerManualSync forces a refresh regardless of TTL. The guard is
// advisory: a request arriving while a sync is running is rejected
// rather than queued.
func (s *Synchronizer) TriggerManualSync(ctx context.Context, rateCard string) Result {
	if rateCard == "" {
		rateCard = s.defaultRateCard
	}
	if s.running.Load() {
		return Result{
			Success: false,
			Error:   "sync already in progress",
			State:   s.state.snapshot(),
		}
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	// sync bypasses the TTL check and overwrites the cache on success;
	// the previous snapshot stays put so a failed refresh can still fall
	// back to it.
	snap, err := s.sync(ctx, rateCard)

	res := Result{
		Success: err == nil,
		Counts:  snapshotCounts(snap),
		State:   s.state.snapshot(),
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// GetSyncState returns a copy of the current sync-state record.
func (s *Synchronizer) GetSyncState() State {
	return s.state.snapshot()
}

// ClearCache drops every cached snapshot so the next read syncs again.
func (s *Synchronizer) ClearCache(ctx context.Context) {
	s.cache.clear(ctx)
}

// sync refreshes the snapshot for rateCard: warm cache first, direct
// per-resource fallback second, last good snapshot third. Callers must
// hold syncMu. The returned snapshot is never nil; the error is non-nil
// only when no usable catalog could be produced at all.
func (s *Synchronizer) sync(ctx context.Context, rateCard string) (*catalog.Snapshot, error) {
	s.running.Store(true)
	s.state.setRunning(true)
	defer func() {
		s.state.setRunning(false)
		s.running.Store(false)
	}()

	now := time.Now()

	if snap := s.syncWarm(ctx, rateCard, now); snap != nil {
		s.finish(now, "")
		s.cache.put(ctx, rateCard, snap)
		return snap, nil
	}

	snap := s.syncDirect(ctx, rateCard, now)
	if !snap.Empty() {
		s.finish(now, "")
		s.cache.put(ctx, rateCard, snap)
		return snap, nil
	}

	// Total outage: every source came back empty or failed.
	errMsg := "catalog unavailable: warm cache and direct fetch both failed"
	s.finish(now, errMsg)
	if last, _ := s.cache.lookup(ctx, rateCard); last != nil {
		s.logger.Warn("serving last good snapshot after failed sync",
			zap.String("rate_card", rateCard),
			zap.Time("fetched_at", last.FetchedAt))
		return last, apperrors.Sync(errMsg, nil)
	}
	empty := &catalog.Snapshot{
		RateCard:       rateCard,
		PlansByService: map[string][]catalog.Plan{},
		FetchedAt:      now,
	}
	return empty, apperrors.Sync(errMsg, nil)
}

// syncWarm tries the pre-aggregated document. A document with no
// services counts as a cache miss.
func (s *Synchronizer) syncWarm(ctx context.Context, rateCard string, now time.Time) *catalog.Snapshot {
	doc, err := s.warm.FetchAggregate(ctx)
	if err != nil {
		s.logger.Info("warm cache unavailable, falling back to direct fetch", zap.Error(err))
		return nil
	}
	if doc == nil || len(doc.Services) == 0 {
		s.logger.Info("warm cache empty, falling back to direct fetch")
		return nil
	}

	snap := catalog.FromAggregate(doc, rateCard, now)
	for table, count := range snapshotCounts(snap) {
		s.state.recordSuccess(table, count, now)
	}
	s.logger.Info("catalog synced from warm cache",
		zap.String("rate_card", rateCard),
		zap.Int("services", len(snap.Services)))
	return snap
}

// syncDirect fetches every base resource concurrently, then fans out
// over services for plans with a bounded worker pool. A failed resource
// is recorded in the sync state and leaves its table empty; it never
// aborts the others.
func (s *Synchronizer) syncDirect(ctx context.Context, rateCard string, now time.Time) *catalog.Snapshot {
	snap := &catalog.Snapshot{
		RateCard:       rateCard,
		PlansByService: map[string][]catalog.Plan{},
		FetchedAt:      now,
	}

	var wg sync.WaitGroup
	fetch := func(table string, fn func() (int, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := fn()
			if err != nil {
				s.logger.Warn("resource fetch failed",
					zap.String("resource", table),
					zap.Error(err))
				s.state.recordError(table, err.Error(), now)
				return
			}
			s.state.recordSuccess(table, count, now)
		}()
	}

	fetch(ResourceServices, func() (int, error) {
		services, err := s.direct.Services(ctx)
		snap.Services = services
		return len(services), err
	})
	fetch(ResourceRateCards, func() (int, error) {
		cards, err := s.direct.RateCards(ctx)
		snap.RateCards = cards
		return len(cards), err
	})
	fetch(ResourceBillingCycles, func() (int, error) {
		cycles, err := s.direct.BillingCycles(ctx)
		snap.BillingCycles = cycles
		return len(cycles), err
	})
	fetch(ResourceProducts, func() (int, error) {
		products, err := s.direct.Products(ctx, rateCard)
		snap.Products = products
		return len(products), err
	})
	fetch(ResourceLicences, func() (int, error) {
		licences, err := s.direct.Licences(ctx, rateCard)
		snap.Licences = licences
		return len(licences), err
	})
	fetch(ResourceOperatingSystems, func() (int, error) {
		oses, err := s.direct.OperatingSystems(ctx)
		snap.OperatingSystems = oses
		return len(oses), err
	})
	fetch(ResourceTemplates, func() (int, error) {
		templates, err := s.direct.Templates(ctx)
		snap.Templates = templates
		return len(templates), err
	})
	fetch(ResourceStorageCategories, func() (int, error) {
		cats, err := s.direct.StorageCategories(ctx)
		snap.StorageCategories = cats
		return len(cats), err
	})
	fetch(ResourcePlanCategories, func() (int, error) {
		cats, err := s.direct.PlanCategories(ctx)
		snap.PlanCategories = cats
		return len(cats), err
	})
	wg.Wait()

	s.fetchPlans(ctx, snap, rateCard, now)
	return snap
}

// fetchPlans loads plans for every service with at most planWorkers
// in-flight fetches. Per-service failures yield an empty plan list for
// that service only.
func (s *Synchronizer) fetchPlans(ctx context.Context, snap *catalog.Snapshot, rateCard string, now time.Time) {
	if len(snap.Services) == 0 {
		s.state.recordError(ResourcePlans, "no services to fetch plans for", now)
		return
	}

	storageCats := make(map[string]string, len(snap.StorageCategories))
	for _, c := range snap.StorageCategories {
		storageCats[c.ID] = c.Name
	}
	planCats := make(map[string]string, len(snap.PlanCategories))
	for _, c := range snap.PlanCategories {
		planCats[c.ID] = c.Name
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		sem    = make(chan struct{}, s.planWorkers)
		total  int
		failed int
	)
	for i := range snap.Services {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			service := snap.Services[idx]
			plans, err := s.direct.ServicePlans(ctx, service.Name, rateCard, storageCats, planCats)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("plan fetch failed",
					zap.String("service", service.Name),
					zap.Error(err))
				failed++
				snap.PlansByService[service.Name] = nil
				return
			}
			snap.PlansByService[service.Name] = plans
			snap.Services[idx].PlanCount = len(plans)
			total += len(plans)
		}(i)
	}
	wg.Wait()

	if failed > 0 && total == 0 {
		s.state.recordError(ResourcePlans,
			fmt.Sprintf("plan fetch failed for all %d services", failed), now)
		return
	}
	s.state.recordSuccess(ResourcePlans, total, now)
}

func (s *Synchronizer) finish(now time.Time, lastError string) {
	next := now.Add(s.interval)
	s.state.finish(lastError, now, &next)
}

func snapshotCounts(snap *catalog.Snapshot) map[string]int {
	if snap == nil {
		return nil
	}
	plans := 0
	for _, list := range snap.PlansByService {
		plans += len(list)
	}
	return map[string]int{
		ResourceServices:          len(snap.Services),
		ResourcePlans:             plans,
		ResourceRateCards:         len(snap.RateCards),
		ResourceBillingCycles:     len(snap.BillingCycles),
		ResourceProducts:          len(snap.Products),
		ResourceLicences:          len(snap.Licences),
		ResourceOperatingSystems:  len(snap.OperatingSystems),
		ResourceTemplates:         len(snap.Templates),
		ResourceStorageCategories: len(snap.StorageCategories),
		ResourcePlanCategories:    len(snap.PlanCategories),
	}
}
