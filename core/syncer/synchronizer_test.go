package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
)

type fakeWarm struct {
	doc   *catalog.AggregateDocument
	err   error
	calls int32
}

func (f *fakeWarm) FetchAggregate(ctx context.Context) (*catalog.AggregateDocument, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.doc, f.err
}

type fakeDirect struct {
	mu sync.Mutex

	services []catalog.Service
	plans    map[string][]catalog.Plan

	failEverything bool
	licencesErr    error

	serviceCalls int32
	planCalls    int32
}

var errUpstreamDown = errors.New("upstream down")

func (f *fakeDirect) fail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failEverything
}

func (f *fakeDirect) setFailEverything(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failEverything = v
}

func (f *fakeDirect) Services(ctx context.Context) ([]catalog.Service, error) {
	atomic.AddInt32(&f.serviceCalls, 1)
	if f.fail() {
		return nil, errUpstreamDown
	}
	return f.services, nil
}

func (f *fakeDirect) ServicePlans(ctx context.Context, serviceName, rateCard string, storageCats, planCats map[string]string) ([]catalog.Plan, error) {
	atomic.AddInt32(&f.planCalls, 1)
	if f.fail() {
		return nil, errUpstreamDown
	}
	return f.plans[serviceName], nil
}

func (f *fakeDirect) RateCards(ctx context.Context) ([]catalog.RateCard, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return []catalog.RateCard{{ID: "1", Name: "Default", Slug: "default", Status: true, Default: true}}, nil
}

func (f *fakeDirect) BillingCycles(ctx context.Context) ([]catalog.BillingCycleInfo, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return []catalog.BillingCycleInfo{{ID: "1", Slug: "monthly"}}, nil
}

func (f *fakeDirect) Products(ctx context.Context, rateCard string) ([]catalog.Product, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return nil, nil
}

func (f *fakeDirect) Licences(ctx context.Context, rateCard string) ([]catalog.Licence, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	if f.licencesErr != nil {
		return nil, f.licencesErr
	}
	return []catalog.Licence{{ID: "1", Name: "Windows", MonthlyPrice: decimal.NewFromInt(55)}}, nil
}

func (f *fakeDirect) OperatingSystems(ctx context.Context) ([]catalog.OperatingSystem, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return nil, nil
}

func (f *fakeDirect) Templates(ctx context.Context) ([]catalog.Template, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return nil, nil
}

func (f *fakeDirect) StorageCategories(ctx context.Context) ([]catalog.StorageCategory, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return []catalog.StorageCategory{{ID: "1", Name: "NVMe", Status: true}}, nil
}

func (f *fakeDirect) PlanCategories(ctx context.Context) ([]catalog.PlanCategory, error) {
	if f.fail() {
		return nil, errUpstreamDown
	}
	return nil, nil
}

func testServices() []catalog.Service {
	return []catalog.Service{
		{ID: "1", Name: "Block Storage", Slug: "block-storage", Status: true, Category: catalog.CategoryStorage},
		{ID: "2", Name: "Virtual Machines", Slug: "virtual-machines", Status: true, Category: catalog.CategoryCompute},
	}
}

func testPlans() map[string][]catalog.Plan {
	return map[string][]catalog.Plan{
		"Virtual Machines": {
			{ID: "10", Name: "VM 2GB", MonthlyPrice: decimal.NewFromInt(500)},
			{ID: "11", Name: "VM 4GB", MonthlyPrice: decimal.NewFromInt(900)},
		},
		"Block Storage": {
			{ID: "20", Name: "100GB Volume", MonthlyPrice: decimal.NewFromInt(300)},
		},
	}
}

func testAggregate() *catalog.AggregateDocument {
	return &catalog.AggregateDocument{
		Services: []catalog.ServiceRecord{
			{ID: "1", Name: "Virtual Machines", Slug: "virtual-machines", Status: true},
		},
		PlansByService: map[string][]catalog.PlanRecord{
			"Virtual Machines": {
				{ID: "10", Name: "VM 2GB", Status: true},
			},
		},
	}
}

func TestGetCatalogWarmHit(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{services: testServices(), plans: testPlans()}
	s := New(warm, direct, Options{TTL: time.Minute})

	snap, err := s.GetCatalog(context.Background(), "")
	require.NoError(t, err)
	require.False(t, snap.Empty())

	assert.Equal(t, "Virtual Machines", snap.Services[0].Name)
	assert.Equal(t, DefaultRateCard, snap.RateCard)
	// Warm cache satisfied the sync; the direct API was never touched.
	assert.Equal(t, int32(0), atomic.LoadInt32(&direct.serviceCalls))

	state := s.GetSyncState()
	assert.Equal(t, StatusSuccess, state.Tables[ResourceServices].Status)
	assert.Empty(t, state.LastError)
	require.NotNil(t, state.LastSyncAt)
}

func TestGetCatalogWarmEmptyFallsBackToDirect(t *testing.T) {
	warm := &fakeWarm{doc: &catalog.AggregateDocument{}}
	direct := &fakeDirect{services: testServices(), plans: testPlans()}
	s := New(warm, direct, Options{TTL: time.Minute})

	snap, err := s.GetCatalog(context.Background(), "default")
	require.NoError(t, err)
	require.False(t, snap.Empty())

	assert.Len(t, snap.Services, 2)
	assert.Len(t, snap.PlansByService["Virtual Machines"], 2)
	assert.Len(t, snap.PlansByService["Block Storage"], 1)

	// Plan counts are recomputed during the fan-out.
	for _, svc := range snap.Services {
		if svc.Name == "Virtual Machines" {
			assert.Equal(t, 2, svc.PlanCount)
		}
	}

	state := s.GetSyncState()
	assert.Equal(t, 3, state.Tables[ResourcePlans].RecordCount)
	assert.Equal(t, StatusSuccess, state.Tables[ResourcePlans].Status)
}

func TestGetCatalogFreshCacheSkipsSync(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{}
	s := New(warm, direct, Options{TTL: time.Minute})

	ctx := context.Background()
	_, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)
	_, err = s.GetCatalog(ctx, "default")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&warm.calls))
}

func TestGetCatalogConcurrentColdCacheSyncsOnce(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{}
	s := New(warm, direct, Options{TTL: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetCatalog(context.Background(), "default")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&warm.calls))
}

func TestResourceFailureDoesNotAbortSync(t *testing.T) {
	warm := &fakeWarm{err: errUpstreamDown}
	direct := &fakeDirect{
		services:    testServices(),
		plans:       testPlans(),
		licencesErr: errUpstreamDown,
	}
	s := New(warm, direct, Options{TTL: time.Minute})

	snap, err := s.GetCatalog(context.Background(), "default")
	require.NoError(t, err)
	require.False(t, snap.Empty())

	// Licences failed alone: empty table, error recorded, rest intact.
	assert.Empty(t, snap.Licences)
	assert.Len(t, snap.Services, 2)
	assert.Len(t, snap.StorageCategories, 1)

	state := s.GetSyncState()
	assert.Equal(t, StatusError, state.Tables[ResourceLicences].Status)
	assert.NotEmpty(t, state.Tables[ResourceLicences].Error)
	assert.Equal(t, StatusSuccess, state.Tables[ResourceServices].Status)
}

func TestTotalOutageServesLastGoodSnapshot(t *testing.T) {
	warm := &fakeWarm{err: errUpstreamDown}
	direct := &fakeDirect{services: testServices(), plans: testPlans()}
	s := New(warm, direct, Options{TTL: 10 * time.Millisecond})

	ctx := context.Background()
	first, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)
	require.False(t, first.Empty())

	// Let the snapshot expire, then take everything down.
	time.Sleep(20 * time.Millisecond)
	direct.setFailEverything(true)

	snap, err := s.GetCatalog(ctx, "default")
	require.Error(t, err)
	require.False(t, snap.Empty())
	assert.True(t, first.Equal(snap))

	state := s.GetSyncState()
	assert.NotEmpty(t, state.LastError)
}

func TestTotalOutageWithoutCacheReturnsEmptySnapshot(t *testing.T) {
	warm := &fakeWarm{err: errUpstreamDown}
	direct := &fakeDirect{}
	direct.setFailEverything(true)
	s := New(warm, direct, Options{TTL: time.Minute})

	snap, err := s.GetCatalog(context.Background(), "default")
	require.Error(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())

	state := s.GetSyncState()
	assert.NotEmpty(t, state.LastError)
	assert.Equal(t, StatusError, state.Tables[ResourceServices].Status)
}

func TestTriggerManualSync(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{}
	s := New(warm, direct, Options{TTL: time.Hour})

	ctx := context.Background()
	_, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)

	// Manual sync refetches even though the snapshot is still fresh.
	result := s.TriggerManualSync(ctx, "default")
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, result.Counts[ResourceServices])
	assert.Equal(t, 1, result.Counts[ResourcePlans])
	assert.False(t, result.State.IsRunning)

	assert.Equal(t, int32(2), atomic.LoadInt32(&warm.calls))
}

type blockingWarm struct {
	release chan struct{}
	doc     *catalog.AggregateDocument
}

func (b *blockingWarm) FetchAggregate(ctx context.Context) (*catalog.AggregateDocument, error) {
	<-b.release
	return b.doc, nil
}

func TestTriggerManualSyncRejectsWhileRunning(t *testing.T) {
	warm := &blockingWarm{release: make(chan struct{}), doc: testAggregate()}
	s := New(warm, &fakeDirect{}, Options{TTL: time.Minute})

	done := make(chan Result, 1)
	go func() {
		done <- s.TriggerManualSync(context.Background(), "default")
	}()

	// Wait for the first trigger to enter its sync.
	require.Eventually(t, func() bool {
		return s.GetSyncState().IsRunning
	}, time.Second, time.Millisecond)

	second := s.TriggerManualSync(context.Background(), "default")
	assert.False(t, second.Success)
	assert.Equal(t, "sync already in progress", second.Error)

	close(warm.release)
	first := <-done
	assert.True(t, first.Success)
}

func TestTriggerManualSyncDuringOutageKeepsLastGoodSnapshot(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{}
	s := New(warm, direct, Options{TTL: time.Minute})

	ctx := context.Background()
	first, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)
	require.False(t, first.Empty())

	// Take both sources down, then force a refresh.
	warm.doc = nil
	direct.setFailEverything(true)

	result := s.TriggerManualSync(ctx, "default")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)

	// The failed refresh must not evict the last good snapshot.
	snap, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)
	require.False(t, snap.Empty())
	assert.True(t, first.Equal(snap))
}

func TestTriggerManualSyncReportsFailure(t *testing.T) {
	warm := &fakeWarm{err: errUpstreamDown}
	direct := &fakeDirect{}
	direct.setFailEverything(true)
	s := New(warm, direct, Options{TTL: time.Minute})

	result := s.TriggerManualSync(context.Background(), "default")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestClearCacheForcesResync(t *testing.T) {
	warm := &fakeWarm{doc: testAggregate()}
	direct := &fakeDirect{}
	s := New(warm, direct, Options{TTL: time.Hour})

	ctx := context.Background()
	_, err := s.GetCatalog(ctx, "default")
	require.NoError(t, err)

	s.ClearCache(ctx)

	_, err = s.GetCatalog(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&warm.calls))
}
