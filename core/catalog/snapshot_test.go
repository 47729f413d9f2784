package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testSnapshot(fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		RateCard: "default",
		Services: []Service{
			{ID: "1", Name: "Virtual Machines", Slug: "virtual-machines", Category: CategoryCompute, PlanCount: 1},
		},
		PlansByService: map[string][]Plan{
			"Virtual Machines": {
				{ID: "10", Name: "VM 2GB", MonthlyPrice: decimal.NewFromInt(500)},
			},
		},
		FetchedAt: fetchedAt,
	}
}

func TestContentHashIgnoresFetchTime(t *testing.T) {
	a := testSnapshot(time.Now())
	b := testSnapshot(time.Now().Add(time.Hour))

	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.True(t, a.Equal(b))
}

func TestContentHashChangesWithContent(t *testing.T) {
	a := testSnapshot(time.Now())
	b := testSnapshot(time.Now())
	b.PlansByService["Virtual Machines"][0].MonthlyPrice = decimal.NewFromInt(600)

	assert.NotEqual(t, a.ContentHash(), b.ContentHash())
	assert.False(t, a.Equal(b))
}

func TestGroupedByCategory(t *testing.T) {
	snap := &Snapshot{
		Services: []Service{
			{Name: "Router", Category: CategoryNetwork},
			{Name: "Virtual Machines", Category: CategoryCompute},
			{Name: "Kubernetes", Category: CategoryCompute},
		},
	}

	groups := snap.GroupedByCategory()
	assert.Len(t, groups, 2)
	assert.Equal(t, CategoryCompute, groups[0].Category)
	assert.Len(t, groups[0].Services, 2)
	assert.Equal(t, CategoryNetwork, groups[1].Category)
}
