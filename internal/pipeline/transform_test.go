package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-dashboard/internal/model"
)

func scenarioDataset() *model.Dataset {
	return &model.Dataset{
		Path: "trade.csv",
		Records: []model.Record{
			{Year: 2020, IndicatorName: exportsName, IndicatorCode: "TX", Value: 120},
			{Year: 2019, IndicatorName: exportsName, IndicatorCode: "TX", Value: 100},
			{Year: 2020, IndicatorName: "Other", IndicatorCode: "OTH", Value: 5},
			{Year: 2019, IndicatorName: "Other", IndicatorCode: "OTH", Value: 4},
		},
	}
}

func TestSelectIndicatorScenario(t *testing.T) {
	subset := SelectIndicator(scenarioDataset(), exportsName)

	require.Len(t, subset.Records, 2)
	assert.Equal(t, 2019, subset.Records[0].Year)
	assert.Equal(t, 100.0, subset.Records[0].Value)
	assert.Equal(t, 2020, subset.Records[1].Year)
	assert.Equal(t, 120.0, subset.Records[1].Value)

	kpi, err := ComputeKPI(subset)
	require.NoError(t, err)
	assert.Equal(t, "120.00", kpi.MaxText)
	assert.Equal(t, "100.00", kpi.MinText)
	assert.Equal(t, "110.00", kpi.AvgText)
}

func TestSelectIndicatorIsIdempotentAndStable(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{
		{Year: 2020, IndicatorName: "A", IndicatorCode: "first", Value: 1},
		{Year: 2019, IndicatorName: "A", Value: 2},
		{Year: 2020, IndicatorName: "A", IndicatorCode: "second", Value: 3},
	}}

	a := SelectIndicator(ds, "A")
	b := SelectIndicator(ds, "A")
	assert.Equal(t, a, b)
	assert.Equal(t, "first", a.Records[1].IndicatorCode)
	assert.Equal(t, "second", a.Records[2].IndicatorCode)
	assert.Equal(t, 2020, ds.Records[0].Year, "dataset order untouched")
}

func TestSelectIndicatorMembership(t *testing.T) {
	subset := SelectIndicator(scenarioDataset(), exportsName, "Other")
	require.Len(t, subset.Records, 4)
	assert.Equal(t, []int{2019, 2020}, Years(subset))
	assert.Equal(t, exportsName+", Other", subset.Label())
}

func TestSelectUnknownIndicatorIsEmpty(t *testing.T) {
	subset := SelectIndicator(scenarioDataset(), "Does not exist")
	assert.True(t, subset.Empty())

	_, err := ComputeKPI(subset)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIndicatorsSortedUnique(t *testing.T) {
	assert.Equal(t, []string{exportsName, "Other"}, Indicators(scenarioDataset()))
	assert.Nil(t, Indicators(nil))
}

func TestCompareYear(t *testing.T) {
	vals, err := CompareYear(scenarioDataset(), []string{"Other", exportsName, "Missing"}, 2020)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "Other", vals[0].IndicatorName)
	assert.Equal(t, 5.0, vals[0].Value)
	assert.Equal(t, 120.0, vals[1].Value)

	_, err = CompareYear(scenarioDataset(), []string{"Other"}, 1990)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRestrictToKeyIndicators(t *testing.T) {
	ds := scenarioDataset()

	out, err := RestrictToKeyIndicators(ds, []string{exportsName})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 4, ds.Len())

	same, err := RestrictToKeyIndicators(ds, nil)
	require.NoError(t, err)
	assert.Same(t, ds, same)

	_, err = RestrictToKeyIndicators(ds, []string{"Merchandise imports (current US$)"})
	assert.ErrorIs(t, err, ErrNoKeyIndicators)
}
