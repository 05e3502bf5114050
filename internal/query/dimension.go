package query

import "time"

// Dimension is a grouping axis for the cost breakdown. It is a closed enum:
// structural query choices are never taken from unvalidated caller input.
type Dimension string

const (
	DimensionModel Dimension = "model"
	DimensionAgent Dimension = "agent"
	DimensionUser  Dimension = "user"
)

// ParseDimension validates a caller-supplied grouping dimension. Empty input
// defaults to grouping by model.
func ParseDimension(raw string) (Dimension, error) {
	switch raw {
	case "", string(DimensionModel):
		return DimensionModel, nil
	case string(DimensionAgent):
		return DimensionAgent, nil
	case string(DimensionUser):
		return DimensionUser, nil
	default:
		return "", Validationf("group_by must be one of model, agent, user; got %q", raw)
	}
}

// Granularity is the bucket width for usage trends.
type Granularity string

const (
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
)

// ParseGranularity validates a caller-supplied granularity. Empty input
// defaults to daily buckets.
func ParseGranularity(raw string) (Granularity, error) {
	switch raw {
	case "", string(GranularityDay):
		return GranularityDay, nil
	case string(GranularityHour):
		return GranularityHour, nil
	default:
		return "", Validationf("granularity must be hour or day, got %q", raw)
	}
}

// Bucket truncates t to the start of its half-open bucket interval, in UTC.
func (g Granularity) Bucket(t time.Time) time.Time {
	u := t.UTC()
	switch g {
	case GranularityHour:
		return u.Truncate(time.Hour)
	default:
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// Label renders a bucket start the way the trends endpoint reports it.
func (g Granularity) Label(t time.Time) string {
	if g == GranularityHour {
		return t.UTC().Format("2006-01-02 15:00:00")
	}
	return t.UTC().Format("2006-01-02")
}
