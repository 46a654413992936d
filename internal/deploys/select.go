// Package deploys picks which of a project's deploys the dashboard shows.
package deploys

import (
	"sort"
	"time"

	"deploy-dashboard/internal/models"

	"github.com/samber/lo"
)

// DeployCount is the maximum number of deploys shown for a project.
const DeployCount = 2

var finishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFinished parses a deploy's dateFinished. The second return value is
// false when the value is empty or in no known layout.
func ParseFinished(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range finishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Select returns at most DeployCount deploys, most recently finished first.
// Deploys without a usable dateFinished sort after every dated one; ties keep
// their input order. The input slice is left untouched.
func Select(deploys []models.Deploy) []models.Deploy {
	type dated struct {
		deploy   models.Deploy
		finished time.Time
		ok       bool
	}

	sorted := lo.Map(deploys, func(d models.Deploy, _ int) dated {
		finished, ok := ParseFinished(d.DateFinished)
		return dated{deploy: d, finished: finished, ok: ok}
	})

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.finished.After(b.finished)
	})

	return lo.Map(lo.Slice(sorted, 0, DeployCount), func(d dated, _ int) models.Deploy {
		return d.deploy
	})
}
