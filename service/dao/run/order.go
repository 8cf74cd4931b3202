// Package run holds helpers shared by run report stores.
package run

import (
	"sort"

	"github.com/viant/schedsim/model"
)

// Sort orders runs by start time, then ID.
func Sort(runs []*model.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.Before(runs[j].StartedAt)
		}
		return runs[i].ID < runs[j].ID
	})
}
