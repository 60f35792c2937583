// Package syncer implements the reconciliation engine: computing the
// difference between a playlist's local files and its current remote
// member list, and driving the removals and downloads that close it.
package syncer

import (
	"sort"

	"ypsync/youtube"
)

// Plan is the outcome of reconciling local state against the remote
// member list. Remove holds the video IDs whose files should be deleted;
// Add holds the videos to download, in remote playlist order.
type Plan struct {
	Remove []string
	Add    []youtube.Video
}

// InSync reports whether the symmetric difference between local and
// remote is empty, i.e. nothing needs to change.
func (p Plan) InSync() bool {
	return len(p.Remove) == 0 && len(p.Add) == 0
}

// Reconcile computes the minimal change set between the local index
// (video id -> file path) and the remote member sequence.
//
// Remove is the set difference local − remote, sorted for deterministic
// logs. Add preserves the remote sequence's order so downloads proceed
// in playlist order; a video repeated in the remote list is added once.
// Reconcile is pure: it performs no I/O and touches no state.
func Reconcile(local map[string]string, remote []youtube.Video) Plan {
	remoteIDs := make(map[string]struct{}, len(remote))
	for _, v := range remote {
		remoteIDs[v.ID] = struct{}{}
	}

	var plan Plan
	for id := range local {
		if _, ok := remoteIDs[id]; !ok {
			plan.Remove = append(plan.Remove, id)
		}
	}
	sort.Strings(plan.Remove)

	added := make(map[string]struct{})
	for _, v := range remote {
		if _, ok := local[v.ID]; ok {
			continue
		}
		if _, dup := added[v.ID]; dup {
			continue
		}
		added[v.ID] = struct{}{}
		plan.Add = append(plan.Add, v)
	}

	return plan
}
