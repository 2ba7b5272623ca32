// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// StatsWindow is the length of the current and the prior period.
const StatsWindow = 7 * 24 * time.Hour

// Metric compares the trailing window with the one before it.
type Metric struct {
	Current int64   `json:"current"`
	Prior   int64   `json:"prior"`
	Change  float64 `json:"change"`
	// NoPriorData is set when Prior is zero, so a +100 Change means growth
	// from nothing rather than a doubling.
	NoPriorData bool `json:"noPriorData"`
}

// NewMetric fills Change and NoPriorData from the two counts.
func NewMetric(current, prior int64) Metric {
	change, noPrior := PercentChange(current, prior)
	return Metric{Current: current, Prior: prior, Change: change, NoPriorData: noPrior}
}

// PercentChange returns (curr-prior)/prior*100. With no prior data the
// change is 100 when curr > 0 and 0 otherwise, and noPrior is true.
func PercentChange(curr, prior int64) (change float64, noPrior bool) {
	if prior > 0 {
		return float64(curr-prior) / float64(prior) * 100, false
	}
	if curr > 0 {
		return 100, true
	}
	return 0, true
}

// Stats are the three dashboard tiles. Visits and leads are both proxied by
// submissions across contacts, quotes and chat leads; blog views by the
// number of posts published.
type Stats struct {
	WebsiteVisits Metric    `json:"websiteVisits"`
	NewLeads      Metric    `json:"newLeads"`
	BlogViews     Metric    `json:"blogViews"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// Stats counts the current and prior windows concurrently.
func (a *Aggregator) Stats(ctx context.Context) (Stats, error) {
	now := a.now()
	curFrom := now.Add(-StatsWindow)
	priorFrom := curFrom.Add(-StatsWindow)

	type window struct{ from, to time.Time }
	windows := [2]window{{curFrom, now}, {priorFrom, curFrom}}
	counters := []func(context.Context, time.Time, time.Time) (int64, error){
		a.src.CountContactSubmissionsBetween,
		a.src.CountQuoteRequestsBetween,
		a.src.CountChatLeadsBetween,
		a.src.CountBlogsPublishedBetween,
	}

	// counts[w][i] is counter i over window w
	var counts [2][4]int64
	g, gctx := errgroup.WithContext(ctx)
	for w := range windows {
		for i, count := range counters {
			g.Go(func() error {
				n, err := count(gctx, windows[w].from, windows[w].to)
				counts[w][i] = n
				return wrap("stats", err)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	leads := func(w int) int64 { return counts[w][0] + counts[w][1] + counts[w][2] }
	return Stats{
		WebsiteVisits: NewMetric(leads(0), leads(1)),
		NewLeads:      NewMetric(leads(0), leads(1)),
		BlogViews:     NewMetric(counts[0][3], counts[1][3]),
		GeneratedAt:   now,
	}, nil
}
