// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package cache stores computed view results for a limited time.

Keys come from GenerateKey and embed the dataset version, so results from
an old snapshot are never returned for a new one. The whole cache is also
cleared when a reload event arrives, and expired entries are removed on
read or by Prune, which the refresh scheduler calls periodically. The
cache starts no goroutines of its own.

	c := cache.New(5 * time.Minute)
	key := cache.GenerateKey("film_ranking", ds.Version, query)
	if v, ok := c.Get(key); ok {
		return v.(*analytics.Result)
	}
*/
package cache
