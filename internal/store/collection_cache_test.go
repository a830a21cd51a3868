// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/devontix-console/models"
)

func TestCollectionCache_SetAndGet(t *testing.T) {
	c := NewCollectionCache()

	_, ok := c.Get(models.CollectionProjects)
	require.False(t, ok)

	stamp := c.Stamp(models.CollectionProjects)
	require.True(t, c.SetIfCurrent(models.CollectionProjects, stamp, []string{"a"}))

	v, ok := c.Get(models.CollectionProjects)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	_, ok = c.FetchedAt(models.CollectionProjects)
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCollectionCache_InvalidateDropsValueAndStalesStamp(t *testing.T) {
	c := NewCollectionCache()

	stamp := c.Stamp(models.CollectionTasks)
	c.SetIfCurrent(models.CollectionTasks, stamp, 1)

	inFlight := c.Stamp(models.CollectionTasks)
	c.Invalidate(models.CollectionTasks, models.CollectionAdminDashboard)

	_, ok := c.Get(models.CollectionTasks)
	assert.False(t, ok)

	assert.False(t, c.SetIfCurrent(models.CollectionTasks, inFlight, 2), "stale fetch must not repopulate")
	_, ok = c.Get(models.CollectionTasks)
	assert.False(t, ok)

	assert.True(t, c.SetIfCurrent(models.CollectionTasks, c.Stamp(models.CollectionTasks), 3))
}

func TestCollectionCache_InvalidateLeavesOtherKeys(t *testing.T) {
	c := NewCollectionCache()
	c.SetIfCurrent(models.CollectionUsers, c.Stamp(models.CollectionUsers), "users")
	usersStamp := c.Stamp(models.CollectionUsers)

	c.Invalidate(models.CollectionProjects)

	v, ok := c.Get(models.CollectionUsers)
	require.True(t, ok)
	assert.Equal(t, "users", v)
	assert.Equal(t, usersStamp, c.Stamp(models.CollectionUsers))
}

func TestCollectionCache_Reset(t *testing.T) {
	c := NewCollectionCache()
	c.SetIfCurrent(models.CollectionUsers, c.Stamp(models.CollectionUsers), "users")
	c.SetIfCurrent(models.CollectionProjects, c.Stamp(models.CollectionProjects), "projects")

	inFlight := c.Stamp(models.CollectionDevDashboard)
	c.Reset()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.SetIfCurrent(models.CollectionDevDashboard, inFlight, "old"))
	assert.True(t, c.SetIfCurrent(models.CollectionDevDashboard, c.Stamp(models.CollectionDevDashboard), "new"))
}

func TestCollectionCache_Concurrent(t *testing.T) {
	c := NewCollectionCache()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := models.CollectionProjects
			if i%2 == 0 {
				key = models.CollectionTasks
			}
			c.SetIfCurrent(key, c.Stamp(key), i)
			c.Get(key)
			if i%10 == 0 {
				c.Invalidate(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 2)
}
