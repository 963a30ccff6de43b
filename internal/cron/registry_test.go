package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s stubJob) Name() string { return s.name }

func (s stubJob) Run(context.Context) error { return nil }

func TestRegistryPreservesOrder(t *testing.T) {
	registry := NewRegistry(stubJob{name: "first"}, stubJob{name: "second"})
	registry.Register(stubJob{name: "third"})

	jobs := registry.Jobs()
	require.Len(t, jobs, 3)
	assert.Equal(t, "first", jobs[0].Name())
	assert.Equal(t, "second", jobs[1].Name())
	assert.Equal(t, "third", jobs[2].Name())
}

func TestRegistrySkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, stubJob{name: "only"})
	registry.Register(nil)

	jobs := registry.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "only", jobs[0].Name())
}

func TestRegistryJobsReturnsCopy(t *testing.T) {
	registry := NewRegistry(stubJob{name: "keep"})

	jobs := registry.Jobs()
	jobs[0] = stubJob{name: "mutated"}

	assert.Equal(t, "keep", registry.Jobs()[0].Name())
}
