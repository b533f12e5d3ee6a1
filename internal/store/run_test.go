package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryli710/gotoh/internal/render"
	"github.com/terryli710/gotoh/internal/testutil"
)

func TestWriteRun_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRun("hash-a", 2.3, render.Alignment{A: "ATG_C", B: "A_GGC"})
	require.NoError(t, s.WriteRun(ctx, first))
	assert.Equal(t, testutil.FixedID(1), first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, 1, first.AlignmentCount)

	second := createTestRun("hash-b", 3)
	require.NoError(t, s.WriteRun(ctx, second))
	assert.Equal(t, testutil.FixedID(2), second.ID)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, 0, second.AlignmentCount)
}

func TestWriteRun_KeepsExplicitID(t *testing.T) {
	s := createTestStore(t)

	run := createTestRun("hash", 1)
	run.ID = "explicit-id"
	require.NoError(t, s.WriteRun(context.Background(), run))
	assert.Equal(t, "explicit-id", run.ID)

	dup := createTestRun("hash", 1)
	dup.ID = "explicit-id"
	assert.Error(t, s.WriteRun(context.Background(), dup))
}

func TestReadRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	als := []render.Alignment{{A: "aaa", B: "aaa"}, {A: "aaaa", B: "a_aa"}}
	run := createTestRun("hash", 3, als...)
	run.Mode = "local"
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestReadRun_NoAlignments(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("hash", 0)
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Alignments)
	assert.Empty(t, got.Alignments)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.WriteRun(ctx, createTestRun("hash", float64(i))))
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int64{5, 4, 3}, []int64{runs[0].Seq, runs[1].Seq, runs[2].Seq})
	assert.Nil(t, runs[0].Alignments)

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestFindRunsByConfig(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestRun("a", 1)))
	require.NoError(t, s.WriteRun(ctx, createTestRun("b", 2)))
	require.NoError(t, s.WriteRun(ctx, createTestRun("a", 3)))

	runs, err := s.FindRunsByConfig(ctx, "a")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 1.0, runs[0].Score)
	assert.Equal(t, 3.0, runs[1].Score)

	none, err := s.FindRunsByConfig(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWriteRun_ConcurrentSeqUnique(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.WriteRun(ctx, createTestRun("hash", 1)))
		}()
	}
	wg.Wait()

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 20)
	for i, r := range runs {
		assert.Equal(t, int64(20-i), r.Seq)
	}
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
