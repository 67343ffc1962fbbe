package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/loader"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBatch(t *testing.T) {
	rs, err := loader.Load(classicDir)
	require.NoError(t, err)

	failing := filepath.Join(t.TempDir(), "failing.yaml")
	require.NoError(t, os.WriteFile(failing, []byte(`
name: wrong expectation
actor:
  unit: {id: r1, owner: red, type: {name: Warriors}}
queries:
  - action: fortify
    expect: {enabled: "yes"}
  - action: frobnicate
`), 0o644))

	paths := []string{bribeFile, fortifyFile, "testdata/missing.yaml", failing}
	results, err := Batch(context.Background(), rs, paths, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	assert.True(t, results[0].Pass(), "bribe: %+v", results[0].Answers)
	assert.Equal(t, "bribe a guarded warrior", results[0].Scenario)
	assert.True(t, results[1].Pass(), "fortify: %+v", results[1].Answers)

	assert.Error(t, results[2].Err)
	assert.False(t, results[2].Pass())

	require.Len(t, results[3].Answers, 2)
	assert.Equal(t, []string{"enabled no, want yes"}, results[3].Answers[0].Mismatch)
	assert.Error(t, results[3].Answers[1].Err)

	var out bytes.Buffer
	failed := WriteBatch(&out, results)
	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), "PASS bribe a guarded warrior")
	assert.Contains(t, out.String(), "FAIL wrong expectation")
	assert.Contains(t, out.String(), "4 scenario(s), 2 failed")
}

func TestBatch_Cancelled(t *testing.T) {
	rs, err := loader.Load(classicDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Batch(ctx, rs, []string{bribeFile, fortifyFile}, 1, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBatch_NoRuleset(t *testing.T) {
	_, err := Batch(context.Background(), nil, []string{bribeFile}, 1, nil)
	assert.Error(t, err)
}

func TestWriteBatch_SelfTargeted(t *testing.T) {
	var out bytes.Buffer
	results, err := Batch(context.Background(), mustLoad(t), []string{fortifyFile}, 4, nil)
	require.NoError(t, err)
	assert.Zero(t, WriteBatch(&out, results))
	assert.Contains(t, out.String(), "ok   Fortify: possible yes, enabled yes, [100%]")
}

func mustLoad(t *testing.T) *ruleset.Ruleset {
	t.Helper()
	rs, err := loader.Load(classicDir)
	require.NoError(t, err)
	return rs
}
