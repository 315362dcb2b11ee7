package main

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_Manifest(t *testing.T) {
	out, err := run(t, "list", "--methods")
	require.NoError(t, err)

	for _, want := range []string{"PACKAGE", "Target", "targetProxy", "Greeter", "greeterProxy", "counter"} {
		assert.Contains(t, out, want)
	}
}

func TestGen_DryRunAdHoc(t *testing.T) {
	out, err := run(t, "gen", "--dry-run",
		"-C", "../..",
		"--package", "./proxy/proxytest",
		"--base", "Empty",
		"--interface", "fmt.Stringer",
		"--output", "stringer_shell.go",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "would write")
	assert.Contains(t, out, "stringer_shell.go")
	assert.NoFileExists(t, filepath.Join("..", "..", "proxy", "proxytest", "stringer_shell.go"))
}

func TestGen_NoManifest(t *testing.T) {
	_, err := run(t, "gen", "-C", t.TempDir())
	assert.ErrorContains(t, err, "proxygen.toml")
}

func TestGen_BadBase(t *testing.T) {
	_, err := run(t, "gen", "--dry-run", "-C", "../..", "--package", "./proxy/proxytest", "--base", "Frozen")
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	outputs := map[string]bool{"/src/pkg/target_proxy.go": true}

	assert.True(t, relevant(fsnotify.Event{Name: "/src/pkg/target.go", Op: fsnotify.Write}, outputs))
	assert.True(t, relevant(fsnotify.Event{Name: "/src/pkg/new.go", Op: fsnotify.Create}, outputs))
	assert.False(t, relevant(fsnotify.Event{Name: "/src/pkg/target_proxy.go", Op: fsnotify.Write}, outputs))
	assert.False(t, relevant(fsnotify.Event{Name: "/src/pkg/target_test.go", Op: fsnotify.Write}, outputs))
	assert.False(t, relevant(fsnotify.Event{Name: "/src/pkg/README.md", Op: fsnotify.Write}, outputs))
	assert.False(t, relevant(fsnotify.Event{Name: "/src/pkg/target.go", Op: fsnotify.Chmod}, outputs))
}

func TestWatchLoop_Debounces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, events, errs, map[string]bool{"/src/a_proxy.go": true}, 50*time.Millisecond, func() { calls.Add(1) })
	}()

	for range 5 {
		events <- fsnotify.Event{Name: "/src/a.go", Op: fsnotify.Write}
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	events <- fsnotify.Event{Name: "/src/a_proxy.go", Op: fsnotify.Write}
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop")
	}
}
