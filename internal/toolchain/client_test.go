package toolchain_test

import (
	"context"
	"errors"
	"testing"

	"slipway/internal/testsupport"
	"slipway/internal/toolchain"
)

func TestBuildSucceedsOnZeroExit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Build.Command = "fakebuild"
	cfg.Build.Args = nil
	testsupport.StubBinary(t, testsupport.BaseDir(cfg), "fakebuild", "#!/bin/sh\nexit 0\n")

	cli := toolchain.NewCLI(cfg)
	if err := cli.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

func TestBuildMapsNonZeroExitToErrBuildFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Build.Command = "fakebuild"
	cfg.Build.Args = nil
	testsupport.StubBinary(t, testsupport.BaseDir(cfg), "fakebuild", "#!/bin/sh\nexit 3\n")

	cli := toolchain.NewCLI(cfg)
	err := cli.Build(context.Background())
	if !errors.Is(err, toolchain.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
}

func TestBuildMissingBinaryIsNotErrBuildFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Build.Command = "slipway-no-such-binary"
	cfg.Build.Args = nil

	cli := toolchain.NewCLI(cfg)
	err := cli.Build(context.Background())
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if errors.Is(err, toolchain.ErrBuildFailed) {
		t.Fatalf("missing binary should not map to ErrBuildFailed: %v", err)
	}
}

func TestPublishAppendsDestinationArgument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Command = "fakepublish"
	cfg.Publish.Args = []string{"--out"}
	// The stub succeeds only when the final argument equals the destination.
	testsupport.StubBinary(t, testsupport.BaseDir(cfg), "fakepublish",
		"#!/bin/sh\n[ \"$1\" = \"--out\" ] || exit 1\n[ \"$2\" = \""+cfg.Paths.QueueDir+"\" ] || exit 1\nexit 0\n")

	cli := toolchain.NewCLI(cfg)
	if err := cli.Publish(context.Background(), cfg.Paths.QueueDir); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestPublishMapsNonZeroExitToErrPublishFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Publish.Command = "fakepublish"
	cfg.Publish.Args = nil
	testsupport.StubBinary(t, testsupport.BaseDir(cfg), "fakepublish", "#!/bin/sh\nexit 1\n")

	cli := toolchain.NewCLI(cfg)
	err := cli.Publish(context.Background(), cfg.Paths.QueueDir)
	if !errors.Is(err, toolchain.ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
}

func TestPublishRequiresDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cli := toolchain.NewCLI(cfg)
	if err := cli.Publish(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty destination")
	}
}
