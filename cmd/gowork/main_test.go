package main

import (
	"testing"
)

func TestParserRecognizesCommands(t *testing.T) {
	for _, command := range []string{"build", "binaries", "test", "lint", "fmt", "clean", "env", "watch", "version"} {
		t.Run(command, func(t *testing.T) {
			parser, err := newParser()
			if err != nil {
				t.Fatalf("newParser() failed: %v", err)
			}
			kctx, err := parser.Parse([]string{command})
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", command, err)
			}
			if kctx.Command() != command {
				t.Errorf("expected command %q, got %q", command, kctx.Command())
			}
		})
	}
}

func TestParserRejectsUnknownAction(t *testing.T) {
	parser, err := newParser()
	if err != nil {
		t.Fatalf("newParser() failed: %v", err)
	}
	if _, err := parser.Parse([]string{"deploy"}); err == nil {
		t.Error("expected parse error for unknown action")
	}
}

func TestParserAcceptsGlobalFlags(t *testing.T) {
	parser, err := newParser()
	if err != nil {
		t.Fatalf("newParser() failed: %v", err)
	}
	kctx, err := parser.Parse([]string{"--verbose", "--debug", "build"})
	if err != nil {
		t.Fatalf("Parse with flags failed: %v", err)
	}
	if kctx.Command() != "build" {
		t.Errorf("expected build command, got %q", kctx.Command())
	}
	if !CLI.Verbose || !CLI.Debug {
		t.Error("expected both global flags set")
	}
}

func TestDirectToolDetection(t *testing.T) {
	// Outside any project, detection falls back to the fixed default set.
	// "version" must never be treated as a tool even though `go version` is
	// a valid passthrough: only the FIRST token selects passthrough mode.
	cases := map[string]bool{
		"go":      true,
		"gofmt":   true,
		"golint":  true,
		"glide":   true,
		"build":   false,
		"version": false,
		"make":    false,
	}
	for name, want := range cases {
		if got := isDirectTool(name); got != want {
			t.Errorf("isDirectTool(%q) = %v, want %v", name, got, want)
		}
	}
}
