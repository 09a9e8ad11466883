// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestSitemapCommand(t *testing.T) {
	out := runCmd(t, "sitemap", "--site-url", "https://expostudio.example")
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("output does not start with an XML header: %q", out[:min(len(out), 40)])
	}
	if !strings.Contains(out, "<loc>https://expostudio.example/contact</loc>") {
		t.Errorf("missing contact page:\n%s", out)
	}
}

func TestLLMsCommand(t *testing.T) {
	out := runCmd(t, "llms", "--site-url", "https://expostudio.example")
	if !strings.Contains(out, "## Services") {
		t.Errorf("missing services section:\n%s", out)
	}
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "sitemap", "llms"} {
		if !names[want] {
			t.Errorf("missing %q command", want)
		}
	}
}

func TestRootRunsServer(t *testing.T) {
	if rootCmd().RunE == nil {
		t.Error("bare expostudio should start the server")
	}
}
