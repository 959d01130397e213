package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"login", "logout", "whoami", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	runVersion(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "portside ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootRunsDashboard(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("root command should launch the dashboard")
	}
	if rootCmd.Use != "portside" {
		t.Errorf("Use = %q", rootCmd.Use)
	}
}
