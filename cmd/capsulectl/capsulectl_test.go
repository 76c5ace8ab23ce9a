package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"
)

func valueOfLine(t *testing.T, output string, prefix string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	t.Fatalf("no %q line in output:\n%s", prefix, output)
	return ""
}

func TestGenesisStoreAndFetch(t *testing.T) {
	appDir, err := ioutil.TempDir("", "TestGenesisStoreAndFetch")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(appDir)
	baseArgs := []string{"--appdir", appDir, "--loglevel", "off"}

	subCmd, cfg, commandConfig, err := parseCommandLine(append(baseArgs, "genesis", "--store"))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	if subCmd != genesisSubCmd {
		t.Fatalf("parseCommandLine: expected %s, got %s", genesisSubCmd, subCmd)
	}
	out := &bytes.Buffer{}
	err = genesis(cfg, newFactory(cfg), commandConfig.(*genesisConfig), out)
	if err != nil {
		t.Fatalf("genesis: %s", err)
	}
	genesisOutput := out.String()
	if valueOfLine(t, genesisOutput, "Number:") != "0" || valueOfLine(t, genesisOutput, "Valid:") != "true" {
		t.Fatalf("genesis: unexpected output:\n%s", genesisOutput)
	}
	genesisHash := valueOfLine(t, genesisOutput, "Hash:")
	genesisHex := valueOfLine(t, genesisOutput, "Bytes:")

	_, cfg, commandConfig, err = parseCommandLine(append(baseArgs, "inspect", genesisHex))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out.Reset()
	err = inspect(newFactory(cfg), commandConfig.(*inspectConfig), out)
	if err != nil {
		t.Fatalf("inspect: %s", err)
	}
	if valueOfLine(t, out.String(), "Hash:") != genesisHash {
		t.Fatalf("inspect: unexpected output:\n%s", out)
	}

	_, cfg, commandConfig, err = parseCommandLine(append(baseArgs, "get", "--verbose", genesisHash))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out.Reset()
	err = get(cfg, newFactory(cfg), commandConfig.(*getConfig), out)
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if valueOfLine(t, out.String(), "Bytes:") != genesisHex {
		t.Fatalf("get: unexpected output:\n%s", out)
	}
	if !strings.Contains(out.String(), "DomainBlockHeader") {
		t.Fatalf("get --verbose: expected a dump of the block:\n%s", out)
	}

	_, cfg, _, err = parseCommandLine(append(baseArgs, "list"))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out.Reset()
	err = list(cfg, newFactory(cfg), out)
	if err != nil {
		t.Fatalf("list: %s", err)
	}
	if !strings.Contains(out.String(), genesisHash) || !strings.Contains(out.String(), "1 blocks") {
		t.Fatalf("list: unexpected output:\n%s", out)
	}
}

func TestBuildAndPut(t *testing.T) {
	appDir, err := ioutil.TempDir("", "TestBuildAndPut")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(appDir)
	baseArgs := []string{"--appdir", appDir, "--loglevel", "off", "--checkpow"}

	parent := strings.Repeat("11", 32)
	_, cfg, commandConfig, err := parseCommandLine(append(baseArgs, "build", "--parent", parent,
		"--number", "3", "--difficulty", "1000", "--timestamp", "1", "--solve"))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out := &bytes.Buffer{}
	err = build(cfg, newFactory(cfg), commandConfig.(*buildConfig), out)
	if err != nil {
		t.Fatalf("build: %s", err)
	}
	if valueOfLine(t, out.String(), "Parent:") != parent || valueOfLine(t, out.String(), "Valid:") != "true" {
		t.Fatalf("build: unexpected output:\n%s", out)
	}
	blockHash := valueOfLine(t, out.String(), "Hash:")

	_, cfg, commandConfig, err = parseCommandLine(append(baseArgs, "put", valueOfLine(t, out.String(), "Bytes:")))
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out.Reset()
	err = put(cfg, newFactory(cfg), commandConfig.(*putConfig), os.Stdin, out)
	if err != nil {
		t.Fatalf("put: %s", err)
	}
	if strings.TrimSpace(out.String()) != blockHash {
		t.Fatalf("put: expected %s, got %s", blockHash, out)
	}
}

func TestInspectCorruptBlock(t *testing.T) {
	_, cfg, commandConfig, err := parseCommandLine([]string{"--loglevel", "off", "inspect", "deadbeef"})
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	out := &bytes.Buffer{}
	err = inspect(newFactory(cfg), commandConfig.(*inspectConfig), out)
	if err != nil {
		t.Fatalf("inspect: %s", err)
	}
	if valueOfLine(t, out.String(), "Bytes:") != "deadbeef" {
		t.Fatalf("inspect: unexpected output:\n%s", out)
	}
	if !strings.Contains(out.String(), "Corrupt:") {
		t.Fatalf("inspect: expected the block to be reported as corrupt:\n%s", out)
	}

	_, _, commandConfig, err = parseCommandLine([]string{"--loglevel", "off", "inspect", "xyz"})
	if err != nil {
		t.Fatalf("parseCommandLine: %s", err)
	}
	err = inspect(newFactory(cfg), commandConfig.(*inspectConfig), out)
	if err == nil {
		t.Fatalf("inspect: expected an error for invalid hex")
	}
}
