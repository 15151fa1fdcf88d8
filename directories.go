package main

import (
	"flag"
	"fmt"
	"github.com/peterbourgon/ff/v3"
	"os"
	"path/filepath"
)

const (
	DefaultDirectoryPermissions = 0700
	EnvironmentPrefix           = "SWITCHYARD"
)

type Directories struct {
	Config string
	Data   string
	Log    string
}

type Arguments struct {
	Directories Directories

	// IssueToken names an operator to sign a bearer token for, with every jwt authenticated
	// HTTP interface. The controller exits after printing the tokens.
	IssueToken string
}

// parseArguments reads flags, falling back to SWITCHYARD_ prefixed environment variables,
// and makes sure every directory exists.
func parseArguments(args []string) (Arguments, error) {
	fs := flag.NewFlagSet("controller", flag.ContinueOnError)

	var parsed Arguments
	for _, d := range []struct {
		name  string
		usage string
		dest  *string
	}{
		{"config", "location of configuration files", &parsed.Directories.Config},
		{"data", "location of data files", &parsed.Directories.Data},
		{"log", "location of log files", &parsed.Directories.Log},
	} {
		def, err := defaultDirectory(d.name)
		if err != nil {
			return parsed, fmt.Errorf("failed to construct default %s directory: %w", d.name, err)
		}

		fs.StringVar(d.dest, d.name+"-directory", def, d.usage)
	}

	fs.StringVar(&parsed.IssueToken, "issue-token", "", "print a bearer token for this operator and exit")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvironmentPrefix)); err != nil {
		return parsed, fmt.Errorf("failed to parse environment/command line arguments: %w", err)
	}

	for _, dir := range []string{parsed.Directories.Config, parsed.Directories.Data, parsed.Directories.Log} {
		if err := os.MkdirAll(dir, DefaultDirectoryPermissions); err != nil {
			return parsed, fmt.Errorf("failed to initialise directory %s: %w", dir, err)
		}
	}

	return parsed, nil
}

func defaultDirectory(t string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, "switchyard", "controller", t), nil
}
