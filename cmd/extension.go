package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/clip/config"
)

// EnvConfig passes the -config flag to extensions.
const EnvConfig = "CLIP_CONFIG"

// RunExtension attempts to find and execute an external clip-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "clip-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags as CLIP_* variables. Flags left to
// their default are not passed, so that the extension reads the same
// configuration as clip.
func extensionEnv() []string {
	env := []string{EnvConfig + "=" + *configFile}
	if *currency != "" {
		env = append(env, config.EnvCurrency+"="+*currency)
	}
	if *average != "" {
		env = append(env, config.EnvAverage+"="+*average)
	}
	if *Verbose {
		env = append(env, config.EnvLogLevel+"=debug")
	}
	return env
}
