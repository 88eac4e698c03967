package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/tape"
)

func runReplay(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: abacus replay [flags] [tape ...]\n\n"+
			"Replay key tapes on a fresh calculator. A tape whose transcript has been\n"+
			"recorded (next to it as <name>.golden, or given with --expect) is compared\n"+
			"with it. Without arguments every tape in .abacus/tapes is replayed.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	var common commonFlags
	common.register(fs)
	expect := fs.String("expect", "", "recorded transcript to compare a single tape with")
	update := fs.Bool("update", false, "record the transcripts instead of comparing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadDotEnv(common.envFile); err != nil {
		return err
	}

	cfg, d, err := common.loadConfig()
	if err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = d.Tapes()
	}
	if len(paths) == 0 {
		return errors.New("replay: no tapes")
	}
	if *expect != "" && len(paths) != 1 {
		return errors.New("replay: --expect needs exactly one tape")
	}

	failed := 0
	for _, path := range paths {
		golden := *expect
		if golden == "" {
			golden = goldenPath(path)
		}

		ok, err := replayOne(stdout, path, golden, *update, cfg.Formatter())
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("replay: %d of %d tapes differ", failed, len(paths))
	}

	return nil
}

// replayOne plays the tape at path. It records the transcript at golden when
// update is set, compares with golden when that file exists, and otherwise
// prints the transcript. It reports whether the tape matched.
func replayOne(w io.Writer, path, golden string, update bool, f calculator.Formatter) (bool, error) {
	t, err := tape.ParseFile(path)
	if err != nil {
		return false, err
	}

	got := tape.Transcript(tape.Run(t, f))

	if update {
		if err := os.WriteFile(golden, []byte(got), 0o600); err != nil {
			return false, fmt.Errorf("replay: write %s: %w", golden, err)
		}
		fmt.Fprintf(w, "recorded %s\n", golden)
		return true, nil
	}

	want, err := os.ReadFile(golden) //nolint:gosec // golden path is caller-provided
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "# %s\n%s", t.Name, got)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("replay: read %s: %w", golden, err)
	}

	diff, err := tape.Diff(string(want), got, t.Name)
	if err != nil {
		return false, err
	}
	if diff != "" {
		fmt.Fprintf(w, "FAIL %s\n%s", t.Name, diff)
		return false, nil
	}

	fmt.Fprintf(w, "ok   %s\n", t.Name)

	return true, nil
}

func goldenPath(tapePath string) string {
	return strings.TrimSuffix(tapePath, ".tape") + ".golden"
}
