// Cobra CLI wiring for govte-shell, grounded on
// regenrek-vibetunnel/benchmark/cmd/root.go's package-level rootCmd +
// init()-registered flags + Execute() shape, with the config load/merge
// step from regenrek-vibetunnel/linux/cmd/vibetunnel/main.go's run().

package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cliofy/govte/internal/config"
	"github.com/cliofy/govte/screen"
	"github.com/cliofy/govte/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	execPath   string
	cols       int
	rows       int
	dumpMode   bool
	vt100Mode  bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "govte-shell",
	Short: "A VT100/xterm terminal emulator core driving a real shell",
	Long: `govte-shell spawns a shell (or any command) under a pseudo-terminal,
feeds its output through the govte parser and screen state engine, and
redraws the resulting grid to the controlling terminal.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&execPath, "exec", "", "command to run instead of $SHELL")
	rootCmd.Flags().IntVar(&cols, "cols", 0, "initial column count (0: use config/terminal size)")
	rootCmd.Flags().IntVar(&rows, "rows", 0, "initial row count (0: use config/terminal size)")
	rootCmd.Flags().BoolVar(&dumpMode, "dump", false, "echo the raw byte stream to stderr")
	rootCmd.Flags().BoolVar(&vt100Mode, "vt100", false, "restrict rendering to strict VT100 (no 256-color/RGB SGR)")
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "configuration file path")
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "govte-shell: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig(configPath)
	cfg.MergeFlags(cmd.Flags())

	c, r := cfg.Screen.Cols, cfg.Screen.Rows
	if !cmd.Flags().Changed("cols") && !cmd.Flags().Changed("rows") && term.IsTerminal(int(os.Stdin.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
			c, r = w, h
		}
	}

	var flags terminal.Flags
	if cfg.Exec.Dump {
		flags |= terminal.DumpMode
	}
	if cfg.Exec.VT100 {
		flags |= terminal.VT100Mode
	}

	argv := cfg.Exec.Args
	if len(args) > 0 {
		argv = args
	}

	var term_ *terminal.Terminal
	var err error
	if cfg.Exec.Path != "" {
		term_, err = terminal.NewWithExec(c, r, flags, cfg.Exec.Path, argv)
	} else {
		term_, err = terminal.New(c, r, flags)
	}
	if err != nil {
		return fmt.Errorf("failed to start terminal: %w", err)
	}
	defer term_.Close()

	term_.SetColors(clampColorIndex(cfg.Colors.Foreground), clampColorIndex(cfg.Colors.Background))

	if cfg.Exec.Dump {
		term_.DumpSink = os.Stderr
	}

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		if oldState, err := term.MakeRaw(stdinFd); err == nil {
			defer func() { _ = term.Restore(stdinFd, oldState) }()
		}
	}

	// term_ is not safe for concurrent use (spec.md §5): the SIGWINCH
	// goroutine calls Resize and the stdin goroutine calls WriteInput while
	// the main loop below calls ReadPipe and reads the grid back out through
	// the renderer, so runMutex serialises those three call sites the way
	// spec.md §5 requires of the host,
	// grounded on regenrek-vibetunnel/linux/pkg/session/pty.go's
	// resizeMutex.
	var runMutex sync.Mutex

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if w, h, err := term.GetSize(stdinFd); err == nil {
				runMutex.Lock()
				_ = term_.Resize(w, h)
				runMutex.Unlock()
			}
		}
	}()

	renderer := NewRenderer(os.Stdout)

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				runMutex.Lock()
				werr := term_.WriteInput(buf[:n])
				runMutex.Unlock()
				if werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		runMutex.Lock()
		n, err := term_.ReadPipe()
		if n > 0 {
			if derr := renderer.Draw(term_); derr != nil {
				runMutex.Unlock()
				return derr
			}
		}
		runMutex.Unlock()
		if err != nil {
			break
		}
	}

	return nil
}

func clampColorIndex(v int) screen.ColorIndex {
	if v < -1 || v > 7 {
		return screen.DefaultColor
	}
	return screen.ColorIndex(v)
}
