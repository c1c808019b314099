package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	serial "github.com/luhtfiimanal/go-serial-term"
	"github.com/luhtfiimanal/go-serial-term/internal/cli"
	"github.com/luhtfiimanal/go-serial-term/internal/config"
	"github.com/luhtfiimanal/go-serial-term/internal/logging"
	"github.com/luhtfiimanal/go-serial-term/terminal"
)

var rootCmd = &cobra.Command{
	Use:   "serialterm <port|list>",
	Short: "serialterm - lightweight serial terminal",
	Long: `serialterm shows what a serial device sends and, in write mode, sends the
lines you type to it.

Arguments:
  COM[N] | /dev/...   e.g. COM3 or /dev/ttyUSB0
  list                Show available serial ports`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.Int("baud-rate", terminal.DefaultBaudRate, "Baud rate")
	f.Bool("write-mode", false, "Enable read & write mode")
	f.Bool("show-direction", false, "Show << / >> for RX / TX")
	f.String("encoding", terminal.DefaultEncoding, "Text encoding: ascii, utf-8, latin1, windows-1252, cp437")
	f.String("line-ending", "lf", "Terminator appended to sent lines: lf, crlf, cr")
	f.String("driver", serial.DefaultDriver, "Serial backend: native (Linux) or portable")
	f.String("color", "auto", "Colour direction markers: auto, always, never")
	f.Duration("tick", terminal.DefaultTick, "Polling interval")
	f.Duration("read-timeout", terminal.DefaultReadTimeout, "Read timeout for a pending byte")
	f.String("log-level", "warn", "Diagnostics level on stderr: debug, info, warn, error")
	f.String("config", "", "YAML file with default settings")
}

func runRoot(cmd *cobra.Command, args []string) error {
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var target string
	if len(args) > 0 {
		target = args[0]
	} else if file != nil {
		target = file.Port
	}

	list, err := cli.ParseTarget(target)
	if err != nil {
		out := cmd.ErrOrStderr()
		if target == "" {
			out = cmd.OutOrStdout()
		}
		fmt.Fprintf(out, "%v\n\n", err)
		cmd.Help()
		return err
	}
	if list {
		return cli.ListPorts(cmd.OutOrStdout())
	}

	opts, levelName := sessionOptions(cmd, target)
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.RunSession(ctx, opts, cmd.OutOrStdout(), cmd.InOrStdin(), logging.New(level))
}

// loadConfig applies the --config file to every flag not given explicitly.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil, nil
	}
	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for name, value := range file.Values() {
		if cmd.Flags().Changed(name) {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return nil, fmt.Errorf("config %s: %w", name, err)
		}
	}
	return file, nil
}

func sessionOptions(cmd *cobra.Command, port string) (cli.Options, string) {
	f := cmd.Flags()
	baud, _ := f.GetInt("baud-rate")
	writeMode, _ := f.GetBool("write-mode")
	showDirection, _ := f.GetBool("show-direction")
	encoding, _ := f.GetString("encoding")
	lineEnding, _ := f.GetString("line-ending")
	driver, _ := f.GetString("driver")
	color, _ := f.GetString("color")
	tick, _ := f.GetDuration("tick")
	readTimeout, _ := f.GetDuration("read-timeout")
	level, _ := f.GetString("log-level")

	return cli.Options{
		Port:          port,
		BaudRate:      baud,
		WriteMode:     writeMode,
		ShowDirection: showDirection,
		Encoding:      encoding,
		LineEnding:    lineEnding,
		Driver:        driver,
		Color:         color,
		Tick:          tick,
		ReadTimeout:   readTimeout,
	}, level
}
