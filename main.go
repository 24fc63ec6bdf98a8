// Command bootfb boots the display check against emulated firmware, either
// in a desktop window or headless.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"bootfb/app"
	"bootfb/hal"
	"bootfb/internal/errors"
	"bootfb/internal/logx"
	"bootfb/kernel"
)

var rootCmd = &cobra.Command{
	Use:          filepath.Base(os.Args[0]),
	Short:        "boot-time framebuffer check on emulated UEFI firmware",
	Long:         "bootfb locates the graphics output device, selects 1024x768, clears the screen and draws a test pattern.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

var (
	headless     hal.HeadlessConfig
	snapshotFlag string
	modesFlag    string
	vendorFlag   string
	debugFlag    bool
)

var errFatal = errors.New("boot halted")

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&headless.Enabled, `headless`, false, `run without a window`)
	f.IntVar(&headless.Hz, `hz`, 60, `tick rate in headless mode`)
	f.Uint64Var(&headless.Ticks, `ticks`, 0, `stop after N ticks in headless mode (0 = run forever)`)
	f.StringVar(&snapshotFlag, `snapshot`, ``, `write the final screen to this BMP file`)
	f.StringVar(&modesFlag, `modes`, ``, `firmware mode list, e.g. 1024x768:rgb,800x600/832:bgr`)
	f.StringVar(&vendorFlag, `vendor`, ``, `firmware vendor string`)
	f.BoolVarP(&debugFlag, `debug`, `d`, false, `debug logging and error stacks`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if stack := errors.Stack(err); debugFlag && len(stack) > 0 {
			fmt.Fprintln(os.Stderr, string(stack))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	hcfg := hal.DefaultHostConfig()
	modes, err := parseModes(modesFlag)
	if err != nil {
		return err
	}
	if len(modes) > 0 {
		hcfg.Modes = modes
	}
	if vendorFlag != "" {
		hcfg.Vendor = vendorFlag
	}

	host, err := hal.NewHost(hcfg)
	if err != nil {
		return errors.Wrap(err)
	}
	defer host.Close()

	level := logx.LevelFromEnv("BOOTFB_DEBUG", slog.LevelInfo)
	if debugFlag {
		level = slog.LevelDebug
	}
	cfg := app.DefaultConfig()
	cfg.Logger = logx.New(host.ConsoleOut(), level)

	app.InstallFatalHandler(host)
	// Halting returns to the caller so boot always finishes and the host is
	// never closed under it. The red screen stays up until exit.
	kernel.SetHaltFunc(func() {})
	boot := func() {
		if err := app.Run(host, cfg); err != nil {
			kernel.Fatal(err)
		}
	}

	if !headless.Enabled {
		err := runBeside(boot, func() error { return hal.RunWindow(host, nil) })
		if err != nil {
			return errors.Wrap(err)
		}
		return writeSnapshot(host)
	}

	boot()
	if err := writeSnapshot(host); err != nil {
		return err
	}
	if kernel.InFatalMode() {
		return errFatal
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := hal.RunHeadless(ctx, nil, headless); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err)
	}
	return nil
}

// runBeside runs boot in the background while front holds the main
// goroutine, and returns only once both are done.
func runBeside(boot func(), front func() error) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		boot()
	}()
	err := front()
	<-done
	return err
}

func writeSnapshot(host *hal.Host) error {
	if snapshotFlag == "" {
		return nil
	}
	f, err := os.Create(snapshotFlag)
	if err != nil {
		return errors.Wrap(err)
	}
	if err := host.WriteBMP(f); err != nil {
		_ = f.Close()
		return errors.WrapPrefix(err, "snapshot")
	}
	return errors.Wrap(f.Close())
}
