// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/inspect"
	"github.com/wavetermdev/waveframe/pkg/scene"
	"github.com/wavetermdev/waveframe/pkg/wavebase"
	"github.com/wavetermdev/waveframe/pkg/wconfig"
	"golang.org/x/sync/errgroup"
)

var serveListen string
var serveOpen bool

var serveCmd = &cobra.Command{
	Use:   "serve [--listen host:port] [--open] scene.yaml",
	Short: "Replay a scene and serve the resulting frame tree over HTTP",
	Long: `Serve replays a scene, then keeps the recording toolkit alive behind the inspector
server.  Frames can be browsed at /api/frames, events fired with POST /api/frames/{id}/fire,
and new native calls streamed from /ws.  Settings changes are picked up while running.`,
	Args: cobra.ExactArgs(1),
	RunE: runServeCmd,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides inspect:listen)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the inspector in a browser")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	if err := wavebase.EnsureConfigDir(); err != nil {
		return err
	}
	lock, err := wavebase.LockServeFile(wavebase.GetServeLockPath())
	if err != nil {
		return err
	}
	defer lock.Close()

	settingsPath := settingsFileArg
	if settingsPath == "" {
		settingsPath = wavebase.GetSettingsPath()
	}
	settings, err := wconfig.ReadSettings(settingsPath)
	if err != nil {
		return err
	}
	sc, err := scene.ReadScene(args[0])
	if err != nil {
		return err
	}
	player := scene.MakePlayer(scene.PlayerOpts{
		Converter: makeConverter(settings.FramePixelScale),
		DebugLog:  settings.FrameLogCalls,
	})
	if err := player.Play(sc); err != nil {
		return err
	}
	for _, errStr := range player.Errors() {
		log.Printf("[serve] replay error: %s\n", errStr)
	}

	watcher, err := wconfig.MakeWatcher(settingsPath)
	if err != nil {
		return fmt.Errorf("cannot watch settings: %w", err)
	}
	defer watcher.Close()
	watcher.Subscribe(func(newSettings wconfig.SettingsType) {
		if newSettings.FramePixelScale > 0 && sc.PixelScale <= 0 {
			log.Printf("[serve] pixel scale now %v\n", newSettings.FramePixelScale)
			player.Adapter().SetPixelScale(newSettings.FramePixelScale)
		}
	})
	watcher.Start()

	listenAddr := serveListen
	if listenAddr == "" {
		listenAddr = settings.GetInspectListen()
	}
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", listenAddr, err)
	}
	url := fmt.Sprintf("http://%s/api/frames", listener.Addr())
	WriteStderr("inspector running at %s\n", url)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return inspect.MakeServer(player).Serve(gctx, listener)
	})
	if serveOpen || settings.InspectOpen {
		group.Go(func() error {
			if err := open.Run(url); err != nil {
				log.Printf("[serve] cannot open browser: %v\n", err)
			}
			return nil
		})
	}
	return group.Wait()
}
