package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/application/game"
	"github.com/younwookim/gamert/internal/application/replay"
	"github.com/younwookim/gamert/internal/application/scene/loading"
	"github.com/younwookim/gamert/internal/application/scene/scroller"
	"github.com/younwookim/gamert/internal/application/system"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/audio"
	"github.com/younwookim/gamert/internal/infrastructure/config"
	"github.com/younwookim/gamert/internal/infrastructure/netplay"
)

// loadConfig reads game.json and manifest.json from dir, or from the embedded
// configs when dir is empty.
func loadConfig(dir string) (*config.Config, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys).LoadAll()
}

// assetSource returns the filesystem relative asset paths resolve against.
func assetSource(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(assetFS, "assets")
}

// openPeer hosts a session on host or joins the one at join. Both empty
// means playing alone.
func openPeer(host, join string, cfg config.NetplayConfig) (netplay.Peer, error) {
	switch {
	case host != "" && join != "":
		return nil, fmt.Errorf("-host and -join are mutually exclusive")
	case host != "":
		srv, err := netplay.Listen(host)
		if err != nil {
			return nil, err
		}
		return netplay.Host(srv), nil
	case join != "":
		retry := time.Duration(cfg.RetrySeconds * float64(time.Second))
		cli, err := netplay.Dial(join, netplay.WithRetryInterval(retry))
		if err != nil {
			return nil, err
		}
		return cli, nil
	default:
		return nil, nil
	}
}

// openAudio initializes the speaker, falling back to silence when no device
// is available.
func openAudio() (asset.Output, func()) {
	spk := audio.NewSpeaker()
	if err := spk.Initialize(); err != nil {
		log.Printf("Audio disabled: %v", err)
		return &audio.Silent{}, func() {}
	}
	return spk, spk.Close
}

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Directory with game.json and manifest.json (default: embedded)")
	assetDir := flag.String("assets", "", "Directory relative asset paths are read from (default: embedded)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record journal.json)")
	replayFlag := flag.String("replay", "", "Replay input from a recorded journal")
	hostFlag := flag.String("host", "", "Host a netplay session on addr (e.g., -host :7777)")
	joinFlag := flag.String("join", "", "Join the netplay session at addr")
	flag.Parse()

	err := run(options{
		configDir: *configDir,
		assetDir:  *assetDir,
		record:    *recordFlag,
		replay:    *replayFlag,
		host:      *hostFlag,
		join:      *joinFlag,
	})
	if err != nil {
		log.Fatal(err)
	}
}

// options are the command line flags.
type options struct {
	configDir string
	assetDir  string
	record    string
	replay    string
	host      string
	join      string
}

// newInput returns the replayer for opts.replay, or live input.
func newInput(opts options, display config.DisplayConfig) (game.InputSource, error) {
	if opts.replay == "" {
		return system.NewInputSystem(display.ScreenWidth, display.ScreenHeight), nil
	}
	journal, err := replay.LoadJournal(opts.replay)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay: %w", err)
	}
	replayer, err := replay.NewReplayer(*journal)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay: %w", err)
	}
	log.Printf("Replaying %s (%d frames)", opts.replay, replayer.TotalFrames())
	return replayer, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	assets, err := assetSource(opts.assetDir)
	if err != nil {
		return fmt.Errorf("failed to open assets: %w", err)
	}
	display := cfg.Game.Display

	src, err := newInput(opts, display)
	if err != nil {
		return err
	}

	peer, err := openPeer(opts.host, opts.join, cfg.Game.Netplay)
	if err != nil {
		return fmt.Errorf("failed to start netplay: %w", err)
	}
	if peer != nil {
		defer func() { _ = peer.Close() }()
	}

	out, closeAudio := openAudio()
	defer closeAudio()

	gameOpts := []game.Option{game.WithAudio(out), game.WithInput(src)}
	var recorder *replay.Recorder
	if opts.record != "" {
		recorder = replay.NewRecorder()
		gameOpts = append(gameOpts, game.WithRecorder(recorder))
		log.Printf("Recording enabled: %s", opts.record)
	}

	registry := asset.NewRegistry(asset.NewSourceFetcher(assets))
	g := game.New(registry, display.ScreenWidth, display.ScreenHeight, gameOpts...)

	first := loading.New(cfg.Manifest, scroller.New(cfg.Game.Scroller, peer))
	if err := g.SetScene(first); err != nil {
		return err
	}

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	// Run game
	runErr := ebiten.RunGame(g)

	registry.StopAllSounds()
	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(opts.record); err != nil {
			log.Printf("Failed to save recording: %v", err)
		} else {
			log.Printf("Recording saved: %s (%d frames, %d events)", opts.record, recorder.FrameCount(), recorder.EventCount())
		}
	}
	return runErr
}
