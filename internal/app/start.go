package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/davidchappy/pathman/internal/config"
	"github.com/davidchappy/pathman/internal/game"
	"github.com/davidchappy/pathman/internal/spectate"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

const windowTitle = "Pathman"

// LoadMaze returns the blueprint at path, or the built-in maze when path
// is empty.
func LoadMaze(path string) (tm.Blueprint, error) {
	if path == "" {
		return tm.DefaultBlueprint(), nil
	}
	bp, err := tm.LoadBlueprint(path)
	if err != nil {
		return tm.Blueprint{}, fmt.Errorf("load maze: %w", err)
	}
	if err := tm.Validate(bp); err != nil {
		return tm.Blueprint{}, fmt.Errorf("maze %s: %w", path, err)
	}
	return bp, nil
}

// Start builds a session from cfg and runs it in an ebiten window until
// the player quits.
func Start(cfg *config.Config, log *slog.Logger) error {
	bp, err := LoadMaze(cfg.MazePath)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id := uuid.NewString()
	log = log.With("session", id)

	settings := game.DefaultSettings()
	g, err := game.New(settings, bp,
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []Option{WithID(id), WithContext(ctx), WithLogger(log), WithDebug(cfg.Debug)}
	if cfg.SpectateAddr != "" {
		srv := spectate.NewServer(id, log)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.SpectateAddr); err != nil {
				log.Error("spectate server failed", "error", err)
			}
		}()
		opts = append(opts, WithPublisher(srv))
	}

	s := New(g, opts...)
	w, h := tm.Dimensions(bp, settings.CellSize)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowSize(w+2*statsWidth, h+3*settings.CellSize)

	log.Info("starting", "maze", bp.Name, "seed", seed, "spectate", cfg.SpectateAddr)
	s.Run()
	if err := ebiten.RunGame(s); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
