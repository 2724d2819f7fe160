package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"sketch-constraints/internal/common/config"
	"sketch-constraints/internal/common/logging"
	"sketch-constraints/internal/render"
	"sketch-constraints/internal/render/repository"
	"sketch-constraints/internal/scene"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"go.uber.org/zap"
)

// ============================================================
// Render CLI
// ============================================================

// render plays one built-in scene and writes its keyframes as SVG files.
//
//	render -list
//	render -scene tangent_circle -out out/ [-db data/db/renders.db]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		name = flag.String("scene", "", "catalog scene to render")
		out  = flag.String("out", cfg.ArtifactsDir, "directory for frame_NNNN.svg files")
		db   = flag.String("db", cfg.DBPath, "render store; empty skips recording")
		list = flag.Bool("list", false, "print the catalog and exit")
	)
	flag.Parse()

	if *list {
		printCatalog()
		return
	}
	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger, *name, *out, *db); err != nil {
		logger.Fatal("render failed", zap.String("scene", *name), zap.Error(err))
	}
}

func run(logger *zap.Logger, name, out, dbPath string) error {
	entry, err := scene.Lookup(name)
	if err != nil {
		return err
	}

	rec := render.NewRecorder()
	if err := scene.Play(entry, scene.New(entry.Name, rec)); err != nil {
		return err
	}

	files := render.NewFileStorage(out)

	if dbPath == "" {
		paths, err := files.WriteFrames(entry.Name, render.RenderFrames(render.NewRenderer(), rec.Frames()))
		if err != nil {
			return err
		}
		logger.Info("frames written", zap.String("dir", files.RenderDir(entry.Name)), zap.Int("frames", len(paths)))
		return nil
	}

	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := repository.New(db)
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	saved, err := render.NewArchive(repo, files).Save(ctx, entry.Name, "cli", rec)
	if err != nil {
		return err
	}

	logger.Info("render stored",
		zap.String("render", saved.ID),
		zap.String("dir", saved.Artifacts),
		zap.Int("frames", saved.FrameCount),
		zap.Int64("duration_ms", saved.DurationMS),
	)
	return nil
}

func printCatalog() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, e := range scene.Catalog() {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Title)
	}
}
