package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage lays out render artifacts under a root directory:
// <root>/<renderID>/frame_NNNN.svg.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) RenderDir(renderID string) string {
	return filepath.Join(s.root, renderID)
}

func (s *FileStorage) FramePath(renderID string, index int) string {
	return filepath.Join(s.RenderDir(renderID), fmt.Sprintf("frame_%04d.svg", index))
}

func (s *FileStorage) EnsureDir(renderID string) error {
	path := s.RenderDir(renderID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir render dir: %w", err)
	}
	return nil
}

// WriteFrames writes one SVG file per frame and returns their paths.
func (s *FileStorage) WriteFrames(renderID string, svgs []string) ([]string, error) {
	if err := s.EnsureDir(renderID); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(svgs))
	for i, svg := range svgs {
		path := s.FramePath(renderID, i)
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return nil, fmt.Errorf("write frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ============================================================
// Frames to SVG
// ============================================================

// RenderFrames draws every frame with one shared viewport so the sequence
// does not jump around.
func RenderFrames(r *Renderer, frames []Frame) []string {
	if r.Bounds.empty() {
		var all []Shape
		for _, f := range frames {
			all = append(all, f.Shapes...)
		}
		fixed := *r
		fixed.Bounds = r.fit(all)
		r = &fixed
	}

	out := make([]string, 0, len(frames))
	for _, f := range frames {
		out = append(out, r.Render(f.Shapes))
	}
	return out
}
