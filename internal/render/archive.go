package render

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sketch-constraints/internal/render/repository"
)

// ============================================================
// Archive
// ============================================================

// Archive turns a recorded timeline into SVG frames and persists them: frame
// bodies and metadata go to the repository, and a copy of every frame is
// written to disk when files is set.
type Archive struct {
	repo     *repository.Repository
	files    *FileStorage
	renderer *Renderer
}

func NewArchive(repo *repository.Repository, files *FileStorage) *Archive {
	return &Archive{
		repo:     repo,
		files:    files,
		renderer: NewRenderer(),
	}
}

// Save renders every frame of rec and stores the result under a new id.
func (a *Archive) Save(ctx context.Context, sceneName, source string, rec *Recorder) (*repository.Render, error) {
	frames := rec.Frames()
	svgs := RenderFrames(a.renderer, frames)

	out := repository.Render{
		ID:         uuid.NewString(),
		Scene:      sceneName,
		Source:     source,
		FrameCount: len(frames),
		DurationMS: rec.Clock().Milliseconds(),
	}

	if a.files != nil {
		if _, err := a.files.WriteFrames(out.ID, svgs); err != nil {
			return nil, fmt.Errorf("write artifacts: %w", err)
		}
		out.Artifacts = a.files.RenderDir(out.ID)
	}

	rows := make([]repository.Frame, 0, len(frames))
	for i, f := range frames {
		rows = append(rows, repository.Frame{
			RenderID: out.ID,
			Index:    f.Index,
			AtMS:     f.At.Milliseconds(),
			Label:    f.Label,
			SVG:      svgs[i],
		})
	}

	if err := a.repo.SaveRender(ctx, out, rows); err != nil {
		return nil, fmt.Errorf("save render: %w", err)
	}
	return &out, nil
}
