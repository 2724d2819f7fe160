package models

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================
// Entities
// ============================================================

// Entity describes one sketch entity. Which fields apply depends on Kind:
// point uses Position; line uses Start/End; circle uses Center/Radius; arc
// uses Center/Radius/StartAngle/Sweep (radians). Responses fill every handle.
type Entity struct {
	ID         string   `json:"id,omitempty"`
	Kind       string   `json:"kind" validate:"required,oneof=point line circle arc"`
	Position   *Point   `json:"position,omitempty" validate:"required_if=Kind point"`
	Start      *Point   `json:"start,omitempty" validate:"required_if=Kind line"`
	End        *Point   `json:"end,omitempty" validate:"required_if=Kind line"`
	Center     *Point   `json:"center,omitempty" validate:"required_if=Kind circle,required_if=Kind arc"`
	Radius     *float64 `json:"radius,omitempty" validate:"required_if=Kind circle,required_if=Kind arc"`
	StartAngle float64  `json:"start_angle,omitempty"`
	Sweep      *float64 `json:"sweep,omitempty" validate:"required_if=Kind arc"`
}

// Selection references an entity by id and optionally one of its handles.
type Selection struct {
	Entity string `json:"entity" validate:"required"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=start end middle"`
}

// Constraint names a resolver and its references in pick order.
type Constraint struct {
	Type string      `json:"type" validate:"required,oneof=coincident tangent tangent_rotate equal horizontal vertical parallel perpendicular concentric midpoint"`
	Refs []Selection `json:"refs" validate:"required,min=1,max=3,dive"`
	Side string      `json:"side,omitempty" validate:"omitempty,oneof=left right"`
}

// ============================================================
// Requests
// ============================================================

type ResolveRequest struct {
	Entities   []Entity   `json:"entities" validate:"required,min=1,dive"`
	Constraint Constraint `json:"constraint"`
}

type CreateSceneRequest struct {
	Name     string   `json:"name"`
	Entities []Entity `json:"entities" validate:"required,min=1,dive"`
}

type AddEntitiesRequest struct {
	Entities []Entity `json:"entities" validate:"required,min=1,dive"`
}

// ============================================================
// Responses
// ============================================================

type Move struct {
	Type     string   `json:"type"`
	Position *Point   `json:"position,omitempty"`
	Offset   *Point   `json:"offset,omitempty"`
	Angle    *float64 `json:"angle,omitempty"`
	About    *Point   `json:"about,omitempty"`
	Start    *Point   `json:"start,omitempty"`
	End      *Point   `json:"end,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
}

type Result struct {
	Constraint string  `json:"constraint"`
	Subject    string  `json:"subject"`
	Role       string  `json:"role,omitempty"`
	Move       Move    `json:"move"`
	PathArc    float64 `json:"path_arc,omitempty"`
	Target     Entity  `json:"target"`
}

type Scene struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Entities []Entity `json:"entities"`
	Frames   int      `json:"frames"`
	ClockMS  int64    `json:"clock_ms"`

	// Aliases maps client-supplied entity ids to scene ids.
	Aliases map[string]string `json:"aliases,omitempty"`
}

type CatalogEntry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type RenderDetail struct {
	RenderSummary
	Frames []FrameSummary `json:"frames"`
}

type FrameSummary struct {
	Index int    `json:"index"`
	AtMS  int64  `json:"at_ms"`
	Label string `json:"label"`
}

type RenderSummary struct {
	ID         string `json:"id"`
	Scene      string `json:"scene"`
	Source     string `json:"source"`
	FrameCount int    `json:"frame_count"`
	DurationMS int64  `json:"duration_ms"`
	Artifacts  string `json:"artifacts,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
