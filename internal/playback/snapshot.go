package playback

import "github.com/SeamusWaldron/cubestate"

// Snapshot is the read-only view of a playback position handed to
// renderers.
type Snapshot struct {
	Position    int                  `json:"position"`
	Total       int                  `json:"total"`
	Progress    float64              `json:"progress"`
	Move        string               `json:"move,omitempty"`
	Description string               `json:"description,omitempty"`
	Completed   bool                 `json:"completed"`
	State       string               `json:"state"` // solver string
	Faces       map[string][9]string `json:"faces"` // face letter -> color names
	Phase       string               `json:"phase"` // layer-by-layer stage
	Playing     bool                 `json:"playing"`
	Speed       string               `json:"speed,omitempty"`
}

func faceColors(s *cubestate.State) map[string][9]string {
	out := make(map[string][9]string, len(cubestate.Faces))
	for _, f := range cubestate.Faces {
		stickers, _ := s.Face(f)
		var names [9]string
		for i, c := range stickers {
			names[i] = c.String()
		}
		out[f.String()] = names
	}
	return out
}
