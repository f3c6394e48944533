package component

import "github.com/lixenwraith/graphview/vmath"

// TransformComponent holds the world-space translation of a visual entity
type TransformComponent struct {
	Translation vmath.Vec3
}
