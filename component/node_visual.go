package component

import "github.com/lixenwraith/graphview/core"

// NodeVisualComponent binds a visual entity to its domain node
type NodeVisualComponent struct {
	NodeID  core.NodeID
	GraphID core.GraphID
	Label   string
}
