package bridge

import (
	"encoding/json"
	"fmt"
)

// GlobalName is the window property the UI reads the bridge from
const GlobalName = "electronAPI"

// Bridge is the read-only surface bound into the webview. It exposes the host
// platform identifier and nothing else.
type Bridge struct {
	platform string
}

// New creates a bridge reporting platform (e.g. "win32", "darwin", "linux")
func New(platform string) *Bridge {
	return &Bridge{platform: platform}
}

// Platform returns the host platform identifier
func (b *Bridge) Platform() string {
	return b.platform
}

// Script returns JavaScript that installs a frozen, non-writable
// window.electronAPI = {platform} before any preload code runs.
func (b *Bridge) Script() string {
	value, _ := json.Marshal(struct {
		Platform string `json:"platform"`
	}{Platform: b.platform})

	return fmt.Sprintf(
		"if(!Object.prototype.hasOwnProperty.call(window,%q)){Object.defineProperty(window,%q,{value:Object.freeze(%s),writable:false,configurable:false,enumerable:true});}",
		GlobalName, GlobalName, value)
}
