package model

import (
	"path"
	"strings"
)

// AssetRef is an opaque handle to a project asset. The core only stores and
// compares it.
type AssetRef string

func (a AssetRef) IsZero() bool { return strings.TrimSpace(string(a)) == "" }

// DisplayName is the last path element without its extension, e.g.
// "Assets/Scenes/Main.unity" -> "Main".
func (a AssetRef) DisplayName() string {
	p := strings.TrimSpace(strings.ReplaceAll(string(a), "\\", "/"))
	if p == "" {
		return ""
	}
	base := path.Base(p)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// AssetPredicate decides whether an asset can carry a group. It is supplied by
// the host.
type AssetPredicate func(AssetRef) bool

// AnyAsset accepts every non-empty asset.
func AnyAsset(a AssetRef) bool { return !a.IsZero() }

// NewGroupForAsset creates a group titled after asset, or returns nil when
// accept rejects it.
func NewGroupForAsset(asset AssetRef, tag Ref, accept AssetPredicate) *Group {
	if accept == nil {
		accept = AnyAsset
	}
	if !accept(asset) {
		return nil
	}
	title := asset.DisplayName()
	if title == "" {
		title = DefaultGroupTitle
	}
	g := NewGroup(title, tag)
	g.Asset = asset
	return g
}
