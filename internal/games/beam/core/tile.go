package core

// Tile is a single tile code. Codes are the on-disk level format, so the
// numbering has gaps and must never change.
type Tile uint8

const (
	Empty                Tile = 0
	WallTerminatorTop    Tile = 1
	WallHorizontal       Tile = 3
	WallVertical         Tile = 4
	WallTurnTopLeft      Tile = 5
	WallTurnTopRight     Tile = 6
	PassHorizontal       Tile = 7
	PassVertical         Tile = 8
	RayVertical          Tile = 9
	RayHorizontal        Tile = 10
	RayCross             Tile = 11
	WallTerminatorLeft   Tile = 14
	WallBlocker          Tile = 15
	WallTerminatorRight  Tile = 16
	WallTurnBottomLeft   Tile = 19
	WallTurnBottomRight  Tile = 20
	RayTeleport1         Tile = 21
	RaySourceUp          Tile = 22
	RaySourceRight       Tile = 23
	ImmovableTopLeft     Tile = 24
	ImmovableTopRight    Tile = 25
	MovableTopLeft       Tile = 26
	MovableTopRight      Tile = 27
	WallTerminatorBottom Tile = 29
	WallTLeft            Tile = 33
	WallTRight           Tile = 34
	RayTeleport2         Tile = 35
	RaySourceDown        Tile = 36
	RaySourceLeft        Tile = 37
	ImmovableBottomLeft  Tile = 38
	ImmovableBottomRight Tile = 39
	MovableBottomLeft    Tile = 40
	MovableBottomRight   Tile = 41
	Floor4               Tile = 42
	Floor5               Tile = 43
	Floor6               Tile = 44
	Floor7               Tile = 45
	Solid                Tile = 46
	WallTDown            Tile = 47
	WallTUp              Tile = 48
	GemRed               Tile = 49
	GemGreen             Tile = 50
	GemYellow            Tile = 51
	GemPurple            Tile = 52
	Floor1               Tile = 53
	Floor2               Tile = 54
	Floor3               Tile = 55
)

type tileInfo struct {
	name  string
	glyph rune
}

// tiles maps every valid code to its name and ASCII glyph.
var tiles = map[Tile]tileInfo{
	Empty:                {"Empty", ' '},
	WallTerminatorTop:    {"WallTerminatorTop", '#'},
	WallHorizontal:       {"WallHorizontal", '#'},
	WallVertical:         {"WallVertical", '#'},
	WallTurnTopLeft:      {"WallTurnTopLeft", '#'},
	WallTurnTopRight:     {"WallTurnTopRight", '#'},
	PassHorizontal:       {"PassHorizontal", '='},
	PassVertical:         {"PassVertical", 'H'},
	RayVertical:          {"RayVertical", '|'},
	RayHorizontal:        {"RayHorizontal", '-'},
	RayCross:             {"RayCross", '+'},
	WallTerminatorLeft:   {"WallTerminatorLeft", '#'},
	WallBlocker:          {"WallBlocker", '#'},
	WallTerminatorRight:  {"WallTerminatorRight", '#'},
	WallTurnBottomLeft:   {"WallTurnBottomLeft", '#'},
	WallTurnBottomRight:  {"WallTurnBottomRight", '#'},
	RayTeleport1:         {"RayTeleport1", 'O'},
	RaySourceUp:          {"RaySourceUp", '^'},
	RaySourceRight:       {"RaySourceRight", '>'},
	ImmovableTopLeft:     {"ImmovableTopLeft", '/'},
	ImmovableTopRight:    {"ImmovableTopRight", '\\'},
	MovableTopLeft:       {"MovableTopLeft", 'r'},
	MovableTopRight:      {"MovableTopRight", 'q'},
	WallTerminatorBottom: {"WallTerminatorBottom", '#'},
	WallTLeft:            {"WallTLeft", '#'},
	WallTRight:           {"WallTRight", '#'},
	RayTeleport2:         {"RayTeleport2", '0'},
	RaySourceDown:        {"RaySourceDown", 'v'},
	RaySourceLeft:        {"RaySourceLeft", '<'},
	ImmovableBottomLeft:  {"ImmovableBottomLeft", '\\'},
	ImmovableBottomRight: {"ImmovableBottomRight", '/'},
	MovableBottomLeft:    {"MovableBottomLeft", 'L'},
	MovableBottomRight:   {"MovableBottomRight", 'J'},
	Floor4:               {"Floor4", '.'},
	Floor5:               {"Floor5", '.'},
	Floor6:               {"Floor6", '.'},
	Floor7:               {"Floor7", '.'},
	Solid:                {"Solid", '%'},
	WallTDown:            {"WallTDown", '#'},
	WallTUp:              {"WallTUp", '#'},
	GemRed:               {"GemRed", 'R'},
	GemGreen:             {"GemGreen", 'G'},
	GemYellow:            {"GemYellow", 'Y'},
	GemPurple:            {"GemPurple", 'P'},
	Floor1:               {"Floor1", '.'},
	Floor2:               {"Floor2", '.'},
	Floor3:               {"Floor3", '.'},
}

var tilesByName = func() map[string]Tile {
	m := make(map[string]Tile, len(tiles))
	for t, info := range tiles {
		m[info.name] = t
	}
	return m
}()

// TileFromCode converts a stored byte into a Tile.
// Returns false for codes that are not part of the tile set.
func TileFromCode(b byte) (Tile, bool) {
	t := Tile(b)
	_, ok := tiles[t]
	return t, ok
}

// ParseTile looks up a tile by its variant name (e.g. "MovableTopLeft").
func ParseTile(name string) (Tile, bool) {
	t, ok := tilesByName[name]
	return t, ok
}

// Valid reports whether t is a known tile code.
func (t Tile) Valid() bool {
	_, ok := tiles[t]
	return ok
}

// String returns the variant name of the tile.
func (t Tile) String() string {
	if info, ok := tiles[t]; ok {
		return info.name
	}
	return "Unknown"
}

// Glyph returns the single-character representation used by ASCII renders.
func (t Tile) Glyph() rune {
	if info, ok := tiles[t]; ok {
		return info.glyph
	}
	return '?'
}

// IsMovable reports whether the player may drag this tile.
func (t Tile) IsMovable() bool {
	switch t {
	case MovableTopLeft, MovableTopRight, MovableBottomLeft, MovableBottomRight:
		return true
	}
	return false
}

// IsRaySource reports whether the beam starts at this tile.
func (t Tile) IsRaySource() bool {
	switch t {
	case RaySourceUp, RaySourceRight, RaySourceDown, RaySourceLeft:
		return true
	}
	return false
}

// SourceDir returns the initial beam direction of a ray source.
func (t Tile) SourceDir() (Dir, bool) {
	switch t {
	case RaySourceUp:
		return DirUp, true
	case RaySourceRight:
		return DirRight, true
	case RaySourceDown:
		return DirDown, true
	case RaySourceLeft:
		return DirLeft, true
	}
	return DirUp, false
}

// IsRayBlocker reports whether a beam travelling in d stops at this tile.
// Pass tiles only let the beam through along their own axis.
func (t Tile) IsRayBlocker(d Dir) bool {
	switch t {
	case PassHorizontal:
		return d.Vertical()
	case PassVertical:
		return !d.Vertical()
	}
	return t.IsWall()
}

// IsWall reports whether the tile is one of the wall pieces.
func (t Tile) IsWall() bool {
	switch t {
	case WallBlocker, WallHorizontal, WallVertical,
		WallTDown, WallTUp, WallTLeft, WallTRight,
		WallTerminatorTop, WallTerminatorBottom, WallTerminatorLeft, WallTerminatorRight,
		WallTurnTopLeft, WallTurnTopRight, WallTurnBottomLeft, WallTurnBottomRight:
		return true
	}
	return false
}

// IsGem reports whether the tile is a gem the beam must cross.
func (t Tile) IsGem() bool {
	switch t {
	case GemRed, GemGreen, GemYellow, GemPurple:
		return true
	}
	return false
}

// IsTeleport reports whether the tile is a teleport endpoint.
func (t Tile) IsTeleport() bool {
	return t == RayTeleport1 || t == RayTeleport2
}

// IsMirror reports whether the tile deflects the beam.
func (t Tile) IsMirror() bool {
	_, _, ok := t.mirrorTurns()
	return ok
}

// IsRay reports whether the tile belongs to the ray overlay.
func (t Tile) IsRay() bool {
	return t == RayVertical || t == RayHorizontal || t == RayCross
}

// mirrorTurns returns the two accepted incoming directions of a mirror.
// The first maps to a horizontal exit, the second to a vertical one.
func (t Tile) mirrorTurns() (Dir, Dir, bool) {
	switch t {
	case MovableTopLeft, ImmovableTopLeft:
		return DirUp, DirLeft, true
	case MovableTopRight, ImmovableTopRight:
		return DirUp, DirRight, true
	case MovableBottomLeft, ImmovableBottomLeft:
		return DirDown, DirLeft, true
	case MovableBottomRight, ImmovableBottomRight:
		return DirDown, DirRight, true
	}
	return 0, 0, false
}

// Reflect returns the outgoing direction for a beam entering this mirror
// while travelling in d. Returns false when the mirror does not accept
// beams from that direction, or when the tile is not a mirror.
//
//	TopLeft:     Up->Right   Left->Down
//	TopRight:    Up->Left    Right->Down
//	BottomLeft:  Down->Right Left->Up
//	BottomRight: Down->Left  Right->Up
func (t Tile) Reflect(d Dir) (Dir, bool) {
	vertIn, horizIn, ok := t.mirrorTurns()
	if !ok {
		return d, false
	}
	switch d {
	case vertIn:
		return horizIn.Opposite(), true
	case horizIn:
		return vertIn.Opposite(), true
	}
	return d, false
}
