package levels

import (
	"embed"
	"io/fs"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return &Loader{FS: sub, Root: "."}
}

// Open returns the directory loader when dir is set, otherwise the campaign.
func Open(dir string) *Loader {
	if dir != "" {
		return NewLoader(dir)
	}
	return Campaign()
}

// Unlocked reports which levels of list can be played. The first level is
// always open; each later one opens once the level before it has been won.
func Unlocked(list []Level, won func(id string) bool) []bool {
	out := make([]bool, len(list))
	for i := range list {
		out[i] = i == 0 || won(list[i-1].ID)
	}
	return out
}

// Next returns the level after id in list.
func Next(list []Level, id string) (Level, bool) {
	for i, lvl := range list {
		if lvl.ID == id && i+1 < len(list) {
			return list[i+1], true
		}
	}
	return Level{}, false
}

// Index returns the position of id in list, or -1.
func Index(list []Level, id string) int {
	for i, lvl := range list {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}
