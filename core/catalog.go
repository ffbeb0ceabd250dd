package core

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// LibraryScan is the outcome of scanning one library folder.
type LibraryScan struct {
	Library string
	Results []ScanResult
}

// Catalog is the de-duplicated set of games found across all libraries.
type Catalog struct {
	games      map[uint32]*Game
	duplicates []*Game
}

type SortOrder string

const (
	SortByName  SortOrder = "name"
	SortByAppID SortOrder = "appid"
	SortBySize  SortOrder = "size"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByName, SortByAppID, SortBySize:
		return order, nil
	case "":
		return SortByName, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want name, appid or size)", s)
	}
}

// Aggregate merges scan results into a Catalog. Manifest errors are returned
// in scan order. When an app id shows up in several libraries, a fully
// installed copy wins over any other state, and otherwise the copy from the
// library whose path sorts first. The outcome does not depend on the order
// of scans.
func Aggregate(scans []LibraryScan) (*Catalog, []*ManifestError) {
	candidates := make(map[uint32][]*Game)
	var order []uint32
	var errs []*ManifestError

	for _, scan := range scans {
		for _, r := range scan.Results {
			if r.Err != nil {
				errs = append(errs, r.Err)
				continue
			}
			if r.Game == nil {
				continue
			}
			g := r.Game
			if g.Library == "" {
				g.Library = scan.Library
			}
			if _, seen := candidates[g.AppID]; !seen {
				order = append(order, g.AppID)
			}
			candidates[g.AppID] = append(candidates[g.AppID], g)
		}
	}

	c := &Catalog{games: make(map[uint32]*Game, len(candidates))}
	for _, id := range order {
		games := candidates[id]
		best := games[0]
		for _, g := range games[1:] {
			if preferred(g, best) {
				best = g
			}
		}
		c.games[id] = best
		for _, g := range games {
			if g != best {
				c.duplicates = append(c.duplicates, g)
			}
		}
	}
	sortGames(c.duplicates, SortByAppID)
	return c, errs
}

// preferred reports whether a should replace b as the catalog entry.
func preferred(a, b *Game) bool {
	aInstalled := a.State == StateFullyInstalled
	bInstalled := b.State == StateFullyInstalled
	if aInstalled != bInstalled {
		return aInstalled
	}
	return a.Library < b.Library
}

func (c *Catalog) Len() int {
	return len(c.games)
}

// List returns every game ordered by name (case-insensitive), then app id.
func (c *Catalog) List() []*Game {
	return c.Sorted(SortByName)
}

func (c *Catalog) Sorted(order SortOrder) []*Game {
	games := make([]*Game, 0, len(c.games))
	for _, g := range c.games {
		games = append(games, g)
	}
	sortGames(games, order)
	return games
}

func (c *Catalog) Lookup(appID uint32) (*Game, bool) {
	g, ok := c.games[appID]
	return g, ok
}

// Filter returns the games in state, ordered as List.
func (c *Catalog) Filter(state InstallState) []*Game {
	var games []*Game
	for _, g := range c.List() {
		if g.State == state {
			games = append(games, g)
		}
	}
	return games
}

// Duplicates returns the copies that lost to another library's copy of the
// same app, ordered by app id then library.
func (c *Catalog) Duplicates() []*Game {
	return c.duplicates
}

func sortGames(games []*Game, order SortOrder) {
	fold := cases.Fold()
	keys := make(map[*Game]string, len(games))
	for _, g := range games {
		keys[g] = fold.String(g.Name)
	}
	byName := func(a, b *Game) bool {
		if keys[a] != keys[b] {
			return keys[a] < keys[b]
		}
		return a.AppID < b.AppID
	}

	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		switch order {
		case SortByAppID:
			if a.AppID != b.AppID {
				return a.AppID < b.AppID
			}
			return a.Library < b.Library
		case SortBySize:
			as, bs := sizeOf(a), sizeOf(b)
			if as != bs {
				return as > bs
			}
			return byName(a, b)
		default:
			return byName(a, b)
		}
	})
}

func sizeOf(g *Game) uint64 {
	if g.SizeOnDisk == nil {
		return 0
	}
	return *g.SizeOnDisk
}
