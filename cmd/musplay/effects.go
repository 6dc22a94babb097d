package main

import (
	"github.com/quasilyte/musmix"
)

// effectList is a subset of the Doom sound effects.
// The first 9 entries are bound to the number keys.
var effectList = []musmix.EffectInfo{
	{Name: "pistol", Link: -1},
	{Name: "shotgn", Link: -1},
	{Name: "dshtgn", Link: -1},
	{Name: "plasma", Link: -1},
	{Name: "rlaunc", Link: -1},
	{Name: "barexp", Link: -1},
	{Name: "doropn", Link: -1},
	{Name: "itemup", Link: -1},
	{Name: "oof", Link: -1},
	{Name: "sgcock", Link: -1},
	{Name: "bfg", Link: -1},
	{Name: "rxplod", Link: -1},
	{Name: "dorcls", Link: -1},
	{Name: "wpnup", Link: -1},
	{Name: "telept", Link: -1},
	{Name: "swtchn", Link: -1},
	{Name: "chgun", Link: 0},
}
