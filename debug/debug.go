package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Map     bool
	Resolve bool
	Store   bool
	Query   bool
	Patch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Map = boolEnv("DOMAP_DEBUG_MAP")
	d.Resolve = boolEnv("DOMAP_DEBUG_RESOLVE")
	d.Store = boolEnv("DOMAP_DEBUG_STORE")
	d.Query = boolEnv("DOMAP_DEBUG_QUERY")
	d.Patch = boolEnv("DOMAP_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Map() bool {
	return d.Map
}
func Resolve() bool {
	return d.Resolve
}
func Store() bool {
	return d.Store
}
func Query() bool {
	return d.Query
}
func Patch() bool {
	return d.Patch
}
