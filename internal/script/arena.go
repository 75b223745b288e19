package script

import (
	"math"
	"strconv"

	"github.com/Shopify/go-lua"

	"github.com/vovakirdan/flightsim/internal/arena"
	"github.com/vovakirdan/flightsim/internal/core"
)

const (
	arenaTypeName  = "flightsim.arena"
	vec2TypeName   = "flightsim.vec2"
	vec3TypeName   = "flightsim.vec3"
	cameraTypeName = "flightsim.camera"
)

// maxTableDepth bounds table conversion so self-referencing tables fail
// instead of recursing forever.
const maxTableDepth = 32

var arenaMeta = []lua.RegistryFunction{
	{Name: "__index", Function: arenaIndex},
	{Name: "__newindex", Function: arenaNewIndex},
	{Name: "__len", Function: arenaLen},
	{Name: "__pairs", Function: arenaPairs},
	{Name: "__eq", Function: arenaEq},
	{Name: "__tostring", Function: arenaToString},
}

var arenaGlobals = []lua.RegistryFunction{
	{Name: "get_or_set", Function: getOrSet},
	{Name: "get_or_invoke", Function: getOrInvoke},
}

func registerArena(state *lua.State) {
	lua.NewMetaTable(state, arenaTypeName)
	lua.SetFunctions(state, arenaMeta, 0)
	state.Pop(1)

	for _, fn := range arenaGlobals {
		state.PushGoFunction(fn.Function)
		state.SetGlobal(fn.Name)
	}
}

func pushArena(state *lua.State, a *arena.Arena) {
	state.PushUserData(a)
	lua.SetMetaTableNamed(state, arenaTypeName)
}

func checkArena(state *lua.State, index int) *arena.Arena {
	ud := lua.CheckUserData(state, index, arenaTypeName)
	a, ok := ud.(*arena.Arena)
	if !ok {
		lua.ArgumentError(state, index, "arena expected")
	}
	return a
}

// arenaKey converts the key at index to its arena form. Integral numbers
// become their decimal string so a[1] and a["1"] name the same slot.
func arenaKey(state *lua.State, index int) string {
	switch state.TypeOf(index) {
	case lua.TypeString:
		key, _ := state.ToString(index)
		return key
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return numberKey(n)
	default:
		lua.ArgumentError(state, index, "arena key must be a string or number")
		return ""
	}
}

func numberKey(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func arenaIndex(state *lua.State) int {
	a := checkArena(state, 1)
	v, _ := a.Get(arenaKey(state, 2))
	pushValue(state, v)
	return 1
}

func arenaNewIndex(state *lua.State) int {
	a := checkArena(state, 1)
	key := arenaKey(state, 2)
	a.Set(key, toValue(state, 3, 0))
	return 0
}

// arenaLen counts the sequence keys "1", "2", ...
func arenaLen(state *lua.State) int {
	a := checkArena(state, 1)
	n := 0
	for a.Has(strconv.Itoa(n + 1)) {
		n++
	}
	state.PushInteger(n)
	return 1
}

func arenaPairs(state *lua.State) int {
	checkArena(state, 1)
	state.PushGoFunction(arenaNext)
	state.PushValue(1)
	state.PushNil()
	return 3
}

// arenaNext iterates keys in sorted order.
func arenaNext(state *lua.State) int {
	a := checkArena(state, 1)
	keys := a.Keys()
	next := 0
	if !state.IsNoneOrNil(2) {
		prev := arenaKey(state, 2)
		next = len(keys)
		for i, k := range keys {
			if k == prev {
				next = i + 1
				break
			}
		}
	}
	if next >= len(keys) {
		state.PushNil()
		return 1
	}
	v, _ := a.Get(keys[next])
	state.PushString(keys[next])
	pushValue(state, v)
	return 2
}

func arenaEq(state *lua.State) int {
	a, _ := state.ToUserData(1).(*arena.Arena)
	b, _ := state.ToUserData(2).(*arena.Arena)
	state.PushBoolean(a != nil && a == b)
	return 1
}

func arenaToString(state *lua.State) int {
	a := checkArena(state, 1)
	state.PushString("arena(" + strconv.Itoa(a.Len()) + " keys)")
	return 1
}

// getOrSet implements get_or_set(a, key, default).
func getOrSet(state *lua.State) int {
	a := checkArena(state, 1)
	key := arenaKey(state, 2)
	if v, ok := a.Get(key); ok {
		pushValue(state, v)
		return 1
	}
	v := toValue(state, 3, 0)
	a.Set(key, v)
	pushValue(state, v)
	return 1
}

// getOrInvoke implements get_or_invoke(a, key, fn, ...). fn runs only when
// key is absent and receives the remaining arguments.
func getOrInvoke(state *lua.State) int {
	a := checkArena(state, 1)
	key := arenaKey(state, 2)
	if v, ok := a.Get(key); ok {
		pushValue(state, v)
		return 1
	}
	lua.CheckType(state, 3, lua.TypeFunction)
	args := state.Top() - 3
	state.PushValue(3)
	for i := 4; i <= 3+args; i++ {
		state.PushValue(i)
	}
	state.Call(args, 1)
	v := toValue(state, -1, 0)
	state.Pop(1)
	a.Set(key, v)
	pushValue(state, v)
	return 1
}

// pushValue pushes an arena value. Vectors and cameras are pushed by
// reference so field writes land in the arena.
func pushValue(state *lua.State, v any) {
	switch v := v.(type) {
	case nil:
		state.PushNil()
	case bool:
		state.PushBoolean(v)
	case int:
		state.PushInteger(v)
	case int64:
		state.PushInteger(int(v))
	case float64:
		state.PushNumber(v)
	case string:
		state.PushString(v)
	case *arena.Arena:
		pushArena(state, v)
	case *core.Vec2:
		pushVec2(state, v)
	case *core.Vec3:
		pushVec3(state, v)
	case *core.Camera:
		pushCamera(state, v)
	case core.Vec2:
		pushVec2(state, &v)
	case core.Vec3:
		pushVec3(state, &v)
	case core.Camera:
		pushCamera(state, &v)
	default:
		state.PushUserData(v)
	}
}

// toValue converts the Lua value at index into an arena value. Tables become
// nested arenas. Functions, threads and foreign userdata cannot outlive the
// interpreter that created them and raise an error.
func toValue(state *lua.State, index, depth int) any {
	switch state.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return nil
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return n
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeTable:
		return tableToArena(state, index, depth)
	case lua.TypeUserData:
		switch ud := state.ToUserData(index).(type) {
		case *arena.Arena:
			return ud
		case *core.Vec2:
			v := *ud
			return &v
		case *core.Vec3:
			v := *ud
			return &v
		case *core.Camera:
			c := *ud
			return &c
		}
	}
	lua.Errorf(state, "cannot store a %s value in the arena", lua.TypeNameOf(state, index))
	return nil
}

func tableToArena(state *lua.State, index, depth int) *arena.Arena {
	if depth >= maxTableDepth {
		lua.Errorf(state, "table nested deeper than %d levels", maxTableDepth)
	}
	index = state.AbsIndex(index)
	out := arena.New()
	state.PushNil()
	for state.Next(index) {
		var key string
		switch state.TypeOf(-2) {
		case lua.TypeString:
			key, _ = state.ToString(-2)
		case lua.TypeNumber:
			n, _ := state.ToNumber(-2)
			key = numberKey(n)
		default:
			lua.Errorf(state, "arena key must be a string or number, got %s", lua.TypeNameOf(state, -2))
		}
		out.Set(key, toValue(state, -1, depth+1))
		state.Pop(1)
	}
	return out
}
