package script

import (
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/vovakirdan/flightsim/internal/core"
)

var vec2Meta = []lua.RegistryFunction{
	{Name: "__index", Function: vec2Index},
	{Name: "__newindex", Function: vec2NewIndex},
	{Name: "__eq", Function: vec2Eq},
	{Name: "__tostring", Function: vec2ToString},
}

var vec3Meta = []lua.RegistryFunction{
	{Name: "__index", Function: vec3Index},
	{Name: "__newindex", Function: vec3NewIndex},
	{Name: "__add", Function: vec3Add},
	{Name: "__sub", Function: vec3Sub},
	{Name: "__mul", Function: vec3Mul},
	{Name: "__unm", Function: vec3Unm},
	{Name: "__eq", Function: vec3Eq},
	{Name: "__tostring", Function: vec3ToString},
}

var cameraMeta = []lua.RegistryFunction{
	{Name: "__index", Function: cameraIndex},
	{Name: "__newindex", Function: cameraNewIndex},
	{Name: "__tostring", Function: cameraToString},
}

func registerVectors(state *lua.State) {
	for name, fns := range map[string][]lua.RegistryFunction{
		vec2TypeName:   vec2Meta,
		vec3TypeName:   vec3Meta,
		cameraTypeName: cameraMeta,
	} {
		lua.NewMetaTable(state, name)
		lua.SetFunctions(state, fns, 0)
		state.Pop(1)
	}
}

func pushVec2(state *lua.State, v *core.Vec2) {
	state.PushUserData(v)
	lua.SetMetaTableNamed(state, vec2TypeName)
}

func pushVec3(state *lua.State, v *core.Vec3) {
	state.PushUserData(v)
	lua.SetMetaTableNamed(state, vec3TypeName)
}

func pushCamera(state *lua.State, c *core.Camera) {
	state.PushUserData(c)
	lua.SetMetaTableNamed(state, cameraTypeName)
}

func checkVec2(state *lua.State, index int) *core.Vec2 {
	ud := lua.CheckUserData(state, index, vec2TypeName)
	v, ok := ud.(*core.Vec2)
	if !ok {
		lua.ArgumentError(state, index, "vec2 expected")
	}
	return v
}

func checkVec3(state *lua.State, index int) *core.Vec3 {
	ud := lua.CheckUserData(state, index, vec3TypeName)
	v, ok := ud.(*core.Vec3)
	if !ok {
		lua.ArgumentError(state, index, "vec3 expected")
	}
	return v
}

func checkCamera(state *lua.State, index int) *core.Camera {
	ud := lua.CheckUserData(state, index, cameraTypeName)
	c, ok := ud.(*core.Camera)
	if !ok {
		lua.ArgumentError(state, index, "camera expected")
	}
	return c
}

func vec2Index(state *lua.State) int {
	v := checkVec2(state, 1)
	switch lua.CheckString(state, 2) {
	case "x":
		state.PushNumber(v.X)
	case "y":
		state.PushNumber(v.Y)
	default:
		state.PushNil()
	}
	return 1
}

func vec2NewIndex(state *lua.State) int {
	v := checkVec2(state, 1)
	field := lua.CheckString(state, 2)
	n := lua.CheckNumber(state, 3)
	switch field {
	case "x":
		v.X = n
	case "y":
		v.Y = n
	default:
		lua.Errorf(state, "vec2 has no field %q", field)
	}
	return 0
}

func vec2Eq(state *lua.State) int {
	a, _ := state.ToUserData(1).(*core.Vec2)
	b, _ := state.ToUserData(2).(*core.Vec2)
	state.PushBoolean(a != nil && b != nil && *a == *b)
	return 1
}

func vec2ToString(state *lua.State) int {
	v := checkVec2(state, 1)
	state.PushString(fmt.Sprintf("vec2(%g, %g)", v.X, v.Y))
	return 1
}

func vec3Index(state *lua.State) int {
	v := checkVec3(state, 1)
	switch lua.CheckString(state, 2) {
	case "x":
		state.PushNumber(v.X)
	case "y":
		state.PushNumber(v.Y)
	case "z":
		state.PushNumber(v.Z)
	default:
		state.PushNil()
	}
	return 1
}

func vec3NewIndex(state *lua.State) int {
	v := checkVec3(state, 1)
	field := lua.CheckString(state, 2)
	n := lua.CheckNumber(state, 3)
	switch field {
	case "x":
		v.X = n
	case "y":
		v.Y = n
	case "z":
		v.Z = n
	default:
		lua.Errorf(state, "vec3 has no field %q", field)
	}
	return 0
}

func newVec3(state *lua.State, v core.Vec3) int {
	pushVec3(state, &v)
	return 1
}

func vec3Add(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Add(*checkVec3(state, 2)))
}

func vec3Sub(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Sub(*checkVec3(state, 2)))
}

// vec3Mul accepts vec*number and number*vec.
func vec3Mul(state *lua.State) int {
	if state.TypeOf(1) == lua.TypeNumber {
		n, _ := state.ToNumber(1)
		return newVec3(state, checkVec3(state, 2).Scale(n))
	}
	return newVec3(state, checkVec3(state, 1).Scale(lua.CheckNumber(state, 2)))
}

func vec3Unm(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Scale(-1))
}

func vec3Eq(state *lua.State) int {
	a, _ := state.ToUserData(1).(*core.Vec3)
	b, _ := state.ToUserData(2).(*core.Vec3)
	state.PushBoolean(a != nil && b != nil && *a == *b)
	return 1
}

func vec3ToString(state *lua.State) int {
	v := checkVec3(state, 1)
	state.PushString(fmt.Sprintf("vec3(%g, %g, %g)", v.X, v.Y, v.Z))
	return 1
}

// cameraIndex exposes position, target and up by reference:
// cam.position.x = 1 moves the camera.
func cameraIndex(state *lua.State) int {
	c := checkCamera(state, 1)
	switch lua.CheckString(state, 2) {
	case "position":
		pushVec3(state, &c.Position)
	case "target":
		pushVec3(state, &c.Target)
	case "up":
		pushVec3(state, &c.Up)
	case "fovy":
		state.PushNumber(c.FovY)
	default:
		state.PushNil()
	}
	return 1
}

func cameraNewIndex(state *lua.State) int {
	c := checkCamera(state, 1)
	field := lua.CheckString(state, 2)
	switch field {
	case "position":
		c.Position = *checkVec3(state, 3)
	case "target":
		c.Target = *checkVec3(state, 3)
	case "up":
		c.Up = *checkVec3(state, 3)
	case "fovy":
		c.FovY = lua.CheckNumber(state, 3)
	default:
		lua.Errorf(state, "camera has no field %q", field)
	}
	return 0
}

func cameraToString(state *lua.State) int {
	c := checkCamera(state, 1)
	state.PushString(fmt.Sprintf("camera(position=(%g, %g, %g), target=(%g, %g, %g))",
		c.Position.X, c.Position.Y, c.Position.Z, c.Target.X, c.Target.Y, c.Target.Z))
	return 1
}
