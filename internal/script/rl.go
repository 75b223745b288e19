package script

import (
	"fmt"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/vovakirdan/flightsim/internal/core"
)

// rlLibrary is the global table scripts draw and read input through.
const rlLibrary = "rl"

// bindings holds the per-session capabilities the rl functions close over.
type bindings struct {
	env *Env
}

func (b *bindings) functions() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		// Frame
		{Name: "begin_drawing", Function: b.beginDrawing},
		{Name: "end_drawing", Function: b.endDrawing},
		{Name: "clear_background", Function: b.clearBackground},
		{Name: "get_screen_width", Function: b.screenWidth},
		{Name: "get_screen_height", Function: b.screenHeight},

		// 2D
		{Name: "draw_text", Function: b.drawText},
		{Name: "draw_rectangle", Function: b.drawRectangle},
		{Name: "draw_rectangle_lines", Function: b.drawRectangleLines},

		// 3D
		{Name: "begin_mode_3d", Function: b.beginMode3D},
		{Name: "end_mode_3d", Function: b.endMode3D},
		{Name: "draw_line_3d", Function: b.drawLine3D},
		{Name: "draw_triangle_3d", Function: b.drawTriangle3D},
		{Name: "draw_cube", Function: b.drawCube},
		{Name: "draw_plane", Function: b.drawPlane},
		{Name: "draw_grid", Function: b.drawGrid},

		// Input
		{Name: "is_key_down", Function: b.isKeyDown},
		{Name: "is_key_pressed", Function: b.isKeyPressed},
		{Name: "is_key_released", Function: b.isKeyReleased},
		{Name: "get_mouse_position", Function: b.mousePosition},
		{Name: "is_mouse_button_down", Function: b.isMouseButtonDown},
		{Name: "is_mouse_button_pressed", Function: b.isMouseButtonPressed},

		// Time
		{Name: "get_frame_time", Function: b.frameTime},
		{Name: "get_time", Function: b.time},

		// Math
		{Name: "vec2", Function: vec2New},
		{Name: "vec3", Function: vec3New},
		{Name: "vec3_add", Function: vec3Add},
		{Name: "vec3_sub", Function: vec3Sub},
		{Name: "vec3_scale", Function: vec3Scale},
		{Name: "vec3_normalize", Function: vec3Normalize},
		{Name: "vec3_length", Function: vec3Length},
		{Name: "vec3_cross", Function: vec3Cross},
		{Name: "camera_3d", Function: cameraNew},
		{Name: "check_collision_point_rec", Function: checkCollisionPointRec},
	}
}

func (b *bindings) register(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, b.functions(), 0)

	for name, c := range core.Colors() {
		state.PushInteger(int(c))
		state.SetField(-2, strings.ToUpper(name))
	}
	for name, key := range keyConstants() {
		state.PushString(key)
		state.SetField(-2, name)
	}
	for name, button := range map[string]core.MouseButton{
		"MOUSE_LEFT":   core.MouseLeft,
		"MOUSE_RIGHT":  core.MouseRight,
		"MOUSE_MIDDLE": core.MouseMiddle,
	} {
		state.PushInteger(int(button))
		state.SetField(-2, name)
	}

	state.SetGlobal(rlLibrary)
}

// keyConstants maps KEY_* names to the key strings the terminal reports.
func keyConstants() map[string]string {
	keys := map[string]string{
		"KEY_SPACE":     "space",
		"KEY_ENTER":     "enter",
		"KEY_ESCAPE":    "esc",
		"KEY_TAB":       "tab",
		"KEY_BACKSPACE": "backspace",
		"KEY_UP":        "up",
		"KEY_DOWN":      "down",
		"KEY_LEFT":      "left",
		"KEY_RIGHT":     "right",
	}
	for r := 'a'; r <= 'z'; r++ {
		keys["KEY_"+strings.ToUpper(string(r))] = string(r)
	}
	for r := '0'; r <= '9'; r++ {
		keys["KEY_"+string(r)] = string(r)
	}
	for i := 1; i <= 12; i++ {
		keys[fmt.Sprintf("KEY_F%d", i)] = fmt.Sprintf("f%d", i)
	}
	return keys
}

// checkColor accepts a color constant or a color name.
func checkColor(state *lua.State, index int) core.Color {
	switch state.TypeOf(index) {
	case lua.TypeNumber:
		n, _ := state.ToInteger(index)
		return core.Color(n)
	case lua.TypeString:
		name, _ := state.ToString(index)
		if c, ok := core.Colors()[strings.ToLower(name)]; ok {
			return c
		}
		lua.ArgumentError(state, index, "unknown color "+name)
	default:
		lua.ArgumentError(state, index, "color expected")
	}
	return core.ColorDefault
}

func checkInt(state *lua.State, index int) int {
	return int(lua.CheckNumber(state, index))
}

func (b *bindings) beginDrawing(state *lua.State) int {
	b.env.Renderer.BeginFrame()
	return 0
}

func (b *bindings) endDrawing(state *lua.State) int {
	b.env.Renderer.EndFrame()
	return 0
}

func (b *bindings) clearBackground(state *lua.State) int {
	b.env.Renderer.Clear(checkColor(state, 1))
	return 0
}

func (b *bindings) screenWidth(state *lua.State) int {
	state.PushInteger(b.env.Renderer.Width())
	return 1
}

func (b *bindings) screenHeight(state *lua.State) int {
	state.PushInteger(b.env.Renderer.Height())
	return 1
}

func (b *bindings) drawText(state *lua.State) int {
	text := lua.CheckString(state, 1)
	x, y := checkInt(state, 2), checkInt(state, 3)
	size := checkInt(state, 4)
	b.env.Renderer.DrawText(text, x, y, size, checkColor(state, 5))
	return 0
}

func (b *bindings) drawRectangle(state *lua.State) int {
	r := core.NewRect(checkInt(state, 1), checkInt(state, 2), checkInt(state, 3), checkInt(state, 4))
	b.env.Renderer.FillRect(r, checkColor(state, 5))
	return 0
}

func (b *bindings) drawRectangleLines(state *lua.State) int {
	r := core.NewRect(checkInt(state, 1), checkInt(state, 2), checkInt(state, 3), checkInt(state, 4))
	b.env.Renderer.DrawBox(r, checkColor(state, 5))
	return 0
}

func (b *bindings) beginMode3D(state *lua.State) int {
	b.env.Renderer.BeginMode3D(*checkCamera(state, 1))
	return 0
}

func (b *bindings) endMode3D(state *lua.State) int {
	b.env.Renderer.EndMode3D()
	return 0
}

func (b *bindings) drawLine3D(state *lua.State) int {
	b.env.Renderer.DrawLine3D(*checkVec3(state, 1), *checkVec3(state, 2), checkColor(state, 3))
	return 0
}

func (b *bindings) drawTriangle3D(state *lua.State) int {
	b.env.Renderer.DrawTriangle3D(*checkVec3(state, 1), *checkVec3(state, 2), *checkVec3(state, 3), checkColor(state, 4))
	return 0
}

func (b *bindings) drawCube(state *lua.State) int {
	center := *checkVec3(state, 1)
	w, h, l := lua.CheckNumber(state, 2), lua.CheckNumber(state, 3), lua.CheckNumber(state, 4)
	b.env.Renderer.DrawCube(center, w, h, l, checkColor(state, 5))
	return 0
}

func (b *bindings) drawPlane(state *lua.State) int {
	b.env.Renderer.DrawPlane(*checkVec3(state, 1), *checkVec2(state, 2), checkColor(state, 3))
	return 0
}

func (b *bindings) drawGrid(state *lua.State) int {
	b.env.Renderer.DrawGrid(checkInt(state, 1), lua.CheckNumber(state, 2))
	return 0
}

func (b *bindings) isKeyDown(state *lua.State) int {
	state.PushBoolean(b.env.Input.IsKeyDown(lua.CheckString(state, 1)))
	return 1
}

func (b *bindings) isKeyPressed(state *lua.State) int {
	state.PushBoolean(b.env.Input.IsKeyPressed(lua.CheckString(state, 1)))
	return 1
}

func (b *bindings) isKeyReleased(state *lua.State) int {
	state.PushBoolean(b.env.Input.IsKeyReleased(lua.CheckString(state, 1)))
	return 1
}

func (b *bindings) mousePosition(state *lua.State) int {
	p := b.env.Input.MousePosition()
	pushVec2(state, &p)
	return 1
}

func (b *bindings) isMouseButtonDown(state *lua.State) int {
	state.PushBoolean(b.env.Input.IsMouseButtonDown(core.MouseButton(lua.CheckInteger(state, 1))))
	return 1
}

func (b *bindings) isMouseButtonPressed(state *lua.State) int {
	state.PushBoolean(b.env.Input.IsMouseButtonPressed(core.MouseButton(lua.CheckInteger(state, 1))))
	return 1
}

func (b *bindings) frameTime(state *lua.State) int {
	state.PushNumber(b.env.Clock.Delta)
	return 1
}

func (b *bindings) time(state *lua.State) int {
	state.PushNumber(b.env.Clock.Elapsed)
	return 1
}

func vec2New(state *lua.State) int {
	v := core.Vec2{X: lua.OptNumber(state, 1, 0), Y: lua.OptNumber(state, 2, 0)}
	pushVec2(state, &v)
	return 1
}

func vec3New(state *lua.State) int {
	return newVec3(state, core.Vec3{
		X: lua.OptNumber(state, 1, 0),
		Y: lua.OptNumber(state, 2, 0),
		Z: lua.OptNumber(state, 3, 0),
	})
}

func vec3Scale(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Scale(lua.CheckNumber(state, 2)))
}

func vec3Normalize(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Normalize())
}

func vec3Length(state *lua.State) int {
	state.PushNumber(checkVec3(state, 1).Length())
	return 1
}

func vec3Cross(state *lua.State) int {
	return newVec3(state, checkVec3(state, 1).Cross(*checkVec3(state, 2)))
}

// cameraNew implements camera_3d(position, target, up, fovy). Omitted
// arguments take the default camera's values.
func cameraNew(state *lua.State) int {
	c := core.DefaultCamera()
	if !state.IsNoneOrNil(1) {
		c.Position = *checkVec3(state, 1)
	}
	if !state.IsNoneOrNil(2) {
		c.Target = *checkVec3(state, 2)
	}
	if !state.IsNoneOrNil(3) {
		c.Up = *checkVec3(state, 3)
	}
	c.FovY = lua.OptNumber(state, 4, c.FovY)
	pushCamera(state, &c)
	return 1
}

// checkCollisionPointRec implements check_collision_point_rec(point, x, y, w, h).
func checkCollisionPointRec(state *lua.State) int {
	p := checkVec2(state, 1)
	r := core.NewRect(checkInt(state, 2), checkInt(state, 3), checkInt(state, 4), checkInt(state, 5))
	state.PushBoolean(core.PointInRect(*p, r))
	return 1
}
