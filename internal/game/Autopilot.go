package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// DefaultAutopilotScript chases the food: it follows the current axis until
// it lines up with the food, then turns toward it.
const DefaultAutopilotScript = `
function nextDirection(state)
	local head, food = state.head, state.food
	if state.path == "horizontal" and head.x == food.x and head.y ~= food.y then
		if food.y > head.y then
			return {path = "vertical", direction = 1}
		end
		return {path = "vertical", direction = -1}
	end
	if state.path == "vertical" and head.y == food.y and head.x ~= food.x then
		if food.x > head.x then
			return {path = "horizontal", direction = 1}
		end
		return {path = "horizontal", direction = -1}
	end
	return {path = state.path, direction = state.direction}
end
`

const autopilotEntryPoint = "nextDirection"

// Autopilot steers the snake from a Lua script. It acts only through the
// same steering input a player uses.
type Autopilot struct {
	Name       string
	luaState   *lua.LState
	entryPoint lua.LValue
}

func NewAutopilot(name, script string) (*Autopilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua autopilot %q: %w", name, err)
	}

	entryPoint := luaState.GetGlobal(autopilotEntryPoint)
	if entryPoint.Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua autopilot %q does not define %s()", name, autopilotEntryPoint)
	}

	return &Autopilot{Name: name, luaState: luaState, entryPoint: entryPoint}, nil
}

func LoadAutopilot(path string) (*Autopilot, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read autopilot script: %w", err)
	}
	return NewAutopilot(path, string(script))
}

func (a *Autopilot) Close() {
	a.luaState.Close()
}

// NextDirection asks the script where to go given the current frame.
func (a *Autopilot) NextDirection(frame Frame) (Steering, error) {
	luaState := a.luaState
	if err := luaState.CallByParam(lua.P{
		Fn:      a.entryPoint,
		NRet:    1,
		Protect: true,
	}, a.frameToLuaTable(frame)); err != nil {
		return Steering{}, fmt.Errorf("could not execute lua autopilot %q: %w", a.Name, err)
	}

	luaReturn := luaState.Get(-1)
	luaState.Pop(1)

	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Steering{}, errors.New("lua autopilot returned " + luaReturn.Type().String() + ", expected table")
	}

	return convertLuaSteeringTableToGoStruct(luaTable, frame)
}

// Attach steers gm after every tick until the returned function is called.
// Decisions run on the loop goroutine and are picked up before the next tick.
func (a *Autopilot) Attach(gm *GameManager) func() {
	return gm.SubscribeFrames(func(frame Frame) {
		if frame.State.IsGameOver {
			return
		}
		steering, err := a.NextDirection(frame)
		if err != nil {
			log.Error("Autopilot failed, keeping heading", "autopilot", a.Name, "error", err)
			return
		}
		if steering.Path != frame.Path || steering.Direction != frame.Direction {
			gm.Steer(steering.Path, steering.Direction)
		}
	})
}

func (a *Autopilot) frameToLuaTable(frame Frame) *lua.LTable {
	luaState := a.luaState
	point := func(p Point) *lua.LTable {
		tbl := luaState.NewTable()
		tbl.RawSetString("x", lua.LNumber(p.X))
		tbl.RawSetString("y", lua.LNumber(p.Y))
		return tbl
	}

	state := luaState.NewTable()
	state.RawSetString("head", point(frame.Head))
	state.RawSetString("food", point(frame.Food))
	state.RawSetString("path", lua.LString(frame.Path.String()))
	state.RawSetString("direction", lua.LNumber(frame.Direction))
	state.RawSetString("width", lua.LNumber(frame.Field.Width))
	state.RawSetString("height", lua.LNumber(frame.Field.Height))
	state.RawSetString("step", lua.LNumber((frame.Segment.Width+frame.Segment.Height)/2))

	body := luaState.NewTable()
	for _, p := range frame.Body {
		body.Append(point(p))
	}
	state.RawSetString("body", body)

	return state
}

func convertLuaSteeringTableToGoStruct(luaTbl *lua.LTable, frame Frame) (Steering, error) {
	result := Steering{Path: frame.Path, Direction: frame.Direction}
	var conversionErr error

	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "path":
			path, ok := ParsePath(lua.LVAsString(value))
			if !ok {
				conversionErr = fmt.Errorf("unknown path %q", lua.LVAsString(value))
				return
			}
			result.Path = path
		case "direction":
			switch int(lua.LVAsNumber(value)) {
			case -1:
				result.Direction = Backward
			case 1:
				result.Direction = Forward
			default:
				conversionErr = fmt.Errorf("direction must be -1 or 1, got %s", value.String())
			}
		}
	})

	return result, conversionErr
}
