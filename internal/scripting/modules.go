package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestat/internal/dice"
)

// RegisterModules registers the engine.log and engine.dice Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	logAt := func(log func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": logAt(m.logger.Debug),
		"info":  logAt(m.logger.Info),
		"warn":  logAt(m.logger.Warn),
		"error": logAt(m.logger.Error),
	})
}

// diceModule builds engine.dice. Every function takes dice notation or an
// expression table {dice = {...}, bonus = n} as its first argument.
func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"parse": func(L *lua.LState) int {
			L.Push(expressionTable(L, checkExpression(L, 1)))
			return 1
		},
		"canonical": func(L *lua.LState) int {
			L.Push(lua.LString(dice.Canonical(checkExpression(L, 1))))
			return 1
		},
		"roll": func(L *lua.LState) int {
			r := m.roller.Roll(checkExpression(L, 1))
			L.Push(rollTable(L, r))
			return 1
		},
		"max": func(L *lua.LState) int {
			L.Push(lua.LNumber(dice.MaxRoll(checkExpression(L, 1))))
			return 1
		},
		"min": func(L *lua.LState) int {
			L.Push(lua.LNumber(dice.MinRoll(checkExpression(L, 1))))
			return 1
		},
		"median": func(L *lua.LState) int {
			L.Push(lua.LNumber(dice.MedianRoll(checkExpression(L, 1))))
			return 1
		},
		"distribution": func(L *lua.LState) int {
			e := m.checkBounded(L, 1)
			t := L.NewTable()
			for total, count := range dice.Distribution(e) {
				t.RawSet(lua.LNumber(total), lua.LNumber(count))
			}
			L.Push(t)
			return 1
		},
		"success_total": func(L *lua.LState) int {
			e := m.checkBounded(L, 1)
			L.Push(lua.LNumber(dice.SuccessTotal(e, L.CheckInt(2))))
			return 1
		},
		"success": func(L *lua.LState) int {
			e := checkExpression(L, 1)
			L.Push(lua.LNumber(dice.Success(e, L.CheckInt(2), L.OptInt(3, 1))))
			return 1
		},
	})
}

// checkBounded is checkExpression plus the configured outcome-space limit.
func (m *Manager) checkBounded(L *lua.LState, n int) dice.Expression {
	e := checkExpression(L, n)
	if err := dice.CheckOutcomeSpace(e, m.maxOutcomes); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return e
}

// checkExpression reads argument n as notation, a number (flat bonus) or an
// expression table, raising a Lua error if it cannot be resolved.
func checkExpression(L *lua.LState, n int) dice.Expression {
	var (
		e   dice.Expression
		err error
	)
	switch v := L.CheckAny(n).(type) {
	case lua.LString:
		e, err = dice.Resolve(string(v))
	case lua.LNumber:
		e = dice.Expression{Bonus: int(v)}
	case *lua.LTable:
		e, err = tableExpression(v)
		if err == nil {
			e, err = dice.Resolve(e)
		}
	default:
		L.ArgError(n, "dice notation or expression table expected, got "+v.Type().String())
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return e
}

func tableExpression(t *lua.LTable) (dice.Expression, error) {
	var e dice.Expression
	if b, ok := t.RawGetString("bonus").(lua.LNumber); ok {
		e.Bonus = int(b)
	}
	switch list := t.RawGetString("dice").(type) {
	case *lua.LTable:
		for i := 1; i <= list.Len(); i++ {
			d, ok := list.RawGetInt(i).(lua.LNumber)
			if !ok {
				return dice.Expression{}, fmt.Errorf("scripting: dice[%d] must be a number", i)
			}
			e.Dice = append(e.Dice, int(d))
		}
	case *lua.LNilType:
	default:
		return dice.Expression{}, fmt.Errorf("scripting: dice must be a table, got %s", list.Type())
	}
	return e, nil
}

func expressionTable(L *lua.LState, e dice.Expression) *lua.LTable {
	list := L.NewTable()
	for _, d := range e.Dice {
		list.Append(lua.LNumber(d))
	}
	t := L.NewTable()
	t.RawSetString("dice", list)
	t.RawSetString("bonus", lua.LNumber(e.Bonus))
	return t
}

// rollTable converts r to {total, dice, modifier, expression, id, rolls}
// where dice is the sum of the die values and rolls lists them.
func rollTable(L *lua.LState, r dice.RollResult) *lua.LTable {
	rolls := L.NewTable()
	sum := 0
	for _, v := range r.Dice {
		rolls.Append(lua.LNumber(v))
		sum += v
	}
	t := L.NewTable()
	t.RawSetString("total", lua.LNumber(r.Total()))
	t.RawSetString("dice", lua.LNumber(sum))
	t.RawSetString("modifier", lua.LNumber(r.Bonus))
	t.RawSetString("expression", lua.LString(r.Expression))
	t.RawSetString("id", lua.LString(r.ID))
	t.RawSetString("rolls", rolls)
	return t
}
