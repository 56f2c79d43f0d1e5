package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestat/internal/dice"
)

// vm is one sandboxed LState. An LState is single-threaded; mu serializes
// calls into it.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel context.CancelFunc
}

func (v *vm) close() {
	v.cancel()
	v.L.Close()
}

// Manager owns named sandboxed VMs and dispatches hook calls into them.
//
// Manager is safe for concurrent use. Calls into the same VM are serialized;
// different VMs run concurrently.
type Manager struct {
	mu          sync.RWMutex
	vms         map[string]*vm
	roller      *dice.Roller
	logger      *zap.Logger
	maxOutcomes uint64
}

// NewManager creates a Manager. maxOutcomes bounds engine.dice.distribution
// and engine.dice.success_total; 0 disables the bound.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(roller *dice.Roller, logger *zap.Logger, maxOutcomes uint64) *Manager {
	return &Manager{
		vms:         make(map[string]*vm),
		roller:      roller,
		logger:      logger,
		maxOutcomes: maxOutcomes,
	}
}

// Load creates a sandboxed VM registered as name, registers the engine.*
// modules, then executes every *.lua file in scriptDir in lexicographic order.
// Loading a name again replaces its VM.
//
// Precondition: name must be non-empty; scriptDir must be a readable directory.
// Postcondition: VM is registered; returns error on read or Lua load failure.
func (m *Manager) Load(name, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, name, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	v := &vm{L: L, cancel: cancel}

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			v.close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, name, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[name]; ok {
		old.mu.Lock()
		old.close()
		old.mu.Unlock()
	}
	m.vms[name] = v
	m.mu.Unlock()

	m.logger.Debug("scripting: VM loaded",
		zap.String("vm", name),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Call calls the named Lua global function in the VM registered as name.
// Returns (LNil, nil) if the VM or the hook does not exist. Lua runtime errors
// are logged at Warn level and returned.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) Call(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Info("scripting: no VM",
			zap.String("vm", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("vm", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, fmt.Errorf("scripting: calling %q in %q: %w", hook, name, err)
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close releases every VM.
//
// Postcondition: the Manager holds no VMs.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, v := range m.vms {
		v.mu.Lock()
		v.close()
		v.mu.Unlock()
		delete(m.vms, name)
	}
}
