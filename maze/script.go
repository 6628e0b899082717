package maze

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// completionHook is a compiled on_complete script. The script sees the
// level name as `level` and the manifest's next level as `next`; whatever
// it leaves in `next` is where the game goes.
type completionHook struct {
	compiled *tengo.Compiled
}

func compileHook(src, levelName, defaultNext string) (*completionHook, error) {
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math", "rand", "text", "times"))
	if err := script.Add("level", levelName); err != nil {
		return nil, err
	}
	if err := script.Add("next", defaultNext); err != nil {
		return nil, err
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &completionHook{compiled: compiled}, nil
}

func (h *completionHook) run() (string, error) {
	// clone so the hook can fire again after a restart
	c := h.compiled.Clone()
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("run: %w", err)
	}
	return c.Get("next").String(), nil
}
