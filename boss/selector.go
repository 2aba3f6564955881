package boss

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/milk9111/houyi/prefabs"
)

// Selector picks the movement pattern for a stage.
type Selector interface {
	Select(stage int, twin bool) Kind
}

// TableSelector is the built-in stage to pattern mapping.
type TableSelector struct{}

func (TableSelector) Select(stage int, twin bool) Kind {
	if twin {
		return KindOrbit
	}
	switch stage {
	case 3:
		return KindOrbit
	case 5:
		return KindErratic
	case 6:
		return KindIllusion
	case 7:
		return KindTeleport
	case 8:
		return KindHide
	default:
		return KindBob
	}
}

const PatternScript = "patterns.tengo"

// ScriptSelector runs a tengo script that sets the global `pattern` from
// the `stage` and `twin` inputs. Any failure falls back to TableSelector.
type ScriptSelector struct {
	compiled *tengo.Compiled
	fallback TableSelector
	logger   *log.Logger
}

func NewScriptSelector(name string, logger *log.Logger) (*ScriptSelector, error) {
	if logger == nil {
		logger = log.Default()
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return compileSelector(src, logger)
}

func compileSelector(src []byte, logger *log.Logger) (*ScriptSelector, error) {
	script := tengo.NewScript(src)
	_ = script.Add("stage", 0)
	_ = script.Add("twin", false)
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("boss: compile pattern script: %w", err)
	}
	return &ScriptSelector{compiled: compiled, logger: logger}, nil
}

func (s *ScriptSelector) Select(stage int, twin bool) Kind {
	if s == nil || s.compiled == nil {
		return TableSelector{}.Select(stage, twin)
	}
	kind, err := s.run(stage, twin)
	if err != nil {
		s.logger.Warn("pattern script failed, using built-in table", "stage", stage, "err", err)
		return s.fallback.Select(stage, twin)
	}
	return kind
}

func (s *ScriptSelector) run(stage int, twin bool) (Kind, error) {
	if err := s.compiled.Set("stage", stage); err != nil {
		return "", err
	}
	if err := s.compiled.Set("twin", twin); err != nil {
		return "", err
	}
	if err := s.compiled.Run(); err != nil {
		return "", err
	}
	if !s.compiled.IsDefined("pattern") {
		return "", fmt.Errorf("script did not define pattern")
	}
	kind := Kind(strings.TrimSpace(s.compiled.Get("pattern").String()))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown pattern %q", kind)
	}
	return kind, nil
}
