package actions

import (
	"github.com/arthur-debert/maidsweep/pkg/types"
)

// Kind identifies one of the terminal actions
type Kind string

const (
	KindTag    Kind = "tag"
	KindExec   Kind = "exec"
	KindCopy   Kind = "copy"
	KindMove   Kind = "move"
	KindDelete Kind = "delete"
)

// Action is a selected action and its parameters
type Action struct {
	Kind Kind
	// Dest is the destination root for copy and move
	Dest string
	// Args is the exec template
	Args []string
}

func (a Action) String() string {
	if a.Dest != "" {
		return string(a.Kind) + " -> " + a.Dest
	}
	return string(a.Kind)
}

// Select returns the single action configured in cfg. The boolean is false
// when no action is configured.
func Select(cfg *types.RunConfig) (Action, bool) {
	if cfg == nil {
		return Action{}, false
	}

	switch {
	case cfg.CopyTo != "":
		return Action{Kind: KindCopy, Dest: cfg.CopyTo}, true
	case cfg.Save:
		return Action{Kind: KindTag}, true
	case cfg.MoveTo != "":
		return Action{Kind: KindMove, Dest: cfg.MoveTo}, true
	case cfg.Exec || len(cfg.ExecArgs) > 0:
		return Action{Kind: KindExec, Args: cfg.ExecArgs}, true
	case cfg.Delete:
		return Action{Kind: KindDelete}, true
	}

	return Action{}, false
}
